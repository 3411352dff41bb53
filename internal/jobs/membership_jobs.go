package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/logger"
)

// RefreshMaturityStatuses re-derives every member's maturity status from
// their probation end date.
func (jr *JobRunner) RefreshMaturityStatuses() {
	jr.runWithRecovery("RefreshMaturityStatuses", func() {
		ctx := context.Background()

		matured, probation, err := jr.services.Maturity.Refresh(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to refresh maturity statuses", "error", err)
			return
		}
		logger.Info("Maturity refresh finished", "matured", matured, "back_to_probation", probation)
	})
}

// AccrueMonthlyDues charges every active member the configured monthly
// contribution. Each member's accrual is a single atomic statement, so a
// failure for one member does not affect the rest.
func (jr *JobRunner) AccrueMonthlyDues() {
	jr.runWithRecovery("AccrueMonthlyDues", func() {
		ctx := context.Background()

		dues, err := decimal.NewFromString(jr.config.Membership.MonthlyDues)
		if err != nil {
			logger.Error("Invalid monthly dues amount in config", "value", jr.config.Membership.MonthlyDues, "error", err)
			return
		}

		ids, err := jr.store.MemberRepository.ListActiveIDs(ctx)
		if err != nil {
			logger.Error("Failed to list active members", "error", err)
			return
		}

		accrued := 0
		for _, id := range ids {
			if _, err := jr.services.Ledger.AccrueMonthlyContribution(ctx, id, dues); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					logger.Warn("Member has no balance row, skipping accrual", "member_id", id)
					continue
				}
				logger.Error("Failed to accrue monthly dues", "member_id", id, "error", err)
				continue
			}
			accrued++
		}
		logger.Info("Monthly dues accrued", "members", accrued, "amount", dues.StringFixed(2))
	})
}

// SendDueReminders texts every member carrying an outstanding due balance.
func (jr *JobRunner) SendDueReminders() {
	jr.runWithRecovery("SendDueReminders", func() {
		ctx := context.Background()

		owing, err := jr.store.BalanceRepository.ListOwing(ctx)
		if err != nil {
			logger.Error("Failed to list owing balances", "error", err)
			return
		}

		sent := 0
		for _, b := range owing {
			member, err := jr.store.MemberRepository.GetByID(ctx, b.MemberID)
			if err != nil {
				logger.Error("Failed to load member for reminder", "member_id", b.MemberID, "error", err)
				continue
			}
			if member.PhoneNumber == "" {
				continue
			}
			if err := jr.services.SMS.SendDueReminder(ctx, member.PhoneNumber, b.Due); err != nil {
				logger.Error("Failed to send due reminder", "member_id", b.MemberID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Due reminders sent", "count", sent, "owing", len(owing))
	})
}
