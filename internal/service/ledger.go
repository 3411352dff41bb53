package service

import (
	"context"

	"github.com/shopspring/decimal"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/repository"
)

type ledgerService struct {
	balanceRepo repository.BalanceRepository
}

func NewLedgerService(balanceRepo repository.BalanceRepository) LedgerService {
	return &ledgerService{balanceRepo: balanceRepo}
}

func (s *ledgerService) GetBalance(ctx context.Context, memberID int32) (*domain.Balance, error) {
	return s.balanceRepo.Get(ctx, memberID)
}

func (s *ledgerService) AccrueMonthlyContribution(ctx context.Context, memberID int32, amount decimal.Decimal) (*domain.Balance, error) {
	if amount.IsNegative() {
		return nil, domain.NewValidationError("amount", "amount must not be negative")
	}
	return s.balanceRepo.ApplyAccrual(ctx, memberID, amount)
}

func (s *ledgerService) ApplyPayment(ctx context.Context, memberID int32, amount decimal.Decimal) (*domain.Balance, error) {
	if amount.IsNegative() {
		return nil, domain.NewValidationError("amount", "amount must not be negative")
	}
	return s.balanceRepo.ApplySettlement(ctx, memberID, amount)
}
