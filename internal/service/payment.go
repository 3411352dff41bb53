package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/logger"
	"welfare-backend/internal/repository"
)

// PaymentGateway is the slice of the M-Pesa client the payment service needs.
type PaymentGateway interface {
	STKPush(ctx context.Context, phone string, amount decimal.Decimal, accountRef string) (string, error)
}

type paymentService struct {
	contribRepo repository.ContributionRepository
	memberRepo  repository.MemberRepository
	gateway     PaymentGateway
	smsSvc      SMSService
}

func NewPaymentService(
	contribRepo repository.ContributionRepository,
	memberRepo repository.MemberRepository,
	gateway PaymentGateway,
	smsSvc SMSService,
) PaymentService {
	return &paymentService{
		contribRepo: contribRepo,
		memberRepo:  memberRepo,
		gateway:     gateway,
		smsSvc:      smsSvc,
	}
}

func (s *paymentService) RecordManualPayment(ctx context.Context, req ManualPaymentRequest) (*domain.Contribution, *domain.Transaction, *domain.Balance, error) {
	if !req.Amount.IsPositive() {
		return nil, nil, nil, domain.NewValidationError("amount", "amount must be greater than zero")
	}
	if !req.Type.Valid() {
		return nil, nil, nil, domain.NewValidationError("type", "unknown contribution type")
	}
	if !req.Method.Valid() {
		return nil, nil, nil, domain.NewValidationError("method", "unknown payment method")
	}

	contribution := &domain.Contribution{
		MemberID:   req.MemberID,
		Amount:     req.Amount,
		Type:       req.Type,
		ProjectID:  req.ProjectID,
		CaseID:     req.CaseID,
		Narrative:  req.Narrative,
		RecordedBy: req.RecordedBy,
	}
	if err := contribution.ValidateTarget(); err != nil {
		return nil, nil, nil, err
	}

	reference := req.Reference
	if reference == "" {
		reference = uuid.NewString()
	}
	transaction := &domain.Transaction{
		MemberID:  req.MemberID,
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: reference,
		Status:    domain.TransactionStatusCompleted,
	}

	balance, err := s.contribRepo.RecordPayment(ctx, contribution, transaction)
	if err != nil {
		return nil, nil, nil, err
	}

	// Receipt SMS is best effort and never part of the transaction.
	if member, err := s.memberRepo.GetByID(ctx, req.MemberID); err == nil && member.PhoneNumber != "" {
		if err := s.smsSvc.SendPaymentReceipt(ctx, member.PhoneNumber, req.Amount, balance); err != nil {
			logger.Error("Failed to send payment receipt SMS", "member_id", req.MemberID, "error", err)
		}
	}

	return contribution, transaction, balance, nil
}

func (s *paymentService) InitiateSTKPush(ctx context.Context, memberID int32, amount decimal.Decimal, contributionType domain.ContributionType) (string, error) {
	if !amount.IsPositive() {
		return "", domain.NewValidationError("amount", "amount must be greater than zero")
	}
	if !contributionType.Valid() {
		return "", domain.NewValidationError("type", "unknown contribution type")
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return "", err
	}

	checkoutID, err := s.gateway.STKPush(ctx, member.PhoneNumber, amount, member.MemberNo)
	if err != nil {
		return "", fmt.Errorf("failed to initiate stk push: %w", err)
	}
	logger.Info("STK push initiated", "member_id", memberID, "checkout_id", checkoutID)
	return checkoutID, nil
}

func (s *paymentService) ConfirmGatewayPayment(ctx context.Context, phoneNumber, receipt string, amount decimal.Decimal) (*domain.Contribution, error) {
	if !amount.IsPositive() {
		return nil, domain.NewValidationError("amount", "amount must be greater than zero")
	}

	phone := domain.NormalizePhone(phoneNumber)
	member, err := s.memberRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("no member for phone %s: %w", phone, err)
	}

	contribution := &domain.Contribution{
		MemberID:  member.ID,
		Amount:    amount,
		Type:      domain.ContributionTypeMonthly,
		Narrative: "M-Pesa payment",
	}
	transaction := &domain.Transaction{
		MemberID:  member.ID,
		Amount:    amount,
		Method:    domain.PaymentMethodMpesa,
		Reference: receipt,
		Status:    domain.TransactionStatusCompleted,
	}

	balance, err := s.contribRepo.RecordPayment(ctx, contribution, transaction)
	if err != nil {
		return nil, err
	}

	if err := s.smsSvc.SendPaymentReceipt(ctx, member.PhoneNumber, amount, balance); err != nil {
		logger.Error("Failed to send payment receipt SMS", "member_id", member.ID, "error", err)
	}
	return contribution, nil
}
