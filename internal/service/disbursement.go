package service

import (
	"context"
	"errors"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/logger"
	"welfare-backend/internal/repository"
)

type disbursementService struct {
	disbursementRepo repository.DisbursementRepository
	caseRepo         repository.WelfareCaseRepository
	memberRepo       repository.MemberRepository
	emailSvc         EmailService
}

func NewDisbursementService(
	disbursementRepo repository.DisbursementRepository,
	caseRepo repository.WelfareCaseRepository,
	memberRepo repository.MemberRepository,
	emailSvc EmailService,
) DisbursementService {
	return &disbursementService{
		disbursementRepo: disbursementRepo,
		caseRepo:         caseRepo,
		memberRepo:       memberRepo,
		emailSvc:         emailSvc,
	}
}

func (s *disbursementService) Request(ctx context.Context, d *domain.Disbursement) error {
	if !d.Amount.IsPositive() {
		return domain.NewValidationError("amount", "amount must be greater than zero")
	}
	if !d.Method.Valid() {
		return domain.NewValidationError("method", "unknown payment method")
	}

	wc, err := s.caseRepo.GetByID(ctx, d.CaseID)
	if err != nil {
		return err
	}
	if wc.Status != domain.CaseStatusOpen {
		return domain.NewValidationError("case_id", "case is not open")
	}

	d.MemberID = wc.BeneficiaryID
	d.Status = domain.DisbursementStatusPending
	return s.disbursementRepo.Create(ctx, d)
}

func (s *disbursementService) Approve(ctx context.Context, approverID, disbursementID int32) (*domain.Disbursement, error) {
	d, err := s.disbursementRepo.GetByID(ctx, disbursementID)
	if err != nil {
		return nil, err
	}
	if d.Status != domain.DisbursementStatusPending {
		return nil, domain.NewValidationError("status", "disbursement is not pending")
	}

	d.Status = domain.DisbursementStatusApproved
	d.ApprovedBy = &approverID
	if err := s.disbursementRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	if member, err := s.memberRepo.GetByID(ctx, d.MemberID); err == nil && member.Email != "" {
		if err := s.emailSvc.SendDisbursementApproved(ctx, member.Email, member.FullName, d.Amount); err != nil {
			logger.Error("Failed to send disbursement approval email", "disbursement_id", d.ID, "error", err)
		}
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Error("Failed to load beneficiary for notification", "disbursement_id", d.ID, "error", err)
	}

	return d, nil
}

func (s *disbursementService) Complete(ctx context.Context, disbursementID int32, reference string) (*domain.Disbursement, error) {
	d, err := s.disbursementRepo.GetByID(ctx, disbursementID)
	if err != nil {
		return nil, err
	}
	if d.Status != domain.DisbursementStatusApproved {
		return nil, domain.NewValidationError("status", "disbursement is not approved")
	}
	if reference == "" {
		return nil, domain.NewValidationError("reference", "payout reference is required")
	}

	d.Status = domain.DisbursementStatusCompleted
	d.Reference = reference
	if err := s.disbursementRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *disbursementService) ListByCase(ctx context.Context, caseID int32) ([]domain.Disbursement, error) {
	return s.disbursementRepo.ListByCase(ctx, caseID)
}
