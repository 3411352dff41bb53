package service

import (
	"context"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/repository"
)

type expenditureService struct {
	expenditureRepo repository.ExpenditureRepository
}

func NewExpenditureService(expenditureRepo repository.ExpenditureRepository) ExpenditureService {
	return &expenditureService{expenditureRepo: expenditureRepo}
}

func (s *expenditureService) validate(e *domain.Expenditure) error {
	if !e.Amount.IsPositive() {
		return domain.NewValidationError("amount", "amount must be greater than zero")
	}
	if !e.Category.Valid() {
		return domain.NewValidationError("category", "unknown expenditure category")
	}
	if e.IncurredOn.IsZero() {
		return domain.NewValidationError("incurred_on", "incurred_on is required")
	}
	return nil
}

func (s *expenditureService) Add(ctx context.Context, e *domain.Expenditure) error {
	if err := s.validate(e); err != nil {
		return err
	}
	return s.expenditureRepo.Create(ctx, e)
}

func (s *expenditureService) Get(ctx context.Context, id int32) (*domain.Expenditure, error) {
	return s.expenditureRepo.GetByID(ctx, id)
}

func (s *expenditureService) List(ctx context.Context, page, pageSize int32) ([]domain.Expenditure, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.expenditureRepo.List(ctx, page, pageSize)
}

func (s *expenditureService) Update(ctx context.Context, e *domain.Expenditure) error {
	if err := s.validate(e); err != nil {
		return err
	}
	return s.expenditureRepo.Update(ctx, e)
}

func (s *expenditureService) Delete(ctx context.Context, id int32) error {
	return s.expenditureRepo.Delete(ctx, id)
}
