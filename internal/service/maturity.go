package service

import (
	"context"
	"time"

	"welfare-backend/internal/logger"
	"welfare-backend/internal/repository"
)

type maturityService struct {
	memberRepo repository.MemberRepository
}

func NewMaturityService(memberRepo repository.MemberRepository) MaturityService {
	return &maturityService{memberRepo: memberRepo}
}

// Refresh re-derives every member's maturity status from probation_end_date.
// The repository runs both bulk updates in one transaction, so readers never
// see a half-applied pass.
func (s *maturityService) Refresh(ctx context.Context, now time.Time) (int64, int64, error) {
	matured, probation, err := s.memberRepo.RefreshMaturityStatuses(ctx, now)
	if err != nil {
		return 0, 0, err
	}
	logger.Info("Maturity statuses refreshed", "matured", matured, "back_to_probation", probation)
	return matured, probation, nil
}
