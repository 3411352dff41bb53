package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/logger"
	"welfare-backend/internal/repository"
	"welfare-backend/internal/storage"
)

type memberService struct {
	memberRepo      repository.MemberRepository
	balanceRepo     repository.BalanceRepository
	contribRepo     repository.ContributionRepository
	emailSvc        EmailService
	store           storage.Storage
	probationMonths int
}

func NewMemberService(
	memberRepo repository.MemberRepository,
	balanceRepo repository.BalanceRepository,
	contribRepo repository.ContributionRepository,
	emailSvc EmailService,
	store storage.Storage,
	probationMonths int,
) MemberService {
	return &memberService{
		memberRepo:      memberRepo,
		balanceRepo:     balanceRepo,
		contribRepo:     contribRepo,
		emailSvc:        emailSvc,
		store:           store,
		probationMonths: probationMonths,
	}
}

func (s *memberService) Onboard(ctx context.Context, m *domain.Member) error {
	if m.FullName == "" {
		return domain.NewValidationError("full_name", "full name is required")
	}
	if m.PhoneNumber == "" {
		return domain.NewValidationError("phone_number", "phone number is required")
	}
	// Stored in the same form gateway callbacks report, so payments resolve.
	m.PhoneNumber = domain.NormalizePhone(m.PhoneNumber)

	if m.JoinedOn.IsZero() {
		m.JoinedOn = time.Now().UTC()
	}
	m.MemberNo = uuid.NewString()
	m.Status = domain.MemberStatusActive
	m.MaturityStatus = domain.MaturityStatusProbation
	m.ProbationEndDate = m.JoinedOn.AddDate(0, s.probationMonths, 0)

	if err := s.memberRepo.Create(ctx, m); err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	if err := s.balanceRepo.Create(ctx, m.ID); err != nil {
		return fmt.Errorf("failed to open balance for member %d: %w", m.ID, err)
	}

	if m.Email != "" {
		if err := s.emailSvc.SendWelcome(ctx, m.Email, m.FullName, m.MemberNo); err != nil {
			logger.Error("Failed to send welcome email", "member_id", m.ID, "error", err)
		}
	}
	return nil
}

func (s *memberService) Get(ctx context.Context, id int32) (*domain.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

func (s *memberService) List(ctx context.Context, page, pageSize int32) ([]domain.Member, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.memberRepo.List(ctx, page, pageSize)
}

func (s *memberService) Update(ctx context.Context, m *domain.Member) error {
	if m.FullName == "" {
		return domain.NewValidationError("full_name", "full name is required")
	}
	if !m.Status.Valid() {
		return domain.NewValidationError("status", "unknown member status")
	}
	m.PhoneNumber = domain.NormalizePhone(m.PhoneNumber)
	return s.memberRepo.Update(ctx, m)
}

func (s *memberService) Statement(ctx context.Context, memberID int32) (*domain.Member, *domain.Balance, []domain.Contribution, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, nil, nil, err
	}
	balance, err := s.balanceRepo.Get(ctx, memberID)
	if err != nil {
		return nil, nil, nil, err
	}
	contributions, _, err := s.contribRepo.ListByMember(ctx, memberID, 1, 20)
	if err != nil {
		return nil, nil, nil, err
	}
	return member, balance, contributions, nil
}

func (s *memberService) UploadPhoto(ctx context.Context, memberID int32, filename, contentType string, r io.Reader) (string, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("members/%d/photo%s", memberID, filepath.Ext(filename))
	url, err := s.store.Upload(ctx, key, contentType, r)
	if err != nil {
		return "", fmt.Errorf("failed to upload member photo: %w", err)
	}

	member.PhotoURL = url
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return "", err
	}
	return url, nil
}
