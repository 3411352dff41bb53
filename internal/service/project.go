package service

import (
	"context"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/repository"
)

type projectService struct {
	projectRepo repository.ProjectRepository
	caseRepo    repository.WelfareCaseRepository
	memberRepo  repository.MemberRepository
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	caseRepo repository.WelfareCaseRepository,
	memberRepo repository.MemberRepository,
) ProjectService {
	return &projectService{projectRepo: projectRepo, caseRepo: caseRepo, memberRepo: memberRepo}
}

func (s *projectService) CreateProject(ctx context.Context, p *domain.Project) error {
	if p.Name == "" {
		return domain.NewValidationError("name", "project name is required")
	}
	if p.TargetAmount.IsNegative() {
		return domain.NewValidationError("target_amount", "target amount must not be negative")
	}
	if p.Status == "" {
		p.Status = domain.ProjectStatusActive
	}
	return s.projectRepo.Create(ctx, p)
}

func (s *projectService) GetProject(ctx context.Context, id int32) (*domain.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *projectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.projectRepo.List(ctx)
}

func (s *projectService) UpdateProject(ctx context.Context, p *domain.Project) error {
	if p.Name == "" {
		return domain.NewValidationError("name", "project name is required")
	}
	if !p.Status.Valid() {
		return domain.NewValidationError("status", "unknown project status")
	}
	return s.projectRepo.Update(ctx, p)
}

func (s *projectService) CreateCase(ctx context.Context, wc *domain.WelfareCase) error {
	if wc.Title == "" {
		return domain.NewValidationError("title", "case title is required")
	}
	// The beneficiary must be a known member.
	if _, err := s.memberRepo.GetByID(ctx, wc.BeneficiaryID); err != nil {
		return err
	}
	wc.Status = domain.CaseStatusOpen
	return s.caseRepo.Create(ctx, wc)
}

func (s *projectService) GetCase(ctx context.Context, id int32) (*domain.WelfareCase, error) {
	return s.caseRepo.GetByID(ctx, id)
}

func (s *projectService) ListCases(ctx context.Context, status string) ([]domain.WelfareCase, error) {
	return s.caseRepo.List(ctx, status)
}

func (s *projectService) CloseCase(ctx context.Context, id int32) (*domain.WelfareCase, error) {
	wc, err := s.caseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wc.Status = domain.CaseStatusClosed
	if err := s.caseRepo.Update(ctx, wc); err != nil {
		return nil, err
	}
	return wc, nil
}
