package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/service"
)

func newProjectService() (*MockProjectRepo, *MockWelfareCaseRepo, *MockMemberRepo, service.ProjectService) {
	projectRepo := new(MockProjectRepo)
	caseRepo := new(MockWelfareCaseRepo)
	memberRepo := new(MockMemberRepo)
	svc := service.NewProjectService(projectRepo, caseRepo, memberRepo)
	return projectRepo, caseRepo, memberRepo, svc
}

func TestProjectService_CreateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsToActive", func(t *testing.T) {
		projectRepo, _, _, svc := newProjectService()

		projectRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Project) bool {
			return p.Status == domain.ProjectStatusActive
		})).Return(nil)

		p := &domain.Project{Name: "Borehole", TargetAmount: decimal.RequireFromString("200000")}
		assert.NoError(t, svc.CreateProject(ctx, p))
		projectRepo.AssertExpectations(t)
	})

	t.Run("MissingNameRejected", func(t *testing.T) {
		projectRepo, _, _, svc := newProjectService()

		err := svc.CreateProject(ctx, &domain.Project{TargetAmount: decimal.RequireFromString("200000")})
		assert.True(t, domain.IsValidation(err))
		projectRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestProjectService_UpdateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("ValidStatusPersists", func(t *testing.T) {
		projectRepo, _, _, svc := newProjectService()

		projectRepo.On("Update", ctx, mock.Anything).Return(nil)

		p := &domain.Project{ID: 3, Name: "Borehole", Status: domain.ProjectStatusCompleted}
		assert.NoError(t, svc.UpdateProject(ctx, p))
		projectRepo.AssertExpectations(t)
	})

	t.Run("UnknownStatusRejected", func(t *testing.T) {
		projectRepo, _, _, svc := newProjectService()

		p := &domain.Project{ID: 3, Name: "Borehole", Status: "BOGUS"}
		err := svc.UpdateProject(ctx, p)
		assert.True(t, domain.IsValidation(err))
		projectRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestProjectService_CreateCase(t *testing.T) {
	ctx := context.Background()

	t.Run("OpensForKnownBeneficiary", func(t *testing.T) {
		_, caseRepo, memberRepo, svc := newProjectService()

		memberRepo.On("GetByID", ctx, int32(7)).Return(&domain.Member{ID: 7}, nil)
		caseRepo.On("Create", ctx, mock.MatchedBy(func(wc *domain.WelfareCase) bool {
			return wc.Status == domain.CaseStatusOpen
		})).Return(nil)

		wc := &domain.WelfareCase{Title: "Hospitalization", BeneficiaryID: 7}
		assert.NoError(t, svc.CreateCase(ctx, wc))
		caseRepo.AssertExpectations(t)
	})

	t.Run("UnknownBeneficiaryRejected", func(t *testing.T) {
		_, caseRepo, memberRepo, svc := newProjectService()

		memberRepo.On("GetByID", ctx, int32(99)).Return(nil, domain.ErrNotFound)

		err := svc.CreateCase(ctx, &domain.WelfareCase{Title: "Hospitalization", BeneficiaryID: 99})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		caseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
