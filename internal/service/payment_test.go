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

func newPaymentService() (*MockContributionRepo, *MockMemberRepo, *MockPaymentGateway, *MockSMSService, service.PaymentService) {
	contribRepo := new(MockContributionRepo)
	memberRepo := new(MockMemberRepo)
	gateway := new(MockPaymentGateway)
	smsSvc := new(MockSMSService)
	svc := service.NewPaymentService(contribRepo, memberRepo, gateway, smsSvc)
	return contribRepo, memberRepo, gateway, smsSvc, svc
}

func TestPaymentService_RecordManualPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("MonthlyPaymentSettlesBalanceAndSendsReceipt", func(t *testing.T) {
		contribRepo, memberRepo, _, smsSvc, svc := newPaymentService()

		settled := &domain.Balance{MemberID: 7, Prepaid: decimal.Zero, Due: decimal.Zero}
		contribRepo.On("RecordPayment", ctx, mock.AnythingOfType("*domain.Contribution"), mock.AnythingOfType("*domain.Transaction")).
			Return(settled, nil)
		memberRepo.On("GetByID", ctx, int32(7)).
			Return(&domain.Member{ID: 7, PhoneNumber: "+254700000001"}, nil)
		smsSvc.On("SendPaymentReceipt", ctx, "+254700000001", decimal.RequireFromString("500"), settled).
			Return(nil)

		contribution, transaction, balance, err := svc.RecordManualPayment(ctx, service.ManualPaymentRequest{
			MemberID:   7,
			Amount:     decimal.RequireFromString("500"),
			Type:       domain.ContributionTypeMonthly,
			Method:     domain.PaymentMethodCash,
			RecordedBy: 2,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.ContributionTypeMonthly, contribution.Type)
		assert.Equal(t, domain.TransactionStatusCompleted, transaction.Status)
		assert.NotEmpty(t, transaction.Reference)
		assert.Equal(t, settled, balance)
		contribRepo.AssertExpectations(t)
		smsSvc.AssertExpectations(t)
	})

	t.Run("ReceiptFailureDoesNotFailPayment", func(t *testing.T) {
		contribRepo, memberRepo, _, smsSvc, svc := newPaymentService()

		contribRepo.On("RecordPayment", ctx, mock.Anything, mock.Anything).
			Return(&domain.Balance{MemberID: 7}, nil)
		memberRepo.On("GetByID", ctx, int32(7)).
			Return(&domain.Member{ID: 7, PhoneNumber: "+254700000001"}, nil)
		smsSvc.On("SendPaymentReceipt", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(assert.AnError)

		_, _, _, err := svc.RecordManualPayment(ctx, service.ManualPaymentRequest{
			MemberID: 7,
			Amount:   decimal.RequireFromString("500"),
			Type:     domain.ContributionTypeMonthly,
			Method:   domain.PaymentMethodMpesa,
		})
		assert.NoError(t, err)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		contribRepo, _, _, _, svc := newPaymentService()

		_, _, _, err := svc.RecordManualPayment(ctx, service.ManualPaymentRequest{
			MemberID: 7,
			Amount:   decimal.Zero,
			Type:     domain.ContributionTypeMonthly,
			Method:   domain.PaymentMethodCash,
		})
		assert.True(t, domain.IsValidation(err))
		contribRepo.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RejectsProjectAndCaseTogether", func(t *testing.T) {
		contribRepo, _, _, _, svc := newPaymentService()
		projectID, caseID := int32(1), int32(2)

		_, _, _, err := svc.RecordManualPayment(ctx, service.ManualPaymentRequest{
			MemberID:  7,
			Amount:    decimal.RequireFromString("100"),
			Type:      domain.ContributionTypeProject,
			Method:    domain.PaymentMethodCash,
			ProjectID: &projectID,
			CaseID:    &caseID,
		})
		assert.True(t, domain.IsValidation(err))
		contribRepo.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RejectsUnknownType", func(t *testing.T) {
		_, _, _, _, svc := newPaymentService()

		_, _, _, err := svc.RecordManualPayment(ctx, service.ManualPaymentRequest{
			MemberID: 7,
			Amount:   decimal.RequireFromString("100"),
			Type:     domain.ContributionType("TIP"),
			Method:   domain.PaymentMethodCash,
		})
		assert.True(t, domain.IsValidation(err))
	})
}

func TestPaymentService_InitiateSTKPush(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		_, memberRepo, gateway, _, svc := newPaymentService()

		memberRepo.On("GetByID", ctx, int32(3)).
			Return(&domain.Member{ID: 3, MemberNo: "WF-003", PhoneNumber: "+254711000003"}, nil)
		gateway.On("STKPush", ctx, "+254711000003", decimal.RequireFromString("500"), "WF-003").
			Return("ws_CO_12345", nil)

		checkoutID, err := svc.InitiateSTKPush(ctx, 3, decimal.RequireFromString("500"), domain.ContributionTypeMonthly)
		assert.NoError(t, err)
		assert.Equal(t, "ws_CO_12345", checkoutID)
	})

	t.Run("UnknownMember", func(t *testing.T) {
		_, memberRepo, _, _, svc := newPaymentService()

		memberRepo.On("GetByID", ctx, int32(99)).Return(nil, domain.ErrNotFound)

		_, err := svc.InitiateSTKPush(ctx, 99, decimal.RequireFromString("500"), domain.ContributionTypeMonthly)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPaymentService_ConfirmGatewayPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("ResolvesMemberByPhoneAndRecordsMonthly", func(t *testing.T) {
		contribRepo, memberRepo, _, smsSvc, svc := newPaymentService()
		amount := decimal.RequireFromString("500")

		memberRepo.On("GetByPhone", ctx, "254711000003").
			Return(&domain.Member{ID: 3, PhoneNumber: "254711000003"}, nil)
		contribRepo.On("RecordPayment", ctx, mock.MatchedBy(func(c *domain.Contribution) bool {
			return c.MemberID == 3 && c.Type == domain.ContributionTypeMonthly
		}), mock.MatchedBy(func(tr *domain.Transaction) bool {
			return tr.Method == domain.PaymentMethodMpesa && tr.Reference == "SBC99XYZ"
		})).Return(&domain.Balance{MemberID: 3}, nil)
		smsSvc.On("SendPaymentReceipt", ctx, "254711000003", amount, mock.Anything).Return(nil)

		contribution, err := svc.ConfirmGatewayPayment(ctx, "254711000003", "SBC99XYZ", amount)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), contribution.MemberID)
		contribRepo.AssertExpectations(t)
	})

	t.Run("FormattedPhoneResolvesCanonicalMember", func(t *testing.T) {
		contribRepo, memberRepo, _, smsSvc, svc := newPaymentService()
		amount := decimal.RequireFromString("500")

		// Lookup always uses the canonical form, whatever the caller passes.
		memberRepo.On("GetByPhone", ctx, "254711000003").
			Return(&domain.Member{ID: 3, PhoneNumber: "254711000003"}, nil)
		contribRepo.On("RecordPayment", ctx, mock.Anything, mock.Anything).
			Return(&domain.Balance{MemberID: 3}, nil)
		smsSvc.On("SendPaymentReceipt", ctx, "254711000003", amount, mock.Anything).Return(nil)

		contribution, err := svc.ConfirmGatewayPayment(ctx, "+254 711 000003", "SBC99XYZ", amount)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), contribution.MemberID)
		memberRepo.AssertExpectations(t)
	})

	t.Run("UnknownPhoneFails", func(t *testing.T) {
		contribRepo, memberRepo, _, _, svc := newPaymentService()

		memberRepo.On("GetByPhone", ctx, "254700999999").Return(nil, domain.ErrNotFound)

		_, err := svc.ConfirmGatewayPayment(ctx, "254700999999", "SBC1", decimal.RequireFromString("500"))
		assert.Error(t, err)
		contribRepo.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
	})
}
