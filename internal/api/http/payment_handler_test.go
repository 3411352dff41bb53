package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/security"
	"welfare-backend/internal/service"
)

// withClaims attaches authenticated treasurer claims, as the middleware would.
func withClaims(req *http.Request) *http.Request {
	claims := &security.UserClaims{UserID: 2, Role: domain.RoleTreasurer, Type: security.TokenTypeAccess}
	return req.WithContext(context.WithValue(req.Context(), claimsKey, claims))
}

type mockPaymentService struct {
	mock.Mock
}

func (m *mockPaymentService) RecordManualPayment(ctx context.Context, req service.ManualPaymentRequest) (*domain.Contribution, *domain.Transaction, *domain.Balance, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).(*domain.Contribution), args.Get(1).(*domain.Transaction), args.Get(2).(*domain.Balance), args.Error(3)
}
func (m *mockPaymentService) InitiateSTKPush(ctx context.Context, memberID int32, amount decimal.Decimal, contributionType domain.ContributionType) (string, error) {
	args := m.Called(ctx, memberID, amount, contributionType)
	return args.String(0), args.Error(1)
}
func (m *mockPaymentService) ConfirmGatewayPayment(ctx context.Context, phoneNumber, receipt string, amount decimal.Decimal) (*domain.Contribution, error) {
	args := m.Called(ctx, phoneNumber, receipt, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}

type mockLedgerService struct {
	mock.Mock
}

func (m *mockLedgerService) GetBalance(ctx context.Context, memberID int32) (*domain.Balance, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}
func (m *mockLedgerService) AccrueMonthlyContribution(ctx context.Context, memberID int32, amount decimal.Decimal) (*domain.Balance, error) {
	args := m.Called(ctx, memberID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}
func (m *mockLedgerService) ApplyPayment(ctx context.Context, memberID int32, amount decimal.Decimal) (*domain.Balance, error) {
	args := m.Called(ctx, memberID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func TestPaymentHandler_ManualPayment(t *testing.T) {
	t.Run("InvalidBody", func(t *testing.T) {
		paymentSvc := new(mockPaymentService)
		handler := NewPaymentHandler(paymentSvc, new(mockLedgerService))

		req := withClaims(httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader("not json")))
		rec := httptest.NewRecorder()
		handler.ManualPayment(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		paymentSvc.AssertNotCalled(t, "RecordManualPayment", mock.Anything, mock.Anything)
	})

	t.Run("InvalidAmountString", func(t *testing.T) {
		paymentSvc := new(mockPaymentService)
		handler := NewPaymentHandler(paymentSvc, new(mockLedgerService))

		body := `{"member_id": 7, "amount": "five hundred", "type": "MONTHLY", "method": "CASH"}`
		req := withClaims(httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(body)))
		rec := httptest.NewRecorder()
		handler.ManualPayment(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Success", func(t *testing.T) {
		paymentSvc := new(mockPaymentService)
		handler := NewPaymentHandler(paymentSvc, new(mockLedgerService))

		paymentSvc.On("RecordManualPayment", mock.Anything, mock.MatchedBy(func(r service.ManualPaymentRequest) bool {
			return r.MemberID == 7 && r.Amount.Equal(decimal.RequireFromString("500")) && r.Type == domain.ContributionTypeMonthly
		})).Return(&domain.Contribution{ID: 1}, &domain.Transaction{ID: 2}, &domain.Balance{MemberID: 7}, nil)

		body := `{"member_id": 7, "amount": "500", "type": "MONTHLY", "method": "CASH"}`
		req := withClaims(httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(body)))
		rec := httptest.NewRecorder()
		handler.ManualPayment(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":true`)
		paymentSvc.AssertExpectations(t)
	})

	t.Run("ValidationErrorMapsTo400", func(t *testing.T) {
		paymentSvc := new(mockPaymentService)
		handler := NewPaymentHandler(paymentSvc, new(mockLedgerService))

		paymentSvc.On("RecordManualPayment", mock.Anything, mock.Anything).
			Return(nil, nil, nil, domain.NewValidationError("type", "unknown contribution type"))

		body := `{"member_id": 7, "amount": "500", "type": "TIP", "method": "CASH"}`
		req := withClaims(httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(body)))
		rec := httptest.NewRecorder()
		handler.ManualPayment(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPaymentHandler_MpesaCallback(t *testing.T) {
	successPayload := `{
		"Body": {
			"stkCallback": {
				"CheckoutRequestID": "ws_CO_1",
				"ResultCode": 0,
				"ResultDesc": "Processed",
				"CallbackMetadata": {
					"Item": [
						{"Name": "Amount", "Value": 500},
						{"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"},
						{"Name": "PhoneNumber", "Value": 254708374149}
					]
				}
			}
		}
	}`

	t.Run("SuccessfulPaymentRecorded", func(t *testing.T) {
		paymentSvc := new(mockPaymentService)
		handler := NewPaymentHandler(paymentSvc, new(mockLedgerService))

		paymentSvc.On("ConfirmGatewayPayment", mock.Anything, "254708374149", "NLJ7RT61SV",
			mock.MatchedBy(func(a decimal.Decimal) bool { return a.Equal(decimal.RequireFromString("500")) })).
			Return(&domain.Contribution{ID: 1}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/mpesa-callback", strings.NewReader(successPayload))
		rec := httptest.NewRecorder()
		handler.MpesaCallback(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		paymentSvc.AssertExpectations(t)
	})

	t.Run("FailedPaymentStillReturns200", func(t *testing.T) {
		paymentSvc := new(mockPaymentService)
		handler := NewPaymentHandler(paymentSvc, new(mockLedgerService))

		payload := `{"Body": {"stkCallback": {"CheckoutRequestID": "ws_CO_1", "ResultCode": 1032, "ResultDesc": "Cancelled"}}}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/mpesa-callback", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.MpesaCallback(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		paymentSvc.AssertNotCalled(t, "ConfirmGatewayPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RecordingFailureStillReturns200", func(t *testing.T) {
		paymentSvc := new(mockPaymentService)
		handler := NewPaymentHandler(paymentSvc, new(mockLedgerService))

		paymentSvc.On("ConfirmGatewayPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/mpesa-callback", strings.NewReader(successPayload))
		rec := httptest.NewRecorder()
		handler.MpesaCallback(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("UnparseablePayloadIs400", func(t *testing.T) {
		handler := NewPaymentHandler(new(mockPaymentService), new(mockLedgerService))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/mpesa-callback", strings.NewReader("<xml/>"))
		rec := httptest.NewRecorder()
		handler.MpesaCallback(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPaymentHandler_GetBalance(t *testing.T) {
	t.Run("UnknownMemberIs404", func(t *testing.T) {
		ledgerSvc := new(mockLedgerService)
		handler := NewPaymentHandler(new(mockPaymentService), ledgerSvc)

		ledgerSvc.On("GetBalance", mock.Anything, int32(99)).Return(nil, domain.ErrNotFound)

		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/members/99/balance", nil), map[string]string{"id": "99"})
		rec := httptest.NewRecorder()
		handler.GetBalance(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Success", func(t *testing.T) {
		ledgerSvc := new(mockLedgerService)
		handler := NewPaymentHandler(new(mockPaymentService), ledgerSvc)

		ledgerSvc.On("GetBalance", mock.Anything, int32(7)).
			Return(&domain.Balance{MemberID: 7, Due: decimal.RequireFromString("500")}, nil)

		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/members/7/balance", nil), map[string]string{"id": "7"})
		rec := httptest.NewRecorder()
		handler.GetBalance(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"due":"500"`)
	})
}
