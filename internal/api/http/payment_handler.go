package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/logger"
	"welfare-backend/internal/mpesa"
	"welfare-backend/internal/service"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
	ledgerSvc  service.LedgerService
	validate   *validator.Validate
}

func NewPaymentHandler(paymentSvc service.PaymentService, ledgerSvc service.LedgerService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc, ledgerSvc: ledgerSvc, validate: validator.New()}
}

type manualPaymentRequest struct {
	MemberID  int32  `json:"member_id" validate:"required"`
	Amount    string `json:"amount" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Method    string `json:"method" validate:"required"`
	ProjectID *int32 `json:"project_id"`
	CaseID    *int32 `json:"case_id"`
	Narrative string `json:"narrative"`
	Reference string `json:"reference"`
}

func (h *PaymentHandler) ManualPayment(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req manualPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	contribution, transaction, balance, err := h.paymentSvc.RecordManualPayment(r.Context(), service.ManualPaymentRequest{
		MemberID:   req.MemberID,
		Amount:     amount,
		Type:       domain.ContributionType(req.Type),
		Method:     domain.PaymentMethod(req.Method),
		ProjectID:  req.ProjectID,
		CaseID:     req.CaseID,
		Narrative:  req.Narrative,
		Reference:  req.Reference,
		RecordedBy: claims.UserID,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, map[string]any{
		"contribution": contribution,
		"transaction":  transaction,
		"balance":      balance,
	})
}

type stkPushRequest struct {
	MemberID int32  `json:"member_id" validate:"required"`
	Amount   string `json:"amount" validate:"required"`
	Type     string `json:"type" validate:"required"`
}

func (h *PaymentHandler) InitiateSTKPush(w http.ResponseWriter, r *http.Request) {
	var req stkPushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	checkoutID, err := h.paymentSvc.InitiateSTKPush(r.Context(), req.MemberID, amount, domain.ContributionType(req.Type))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"checkout_request_id": checkoutID})
}

// MpesaCallback receives the Daraja STK result. The gateway expects a 200
// regardless of our outcome; failures are logged and reconciled manually.
func (h *PaymentHandler) MpesaCallback(w http.ResponseWriter, r *http.Request) {
	result, err := mpesa.ParseCallback(r.Body)
	if err != nil {
		logger.Error("Failed to parse M-Pesa callback", "error", err)
		respondError(w, http.StatusBadRequest, "invalid callback payload")
		return
	}

	if !result.Success {
		logger.Warn("M-Pesa payment failed", "checkout_id", result.CheckoutRequestID, "desc", result.ResultDesc)
		respondSuccess(w, http.StatusOK, nil)
		return
	}

	if _, err := h.paymentSvc.ConfirmGatewayPayment(r.Context(), result.PhoneNumber, result.Receipt, result.Amount); err != nil {
		logger.Error("Failed to record M-Pesa payment", "checkout_id", result.CheckoutRequestID, "receipt", result.Receipt, "error", err)
	}
	respondSuccess(w, http.StatusOK, nil)
}

func (h *PaymentHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	balance, err := h.ledgerSvc.GetBalance(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, balance)
}
