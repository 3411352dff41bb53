package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/service"
)

type DisbursementHandler struct {
	disbursementSvc service.DisbursementService
	validate        *validator.Validate
}

func NewDisbursementHandler(disbursementSvc service.DisbursementService) *DisbursementHandler {
	return &DisbursementHandler{disbursementSvc: disbursementSvc, validate: validator.New()}
}

type disbursementRequest struct {
	CaseID   int32  `json:"case_id" validate:"required"`
	MemberID int32  `json:"member_id" validate:"required"`
	Amount   string `json:"amount" validate:"required"`
	Method   string `json:"method" validate:"required"`
}

func (h *DisbursementHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req disbursementRequest
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

	d := &domain.Disbursement{
		CaseID:   req.CaseID,
		MemberID: req.MemberID,
		Amount:   amount,
		Method:   domain.PaymentMethod(req.Method),
	}
	if err := h.disbursementSvc.Request(r.Context(), d); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, d)
}

func (h *DisbursementHandler) Approve(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid disbursement id")
		return
	}

	d, err := h.disbursementSvc.Approve(r.Context(), claims.UserID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, d)
}

type completeDisbursementRequest struct {
	Reference string `json:"reference" validate:"required"`
}

func (h *DisbursementHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid disbursement id")
		return
	}

	var req completeDisbursementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.disbursementSvc.Complete(r.Context(), id, req.Reference)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, d)
}

func (h *DisbursementHandler) ListByCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathID(r, "caseID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid case id")
		return
	}

	disbursements, err := h.disbursementSvc.ListByCase(r.Context(), caseID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"disbursements": disbursements})
}
