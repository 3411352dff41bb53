package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/service"
)

type ExpenditureHandler struct {
	expenditureSvc service.ExpenditureService
	validate       *validator.Validate
}

func NewExpenditureHandler(expenditureSvc service.ExpenditureService) *ExpenditureHandler {
	return &ExpenditureHandler{expenditureSvc: expenditureSvc, validate: validator.New()}
}

type expenditureRequest struct {
	Category    string `json:"category" validate:"required"`
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description" validate:"required"`
	IncurredOn  string `json:"incurred_on" validate:"required"` // YYYY-MM-DD
}

func (h *ExpenditureHandler) parse(r *http.Request) (*domain.Expenditure, error) {
	var req expenditureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, domain.NewValidationError("", "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError("", err.Error())
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, domain.NewValidationError("amount", "invalid amount")
	}
	incurredOn, err := time.Parse("2006-01-02", req.IncurredOn)
	if err != nil {
		return nil, domain.NewValidationError("incurred_on", "invalid date, expected YYYY-MM-DD")
	}
	return &domain.Expenditure{
		Category:    domain.ExpenditureCategory(req.Category),
		Amount:      amount,
		Description: req.Description,
		IncurredOn:  incurredOn,
	}, nil
}

func (h *ExpenditureHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	e, err := h.parse(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	e.RecordedBy = claims.UserID

	if err := h.expenditureSvc.Add(r.Context(), e); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, e)
}

func (h *ExpenditureHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid expenditure id")
		return
	}

	e, err := h.expenditureSvc.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, e)
}

func (h *ExpenditureHandler) List(w http.ResponseWriter, r *http.Request) {
	expenditures, total, err := h.expenditureSvc.List(r.Context(), queryInt32(r, "page", 1), queryInt32(r, "page_size", 20))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"expenditures": expenditures, "total": total})
}

func (h *ExpenditureHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid expenditure id")
		return
	}

	e, err := h.parse(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	e.ID = id

	if err := h.expenditureSvc.Update(r.Context(), e); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, e)
}

func (h *ExpenditureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid expenditure id")
		return
	}

	if err := h.expenditureSvc.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, nil)
}
