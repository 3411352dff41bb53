package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/service"
)

// ProjectHandler serves both fundraising projects and welfare cases.
type ProjectHandler struct {
	projectSvc service.ProjectService
	validate   *validator.Validate
}

func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc, validate: validator.New()}
}

type projectRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	TargetAmount string `json:"target_amount" validate:"required"`
	Status       string `json:"status"`
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	target, err := decimal.NewFromString(req.TargetAmount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid target_amount")
		return
	}

	p := &domain.Project{
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: target,
	}
	if err := h.projectSvc.CreateProject(r.Context(), p); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, p)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	p, err := h.projectSvc.GetProject(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, p)
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectSvc.ListProjects(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"projects": projects})
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	target, err := decimal.NewFromString(req.TargetAmount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid target_amount")
		return
	}

	p, err := h.projectSvc.GetProject(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	p.Name = req.Name
	p.Description = req.Description
	p.TargetAmount = target
	if req.Status != "" {
		p.Status = domain.ProjectStatus(req.Status)
	}

	if err := h.projectSvc.UpdateProject(r.Context(), p); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, p)
}

type caseRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description"`
	BeneficiaryID int32  `json:"beneficiary_id" validate:"required"`
}

func (h *ProjectHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	var req caseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	wc := &domain.WelfareCase{
		Title:         req.Title,
		Description:   req.Description,
		BeneficiaryID: req.BeneficiaryID,
	}
	if err := h.projectSvc.CreateCase(r.Context(), wc); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, wc)
}

func (h *ProjectHandler) GetCase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid case id")
		return
	}

	wc, err := h.projectSvc.GetCase(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, wc)
}

func (h *ProjectHandler) ListCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.projectSvc.ListCases(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"cases": cases})
}

func (h *ProjectHandler) CloseCase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid case id")
		return
	}

	wc, err := h.projectSvc.CloseCase(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, wc)
}
