package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/service"
)

type MemberHandler struct {
	memberSvc   service.MemberService
	maturitySvc service.MaturityService
	validate    *validator.Validate
}

func NewMemberHandler(memberSvc service.MemberService, maturitySvc service.MaturityService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc, maturitySvc: maturitySvc, validate: validator.New()}
}

func pathID(r *http.Request, name string) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	return int32(id), err
}

func queryInt32(r *http.Request, name string, def int32) int32 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 32)
	if err != nil {
		return def
	}
	return int32(v)
}

type onboardMemberRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	IDNumber string `json:"id_number" validate:"required"`
}

func (h *MemberHandler) Onboard(w http.ResponseWriter, r *http.Request) {
	var req onboardMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	member := &domain.Member{
		FullName:    req.FullName,
		PhoneNumber: req.Phone,
		Email:       req.Email,
		IDNumber:    req.IDNumber,
	}
	if err := h.memberSvc.Onboard(r.Context(), member); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, member)
}

type memberResponse struct {
	*domain.Member
	DaysToMaturity int `json:"days_to_maturity"`
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	member, err := h.memberSvc.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, memberResponse{Member: member, DaysToMaturity: member.DaysToMaturity(time.Now().UTC())})
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, total, err := h.memberSvc.List(r.Context(), queryInt32(r, "page", 1), queryInt32(r, "page_size", 20))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"members": members, "total": total})
}

type updateMemberRequest struct {
	FullName         string `json:"full_name" validate:"required"`
	Phone            string `json:"phone" validate:"required"`
	Email            string `json:"email" validate:"omitempty,email"`
	IDNumber         string `json:"id_number"`
	Status           string `json:"status"`
	ProbationEndDate string `json:"probation_end_date"` // YYYY-MM-DD
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	var req updateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := h.memberSvc.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	member.FullName = req.FullName
	member.PhoneNumber = req.Phone
	member.Email = req.Email
	if req.IDNumber != "" {
		member.IDNumber = req.IDNumber
	}
	if req.Status != "" {
		member.Status = domain.MemberStatus(req.Status)
	}
	if req.ProbationEndDate != "" {
		end, err := time.Parse("2006-01-02", req.ProbationEndDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid probation_end_date")
			return
		}
		member.ProbationEndDate = end
	}

	if err := h.memberSvc.Update(r.Context(), member); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, member)
}

func (h *MemberHandler) Statement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	member, balance, contributions, err := h.memberSvc.Statement(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{
		"member":        member,
		"balance":       balance,
		"contributions": contributions,
	})
}

func (h *MemberHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		respondError(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	url, err := h.memberSvc.UploadPhoto(r.Context(), id, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"photo_url": url})
}

// RefreshMaturity runs the maturity re-derivation on demand.
func (h *MemberHandler) RefreshMaturity(w http.ResponseWriter, r *http.Request) {
	matured, probation, err := h.maturitySvc.Refresh(r.Context(), time.Now().UTC())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]int64{
		"matured":           matured,
		"back_to_probation": probation,
	})
}
