package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/security"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Member       *MemberHandler
	Payment      *PaymentHandler
	Project      *ProjectHandler
	Expenditure  *ExpenditureHandler
	Disbursement *DisbursementHandler
	File         *FileHandler // nil unless mock storage is configured
}

// NewRouter mounts all routes under /api/v1 with role gates per route group.
// Admins pass every gate.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public routes: login, token refresh, and the gateway callback.
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/payments/mpesa-callback", h.Payment.MpesaCallback).Methods(http.MethodPost)

	if h.File != nil {
		router.HandleFunc("/files/{key:.+}", h.File.Download).Methods(http.MethodGet)
	}

	authed := api.NewRoute().Subrouter()
	authed.Use(Authenticate(tokens))

	gate := func(handler http.HandlerFunc, roles ...domain.Role) http.Handler {
		return RequireRoles(roles...)(handler)
	}

	officers := []domain.Role{domain.RoleSecretary, domain.RoleCoordinator}
	readers := []domain.Role{domain.RoleSecretary, domain.RoleCoordinator, domain.RoleTreasurer, domain.RoleAuditor}
	money := []domain.Role{domain.RoleTreasurer, domain.RoleSecretary}

	// Admin-only.
	authed.Handle("/users", gate(h.Auth.CreateUser)).Methods(http.MethodPost)
	authed.Handle("/members/refresh-maturity", gate(h.Member.RefreshMaturity)).Methods(http.MethodPost)

	// Members.
	authed.Handle("/members", gate(h.Member.Onboard, officers...)).Methods(http.MethodPost)
	authed.Handle("/members", gate(h.Member.List, readers...)).Methods(http.MethodGet)
	authed.Handle("/members/{id:[0-9]+}", gate(h.Member.Get, readers...)).Methods(http.MethodGet)
	authed.Handle("/members/{id:[0-9]+}", gate(h.Member.Update, officers...)).Methods(http.MethodPut)
	authed.Handle("/members/{id:[0-9]+}/statement", gate(h.Member.Statement, readers...)).Methods(http.MethodGet)
	authed.Handle("/members/{id:[0-9]+}/photo", gate(h.Member.UploadPhoto, officers...)).Methods(http.MethodPost)
	authed.Handle("/members/{id:[0-9]+}/balance", gate(h.Payment.GetBalance, readers...)).Methods(http.MethodGet)

	// Payments.
	authed.Handle("/payments", gate(h.Payment.ManualPayment, money...)).Methods(http.MethodPost)
	authed.Handle("/payments/stk-push", gate(h.Payment.InitiateSTKPush, money...)).Methods(http.MethodPost)

	// Projects and welfare cases.
	authed.Handle("/projects", gate(h.Project.CreateProject, officers...)).Methods(http.MethodPost)
	authed.Handle("/projects", gate(h.Project.ListProjects, readers...)).Methods(http.MethodGet)
	authed.Handle("/projects/{id:[0-9]+}", gate(h.Project.GetProject, readers...)).Methods(http.MethodGet)
	authed.Handle("/projects/{id:[0-9]+}", gate(h.Project.UpdateProject, officers...)).Methods(http.MethodPut)

	authed.Handle("/cases", gate(h.Project.CreateCase, officers...)).Methods(http.MethodPost)
	authed.Handle("/cases", gate(h.Project.ListCases, readers...)).Methods(http.MethodGet)
	authed.Handle("/cases/{id:[0-9]+}", gate(h.Project.GetCase, readers...)).Methods(http.MethodGet)
	authed.Handle("/cases/{id:[0-9]+}/close", gate(h.Project.CloseCase, officers...)).Methods(http.MethodPost)
	authed.Handle("/cases/{caseID:[0-9]+}/disbursements", gate(h.Disbursement.ListByCase, readers...)).Methods(http.MethodGet)

	// Expenditures: treasurer writes, auditors read.
	authed.Handle("/expenditures", gate(h.Expenditure.Add, domain.RoleTreasurer)).Methods(http.MethodPost)
	authed.Handle("/expenditures", gate(h.Expenditure.List, domain.RoleTreasurer, domain.RoleAuditor)).Methods(http.MethodGet)
	authed.Handle("/expenditures/{id:[0-9]+}", gate(h.Expenditure.Get, domain.RoleTreasurer, domain.RoleAuditor)).Methods(http.MethodGet)
	authed.Handle("/expenditures/{id:[0-9]+}", gate(h.Expenditure.Update, domain.RoleTreasurer)).Methods(http.MethodPut)
	authed.Handle("/expenditures/{id:[0-9]+}", gate(h.Expenditure.Delete, domain.RoleTreasurer)).Methods(http.MethodDelete)

	// Disbursements: coordinators raise requests, treasurer approves and pays.
	authed.Handle("/disbursements", gate(h.Disbursement.Request, domain.RoleCoordinator, domain.RoleSecretary)).Methods(http.MethodPost)
	authed.Handle("/disbursements/{id:[0-9]+}/approve", gate(h.Disbursement.Approve, domain.RoleTreasurer)).Methods(http.MethodPost)
	authed.Handle("/disbursements/{id:[0-9]+}/complete", gate(h.Disbursement.Complete, domain.RoleTreasurer)).Methods(http.MethodPost)

	return router
}
