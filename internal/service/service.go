package service

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"welfare-backend/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, *domain.User, error) // access, refresh, user
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	CreateUser(ctx context.Context, actorRole domain.Role, user *domain.User, password string) error
}

type MemberService interface {
	// Onboard registers a member and opens their zero balance in one step.
	Onboard(ctx context.Context, member *domain.Member) error
	Get(ctx context.Context, id int32) (*domain.Member, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Member, int32, error)
	Update(ctx context.Context, member *domain.Member) error
	Statement(ctx context.Context, memberID int32) (*domain.Member, *domain.Balance, []domain.Contribution, error)
	UploadPhoto(ctx context.Context, memberID int32, filename, contentType string, r io.Reader) (string, error)
}

type LedgerService interface {
	GetBalance(ctx context.Context, memberID int32) (*domain.Balance, error)
	AccrueMonthlyContribution(ctx context.Context, memberID int32, amount decimal.Decimal) (*domain.Balance, error)
	ApplyPayment(ctx context.Context, memberID int32, amount decimal.Decimal) (*domain.Balance, error)
}

// ManualPaymentRequest carries an office-recorded payment.
type ManualPaymentRequest struct {
	MemberID   int32
	Amount     decimal.Decimal
	Type       domain.ContributionType
	Method     domain.PaymentMethod
	ProjectID  *int32
	CaseID     *int32
	Narrative  string
	Reference  string
	RecordedBy int32
}

type PaymentService interface {
	RecordManualPayment(ctx context.Context, req ManualPaymentRequest) (*domain.Contribution, *domain.Transaction, *domain.Balance, error)
	// InitiateSTKPush asks the gateway to prompt the member's phone for payment.
	InitiateSTKPush(ctx context.Context, memberID int32, amount decimal.Decimal, contributionType domain.ContributionType) (string, error)
	// ConfirmGatewayPayment records a payment confirmed by the gateway callback.
	ConfirmGatewayPayment(ctx context.Context, phoneNumber, receipt string, amount decimal.Decimal) (*domain.Contribution, error)
}

type MaturityService interface {
	// Refresh re-derives every member's maturity status from probation_end_date.
	Refresh(ctx context.Context, now time.Time) (matured, probation int64, err error)
}

type ProjectService interface {
	CreateProject(ctx context.Context, p *domain.Project) error
	GetProject(ctx context.Context, id int32) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	UpdateProject(ctx context.Context, p *domain.Project) error

	CreateCase(ctx context.Context, wc *domain.WelfareCase) error
	GetCase(ctx context.Context, id int32) (*domain.WelfareCase, error)
	ListCases(ctx context.Context, status string) ([]domain.WelfareCase, error)
	CloseCase(ctx context.Context, id int32) (*domain.WelfareCase, error)
}

type ExpenditureService interface {
	Add(ctx context.Context, e *domain.Expenditure) error
	Get(ctx context.Context, id int32) (*domain.Expenditure, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Expenditure, int32, error)
	Update(ctx context.Context, e *domain.Expenditure) error
	Delete(ctx context.Context, id int32) error
}

type DisbursementService interface {
	Request(ctx context.Context, d *domain.Disbursement) error
	Approve(ctx context.Context, approverID, disbursementID int32) (*domain.Disbursement, error)
	Complete(ctx context.Context, disbursementID int32, reference string) (*domain.Disbursement, error)
	ListByCase(ctx context.Context, caseID int32) ([]domain.Disbursement, error)
}

type EmailService interface {
	SendWelcome(ctx context.Context, email, name, memberNo string) error
	SendDisbursementApproved(ctx context.Context, email, name string, amount decimal.Decimal) error
}

type SMSService interface {
	SendPaymentReceipt(ctx context.Context, phone string, amount decimal.Decimal, balance *domain.Balance) error
	SendDueReminder(ctx context.Context, phone string, due decimal.Decimal) error
}
