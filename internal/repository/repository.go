package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"welfare-backend/internal/domain"
)

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id int32) (*domain.Member, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Member, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Member, int32, error)
	Update(ctx context.Context, member *domain.Member) error
	ListActiveIDs(ctx context.Context) ([]int32, error)

	// RefreshMaturityStatuses re-derives maturity_status from probation_end_date
	// for every member in one transaction. Returns the number of rows flipped
	// in each direction.
	RefreshMaturityStatuses(ctx context.Context, now time.Time) (matured, probation int64, err error)
}

type BalanceRepository interface {
	Create(ctx context.Context, memberID int32) error
	Get(ctx context.Context, memberID int32) (*domain.Balance, error)

	// ApplyAccrual and ApplySettlement run the waterfall arithmetic in a single
	// conditional UPDATE so concurrent calls cannot lose updates. Both return
	// domain.ErrNotFound when the member has no balance row.
	ApplyAccrual(ctx context.Context, memberID int32, amount decimal.Decimal) (*domain.Balance, error)
	ApplySettlement(ctx context.Context, memberID int32, amount decimal.Decimal) (*domain.Balance, error)

	// ListOwing returns balances with due > 0, for reminder jobs.
	ListOwing(ctx context.Context) ([]domain.Balance, error)
}

type ContributionRepository interface {
	// RecordPayment inserts the contribution and its linked transaction and,
	// when the contribution is the monthly-dues type, applies the payment
	// waterfall to the member's balance - all inside one database transaction.
	// The returned balance is nil for non-monthly contributions.
	RecordPayment(ctx context.Context, c *domain.Contribution, t *domain.Transaction) (*domain.Balance, error)

	GetByID(ctx context.Context, id int32) (*domain.Contribution, error)
	ListByMember(ctx context.Context, memberID int32, page, pageSize int32) ([]domain.Contribution, int32, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int32) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
}

type WelfareCaseRepository interface {
	Create(ctx context.Context, wc *domain.WelfareCase) error
	GetByID(ctx context.Context, id int32) (*domain.WelfareCase, error)
	List(ctx context.Context, status string) ([]domain.WelfareCase, error)
	Update(ctx context.Context, wc *domain.WelfareCase) error
}

type ExpenditureRepository interface {
	Create(ctx context.Context, e *domain.Expenditure) error
	GetByID(ctx context.Context, id int32) (*domain.Expenditure, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Expenditure, int32, error)
	Update(ctx context.Context, e *domain.Expenditure) error
	Delete(ctx context.Context, id int32) error
}

type DisbursementRepository interface {
	Create(ctx context.Context, d *domain.Disbursement) error
	GetByID(ctx context.Context, id int32) (*domain.Disbursement, error)
	ListByCase(ctx context.Context, caseID int32) ([]domain.Disbursement, error)
	Update(ctx context.Context, d *domain.Disbursement) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
