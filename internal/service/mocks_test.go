package service_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"welfare-backend/internal/domain"
)

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) GetByPhone(ctx context.Context, phone string) (*domain.Member, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Member, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Member), args.Get(1).(int32), args.Error(2)
}
func (m *MockMemberRepo) Update(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) ListActiveIDs(ctx context.Context) ([]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockMemberRepo) RefreshMaturityStatuses(ctx context.Context, now time.Time) (int64, int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockBalanceRepo
type MockBalanceRepo struct {
	mock.Mock
}

func (m *MockBalanceRepo) Create(ctx context.Context, memberID int32) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}
func (m *MockBalanceRepo) Get(ctx context.Context, memberID int32) (*domain.Balance, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}
func (m *MockBalanceRepo) ApplyAccrual(ctx context.Context, memberID int32, amount decimal.Decimal) (*domain.Balance, error) {
	args := m.Called(ctx, memberID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}
func (m *MockBalanceRepo) ApplySettlement(ctx context.Context, memberID int32, amount decimal.Decimal) (*domain.Balance, error) {
	args := m.Called(ctx, memberID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}
func (m *MockBalanceRepo) ListOwing(ctx context.Context) ([]domain.Balance, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Balance), args.Error(1)
}

// MockContributionRepo
type MockContributionRepo struct {
	mock.Mock
}

func (m *MockContributionRepo) RecordPayment(ctx context.Context, c *domain.Contribution, t *domain.Transaction) (*domain.Balance, error) {
	args := m.Called(ctx, c, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}
func (m *MockContributionRepo) GetByID(ctx context.Context, id int32) (*domain.Contribution, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}
func (m *MockContributionRepo) ListByMember(ctx context.Context, memberID int32, page, pageSize int32) ([]domain.Contribution, int32, error) {
	args := m.Called(ctx, memberID, page, pageSize)
	return args.Get(0).([]domain.Contribution), args.Get(1).(int32), args.Error(2)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}
func (m *MockProjectRepo) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Project), args.Error(1)
}
func (m *MockProjectRepo) Update(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// MockWelfareCaseRepo
type MockWelfareCaseRepo struct {
	mock.Mock
}

func (m *MockWelfareCaseRepo) Create(ctx context.Context, wc *domain.WelfareCase) error {
	args := m.Called(ctx, wc)
	return args.Error(0)
}
func (m *MockWelfareCaseRepo) GetByID(ctx context.Context, id int32) (*domain.WelfareCase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WelfareCase), args.Error(1)
}
func (m *MockWelfareCaseRepo) List(ctx context.Context, status string) ([]domain.WelfareCase, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.WelfareCase), args.Error(1)
}
func (m *MockWelfareCaseRepo) Update(ctx context.Context, wc *domain.WelfareCase) error {
	args := m.Called(ctx, wc)
	return args.Error(0)
}

// MockDisbursementRepo
type MockDisbursementRepo struct {
	mock.Mock
}

func (m *MockDisbursementRepo) Create(ctx context.Context, d *domain.Disbursement) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDisbursementRepo) GetByID(ctx context.Context, id int32) (*domain.Disbursement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Disbursement), args.Error(1)
}
func (m *MockDisbursementRepo) ListByCase(ctx context.Context, caseID int32) ([]domain.Disbursement, error) {
	args := m.Called(ctx, caseID)
	return args.Get(0).([]domain.Disbursement), args.Error(1)
}
func (m *MockDisbursementRepo) Update(ctx context.Context, d *domain.Disbursement) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

// MockSMSService
type MockSMSService struct {
	mock.Mock
}

func (m *MockSMSService) SendPaymentReceipt(ctx context.Context, phone string, amount decimal.Decimal, balance *domain.Balance) error {
	args := m.Called(ctx, phone, amount, balance)
	return args.Error(0)
}
func (m *MockSMSService) SendDueReminder(ctx context.Context, phone string, due decimal.Decimal) error {
	args := m.Called(ctx, phone, due)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWelcome(ctx context.Context, email, name, memberNo string) error {
	args := m.Called(ctx, email, name, memberNo)
	return args.Error(0)
}
func (m *MockEmailService) SendDisbursementApproved(ctx context.Context, email, name string, amount decimal.Decimal) error {
	args := m.Called(ctx, email, name, amount)
	return args.Error(0)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) STKPush(ctx context.Context, phone string, amount decimal.Decimal, accountRef string) (string, error) {
	args := m.Called(ctx, phone, amount, accountRef)
	return args.String(0), args.Error(1)
}
