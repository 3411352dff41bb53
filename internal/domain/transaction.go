package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodMpesa PaymentMethod = "MPESA"
	PaymentMethodCash  PaymentMethod = "CASH"
	PaymentMethodBank  PaymentMethod = "BANK"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodMpesa, PaymentMethodCash, PaymentMethodBank:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is the payment record created alongside every Contribution.
type Transaction struct {
	ID             int32             `json:"id"`
	ContributionID int32             `json:"contribution_id"`
	MemberID       int32             `json:"member_id"`
	Amount         decimal.Decimal   `json:"amount"`
	Method         PaymentMethod     `json:"method"`
	Reference      string            `json:"reference"`
	Status         TransactionStatus `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
}
