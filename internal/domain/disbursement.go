package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DisbursementStatus string

const (
	DisbursementStatusPending   DisbursementStatus = "PENDING"
	DisbursementStatusApproved  DisbursementStatus = "APPROVED"
	DisbursementStatusCompleted DisbursementStatus = "COMPLETED"
	DisbursementStatusRejected  DisbursementStatus = "REJECTED"
)

// Disbursement is a payout from the fund to a case beneficiary. It is created
// PENDING and moves to APPROVED (treasurer) then COMPLETED once paid out.
type Disbursement struct {
	ID         int32              `json:"id"`
	CaseID     int32              `json:"case_id"`
	MemberID   int32              `json:"member_id"`
	Amount     decimal.Decimal    `json:"amount"`
	Method     PaymentMethod      `json:"method"`
	Reference  string             `json:"reference"`
	Status     DisbursementStatus `json:"status"`
	ApprovedBy *int32             `json:"approved_by,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
