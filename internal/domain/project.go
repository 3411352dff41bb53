package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// Project is a fundraising target members can earmark contributions for.
type Project struct {
	ID           int32           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Status       ProjectStatus   `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type CaseStatus string

const (
	CaseStatusOpen   CaseStatus = "OPEN"
	CaseStatusClosed CaseStatus = "CLOSED"
)

// WelfareCase is a benefit event (bereavement, hospitalization, etc.) raised
// for a beneficiary member. Contributions can be earmarked for it and
// disbursements are paid out against it.
type WelfareCase struct {
	ID            int32      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	BeneficiaryID int32      `json:"beneficiary_id"`
	Status        CaseStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
