package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContributionType string

const (
	ContributionTypeMonthly      ContributionType = "MONTHLY"
	ContributionTypeProject      ContributionType = "PROJECT"
	ContributionTypeCase         ContributionType = "CASE"
	ContributionTypeRegistration ContributionType = "REGISTRATION"
)

func (t ContributionType) Valid() bool {
	switch t {
	case ContributionTypeMonthly, ContributionTypeProject, ContributionTypeCase, ContributionTypeRegistration:
		return true
	}
	return false
}

type Contribution struct {
	ID         int32            `json:"id"`
	MemberID   int32            `json:"member_id"`
	Amount     decimal.Decimal  `json:"amount"`
	Type       ContributionType `json:"type"`
	ProjectID  *int32           `json:"project_id,omitempty"`
	CaseID     *int32           `json:"case_id,omitempty"`
	Narrative  string           `json:"narrative"`
	RecordedBy int32            `json:"recorded_by"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ValidateTarget enforces that a contribution is earmarked for at most one of
// a project or a welfare case.
func (c *Contribution) ValidateTarget() error {
	if c.ProjectID != nil && c.CaseID != nil {
		return NewValidationError("project_id", "a contribution cannot reference both a project and a case")
	}
	return nil
}
