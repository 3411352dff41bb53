package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenditureCategory string

const (
	ExpenditureCategoryAdministration ExpenditureCategory = "ADMINISTRATION"
	ExpenditureCategoryWelfare        ExpenditureCategory = "WELFARE"
	ExpenditureCategoryProject        ExpenditureCategory = "PROJECT"
	ExpenditureCategoryOther          ExpenditureCategory = "OTHER"
)

func (c ExpenditureCategory) Valid() bool {
	switch c {
	case ExpenditureCategoryAdministration, ExpenditureCategoryWelfare, ExpenditureCategoryProject, ExpenditureCategoryOther:
		return true
	}
	return false
}

type Expenditure struct {
	ID          int32               `json:"id"`
	Category    ExpenditureCategory `json:"category"`
	Amount      decimal.Decimal     `json:"amount"`
	Description string              `json:"description"`
	IncurredOn  time.Time           `json:"incurred_on"`
	RecordedBy  int32               `json:"recorded_by"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
