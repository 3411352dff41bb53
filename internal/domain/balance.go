package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance holds a member's standing against monthly dues: prepaid credit and
// outstanding debt. Both fields are non-negative; a single settlement step
// never increases both.
type Balance struct {
	MemberID  int32           `json:"member_id"`
	Prepaid   decimal.Decimal `json:"prepaid"`
	Due       decimal.Decimal `json:"due"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Accrue applies one round of monthly dues using the waterfall rule: existing
// prepaid credit is consumed before any new debt accrues.
//
//	prepaid' = max(0, prepaid - amount)
//	due'     = due + max(0, amount - prepaid)
func (b Balance) Accrue(amount decimal.Decimal) Balance {
	if b.Prepaid.GreaterThanOrEqual(amount) {
		b.Prepaid = b.Prepaid.Sub(amount)
		return b
	}
	b.Due = b.Due.Add(amount.Sub(b.Prepaid))
	b.Prepaid = decimal.Zero
	return b
}

// Settle applies a received payment: outstanding dues are cleared before any
// surplus becomes prepaid credit.
//
//	due'     = max(0, due - amount)
//	prepaid' = prepaid + max(0, amount - due)
func (b Balance) Settle(amount decimal.Decimal) Balance {
	if amount.GreaterThanOrEqual(b.Due) {
		b.Prepaid = b.Prepaid.Add(amount.Sub(b.Due))
		b.Due = decimal.Zero
		return b
	}
	b.Due = b.Due.Sub(amount)
	return b
}
