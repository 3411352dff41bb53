package domain

import (
	"strings"
	"time"
)

type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusInactive MemberStatus = "INACTIVE"
	MemberStatusExited   MemberStatus = "EXITED"
)

func (s MemberStatus) Valid() bool {
	switch s {
	case MemberStatusActive, MemberStatusInactive, MemberStatusExited:
		return true
	}
	return false
}

type MaturityStatus string

const (
	MaturityStatusProbation MaturityStatus = "PROBATION"
	MaturityStatusMatured   MaturityStatus = "MATURED"
)

type Member struct {
	ID               int32          `json:"id"`
	MemberNo         string         `json:"member_no"`
	FullName         string         `json:"full_name"`
	PhoneNumber      string         `json:"phone_number"`
	Email            string         `json:"email"`
	IDNumber         string         `json:"id_number"`
	PhotoURL         string         `json:"photo_url,omitempty"`
	Status           MemberStatus   `json:"status"`
	MaturityStatus   MaturityStatus `json:"maturity_status"`
	ProbationEndDate time.Time      `json:"probation_end_date"`
	JoinedOn         time.Time      `json:"joined_on"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// NormalizePhone reduces a phone number to the canonical 2547XXXXXXXX form
// the gateway reports in callbacks: spaces and dashes are dropped, a leading
// "+" is stripped, and a local "07..." prefix becomes the international form.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r == ' ' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	p := strings.TrimPrefix(b.String(), "+")
	if strings.HasPrefix(p, "0") {
		p = "254" + p[1:]
	}
	return p
}

// DaysToMaturity returns the number of whole days until the probation period
// ends, rounded up. Members already past their probation end date get 0.
// The value is always derived, never stored.
func (m *Member) DaysToMaturity(now time.Time) int {
	diff := m.ProbationEndDate.Sub(now)
	if diff <= 0 {
		return 0
	}
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}
