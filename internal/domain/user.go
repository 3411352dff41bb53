package domain

import "time"

type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleSecretary   Role = "SECRETARY"
	RoleCoordinator Role = "COORDINATOR"
	RoleAuditor     Role = "AUDITOR"
	RoleTreasurer   Role = "TREASURER"
	RoleMember      Role = "MEMBER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSecretary, RoleCoordinator, RoleAuditor, RoleTreasurer, RoleMember:
		return true
	}
	return false
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusDisabled UserStatus = "DISABLED"
)

// User is a portal account. Member-facing accounts carry the linked member id.
type User struct {
	ID           int32      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PhoneNumber  string     `json:"phone_number"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	MemberID     *int32     `json:"member_id,omitempty"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
