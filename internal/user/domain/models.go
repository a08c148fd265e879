// Package domain contains persistence models for staff accounts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role controls which API surface an account can reach.
type Role string

const (
	RoleCashier        Role = "CASHIER"
	RoleFinanceOfficer Role = "FINANCE_OFFICER"
	RoleAdmin          Role = "ADMIN"
)

// ParseRole parses a client-supplied role name.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleCashier:
		return RoleCashier, nil
	case RoleFinanceOfficer:
		return RoleFinanceOfficer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// User is a staff account. Deletion is two-phase: the first delete
// deactivates the account so historical orders keep a valid cashier
// reference, the second removes the row.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Username     string       `gorm:"type:text;not null;uniqueIndex:ux_users_username"`
	PasswordHash string       `gorm:"type:text;not null"`
	FullName     string       `gorm:"type:text;not null"`
	Role         Role         `gorm:"type:text;not null"`
	IsActive     bool         `gorm:"not null;default:true"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string { return "users" }

// DeleteOutcome reports which phase a delete performed.
type DeleteOutcome string

const (
	DeleteOutcomeDeactivated DeleteOutcome = "DEACTIVATED"
	DeleteOutcomeDeleted     DeleteOutcome = "DELETED"
)

type DeleteResult struct {
	Outcome DeleteOutcome `json:"outcome"`
	Message string        `json:"message"`
}
