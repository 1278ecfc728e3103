package users

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleCashier Role = "CASHIER"
)

// Employee is a staff account. Sales are attributed to the employee who
// recorded them.
type Employee struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName    string     `json:"first_name" gorm:"not null;size:100"`
	LastName     string     `json:"last_name" gorm:"not null;size:100"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         Role       `json:"role" gorm:"type:varchar(16);not null;default:'CASHIER'"`
	CinemaID     *uuid.UUID `json:"cinema_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// ParseRole normalizes a role name, falling back to CASHIER.
func ParseRole(role string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(role))) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleCashier
	}
}

func IsValidRole(role string) bool {
	switch Role(strings.ToUpper(role)) {
	case RoleAdmin, RoleCashier:
		return true
	default:
		return false
	}
}
