package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent  = "student"
	RoleEducator = "educator"
)

// User is the profile row for an authenticated identity. Role is empty until
// the user picks one.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"column:email;index" json:"email"`
	FirstName string    `gorm:"column:first_name" json:"firstName"`
	LastName  string    `gorm:"column:last_name" json:"lastName"`
	Role      string    `gorm:"column:role;index" json:"role"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) IsEducator() bool { return u != nil && u.Role == RoleEducator }

// DisplayName is "first last", falling back to the email and then the id.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if full := strings.TrimSpace(u.FirstName + " " + u.LastName); full != "" {
		return full
	}
	if u.Email != "" {
		return u.Email
	}
	return u.ID.String()
}

func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleEducator
}
