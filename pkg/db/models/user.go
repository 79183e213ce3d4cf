package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PermissionViewAllBorrowed grants access to every on-loan copy.
const PermissionViewAllBorrowed = "can_view_all_borrowed_books"

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	FirstName    string     `gorm:"column:first_name;not null" json:"first_name"`
	LastName     string     `gorm:"column:last_name;not null" json:"last_name"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsStaff      bool       `gorm:"column:is_staff;not null;default:false" json:"is_staff"`
	Permissions  []string   `gorm:"column:permissions;type:jsonb;serializer:json" json:"permissions"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

// HasPermission reports whether the user holds the codename. Staff users hold
// every permission.
func (u User) HasPermission(codename string) bool {
	return u.IsStaff || slices.Contains(u.Permissions, codename)
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
