package domain

import (
	"time"

	"gorm.io/gorm"
)

// Roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User Model
type User struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`          // Primary key (uuid)
	Email        string    `gorm:"size:191;uniqueIndex;not null" json:"email"`  // Login email
	PasswordHash string    `gorm:"not null" json:"-"`                           // bcrypt hash
	Role         string    `gorm:"size:16;not null;default:user" json:"role"`   // Role: user or admin
	CreatedAt    time.Time `json:"created_at"`                                  // Creation time
}

// BeforeCreate assigns a uuid when the caller did not
func (u *User) BeforeCreate(*gorm.DB) error {
	assignID(&u.ID)
	return nil
}

// IsAdmin reports whether the user may use the admin API
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
