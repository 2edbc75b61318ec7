package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the identity and credential holder. Username and email are unique
// and immutable after registration; the password is stored only as a bcrypt
// hash and never serialized.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string     `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email        string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FirstName    string     `gorm:"size:50" json:"first_name,omitempty"`
	LastName     string     `gorm:"size:50" json:"last_name,omitempty"`
	Role         UserRole   `gorm:"size:20;not null;default:'USER'" json:"role"`
	Enabled      bool       `gorm:"not null;default:true" json:"enabled"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BeforeCreate assigns the primary key so the model works on databases
// without a server-side uuid default.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName joins first and last name, tolerating either being empty.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UpdateLastLogin stamps the account with the current login time.
func (u *User) UpdateLastLogin() {
	now := time.Now()
	u.LastLoginAt = &now
}
