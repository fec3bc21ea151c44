package model

import (
	"time"

	"gorm.io/gorm"
)

// User is the authentication identity only. Display data (name, phone)
// lives on Profile, which may be missing for accounts whose best-effort
// profile creation failed at registration.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Profile *Profile   `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Roles   []UserRole `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
