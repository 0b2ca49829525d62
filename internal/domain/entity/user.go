package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/inventra-api/internal/domain/enum"
)

// User represents a back office user
type User struct {
	ID          uuid.UUID      `gorm:"type:char(36);primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Username    string         `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Email       *string        `gorm:"size:255" json:"email,omitempty"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	Role        enum.UserRole  `gorm:"size:30;not null" json:"role"`
	IsActive    bool           `gorm:"not null" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// Permissions are derived from the role
func (u *User) Permissions() []string {
	return u.Role.Permissions()
}
