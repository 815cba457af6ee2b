package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account of the rental platform. Password always holds
// the bcrypt hash and is never serialised.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"required,uuid"`
	FirstName string    `json:"first_name" gorm:"type:varchar(50);not null;index" validate:"required,max=50"`
	LastName  string    `json:"last_name" gorm:"type:varchar(50);not null;index" validate:"required,max=50"`
	Email     string    `json:"email" gorm:"type:varchar(120);not null;uniqueIndex" validate:"required,max=120,emailshape"`
	Password  string    `json:"-" gorm:"type:varchar(128);not null" validate:"required"`
	IsAdmin   bool      `json:"is_admin" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser builds a user with a fresh identifier. passwordHash must already be
// hashed.
func NewUser(firstName, lastName, email, passwordHash string, isAdmin bool) *User {
	return &User{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  passwordHash,
		IsAdmin:   isAdmin,
	}
}
