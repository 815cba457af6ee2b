package models

import (
	"time"

	"github.com/google/uuid"
)

// Amenity is a feature a place can offer (wifi, pool, ...).
type Amenity struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"required,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(50);not null;uniqueIndex" validate:"required,max=50"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAmenity(name string) *Amenity {
	return &Amenity{ID: uuid.New().String(), Name: name}
}
