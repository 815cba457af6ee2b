package models

import (
	"time"

	"github.com/google/uuid"
)

// Place is a listing offered by its owner.
type Place struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"required,uuid"`
	Title       string    `json:"title" gorm:"type:varchar(100);not null;index" validate:"required,max=100"`
	Description string    `json:"description" gorm:"type:varchar(250)" validate:"max=250"`
	Price       float64   `json:"price" gorm:"not null;index" validate:"gt=0"`
	Latitude    float64   `json:"latitude" gorm:"not null" validate:"gte=-90,lte=90"`
	Longitude   float64   `json:"longitude" gorm:"not null" validate:"gte=-180,lte=180"`
	OwnerID     string    `json:"owner_id" gorm:"type:varchar(36);not null;index" validate:"required"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner     *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID" validate:"-"`
	Amenities []Amenity `json:"amenities,omitempty" gorm:"many2many:place_amenity" validate:"-"`
	Reviews   []Review  `json:"reviews,omitempty" gorm:"foreignKey:PlaceID" validate:"-"`
}

// NewPlace builds a place owned by ownerID with a fresh identifier.
func NewPlace(ownerID, title, description string, price, latitude, longitude float64) *Place {
	return &Place{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Price:       price,
		Latitude:    latitude,
		Longitude:   longitude,
		OwnerID:     ownerID,
	}
}

// PlaceAmenity is one row of the place_amenity join table.
type PlaceAmenity struct {
	PlaceID   string `gorm:"primaryKey;type:varchar(36)"`
	AmenityID string `gorm:"primaryKey;type:varchar(36)"`
}

func (PlaceAmenity) TableName() string {
	return "place_amenity"
}
