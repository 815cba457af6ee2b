package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a rating left by a user on a place they do not own. A user can
// review a given place at most once.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"required,uuid"`
	Text      string    `json:"text" gorm:"type:text;not null" validate:"required"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5" validate:"gte=1,lte=5"`
	PlaceID   string    `json:"place_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_review_place_user" validate:"required"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_review_place_user;index" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"-" gorm:"foreignKey:UserID" validate:"-"`
}

func NewReview(placeID, userID, text string, rating int) *Review {
	return &Review{
		ID:      uuid.New().String(),
		Text:    text,
		Rating:  rating,
		PlaceID: placeID,
		UserID:  userID,
	}
}
