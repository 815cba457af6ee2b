package repositories

import (
	"context"
	"errors"
	"fmt"

	"hbnb/internal/apperr"
	"hbnb/internal/models"

	"gorm.io/gorm"
)

// ErrAlreadyReviewed is returned when a user reviews the same place twice.
var ErrAlreadyReviewed = apperr.BadRequest(errors.New("You have already reviewed this place"))

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	gormRepository[models.Review]
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		gormRepository: newGORMRepository[models.Review](db, "review", ErrAlreadyReviewed),
	}
}

// GetByPlace retrieves the reviews of a place, oldest first.
func (r *GORMReviewRepository) GetByPlace(ctx context.Context, placeID string) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := r.db.WithContext(ctx).Where("place_id = ?", placeID).Order("created_at").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to get reviews of place %s: %w", placeID, err)
	}
	return reviews, nil
}

// GetByPlaceAndUser retrieves the review userID wrote for placeID.
func (r *GORMReviewRepository) GetByPlaceAndUser(ctx context.Context, placeID, userID string) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).Where("place_id = ? AND user_id = ?", placeID, userID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Errorf("no review of place %s by user %s", placeID, userID))
		}
		return nil, fmt.Errorf("failed to get review of place %s by user %s: %w", placeID, userID, err)
	}
	return &review, nil
}

// Delete removes a review from the database.
func (r *GORMReviewRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(r.db.WithContext(ctx), id)
}
