package repositories

import (
	"context"

	"hbnb/internal/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	GetByID(ctx context.Context, id string) (*models.Review, error)
	GetByAttribute(ctx context.Context, attr string, value any) (*models.Review, error)
	GetAll(ctx context.Context) ([]models.Review, error)
	GetByPlace(ctx context.Context, placeID string) ([]models.Review, error)
	// GetByPlaceAndUser returns a NotFound error when userID has not
	// reviewed placeID.
	GetByPlaceAndUser(ctx context.Context, placeID, userID string) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
}
