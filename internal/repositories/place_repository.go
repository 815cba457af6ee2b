package repositories

import (
	"context"

	"hbnb/internal/models"
)

// PlaceRepository defines the interface for place data access.
//
// Create and Update treat place.Amenities as the desired amenity set:
// Create links every listed amenity; Update replaces the existing links
// when Amenities is non-nil and leaves them untouched when it is nil.
type PlaceRepository interface {
	GetByID(ctx context.Context, id string) (*models.Place, error)
	// GetDetailed also loads the owner, amenities and reviews.
	GetDetailed(ctx context.Context, id string) (*models.Place, error)
	GetByAttribute(ctx context.Context, attr string, value any) (*models.Place, error)
	GetAll(ctx context.Context) ([]models.Place, error)
	Create(ctx context.Context, place *models.Place) error
	Update(ctx context.Context, place *models.Place) error
	// AddAmenities links amenities to the place, keeping existing links.
	AddAmenities(ctx context.Context, placeID string, amenities []models.Amenity) error
	// Delete removes the place, its reviews and its amenity links.
	Delete(ctx context.Context, id string) error
}
