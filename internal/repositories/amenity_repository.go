package repositories

import (
	"context"

	"hbnb/internal/models"
)

// AmenityRepository defines the interface for amenity data access.
type AmenityRepository interface {
	GetByID(ctx context.Context, id string) (*models.Amenity, error)
	GetByName(ctx context.Context, name string) (*models.Amenity, error)
	GetByAttribute(ctx context.Context, attr string, value any) (*models.Amenity, error)
	// GetByIDs returns the amenities that exist among ids; unknown ids are
	// simply absent from the result.
	GetByIDs(ctx context.Context, ids []string) ([]models.Amenity, error)
	GetAll(ctx context.Context) ([]models.Amenity, error)
	Create(ctx context.Context, amenity *models.Amenity) error
	Update(ctx context.Context, amenity *models.Amenity) error
	// Delete removes the amenity and unlinks it from every place.
	Delete(ctx context.Context, id string) error
}
