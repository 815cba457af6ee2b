package repositories

import (
	"context"
	"errors"
	"fmt"

	"hbnb/internal/apperr"
	"hbnb/internal/models"

	"gorm.io/gorm"
)

// ErrAmenityExists is returned when a write would duplicate an amenity name.
var ErrAmenityExists = apperr.Conflict(errors.New("Amenity already exists"))

// GORMAmenityRepository is a GORM implementation of AmenityRepository.
type GORMAmenityRepository struct {
	gormRepository[models.Amenity]
}

// NewGORMAmenityRepository creates a new instance of GORMAmenityRepository.
func NewGORMAmenityRepository(db *gorm.DB) *GORMAmenityRepository {
	return &GORMAmenityRepository{
		gormRepository: newGORMRepository[models.Amenity](db, "amenity", ErrAmenityExists),
	}
}

// GetByName retrieves an amenity by its name.
func (r *GORMAmenityRepository) GetByName(ctx context.Context, name string) (*models.Amenity, error) {
	return r.GetByAttribute(ctx, "name", name)
}

// GetByIDs retrieves the amenities with the given IDs, ordered by name.
// Unknown IDs are skipped.
func (r *GORMAmenityRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Amenity, error) {
	amenities := []models.Amenity{}
	if len(ids) == 0 {
		return amenities, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name").Find(&amenities).Error; err != nil {
		return nil, fmt.Errorf("failed to get amenities by ids: %w", err)
	}
	return amenities, nil
}

// Delete unlinks the amenity from every place and removes it.
func (r *GORMAmenityRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("amenity_id = ?", id).Delete(&models.PlaceAmenity{}).Error; err != nil {
			return fmt.Errorf("failed to unlink amenity %s: %w", id, err)
		}
		return r.deleteByID(tx, id)
	})
}
