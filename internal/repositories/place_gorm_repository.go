package repositories

import (
	"context"
	"errors"
	"fmt"

	"hbnb/internal/apperr"
	"hbnb/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMPlaceRepository is a GORM implementation of PlaceRepository.
type GORMPlaceRepository struct {
	gormRepository[models.Place]
}

// NewGORMPlaceRepository creates a new instance of GORMPlaceRepository.
func NewGORMPlaceRepository(db *gorm.DB) *GORMPlaceRepository {
	return &GORMPlaceRepository{
		gormRepository: newGORMRepository[models.Place](db, "place", nil),
	}
}

// GetDetailed retrieves a place with its owner, amenities and reviews.
func (r *GORMPlaceRepository) GetDetailed(ctx context.Context, id string) (*models.Place, error) {
	var place models.Place
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Amenities", func(db *gorm.DB) *gorm.DB { return db.Order("amenities.name") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("reviews.created_at") }).
		First(&place, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Errorf("place with id %s not found", id))
		}
		return nil, fmt.Errorf("failed to get place %s: %w", id, err)
	}
	return &place, nil
}

// Create inserts the place and links its amenities in one transaction.
func (r *GORMPlaceRepository) Create(ctx context.Context, place *models.Place) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.create(tx, place); err != nil {
			return err
		}
		return linkAmenities(tx, place.ID, place.Amenities)
	})
}

// Update saves the place columns and, when place.Amenities is non-nil,
// replaces its amenity links, all in one transaction.
func (r *GORMPlaceRepository) Update(ctx context.Context, place *models.Place) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.update(tx, place); err != nil {
			return err
		}
		if place.Amenities == nil {
			return nil
		}
		if err := tx.Where("place_id = ?", place.ID).Delete(&models.PlaceAmenity{}).Error; err != nil {
			return fmt.Errorf("failed to clear amenities of place %s: %w", place.ID, err)
		}
		return linkAmenities(tx, place.ID, place.Amenities)
	})
}

// AddAmenities links amenities to the place; links that already exist are
// kept as they are.
func (r *GORMPlaceRepository) AddAmenities(ctx context.Context, placeID string, amenities []models.Amenity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return linkAmenities(tx, placeID, amenities)
	})
}

// Delete removes the place's reviews, its amenity links and then the place.
func (r *GORMPlaceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("place_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete reviews of place %s: %w", id, err)
		}
		if err := tx.Where("place_id = ?", id).Delete(&models.PlaceAmenity{}).Error; err != nil {
			return fmt.Errorf("failed to unlink amenities of place %s: %w", id, err)
		}
		return r.deleteByID(tx, id)
	})
}

func linkAmenities(tx *gorm.DB, placeID string, amenities []models.Amenity) error {
	if len(amenities) == 0 {
		return nil
	}
	links := make([]models.PlaceAmenity, 0, len(amenities))
	for _, a := range amenities {
		links = append(links, models.PlaceAmenity{PlaceID: placeID, AmenityID: a.ID})
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
		return fmt.Errorf("failed to link amenities to place %s: %w", placeID, err)
	}
	return nil
}
