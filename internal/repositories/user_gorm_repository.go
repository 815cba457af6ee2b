package repositories

import (
	"context"
	"errors"
	"fmt"

	"hbnb/internal/apperr"
	"hbnb/internal/models"

	"gorm.io/gorm"
)

// ErrEmailTaken is returned when a write would duplicate a user's email.
var ErrEmailTaken = apperr.Conflict(errors.New("Email already registered"))

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	gormRepository[models.User]
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		gormRepository: newGORMRepository[models.User](db, "user", ErrEmailTaken),
	}
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.GetByAttribute(ctx, "email", email)
}

// Delete removes the user and everything that depends on them in one
// transaction: their reviews, the reviews and amenity links of the places
// they own, those places, and finally the user row.
func (r *GORMUserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var placeIDs []string
		if err := tx.Model(&models.Place{}).Where("owner_id = ?", id).Pluck("id", &placeIDs).Error; err != nil {
			return fmt.Errorf("failed to list places of user %s: %w", id, err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete reviews of user %s: %w", id, err)
		}
		if len(placeIDs) > 0 {
			if err := tx.Where("place_id IN ?", placeIDs).Delete(&models.Review{}).Error; err != nil {
				return fmt.Errorf("failed to delete reviews on places of user %s: %w", id, err)
			}
			if err := tx.Where("place_id IN ?", placeIDs).Delete(&models.PlaceAmenity{}).Error; err != nil {
				return fmt.Errorf("failed to unlink amenities from places of user %s: %w", id, err)
			}
			if err := tx.Where("id IN ?", placeIDs).Delete(&models.Place{}).Error; err != nil {
				return fmt.Errorf("failed to delete places of user %s: %w", id, err)
			}
		}
		return r.deleteByID(tx, id)
	})
}
