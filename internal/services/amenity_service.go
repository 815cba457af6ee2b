package services

import (
	"context"

	"hbnb/internal/apperr"
	"hbnb/internal/models"
	"hbnb/internal/repositories"

	"github.com/rs/zerolog/log"
)

// AmenityInput is the payload for creating or renaming an amenity.
type AmenityInput struct {
	Name string `json:"name"`
}

// All amenity writes are reserved to admins.

// CreateAmenity adds an amenity with a unique name. Admins only.
func (f *Facade) CreateAmenity(ctx context.Context, actor Actor, in AmenityInput) (*models.Amenity, error) {
	if !actor.IsAdmin {
		return nil, ErrAdminRequired
	}
	amenity := models.NewAmenity(in.Name)
	if err := models.Validate(amenity); err != nil {
		return nil, err
	}
	if err := f.ensureAmenityNameFree(ctx, amenity.Name, ""); err != nil {
		return nil, err
	}
	if err := f.amenities.Create(ctx, amenity); err != nil {
		return nil, err
	}

	log.Info().Str("amenity_id", amenity.ID).Str("name", amenity.Name).Msg("amenity created")
	f.publish(ctx, "amenity.created", map[string]any{"amenity_id": amenity.ID, "name": amenity.Name})
	return amenity, nil
}

// GetAmenity retrieves an amenity by its ID.
func (f *Facade) GetAmenity(ctx context.Context, id string) (*models.Amenity, error) {
	return f.amenities.GetByID(ctx, id)
}

// GetAmenities retrieves all amenities.
func (f *Facade) GetAmenities(ctx context.Context) ([]models.Amenity, error) {
	return f.amenities.GetAll(ctx)
}

// UpdateAmenity renames an amenity. Admins only.
func (f *Facade) UpdateAmenity(ctx context.Context, actor Actor, id string, in AmenityInput) (*models.Amenity, error) {
	if !actor.IsAdmin {
		return nil, ErrAdminRequired
	}
	amenity, err := f.amenities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	amenity.Name = in.Name
	if err := models.Validate(amenity); err != nil {
		return nil, err
	}
	if err := f.ensureAmenityNameFree(ctx, amenity.Name, amenity.ID); err != nil {
		return nil, err
	}
	if err := f.amenities.Update(ctx, amenity); err != nil {
		return nil, err
	}
	return amenity, nil
}

// DeleteAmenity removes an amenity and unlinks it from every place. Admins only.
func (f *Facade) DeleteAmenity(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin {
		return ErrAdminRequired
	}
	if err := f.amenities.Delete(ctx, id); err != nil {
		return err
	}
	f.publish(ctx, "amenity.deleted", map[string]any{"amenity_id": id})
	return nil
}

// ensureAmenityNameFree fails when another amenity than exceptID already
// uses name.
func (f *Facade) ensureAmenityNameFree(ctx context.Context, name, exceptID string) error {
	existing, err := f.amenities.GetByName(ctx, name)
	switch {
	case err == nil && existing.ID != exceptID:
		return repositories.ErrAmenityExists
	case err != nil && !apperr.IsNotFound(err):
		return err
	}
	return nil
}
