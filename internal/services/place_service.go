package services

import (
	"context"

	"hbnb/internal/models"

	"github.com/rs/zerolog/log"
)

// PlaceInput is the payload for creating a place. The owner is always the
// caller; unknown amenity ids are skipped.
type PlaceInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Amenities   []string `json:"amenities"`
}

// PlacePatch lists the place fields that may be updated. A non-nil
// Amenities replaces the place's amenity set.
type PlacePatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Amenities   []string `json:"amenities"`
}

// AmenityRef points at an existing amenity by id.
type AmenityRef struct {
	ID string `json:"id"`
}

// CreatePlace creates a place owned by the caller.
func (f *Facade) CreatePlace(ctx context.Context, actor Actor, in PlaceInput) (*models.Place, error) {
	owner, err := f.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	place := models.NewPlace(owner.ID, in.Title, in.Description, in.Price, in.Latitude, in.Longitude)
	if err := models.Validate(place); err != nil {
		return nil, err
	}
	if place.Amenities, err = f.amenities.GetByIDs(ctx, in.Amenities); err != nil {
		return nil, err
	}
	if err := f.places.Create(ctx, place); err != nil {
		return nil, err
	}

	log.Info().Str("place_id", place.ID).Str("owner_id", owner.ID).Msg("place created")
	f.publish(ctx, "place.created", map[string]any{"place_id": place.ID, "owner_id": owner.ID})
	return place, nil
}

// GetPlace returns the place with its owner, amenities and reviews loaded.
func (f *Facade) GetPlace(ctx context.Context, id string) (*models.Place, error) {
	return f.places.GetDetailed(ctx, id)
}

// GetPlaces retrieves all places.
func (f *Facade) GetPlaces(ctx context.Context) ([]models.Place, error) {
	return f.places.GetAll(ctx)
}

// UpdatePlace applies patch to a place owned by the caller, or any place
// when the caller is an admin.
func (f *Facade) UpdatePlace(ctx context.Context, actor Actor, id string, patch PlacePatch) (*models.Place, error) {
	place, err := f.places.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canManage(place.OwnerID) {
		return nil, ErrUnauthorizedAction
	}

	if patch.Title != nil {
		place.Title = *patch.Title
	}
	if patch.Description != nil {
		place.Description = *patch.Description
	}
	if patch.Price != nil {
		place.Price = *patch.Price
	}
	if patch.Latitude != nil {
		place.Latitude = *patch.Latitude
	}
	if patch.Longitude != nil {
		place.Longitude = *patch.Longitude
	}
	if err := models.Validate(place); err != nil {
		return nil, err
	}
	if patch.Amenities != nil {
		if place.Amenities, err = f.amenities.GetByIDs(ctx, patch.Amenities); err != nil {
			return nil, err
		}
	}
	if err := f.places.Update(ctx, place); err != nil {
		return nil, err
	}

	f.publish(ctx, "place.updated", map[string]any{"place_id": place.ID, "by": actor.UserID})
	return place, nil
}

// AddPlaceAmenities links existing amenities to a place. Every referenced
// amenity must exist; otherwise nothing is linked.
func (f *Facade) AddPlaceAmenities(ctx context.Context, actor Actor, placeID string, refs []AmenityRef) error {
	if len(refs) == 0 {
		return ErrInvalidInput
	}
	place, err := f.places.GetByID(ctx, placeID)
	if err != nil {
		return err
	}
	if !actor.canManage(place.OwnerID) {
		return ErrUnauthorizedAction
	}

	ids := make([]string, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if ref.ID == "" {
			return ErrInvalidInput
		}
		if _, dup := seen[ref.ID]; dup {
			continue
		}
		seen[ref.ID] = struct{}{}
		ids = append(ids, ref.ID)
	}
	found, err := f.amenities.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return ErrInvalidInput
	}
	return f.places.AddAmenities(ctx, place.ID, found)
}

// DeletePlace removes a place and its reviews. Owner or admin only.
func (f *Facade) DeletePlace(ctx context.Context, actor Actor, id string) error {
	place, err := f.places.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.canManage(place.OwnerID) {
		return ErrUnauthorizedAction
	}
	if err := f.places.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("place_id", id).Str("by", actor.UserID).Msg("place deleted")
	f.publish(ctx, "place.deleted", map[string]any{"place_id": id, "by": actor.UserID})
	return nil
}

// GetPlaceReviews returns the reviews of an existing place.
func (f *Facade) GetPlaceReviews(ctx context.Context, placeID string) ([]models.Review, error) {
	if _, err := f.places.GetByID(ctx, placeID); err != nil {
		return nil, err
	}
	return f.reviews.GetByPlace(ctx, placeID)
}
