package services

import (
	"context"
	"errors"

	"hbnb/internal/apperr"
	"hbnb/internal/models"
	"hbnb/internal/repositories"

	"github.com/rs/zerolog/log"
)

var ErrOwnPlaceReview = apperr.BadRequest(errors.New("You cannot review your own place"))

// ReviewInput is the payload for creating a review. The author is always
// the caller.
type ReviewInput struct {
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	PlaceID string `json:"place_id" validate:"required"`
}

// ReviewPatch lists the review fields that may be updated.
type ReviewPatch struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

// CreateReview records the caller's review of a place. Owners cannot review
// their own places and nobody can review the same place twice.
func (f *Facade) CreateReview(ctx context.Context, actor Actor, in ReviewInput) (*models.Review, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}
	place, err := f.places.GetByID(ctx, in.PlaceID)
	if err != nil {
		return nil, err
	}
	user, err := f.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if place.OwnerID == user.ID {
		return nil, ErrOwnPlaceReview
	}
	if _, err := f.reviews.GetByPlaceAndUser(ctx, place.ID, user.ID); err == nil {
		return nil, repositories.ErrAlreadyReviewed
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	review := models.NewReview(place.ID, user.ID, in.Text, in.Rating)
	if err := models.Validate(review); err != nil {
		return nil, err
	}
	if err := f.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	log.Info().Str("review_id", review.ID).Str("place_id", place.ID).Str("user_id", user.ID).Msg("review created")
	f.publish(ctx, "review.created", map[string]any{
		"review_id": review.ID,
		"place_id":  place.ID,
		"user_id":   user.ID,
		"rating":    review.Rating,
	})
	return review, nil
}

// GetReview retrieves a review by its ID.
func (f *Facade) GetReview(ctx context.Context, id string) (*models.Review, error) {
	return f.reviews.GetByID(ctx, id)
}

// GetReviews retrieves all reviews.
func (f *Facade) GetReviews(ctx context.Context) ([]models.Review, error) {
	return f.reviews.GetAll(ctx)
}

// UpdateReview changes the text or rating of the caller's own review.
func (f *Facade) UpdateReview(ctx context.Context, actor Actor, id string, patch ReviewPatch) (*models.Review, error) {
	review, err := f.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != actor.UserID {
		return nil, ErrUnauthorizedAction
	}

	if patch.Text != nil {
		review.Text = *patch.Text
	}
	if patch.Rating != nil {
		review.Rating = *patch.Rating
	}
	if err := models.Validate(review); err != nil {
		return nil, err
	}
	if err := f.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes the caller's own review.
func (f *Facade) DeleteReview(ctx context.Context, actor Actor, id string) error {
	review, err := f.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if review.UserID != actor.UserID {
		return ErrUnauthorizedAction
	}
	if err := f.reviews.Delete(ctx, id); err != nil {
		return err
	}

	f.publish(ctx, "review.deleted", map[string]any{"review_id": id, "place_id": review.PlaceID})
	return nil
}
