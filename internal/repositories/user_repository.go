package repositories

import (
	"context"

	"hbnb/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByAttribute(ctx context.Context, attr string, value any) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	// Delete removes the user together with the reviews they wrote and the
	// places they own (including those places' reviews and amenity links).
	Delete(ctx context.Context, id string) error
}
