package services

import (
	"context"
	"errors"

	"hbnb/internal/apperr"
	"hbnb/internal/repositories"

	"github.com/rs/zerolog/log"
)

var (
	ErrUnauthorizedAction = apperr.Authorization(errors.New("Unauthorized action"))
	ErrAdminRequired      = apperr.Authorization(errors.New("Admin privileges required"))
	ErrInvalidInput       = apperr.BadRequest(errors.New("Invalid input data"))
)

// Actor identifies the caller of a facade operation. The zero value is an
// anonymous caller.
type Actor struct {
	UserID  string
	IsAdmin bool
}

// canManage reports whether the actor may modify something owned by ownerID.
func (a Actor) canManage(ownerID string) bool {
	return a.IsAdmin || (a.UserID != "" && a.UserID == ownerID)
}

// EventPublisher delivers domain events after a change has been committed.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Repositories groups the persistence dependencies of the Facade.
type Repositories struct {
	Users     repositories.UserRepository
	Places    repositories.PlaceRepository
	Amenities repositories.AmenityRepository
	Reviews   repositories.ReviewRepository
}

// Facade coordinates the repositories and enforces the ownership and
// referential rules that span more than one entity.
type Facade struct {
	users     repositories.UserRepository
	places    repositories.PlaceRepository
	amenities repositories.AmenityRepository
	reviews   repositories.ReviewRepository
	hasher    PasswordHasher
	events    EventPublisher
}

// NewFacade creates a new Facade. events may be nil, in which case no
// domain events are published.
func NewFacade(repos Repositories, hasher PasswordHasher, events EventPublisher) *Facade {
	return &Facade{
		users:     repos.Users,
		places:    repos.Places,
		amenities: repos.Amenities,
		reviews:   repos.Reviews,
		hasher:    hasher,
		events:    events,
	}
}

// publish sends a domain event. Failures are logged and never returned:
// the change they describe is already committed.
func (f *Facade) publish(ctx context.Context, routingKey string, payload map[string]any) {
	if f.events == nil {
		return
	}
	if err := f.events.Publish(ctx, routingKey, payload); err != nil {
		log.Warn().Err(err).Str("event", routingKey).Msg("failed to publish event")
	}
}
