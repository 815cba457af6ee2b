package services

import (
	"context"
	"errors"

	"hbnb/internal/apperr"
	"hbnb/internal/models"
	"hbnb/internal/repositories"

	"github.com/rs/zerolog/log"
)

var ErrCredentialChange = apperr.BadRequest(errors.New("You cannot modify email or password"))

// UserInput is the payload for registering a user. IsAdmin is only honoured
// when the caller is an admin.
type UserInput struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,max=120,emailshape"`
	Password  string `json:"password" validate:"required"`
	IsAdmin   bool   `json:"is_admin"`
}

// UserPatch lists the user fields that may be updated. Nil fields are left
// unchanged.
type UserPatch struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	IsAdmin   *bool   `json:"is_admin"`
}

func (p UserPatch) touchesCredentials() bool {
	return p.Email != nil || p.Password != nil || p.IsAdmin != nil
}

// CreateUser registers a new user with a hashed password.
func (f *Facade) CreateUser(ctx context.Context, actor Actor, in UserInput) (*models.User, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}
	if !actor.IsAdmin {
		in.IsAdmin = false
	}
	if _, err := f.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, repositories.ErrEmailTaken
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	hash, err := f.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := models.NewUser(in.FirstName, in.LastName, in.Email, hash, in.IsAdmin)
	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Bool("is_admin", user.IsAdmin).Msg("user created")
	f.publish(ctx, "user.created", map[string]any{"user_id": user.ID, "is_admin": user.IsAdmin})
	return user, nil
}

// GetUser retrieves a user by their ID.
func (f *Facade) GetUser(ctx context.Context, id string) (*models.User, error) {
	return f.users.GetByID(ctx, id)
}

// GetUserByEmail retrieves a user by their email.
func (f *Facade) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.users.GetByEmail(ctx, email)
}

// GetUsers retrieves all users.
func (f *Facade) GetUsers(ctx context.Context) ([]models.User, error) {
	return f.users.GetAll(ctx)
}

// UpdateUser applies patch to the user. Users may update their own names;
// only admins may change email, password or admin status.
func (f *Facade) UpdateUser(ctx context.Context, actor Actor, id string, patch UserPatch) (*models.User, error) {
	if !actor.canManage(id) {
		return nil, ErrUnauthorizedAction
	}
	user, err := f.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.touchesCredentials() && !actor.IsAdmin {
		return nil, ErrCredentialChange
	}

	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Email != nil && *patch.Email != user.Email {
		existing, err := f.users.GetByEmail(ctx, *patch.Email)
		switch {
		case err == nil && existing.ID != user.ID:
			return nil, repositories.ErrEmailTaken
		case err != nil && !apperr.IsNotFound(err):
			return nil, err
		}
		user.Email = *patch.Email
	}
	if patch.IsAdmin != nil {
		user.IsAdmin = *patch.IsAdmin
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			return nil, apperr.Validation(errors.New("Password is required"), map[string]string{"password": "is required"})
		}
		hash, err := f.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := models.Validate(user); err != nil {
		return nil, err
	}
	if err := f.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user along with their places and reviews.
func (f *Facade) DeleteUser(ctx context.Context, actor Actor, id string) error {
	if !actor.canManage(id) {
		return ErrUnauthorizedAction
	}
	if err := f.users.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("user_id", id).Str("by", actor.UserID).Msg("user deleted")
	f.publish(ctx, "user.deleted", map[string]any{"user_id": id})
	return nil
}
