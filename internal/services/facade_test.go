package services_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"hbnb/internal/apperr"
	"hbnb/internal/database/databasetest"
	"hbnb/internal/models"
	"hbnb/internal/repositories"
	"hbnb/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	key     string
	payload any
}

// recordingPublisher collects published events in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{key: routingKey, payload: payload})
	return p.err
}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.events))
	for _, e := range p.events {
		keys = append(keys, e.key)
	}
	return keys
}

type facadeFixture struct {
	facade *services.Facade
	events *recordingPublisher
	admin  services.Actor
}

func newFacade(t *testing.T) facadeFixture {
	t.Helper()
	db := databasetest.Open(t)
	events := &recordingPublisher{}
	facade := services.NewFacade(services.Repositories{
		Users:     repositories.NewGORMUserRepository(db),
		Places:    repositories.NewGORMPlaceRepository(db),
		Amenities: repositories.NewGORMAmenityRepository(db),
		Reviews:   repositories.NewGORMReviewRepository(db),
	}, services.BcryptHasher{Cost: 4}, events)

	admin, err := facade.CreateUser(context.Background(), services.Actor{IsAdmin: true}, services.UserInput{
		FirstName: "Root", LastName: "Admin", Email: "admin@example.com", Password: "secret", IsAdmin: true,
	})
	require.NoError(t, err)
	return facadeFixture{facade: facade, events: events, admin: services.Actor{UserID: admin.ID, IsAdmin: true}}
}

func (fx facadeFixture) user(t *testing.T, email string) services.Actor {
	t.Helper()
	u, err := fx.facade.CreateUser(context.Background(), services.Actor{}, services.UserInput{
		FirstName: "Test", LastName: "User", Email: email, Password: "secret",
	})
	require.NoError(t, err)
	return services.Actor{UserID: u.ID}
}

func (fx facadeFixture) place(t *testing.T, owner services.Actor, amenities ...string) *models.Place {
	t.Helper()
	p, err := fx.facade.CreatePlace(context.Background(), owner, services.PlaceInput{
		Title: "Loft", Price: 120.0, Latitude: 48.8566, Longitude: 2.3522, Amenities: amenities,
	})
	require.NoError(t, err)
	return p
}

func (fx facadeFixture) amenity(t *testing.T, name string) *models.Amenity {
	t.Helper()
	a, err := fx.facade.CreateAmenity(context.Background(), fx.admin, services.AmenityInput{Name: name})
	require.NoError(t, err)
	return a
}

func assertStatus(t *testing.T, want int, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, apperr.StatusOf(err), "unexpected error: %v", err)
}

func TestFacade_CreateUser(t *testing.T) {
	fx := newFacade(t)
	ctx := context.Background()

	u, err := fx.facade.CreateUser(ctx, services.Actor{}, services.UserInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret", IsAdmin: true,
	})
	require.NoError(t, err)
	assert.False(t, u.IsAdmin, "anonymous registration cannot grant admin")
	assert.NotEqual(t, "secret", u.Password)

	got, err := fx.facade.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "Lovelace", got.LastName)
	assert.Equal(t, "ada@example.com", got.Email)

	_, err = fx.facade.CreateUser(ctx, services.Actor{}, services.UserInput{
		FirstName: "Other", LastName: "Ada", Email: "ada@example.com", Password: "secret",
	})
	assert.ErrorIs(t, err, repositories.ErrEmailTaken)
	assertStatus(t, http.StatusConflict, err)

	_, err = fx.facade.CreateUser(ctx, services.Actor{}, services.UserInput{
		FirstName: "Bad", LastName: "Email", Email: "not-an-email", Password: "secret",
	})
	assertStatus(t, http.StatusBadRequest, err)

	users, err := fx.facade.GetUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Contains(t, fx.events.keys(), "user.created")
}

func TestFacade_UpdateUser(t *testing.T) {
	fx := newFacade(t)
	ctx := context.Background()
	alice := fx.user(t, "alice@example.com")
	bob := fx.user(t, "bob@example.com")
	name := "Alicia"

	u, err := fx.facade.UpdateUser(ctx, alice, alice.UserID, services.UserPatch{FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", u.FirstName)

	_, err = fx.facade.UpdateUser(ctx, bob, alice.UserID, services.UserPatch{FirstName: &name})
	assert.ErrorIs(t, err, services.ErrUnauthorizedAction)

	email := "new@example.com"
	_, err = fx.facade.UpdateUser(ctx, alice, alice.UserID, services.UserPatch{Email: &email})
	assert.ErrorIs(t, err, services.ErrCredentialChange)
	password := "new-secret"
	_, err = fx.facade.UpdateUser(ctx, alice, alice.UserID, services.UserPatch{Password: &password})
	assert.ErrorIs(t, err, services.ErrCredentialChange)

	_, err = fx.facade.UpdateUser(ctx, fx.admin, "missing", services.UserPatch{FirstName: &name})
	assertStatus(t, http.StatusNotFound, err)

	taken := "bob@example.com"
	_, err = fx.facade.UpdateUser(ctx, fx.admin, alice.UserID, services.UserPatch{Email: &taken})
	assert.ErrorIs(t, err, repositories.ErrEmailTaken)

	promote := true
	u, err = fx.facade.UpdateUser(ctx, fx.admin, alice.UserID, services.UserPatch{Email: &email, Password: &password, IsAdmin: &promote})
	require.NoError(t, err)
	assert.Equal(t, email, u.Email)
	assert.True(t, u.IsAdmin)
	assert.NoError(t, services.BcryptHasher{}.Compare(u.Password, password))

	long := strings.Repeat("x", 51)
	_, err = fx.facade.UpdateUser(ctx, alice, alice.UserID, services.UserPatch{LastName: &long})
	assertStatus(t, http.StatusBadRequest, err)
}

func TestFacade_DeleteUser(t *testing.T) {
	fx := newFacade(t)
	ctx := context.Background()
	alice := fx.user(t, "alice@example.com")
	bob := fx.user(t, "bob@example.com")

	assert.ErrorIs(t, fx.facade.DeleteUser(ctx, bob, alice.UserID), services.ErrUnauthorizedAction)
	require.NoError(t, fx.facade.DeleteUser(ctx, alice, alice.UserID))
	assertStatus(t, http.StatusNotFound, fx.facade.DeleteUser(ctx, fx.admin, alice.UserID))
	require.NoError(t, fx.facade.DeleteUser(ctx, fx.admin, bob.UserID))
	assert.Contains(t, fx.events.keys(), "user.deleted")
}

func TestFacade_CreatePlace(t *testing.T) {
	fx := newFacade(t)
	ctx := context.Background()
	alice := fx.user(t, "alice@example.com")
	wifi := fx.amenity(t, "Wifi")

	p := fx.place(t, alice, wifi.ID, "unknown-amenity")
	assert.Equal(t, alice.UserID, p.OwnerID)

	got, err := fx.facade.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loft", got.Title)
	assert.Equal(t, 120.0, got.Price)
	assert.Equal(t, 48.8566, got.Latitude)
	assert.Equal(t, 2.3522, got.Longitude)
	require.Len(t, got.Amenities, 1, "unknown amenity ids are skipped")
	assert.Equal(t, wifi.ID, got.Amenities[0].ID)
	require.NotNil(t, got.Owner)
	assert.Equal(t, alice.UserID, got.Owner.ID)

	tests := []struct {
		name string
		in   services.PlaceInput
	}{
		{"zero price", services.PlaceInput{Title: "T", Price: 0, Latitude: 0, Longitude: 0}},
		{"latitude out of range", services.PlaceInput{Title: "T", Price: 1, Latitude: 91}},
		{"longitude out of range", services.PlaceInput{Title: "T", Price: 1, Longitude: -181}},
		{"empty title", services.PlaceInput{Title: "", Price: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.facade.CreatePlace(ctx, alice, tt.in)
			assertStatus(t, http.StatusBadRequest, err)
		})
	}

	_, err = fx.facade.CreatePlace(ctx, services.Actor{UserID: "ghost"}, services.PlaceInput{Title: "T", Price: 1})
	assertStatus(t, http.StatusNotFound, err)

	places, err := fx.facade.GetPlaces(ctx)
	require.NoError(t, err)
	assert.Len(t, places, 1, "rejected places are never stored")
}

func TestFacade_UpdatePlace(t *testing.T) {
	fx := newFacade(t)
	ctx := context.Background()
	alice := fx.user(t, "alice@example.com")
	bob := fx.user(t, "bob@example.com")
	wifi := fx.amenity(t, "Wifi")
	pool := fx.amenity(t, "Pool")
	p := fx.place(t, alice, wifi.ID)

	title := "Renamed"
	_, err := fx.facade.UpdatePlace(ctx, bob, p.ID, services.PlacePatch{Title: &title})
	assert.ErrorIs(t, err, services.ErrUnauthorizedAction)

	updated, err := fx.facade.UpdatePlace(ctx, alice, p.ID, services.PlacePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, alice.UserID, updated.OwnerID)

	got, err := fx.facade.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Amenities, 1, "amenities are kept when not in the patch")

	price := 99.5
	_, err = fx.facade.UpdatePlace(ctx, fx.admin, p.ID, services.PlacePatch{Price: &price, Amenities: []string{pool.ID}})
	require.NoError(t, err)
	got, err = fx.facade.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 99.5, got.Price)
	require.Len(t, got.Amenities, 1)
	assert.Equal(t, pool.ID, got.Amenities[0].ID)

	bad := -1.0
	_, err = fx.facade.UpdatePlace(ctx, alice, p.ID, services.PlacePatch{Price: &bad})
	assertStatus(t, http.StatusBadRequest, err)

	_, err = fx.facade.UpdatePlace(ctx, alice, "missing", services.PlacePatch{Title: &title})
	assertStatus(t, http.StatusNotFound, err)
}

func TestFacade_AddPlaceAmenities(t *testing.T) {
	fx := newFacade(t)
	ctx := context.Background()
	alice := fx.user(t, "alice@example.com")
	bob := fx.user(t, "bob@example.com")
	wifi := fx.amenity(t, "Wifi")
	pool := fx.amenity(t, "Pool")
	p := fx.place(t, alice, wifi.ID)

	err := fx.facade.AddPlaceAmenities(ctx, alice, p.ID, nil)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	err = fx.facade.AddPlaceAmenities(ctx, alice, p.ID, []services.AmenityRef{{ID: pool.ID}, {ID: "unknown"}})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	got, err := fx.facade.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Amenities, 1, "nothing is linked when an id is unknown")

	err = fx.facade.AddPlaceAmenities(ctx, bob, p.ID, []services.AmenityRef{{ID: pool.ID}})
	assert.ErrorIs(t, err, services.ErrUnauthorizedAction)

	err = fx.facade.AddPlaceAmenities(ctx, alice, "missing", []services.AmenityRef{{ID: pool.ID}})
	assertStatus(t, http.StatusNotFound, err)

	require.NoError(t, fx.facade.AddPlaceAmenities(ctx, alice, p.ID, []services.AmenityRef{{ID: pool.ID}, {ID: wifi.ID}, {ID: pool.ID}}))
	got, err = fx.facade.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Amenities, 2)
}

func TestFacade_ReviewRules(t *testing.T) {
	fx := newFacade(t)
	ctx := context.Background()
	alice := fx.user(t, "alice@example.com")
	bob := fx.user(t, "bob@example.com")
	p := fx.place(t, alice)

	review, err := fx.facade.CreateReview(ctx, bob, services.ReviewInput{Text: "Great stay", Rating: 5, PlaceID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, bob.UserID, review.UserID)
	assert.Equal(t, p.ID, review.PlaceID)

	_, err = fx.facade.CreateReview(ctx, bob, services.ReviewInput{Text: "Again", Rating: 4, PlaceID: p.ID})
	assert.ErrorIs(t, err, repositories.ErrAlreadyReviewed)
	assertStatus(t, http.StatusBadRequest, err)

	_, err = fx.facade.CreateReview(ctx, alice, services.ReviewInput{Text: "Mine", Rating: 5, PlaceID: p.ID})
	assert.ErrorIs(t, err, services.ErrOwnPlaceReview)

	_, err = fx.facade.CreateReview(ctx, fx.admin, services.ReviewInput{Text: "Bad", Rating: 6, PlaceID: p.ID})
	assertStatus(t, http.StatusBadRequest, err)
	_, err = fx.facade.CreateReview(ctx, fx.admin, services.ReviewInput{Text: "", Rating: 3, PlaceID: p.ID})
	assertStatus(t, http.StatusBadRequest, err)
	_, err = fx.facade.CreateReview(ctx, fx.admin, services.ReviewInput{Text: "Where", Rating: 3, PlaceID: "missing"})
	assertStatus(t, http.StatusNotFound, err)

	text := "Updated"
	_, err = fx.facade.UpdateReview(ctx, alice, review.ID, services.ReviewPatch{Text: &text})
	assert.ErrorIs(t, err, services.ErrUnauthorizedAction)
	_, err = fx.facade.UpdateReview(ctx, fx.admin, review.ID, services.ReviewPatch{Text: &text})
	assert.ErrorIs(t, err, services.ErrUnauthorizedAction, "only the author may edit a review")
	updated, err := fx.facade.UpdateReview(ctx, bob, review.ID, services.ReviewPatch{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "Updated", updated.Text)
	assert.Equal(t, 5, updated.Rating)

	reviews, err := fx.facade.GetPlaceReviews(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	_, err = fx.facade.GetPlaceReviews(ctx, "missing")
	assertStatus(t, http.StatusNotFound, err)

	assert.ErrorIs(t, fx.facade.DeleteReview(ctx, alice, review.ID), services.ErrUnauthorizedAction)
	require.NoError(t, fx.facade.DeleteReview(ctx, bob, review.ID))
	assertStatus(t, http.StatusNotFound, fx.facade.DeleteReview(ctx, bob, review.ID))
}

func TestFacade_DeletePlaceScenario(t *testing.T) {
	fx := newFacade(t)
	ctx := context.Background()
	a := fx.user(t, "a@example.com")
	b := fx.user(t, "b@example.com")
	c := fx.user(t, "c@example.com")

	p := fx.place(t, a)
	review, err := fx.facade.CreateReview(ctx, b, services.ReviewInput{Text: "Nice", Rating: 4, PlaceID: p.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, fx.facade.DeletePlace(ctx, c, p.ID), services.ErrUnauthorizedAction)
	require.NoError(t, fx.facade.DeletePlace(ctx, a, p.ID))

	_, err = fx.facade.GetReview(ctx, review.ID)
	assertStatus(t, http.StatusNotFound, err)
	assertStatus(t, http.StatusNotFound, fx.facade.DeletePlace(ctx, a, p.ID))

	q := fx.place(t, a)
	require.NoError(t, fx.facade.DeletePlace(ctx, fx.admin, q.ID), "admins may delete any place")

	keys := fx.events.keys()
	assert.Contains(t, keys, "place.created")
	assert.Contains(t, keys, "review.created")
	assert.Contains(t, keys, "place.deleted")
}

func TestFacade_Amenities(t *testing.T) {
	fx := newFacade(t)
	ctx := context.Background()
	alice := fx.user(t, "alice@example.com")

	_, err := fx.facade.CreateAmenity(ctx, alice, services.AmenityInput{Name: "Wifi"})
	assert.ErrorIs(t, err, services.ErrAdminRequired)

	wifi := fx.amenity(t, "Wifi")
	pool := fx.amenity(t, "Pool")

	_, err = fx.facade.CreateAmenity(ctx, fx.admin, services.AmenityInput{Name: "Wifi"})
	assert.ErrorIs(t, err, repositories.ErrAmenityExists)
	assertStatus(t, http.StatusConflict, err)
	_, err = fx.facade.CreateAmenity(ctx, fx.admin, services.AmenityInput{Name: ""})
	assertStatus(t, http.StatusBadRequest, err)

	_, err = fx.facade.UpdateAmenity(ctx, alice, wifi.ID, services.AmenityInput{Name: "WiFi"})
	assert.ErrorIs(t, err, services.ErrAdminRequired)
	_, err = fx.facade.UpdateAmenity(ctx, fx.admin, wifi.ID, services.AmenityInput{Name: "Pool"})
	assert.ErrorIs(t, err, repositories.ErrAmenityExists)
	renamed, err := fx.facade.UpdateAmenity(ctx, fx.admin, wifi.ID, services.AmenityInput{Name: "Wifi"})
	require.NoError(t, err, "keeping the same name is not a conflict")
	assert.Equal(t, "Wifi", renamed.Name)
	_, err = fx.facade.UpdateAmenity(ctx, fx.admin, "missing", services.AmenityInput{Name: "Sauna"})
	assertStatus(t, http.StatusNotFound, err)

	assert.ErrorIs(t, fx.facade.DeleteAmenity(ctx, alice, pool.ID), services.ErrAdminRequired)
	require.NoError(t, fx.facade.DeleteAmenity(ctx, fx.admin, pool.ID))
	assertStatus(t, http.StatusNotFound, fx.facade.DeleteAmenity(ctx, fx.admin, pool.ID))

	amenities, err := fx.facade.GetAmenities(ctx)
	require.NoError(t, err)
	require.Len(t, amenities, 1)
	assert.Equal(t, wifi.ID, amenities[0].ID)
}

func TestFacade_PublishFailureDoesNotFailRequest(t *testing.T) {
	fx := newFacade(t)
	fx.events.err = errors.New("broker down")

	_, err := fx.facade.CreateAmenity(context.Background(), fx.admin, services.AmenityInput{Name: "Sauna"})
	assert.NoError(t, err)
}

func TestFacade_NilPublisher(t *testing.T) {
	db := databasetest.Open(t)
	facade := services.NewFacade(services.Repositories{
		Users:     repositories.NewGORMUserRepository(db),
		Places:    repositories.NewGORMPlaceRepository(db),
		Amenities: repositories.NewGORMAmenityRepository(db),
		Reviews:   repositories.NewGORMReviewRepository(db),
	}, services.BcryptHasher{Cost: 4}, nil)

	_, err := facade.CreateUser(context.Background(), services.Actor{}, services.UserInput{
		FirstName: "No", LastName: "Events", Email: "quiet@example.com", Password: "secret",
	})
	assert.NoError(t, err)
}
