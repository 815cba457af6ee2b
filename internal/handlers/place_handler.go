package handlers

import (
	"hbnb/internal/middleware"
	"hbnb/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PlaceHandler handles HTTP requests for places.
type PlaceHandler struct {
	facade *services.Facade
	auth   fiber.Handler
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(facade *services.Facade, auth fiber.Handler) *PlaceHandler {
	return &PlaceHandler{facade: facade, auth: auth}
}

// RegisterRoutes registers the place routes with the Fiber app.
func (h *PlaceHandler) RegisterRoutes(router fiber.Router) {
	placeRoutes := router.Group("/places")
	placeRoutes.Post("/", h.auth, h.HandleCreatePlace)
	placeRoutes.Get("/", h.HandleGetPlaces)
	placeRoutes.Get("/:id", h.HandleGetPlace)
	placeRoutes.Put("/:id", h.auth, h.HandleUpdatePlace)
	placeRoutes.Delete("/:id", h.auth, h.HandleDeletePlace)
	placeRoutes.Post("/:id/amenities", h.auth, h.HandleAddAmenities)
	placeRoutes.Get("/:id/reviews", h.HandleGetPlaceReviews)
}

// HandleCreatePlace creates a place owned by the caller. Any owner_id in
// the body is ignored.
func (h *PlaceHandler) HandleCreatePlace(c *fiber.Ctx) error {
	var in services.PlaceInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	place, err := h.facade.CreatePlace(c.UserContext(), middleware.CurrentActor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(place)
}

// HandleGetPlaces handles retrieving all places.
func (h *PlaceHandler) HandleGetPlaces(c *fiber.Ctx) error {
	places, err := h.facade.GetPlaces(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(places)
}

// HandleGetPlace returns a place with its owner, amenities and reviews.
func (h *PlaceHandler) HandleGetPlace(c *fiber.Ctx) error {
	place, err := h.facade.GetPlace(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(place)
}

// HandleUpdatePlace handles updating a place.
func (h *PlaceHandler) HandleUpdatePlace(c *fiber.Ctx) error {
	var patch services.PlacePatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}
	place, err := h.facade.UpdatePlace(c.UserContext(), middleware.CurrentActor(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(place)
}

// HandleDeletePlace handles deleting a place.
func (h *PlaceHandler) HandleDeletePlace(c *fiber.Ctx) error {
	if err := h.facade.DeletePlace(c.UserContext(), middleware.CurrentActor(c), c.Params("id")); err != nil {
		return err
	}
	return message(c, "Place deleted successfully")
}

// HandleAddAmenities links the amenities listed in the body
// ([{"id": "..."}]) to the place.
func (h *PlaceHandler) HandleAddAmenities(c *fiber.Ctx) error {
	var refs []services.AmenityRef
	if err := parseBody(c, &refs); err != nil {
		return err
	}
	if err := h.facade.AddPlaceAmenities(c.UserContext(), middleware.CurrentActor(c), c.Params("id"), refs); err != nil {
		return err
	}
	return message(c, "Amenities added successfully")
}

// HandleGetPlaceReviews handles retrieving the reviews of a place.
func (h *PlaceHandler) HandleGetPlaceReviews(c *fiber.Ctx) error {
	reviews, err := h.facade.GetPlaceReviews(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}
