package handlers

import (
	"hbnb/internal/middleware"
	"hbnb/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AmenityHandler handles HTTP requests for amenities. Writes are reserved
// to admins by the facade.
type AmenityHandler struct {
	facade *services.Facade
	auth   fiber.Handler
}

// NewAmenityHandler creates a new AmenityHandler.
func NewAmenityHandler(facade *services.Facade, auth fiber.Handler) *AmenityHandler {
	return &AmenityHandler{facade: facade, auth: auth}
}

// RegisterRoutes registers the amenity routes with the Fiber app.
func (h *AmenityHandler) RegisterRoutes(router fiber.Router) {
	amenityRoutes := router.Group("/amenities")
	amenityRoutes.Post("/", h.auth, h.HandleCreateAmenity)
	amenityRoutes.Get("/", h.HandleGetAmenities)
	amenityRoutes.Get("/:id", h.HandleGetAmenity)
	amenityRoutes.Put("/:id", h.auth, h.HandleUpdateAmenity)
	amenityRoutes.Delete("/:id", h.auth, h.HandleDeleteAmenity)
}

// HandleCreateAmenity handles creating a new amenity.
func (h *AmenityHandler) HandleCreateAmenity(c *fiber.Ctx) error {
	var in services.AmenityInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	amenity, err := h.facade.CreateAmenity(c.UserContext(), middleware.CurrentActor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(amenity)
}

// HandleGetAmenities handles retrieving all amenities.
func (h *AmenityHandler) HandleGetAmenities(c *fiber.Ctx) error {
	amenities, err := h.facade.GetAmenities(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(amenities)
}

// HandleGetAmenity handles retrieving a single amenity by ID.
func (h *AmenityHandler) HandleGetAmenity(c *fiber.Ctx) error {
	amenity, err := h.facade.GetAmenity(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(amenity)
}

// HandleUpdateAmenity handles renaming an amenity.
func (h *AmenityHandler) HandleUpdateAmenity(c *fiber.Ctx) error {
	var in services.AmenityInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	amenity, err := h.facade.UpdateAmenity(c.UserContext(), middleware.CurrentActor(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(amenity)
}

// HandleDeleteAmenity handles deleting an amenity.
func (h *AmenityHandler) HandleDeleteAmenity(c *fiber.Ctx) error {
	if err := h.facade.DeleteAmenity(c.UserContext(), middleware.CurrentActor(c), c.Params("id")); err != nil {
		return err
	}
	return message(c, "Amenity deleted successfully")
}
