package handlers

import (
	"hbnb/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler exposes the admin-only variants of the user, amenity and
// place write routes.
type AdminHandler struct {
	users     *UserHandler
	amenities *AmenityHandler
	places    *PlaceHandler
	auth      fiber.Handler
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(users *UserHandler, amenities *AmenityHandler, places *PlaceHandler, auth fiber.Handler) *AdminHandler {
	return &AdminHandler{users: users, amenities: amenities, places: places, auth: auth}
}

// RegisterRoutes registers the /admin routes; every one of them requires
// an admin token.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin", h.auth, middleware.AdminRequired())

	adminRoutes.Post("/users/", h.users.HandleCreateUser)
	adminRoutes.Put("/users/:id", h.users.HandleUpdateUser)
	adminRoutes.Delete("/users/:id", h.users.HandleDeleteUser)

	adminRoutes.Post("/amenities/", h.amenities.HandleCreateAmenity)
	adminRoutes.Put("/amenities/:id", h.amenities.HandleUpdateAmenity)

	adminRoutes.Put("/places/:id", h.places.HandleUpdatePlace)
	adminRoutes.Delete("/places/:id", h.places.HandleDeletePlace)
}
