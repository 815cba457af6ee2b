package handlers

import (
	"hbnb/internal/middleware"
	"hbnb/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	facade *services.Facade
	auth   fiber.Handler
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(facade *services.Facade, auth fiber.Handler) *UserHandler {
	return &UserHandler{facade: facade, auth: auth}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Put("/:id", h.auth, h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.auth, h.HandleDeleteUser)
}

// HandleCreateUser registers a user. The is_admin field only takes effect
// when an admin makes the request.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var in services.UserInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	user, err := h.facade.CreateUser(c.UserContext(), middleware.CurrentActor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleGetUsers handles retrieving all users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.facade.GetUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// HandleGetUser handles retrieving a single user by ID.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.facade.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// HandleUpdateUser handles updating a user.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var patch services.UserPatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}
	user, err := h.facade.UpdateUser(c.UserContext(), middleware.CurrentActor(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// HandleDeleteUser handles deleting a user.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.facade.DeleteUser(c.UserContext(), middleware.CurrentActor(c), c.Params("id")); err != nil {
		return err
	}
	return message(c, "User deleted successfully")
}
