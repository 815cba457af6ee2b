package handlers

import (
	"hbnb/internal/middleware"
	"hbnb/internal/models"
	"hbnb/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	auth        fiber.Handler
}

// NewAuthHandler creates a new AuthHandler. auth guards the routes that
// need a logged-in caller.
func NewAuthHandler(authService *services.AuthService, auth fiber.Handler) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		auth:        auth,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.auth, h.HandleLogout)

	router.Get("/protected/protected", h.auth, h.HandleProtected)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := models.Validate(req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"access_token": token})
}

// HandleLogout revokes the token the request was made with.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), middleware.CurrentClaims(c)); err != nil {
		return err
	}
	return message(c, "Successfully logged out")
}

// HandleProtected greets the authenticated caller.
func (h *AuthHandler) HandleProtected(c *fiber.Ctx) error {
	return message(c, "Hello, user "+middleware.CurrentActor(c).UserID)
}
