package middleware

import (
	"errors"
	"strings"

	"hbnb/internal/apperr"
	"hbnb/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	localUserID  = "user_id"
	localIsAdmin = "is_admin"
	localClaims  = "claims"
)

var (
	errMissingHeader = apperr.Authentication(errors.New("Authorization header is required"))
	errHeaderFormat  = apperr.Authentication(errors.New("Authorization header format must be 'Bearer <token>'"))
)

// AuthRequired is a Fiber middleware to check for a valid, unrevoked JWT.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return errMissingHeader
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "") {
			return errHeaderFormat
		}

		claims, err := authService.ValidateToken(c.UserContext(), parts[1])
		if err != nil {
			return err
		}

		// Store claims in Fiber context for subsequent handlers
		c.Locals(localUserID, claims.UserID)
		c.Locals(localIsAdmin, claims.IsAdmin)
		c.Locals(localClaims, claims)

		return c.Next()
	}
}

// AdminRequired rejects callers whose token lacks the admin claim. It must
// run after AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentActor(c).IsAdmin {
			return services.ErrAdminRequired
		}
		return c.Next()
	}
}

// CurrentActor returns the authenticated caller, or the anonymous actor on
// routes without AuthRequired.
func CurrentActor(c *fiber.Ctx) services.Actor {
	userID, _ := c.Locals(localUserID).(string)
	isAdmin, _ := c.Locals(localIsAdmin).(bool)
	return services.Actor{UserID: userID, IsAdmin: isAdmin}
}

// CurrentClaims returns the token claims stored by AuthRequired, or nil.
func CurrentClaims(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(localClaims).(*services.Claims)
	return claims
}
