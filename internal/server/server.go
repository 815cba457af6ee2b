// Package server assembles the Fiber application from its dependencies.
package server

import (
	"context"
	"time"

	"hbnb/internal/handlers"
	"hbnb/internal/middleware"
	"hbnb/internal/repositories"
	"hbnb/internal/services"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Deps holds everything NewApp wires together. Events may be nil.
type Deps struct {
	DB             *gorm.DB
	JWTSecret      string
	JWTTTL         time.Duration
	AllowedOrigins string
	Hasher         services.PasswordHasher
	Denylist       services.TokenDenylist
	Events         services.EventPublisher
}

// NewApp builds the Fiber app with every API route registered under
// /api/v1. The returned AuthService shares the app's repositories.
func NewApp(deps Deps) (*fiber.App, *services.AuthService) {
	if deps.Hasher == nil {
		deps.Hasher = services.BcryptHasher{}
	}

	// --- Repositories ---
	repos := NewRepositories(deps.DB)

	// --- Services ---
	facade := services.NewFacade(repos, deps.Hasher, deps.Events)
	authService := services.NewAuthService(repos.Users, deps.Hasher, deps.Denylist, deps.JWTSecret, deps.JWTTTL)
	auth := middleware.AuthRequired(authService)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(facade, auth)
	placeHandler := handlers.NewPlaceHandler(facade, auth)
	amenityHandler := handlers.NewAmenityHandler(facade, auth)
	reviewHandler := handlers.NewReviewHandler(facade, auth)
	authHandler := handlers.NewAuthHandler(authService, auth)
	adminHandler := handlers.NewAdminHandler(userHandler, amenityHandler, placeHandler, auth)

	app := fiber.New(fiber.Config{
		AppName:      "hbnb",
		ErrorHandler: handlers.ErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: deps.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	userHandler.RegisterRoutes(apiV1)
	authHandler.RegisterRoutes(apiV1)
	placeHandler.RegisterRoutes(apiV1)
	amenityHandler.RegisterRoutes(apiV1)
	reviewHandler.RegisterRoutes(apiV1)
	adminHandler.RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", healthHandler(deps.DB))

	return app, authService
}

// NewRepositories returns the GORM-backed repositories over db.
func NewRepositories(db *gorm.DB) services.Repositories {
	return services.Repositories{
		Users:     repositories.NewGORMUserRepository(db),
		Places:    repositories.NewGORMPlaceRepository(db),
		Amenities: repositories.NewGORMAmenityRepository(db),
		Reviews:   repositories.NewGORMReviewRepository(db),
	}
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		database := "up"
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			database = "down"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": database,
		})
	}
}
