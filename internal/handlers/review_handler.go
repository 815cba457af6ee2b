package handlers

import (
	"hbnb/internal/middleware"
	"hbnb/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	facade *services.Facade
	auth   fiber.Handler
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(facade *services.Facade, auth fiber.Handler) *ReviewHandler {
	return &ReviewHandler{facade: facade, auth: auth}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Post("/", h.auth, h.HandleCreateReview)
	reviewRoutes.Get("/", h.HandleGetReviews)
	reviewRoutes.Get("/:id", h.HandleGetReview)
	reviewRoutes.Put("/:id", h.auth, h.HandleUpdateReview)
	reviewRoutes.Delete("/:id", h.auth, h.HandleDeleteReview)
}

// HandleCreateReview records a review written by the caller.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var in services.ReviewInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	review, err := h.facade.CreateReview(c.UserContext(), middleware.CurrentActor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleGetReviews handles retrieving all reviews.
func (h *ReviewHandler) HandleGetReviews(c *fiber.Ctx) error {
	reviews, err := h.facade.GetReviews(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

// HandleGetReview handles retrieving a single review by ID.
func (h *ReviewHandler) HandleGetReview(c *fiber.Ctx) error {
	review, err := h.facade.GetReview(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(review)
}

// HandleUpdateReview handles updating a review.
func (h *ReviewHandler) HandleUpdateReview(c *fiber.Ctx) error {
	var patch services.ReviewPatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}
	review, err := h.facade.UpdateReview(c.UserContext(), middleware.CurrentActor(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(review)
}

// HandleDeleteReview handles deleting a review.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	if err := h.facade.DeleteReview(c.UserContext(), middleware.CurrentActor(c), c.Params("id")); err != nil {
		return err
	}
	return message(c, "Review deleted successfully")
}
