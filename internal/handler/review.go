package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lodging-reservation/internal/service"
)

// ReviewHandler serves accommodation reviews: a public listing with the
// aggregate rating and an authenticated create endpoint.
type ReviewHandler struct {
	Reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

type createReviewReq struct {
	Rating  uint8   `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment"`
}

// List handles GET /accommodations/:id/reviews.
func (h *ReviewHandler) List(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	sum, err := h.Reviews.ListReviews(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reviews":        sum.Reviews,
		"review_count":   sum.ReviewCount,
		"average_rating": sum.AverageRating,
	})
}

// Create handles POST /accommodations/:id/reviews.  Each user may
// review an accommodation once.
func (h *ReviewHandler) Create(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	rv, err := h.Reviews.AddReview(c.Request().Context(), id, currentUsername(c), req.Rating, req.Comment)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, rv)
}
