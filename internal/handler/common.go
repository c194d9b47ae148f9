// Package handler contains the Echo HTTP handlers.  Handlers bind and
// validate request bodies, call the services, and translate service and
// repository errors into HTTP responses; they hold no business rules of
// their own.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lodging-reservation/internal/repository"
	"github.com/iliyamo/lodging-reservation/internal/service"
	"github.com/iliyamo/lodging-reservation/internal/utils"
)

// currentUsername returns the username claim JWTAuth stored in context,
// or "" when the request is unauthenticated.
func currentUsername(c echo.Context) string {
	s, _ := c.Get("username").(string)
	return s
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// writeError maps service and repository errors onto the HTTP error
// contract: 400 for malformed input, 403 for ownership failures, 404
// for missing entities, 409 for capacity and state-machine conflicts,
// 500 otherwise.
func writeError(c echo.Context, err error) error {
	var insufficient *service.InsufficientInventoryError
	switch {
	case errors.Is(err, service.ErrInvalidInterval),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, utils.ErrBadAmount):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})

	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})

	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrAccommodationNotFound),
		errors.Is(err, repository.ErrRoomTypeNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrFavoriteNotFound),
		errors.Is(err, service.ErrNotFavorited):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})

	case errors.As(err, &insufficient):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "insufficient inventory",
			"message":   err.Error(),
			"remaining": insufficient.Remaining,
		})

	case errors.Is(err, service.ErrAlreadyCancelled),
		errors.Is(err, service.ErrAlreadyConfirmed),
		errors.Is(err, service.ErrCancelledCannotConfirm),
		errors.Is(err, service.ErrTooLateToCancel),
		errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrAlreadyFavorited),
		errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	c.Logger().Errorf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
