package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lodging-reservation/internal/service"
)

// FavoriteHandler serves the actor's favorite-accommodation set.
type FavoriteHandler struct {
	Favorites *service.FavoriteService
}

func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{Favorites: favorites}
}

// List handles GET /favorites.
func (h *FavoriteHandler) List(c echo.Context) error {
	as, err := h.Favorites.ListFavorites(c.Request().Context(), currentUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"favorites": viewAccommodations(as),
		"count":     len(as),
	})
}

// Check handles GET /favorites/:id.
func (h *FavoriteHandler) Check(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	favorited, err := h.Favorites.IsFavorited(c.Request().Context(), currentUsername(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"favorited": favorited})
}

// Add handles POST /favorites/:id.
func (h *FavoriteHandler) Add(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Favorites.AddFavorite(c.Request().Context(), currentUsername(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"favorited": true})
}

// Remove handles DELETE /favorites/:id.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Favorites.RemoveFavorite(c.Request().Context(), currentUsername(c), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Toggle handles POST /favorites/:id/toggle and reports the resulting
// state.
func (h *FavoriteHandler) Toggle(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	favorited, err := h.Favorites.ToggleFavorite(c.Request().Context(), currentUsername(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"favorited": favorited})
}
