package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lodging-reservation/internal/model"
	"github.com/iliyamo/lodging-reservation/internal/service"
	"github.com/iliyamo/lodging-reservation/internal/utils"
)

// BrowseHandler serves the public, unauthenticated catalog views.
type BrowseHandler struct {
	Catalog *service.CatalogService
}

func NewBrowseHandler(catalog *service.CatalogService) *BrowseHandler {
	return &BrowseHandler{Catalog: catalog}
}

// accommodationView renders an accommodation with its nightly price
// formatted as a decimal string alongside the raw cents.
type accommodationView struct {
	*model.Accommodation
	PricePerNight string `json:"price_per_night"`
}

func viewAccommodation(a *model.Accommodation) accommodationView {
	return accommodationView{a, utils.FormatCents(a.PricePerNightCents)}
}

func viewAccommodations(as []*model.Accommodation) []accommodationView {
	out := make([]accommodationView, 0, len(as))
	for _, a := range as {
		out = append(out, viewAccommodation(a))
	}
	return out
}

type roomTypeView struct {
	*model.RoomType
	PricePerNight string `json:"price_per_night"`
}

func viewRoomType(rt *model.RoomType) roomTypeView {
	return roomTypeView{rt, utils.FormatCents(rt.PricePerNightCents)}
}

func viewRoomTypes(rts []*model.RoomType) []roomTypeView {
	out := make([]roomTypeView, 0, len(rts))
	for _, rt := range rts {
		out = append(out, viewRoomType(rt))
	}
	return out
}

// ListAccommodations handles GET /accommodations with optional
// ?q=keyword and ?sort=price_asc|price_desc|name_asc|name_desc.
// Unknown sort values fall back to newest-first.
func (h *BrowseHandler) ListAccommodations(c echo.Context) error {
	as, err := h.Catalog.ListAccommodations(c.Request().Context(), c.QueryParam("q"), c.QueryParam("sort"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"accommodations": viewAccommodations(as)})
}

// GetAccommodation handles GET /accommodations/:id.
func (h *BrowseHandler) GetAccommodation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.Catalog.GetAccommodation(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewAccommodation(a))
}

// ListRoomTypes handles GET /accommodations/:id/room-types.
func (h *BrowseHandler) ListRoomTypes(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rts, err := h.Catalog.ListRoomTypes(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"room_types": viewRoomTypes(rts)})
}
