package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lodging-reservation/internal/model"
	"github.com/iliyamo/lodging-reservation/internal/service"
	"github.com/iliyamo/lodging-reservation/internal/utils"
)

// OwnerCatalogHandler serves the owner-scoped accommodation and room
// type management endpoints.  Every mutation runs through the service's
// ownership guard against the persisted owner.
type OwnerCatalogHandler struct {
	Catalog *service.CatalogService
}

func NewOwnerCatalogHandler(catalog *service.CatalogService) *OwnerCatalogHandler {
	return &OwnerCatalogHandler{Catalog: catalog}
}

type accommodationReq struct {
	Name          string  `json:"name" validate:"required,max=255"`
	Location      string  `json:"location" validate:"required,max=255"`
	Description   *string `json:"description"`
	PricePerNight string  `json:"price_per_night" validate:"required"`
}

func (r *accommodationReq) toModel() (*model.Accommodation, error) {
	cents, err := utils.ParseAmount(r.PricePerNight)
	if err != nil {
		return nil, err
	}
	return &model.Accommodation{
		Name:               r.Name,
		Location:           r.Location,
		Description:        r.Description,
		PricePerNightCents: cents,
	}, nil
}

type roomTypeReq struct {
	Name          string  `json:"name" validate:"required,max=255"`
	Description   *string `json:"description"`
	PricePerNight string  `json:"price_per_night" validate:"required"`
	TotalRooms    uint32  `json:"total_rooms"`
}

func (r *roomTypeReq) toModel() (*model.RoomType, error) {
	cents, err := utils.ParseAmount(r.PricePerNight)
	if err != nil {
		return nil, err
	}
	return &model.RoomType{
		Name:               r.Name,
		Description:        r.Description,
		PricePerNightCents: cents,
		TotalRooms:         r.TotalRooms,
	}, nil
}

// ----- accommodations -----

// CreateAccommodation handles POST /owner/accommodations.
func (h *OwnerCatalogHandler) CreateAccommodation(c echo.Context) error {
	var req accommodationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	a, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	created, err := h.Catalog.CreateAccommodation(c.Request().Context(), a, currentUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, viewAccommodation(created))
}

// ListAccommodations handles GET /owner/accommodations.
func (h *OwnerCatalogHandler) ListAccommodations(c echo.Context) error {
	as, err := h.Catalog.ListAccommodationsForOwner(c.Request().Context(), currentUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"accommodations": viewAccommodations(as)})
}

// UpdateAccommodation handles PUT /owner/accommodations/:id.
func (h *OwnerCatalogHandler) UpdateAccommodation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req accommodationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	upd, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	a, err := h.Catalog.UpdateAccommodation(c.Request().Context(), id, upd, currentUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewAccommodation(a))
}

// DeleteAccommodation handles DELETE /owner/accommodations/:id.
func (h *OwnerCatalogHandler) DeleteAccommodation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Catalog.DeleteAccommodation(c.Request().Context(), id, currentUsername(c)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- room types -----

// CreateRoomType handles POST /owner/accommodations/:id/room-types.
func (h *OwnerCatalogHandler) CreateRoomType(c echo.Context) error {
	accID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req roomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	rt, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	created, err := h.Catalog.CreateRoomType(c.Request().Context(), accID, rt, currentUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, viewRoomType(created))
}

// UpdateRoomType handles PUT /owner/room-types/:id.
func (h *OwnerCatalogHandler) UpdateRoomType(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req roomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	upd, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	rt, err := h.Catalog.UpdateRoomType(c.Request().Context(), id, upd, currentUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewRoomType(rt))
}

// DeleteRoomType handles DELETE /owner/room-types/:id.
func (h *OwnerCatalogHandler) DeleteRoomType(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Catalog.DeleteRoomType(c.Request().Context(), id, currentUsername(c)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
