package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/templedesk/temple-booking/internal/dto"
	"github.com/templedesk/temple-booking/internal/models"
	"github.com/templedesk/temple-booking/internal/service"
	"gorm.io/datatypes"
)

type HallHandler struct {
	svc service.HallService
}

func NewHallHandler(svc service.HallService) *HallHandler {
	return &HallHandler{svc: svc}
}

func (h *HallHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/halls")
	g.POST("", h.CreateHall)
	g.GET("", h.ListHalls)
	g.GET("/:id", h.GetHall)
	g.PUT("/:id", h.UpdateHall)
	g.DELETE("/:id", h.DeleteHall)
}

func (h *HallHandler) CreateHall(c echo.Context) error {
	var req dto.CreateHallRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	hall := &models.Hall{
		Name:          req.Name,
		Capacity:      req.Capacity,
		AvailableFrom: req.AvailableFrom,
		AvailableTo:   req.AvailableTo,
		BasePrice:     req.BasePrice,
		PricePerHour:  req.PricePerHour,
	}
	if req.Facilities != nil {
		raw, err := json.Marshal(req.Facilities)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid facilities")
		}
		hall.Facilities = datatypes.JSON(raw)
	}

	if err := h.svc.CreateHall(c.Request().Context(), hall); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToHallResponse(hall))
}

func (h *HallHandler) ListHalls(c echo.Context) error {
	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 100)

	halls, err := h.svc.ListHalls(c.Request().Context(), skip, limit)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.HallResponse, len(halls))
	for i := range halls {
		resp[i] = dto.ToHallResponse(&halls[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *HallHandler) GetHall(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	hall, err := h.svc.GetHall(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToHallResponse(hall))
}

func (h *HallHandler) UpdateHall(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateHallRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	hall, err := h.svc.UpdateHall(c.Request().Context(), id, service.HallUpdate{
		Name:          req.Name,
		Capacity:      req.Capacity,
		Facilities:    req.Facilities,
		AvailableFrom: req.AvailableFrom,
		AvailableTo:   req.AvailableTo,
		BasePrice:     req.BasePrice,
		PricePerHour:  req.PricePerHour,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToHallResponse(hall))
}

func (h *HallHandler) DeleteHall(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteHall(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
