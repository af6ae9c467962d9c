package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/templedesk/temple-booking/internal/dto"
	"github.com/templedesk/temple-booking/internal/repository"
	"gorm.io/gorm"
)

// SevaHandler serves the seva and gotra master tables. These are reference
// data maintained by seed scripts, so the surface is read-only.
type SevaHandler struct {
	sevaRepo  repository.SevaRepository
	gotraRepo repository.GotraRepository
}

func NewSevaHandler(sevaRepo repository.SevaRepository, gotraRepo repository.GotraRepository) *SevaHandler {
	return &SevaHandler{sevaRepo: sevaRepo, gotraRepo: gotraRepo}
}

func (h *SevaHandler) RegisterRoutes(e *echo.Echo) {
	sevas := e.Group("/api/sevas")
	sevas.GET("", h.ListSevas)
	sevas.GET("/:id", h.GetSeva)
	sevas.GET("/search/:query", h.SearchSevas)

	e.GET("/api/gotras", h.ListGotras)
}

func (h *SevaHandler) ListSevas(c echo.Context) error {
	sevas, err := h.sevaRepo.FindAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	data := make([]dto.SevaResponse, len(sevas))
	for i := range sevas {
		data[i] = dto.ToSevaResponse(&sevas[i])
	}
	return c.JSON(http.StatusOK, map[string]any{"count": len(data), "data": data})
}

func (h *SevaHandler) GetSeva(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	seva, err := h.sevaRepo.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "seva not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToSevaResponse(seva))
}

func (h *SevaHandler) SearchSevas(c echo.Context) error {
	sevas, err := h.sevaRepo.SearchByName(c.Request().Context(), c.Param("query"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	data := make([]dto.SevaResponse, len(sevas))
	for i := range sevas {
		data[i] = dto.ToSevaResponse(&sevas[i])
	}
	return c.JSON(http.StatusOK, map[string]any{"count": len(data), "data": data})
}

func (h *SevaHandler) ListGotras(c echo.Context) error {
	gotras, err := h.gotraRepo.FindAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	data := make([]dto.GotraResponse, len(gotras))
	for i := range gotras {
		data[i] = dto.ToGotraResponse(&gotras[i])
	}
	return c.JSON(http.StatusOK, map[string]any{"count": len(data), "data": data})
}
