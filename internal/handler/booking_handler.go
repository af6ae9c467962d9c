package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/templedesk/temple-booking/internal/dto"
	"github.com/templedesk/temple-booking/internal/models"
	"github.com/templedesk/temple-booking/internal/repository"
	"github.com/templedesk/temple-booking/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/hall-booking")
	g.POST("", h.CreateBooking)
	g.GET("", h.ListBookings)
	g.GET("/:id", h.GetBooking)
	g.PATCH("/:id", h.UpdateBookingStatus)
	g.DELETE("/:id", h.DeleteBooking)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	startDate, err := dto.ParseDate(req.BookingStartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "booking_start_date: "+err.Error())
	}
	endDate, err := dto.ParseDate(req.BookingEndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "booking_end_date: "+err.Error())
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		HallID:           req.HallID,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		EventPurpose:     req.EventPurpose,
		BookingStartDate: startDate,
		BookingEndDate:   endDate,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	filter := repository.BookingFilter{Limit: 100}

	if s := c.QueryParam("status"); s != "" {
		status := models.BookingStatus(s)
		if !status.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown status "+s)
		}
		filter.Status = &status
	}
	if s := c.QueryParam("hall_id"); s != "" {
		hallID, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid hall_id")
		}
		filter.HallID = uint(hallID)
	}
	if s := c.QueryParam("date_from"); s != "" {
		d, err := dto.ParseDate(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_from: "+err.Error())
		}
		filter.DateFrom = &d
	}
	if s := c.QueryParam("date_to"); s != "" {
		d, err := dto.ParseDate(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_to: "+err.Error())
		}
		filter.DateTo = &d
	}
	filter.Skip = queryInt(c, "skip", 0)
	filter.Limit = queryInt(c, "limit", 100)

	bookings, err := h.svc.ListBookings(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.BookingListItem, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingListItem(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) UpdateBookingStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.UpdateBookingStatus(c.Request().Context(), id, models.BookingStatus(req.Status))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteBooking(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func queryInt(c echo.Context, name string, fallback int) int {
	if s := c.QueryParam(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			return v
		}
	}
	return fallback
}
