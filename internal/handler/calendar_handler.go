package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/templedesk/temple-booking/internal/dto"
	"github.com/templedesk/temple-booking/internal/service"
)

type CalendarHandler struct {
	svc service.CalendarService
}

func NewCalendarHandler(svc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

func (h *CalendarHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/calendar")
	g.GET("/day", h.DayView)
	g.GET("/week", h.WeekView)
	g.GET("/month", h.MonthView)
}

func calendarFilters(c echo.Context) (hallID uint, includeCancelled bool, err error) {
	if s := c.QueryParam("hall_id"); s != "" {
		v, perr := strconv.ParseUint(s, 10, 64)
		if perr != nil {
			return 0, false, echo.NewHTTPError(http.StatusBadRequest, "invalid hall_id")
		}
		hallID = uint(v)
	}
	includeCancelled = c.QueryParam("include_cancelled") == "true"
	return hallID, includeCancelled, nil
}

func (h *CalendarHandler) DayView(c echo.Context) error {
	date, err := dto.ParseDate(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date: "+err.Error())
	}
	hallID, includeCancelled, err := calendarFilters(c)
	if err != nil {
		return err
	}

	window, err := h.svc.DayView(c.Request().Context(), date, hallID, includeCancelled)
	if err != nil {
		return toHTTPError(err)
	}

	items := dto.ToCalendarBookingItems(window.Bookings)
	return c.JSON(http.StatusOK, dto.CalendarDayResponse{
		Date:          dto.FormatDate(window.Start),
		Bookings:      items,
		TotalBookings: len(items),
	})
}

func (h *CalendarHandler) WeekView(c echo.Context) error {
	start, err := dto.ParseDate(c.QueryParam("start_date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date: "+err.Error())
	}
	end, err := dto.ParseDate(c.QueryParam("end_date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "end_date: "+err.Error())
	}
	hallID, includeCancelled, err := calendarFilters(c)
	if err != nil {
		return err
	}

	window, err := h.svc.WeekView(c.Request().Context(), start, end, hallID, includeCancelled)
	if err != nil {
		return toHTTPError(err)
	}

	items := dto.ToCalendarBookingItems(window.Bookings)
	return c.JSON(http.StatusOK, dto.CalendarWeekResponse{
		StartDate:     dto.FormatDate(window.Start),
		EndDate:       dto.FormatDate(window.End),
		Bookings:      items,
		TotalBookings: len(items),
	})
}

func (h *CalendarHandler) MonthView(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
	}
	hallID, includeCancelled, err := calendarFilters(c)
	if err != nil {
		return err
	}

	window, err := h.svc.MonthView(c.Request().Context(), year, month, hallID, includeCancelled)
	if err != nil {
		return toHTTPError(err)
	}

	items := dto.ToCalendarBookingItems(window.Bookings)
	return c.JSON(http.StatusOK, dto.CalendarMonthResponse{
		Year:          year,
		Month:         month,
		Bookings:      items,
		TotalBookings: len(items),
	})
}
