package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/templedesk/temple-booking/internal/dto"
	"github.com/templedesk/temple-booking/internal/models"
	"github.com/templedesk/temple-booking/internal/repository"
	"github.com/templedesk/temple-booking/internal/service"
)

type SevaBookingHandler struct {
	svc service.SevaBookingService
}

func NewSevaBookingHandler(svc service.SevaBookingService) *SevaBookingHandler {
	return &SevaBookingHandler{svc: svc}
}

func (h *SevaBookingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/seva-bookings")
	g.POST("", h.CreateSevaBooking)
	g.GET("", h.ListSevaBookings)
	g.GET("/aggregation/by-sevaid", h.AggregateBySeva)
	g.GET("/aggregation/by-date", h.AggregateByDate)
	g.POST("/aggregation/multiple", h.AggregateMultiple)
	g.GET("/:id", h.GetSevaBooking)
	g.PUT("/:id", h.UpdateSevaBooking)
	g.PATCH("/:id/status", h.UpdateSevaBookingStatus)
	g.DELETE("/:id", h.DeleteSevaBooking)
}

func (h *SevaBookingHandler) CreateSevaBooking(c echo.Context) error {
	var req dto.CreateSevaBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sevaDate, err := dto.ParseDate(req.SevaDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "seva_date: "+err.Error())
	}

	booking, err := h.svc.CreateSevaBooking(c.Request().Context(), service.CreateSevaBookingInput{
		SevaID:   req.SevaID,
		SevaDate: sevaDate,
		Name:     req.Name,
		MobileNo: req.MobileNo,
		GotraID:  req.GotraID,
		Address:  req.Address,
		Remarks:  req.Remarks,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToSevaBookingResponse(booking))
}

func (h *SevaBookingHandler) ListSevaBookings(c echo.Context) error {
	filter := repository.SevaBookingFilter{
		MobileNo: c.QueryParam("mobile_no"),
		Skip:     queryInt(c, "skip", 0),
		Limit:    queryInt(c, "limit", 50),
	}
	if s := c.QueryParam("seva_date"); s != "" {
		d, err := dto.ParseDate(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "seva_date: "+err.Error())
		}
		filter.SevaDate = &d
	}

	page, err := h.svc.ListSevaBookings(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.SevaBookingListResponse{
		TotalCount: page.TotalCount,
		Skip:       filter.Skip,
		Limit:      filter.Limit,
		Data:       dto.ToSevaBookingListItems(page.Bookings),
	})
}

func (h *SevaBookingHandler) GetSevaBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.GetSevaBooking(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToSevaBookingResponse(booking))
}

func (h *SevaBookingHandler) UpdateSevaBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateSevaBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	update := service.SevaBookingUpdate{
		SevaID:   req.SevaID,
		Name:     req.Name,
		MobileNo: req.MobileNo,
		GotraID:  req.GotraID,
		Address:  req.Address,
		Remarks:  req.Remarks,
	}
	if req.SevaDate != nil {
		d, err := dto.ParseDate(*req.SevaDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "seva_date: "+err.Error())
		}
		update.SevaDate = &d
	}

	booking, err := h.svc.UpdateSevaBooking(c.Request().Context(), id, update)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToSevaBookingResponse(booking))
}

func (h *SevaBookingHandler) UpdateSevaBookingStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.UpdateSevaBookingStatus(c.Request().Context(), id, models.BookingStatus(req.Status))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToSevaBookingResponse(booking))
}

func (h *SevaBookingHandler) DeleteSevaBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteSevaBooking(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func dateWindow(c echo.Context) (from, to *time.Time, err error) {
	if s := c.QueryParam("start_date"); s != "" {
		d, perr := dto.ParseDate(s)
		if perr != nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "start_date: "+perr.Error())
		}
		from = &d
	}
	if s := c.QueryParam("end_date"); s != "" {
		d, perr := dto.ParseDate(s)
		if perr != nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "end_date: "+perr.Error())
		}
		to = &d
	}
	return from, to, nil
}

func (h *SevaBookingHandler) AggregateBySeva(c echo.Context) error {
	sevaID, err := strconv.ParseUint(c.QueryParam("seva_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid seva_id")
	}
	from, to, err := dateWindow(c)
	if err != nil {
		return err
	}

	totals, err := h.svc.AggregateBySeva(c.Request().Context(), uint(sevaID), from, to)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToSevaAggregationResponse(totals))
}

func (h *SevaBookingHandler) AggregateByDate(c echo.Context) error {
	from, to, err := dateWindow(c)
	if err != nil {
		return err
	}

	groups, err := h.svc.AggregateByDate(c.Request().Context(), from, to)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": dto.ToDateAggregationItems(groups),
	})
}

func (h *SevaBookingHandler) AggregateMultiple(c echo.Context) error {
	var req dto.MultiSevaAggregationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var from, to *time.Time
	if req.StartDate != "" {
		d, err := dto.ParseDate(req.StartDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "start_date: "+err.Error())
		}
		from = &d
	}
	if req.EndDate != "" {
		d, err := dto.ParseDate(req.EndDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "end_date: "+err.Error())
		}
		to = &d
	}

	summary, err := h.svc.AggregateMultiple(c.Request().Context(), req.SevaIDs, from, to)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToMultiSevaSummaryResponse(summary))
}
