package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/templedesk/temple-booking/internal/service"
)

// toHTTPError maps service errors onto HTTP codes: validation and illegal
// transitions are 400, missing records 404, conflicts and gated deletes 409.
func toHTTPError(err error) error {
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		return echo.NewHTTPError(http.StatusBadRequest, validation.Error())
	}
	var conflict *service.ConflictError
	if errors.As(err, &conflict) {
		return echo.NewHTTPError(http.StatusConflict, conflict.Error())
	}
	var transition *service.IllegalTransitionError
	if errors.As(err, &transition) {
		return echo.NewHTTPError(http.StatusBadRequest, transition.Error())
	}

	switch {
	case errors.Is(err, service.ErrHallNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrSevaNotFound),
		errors.Is(err, service.ErrGotraNotFound),
		errors.Is(err, service.ErrSevaBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrHallNameTaken),
		errors.Is(err, service.ErrHallHasBookings):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrIllegalDeletion):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
