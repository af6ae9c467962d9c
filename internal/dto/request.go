package dto

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses an ISO-8601 calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// FormatDate is the inverse of ParseDate.
func FormatDate(d time.Time) string {
	return d.Format(dateLayout)
}

type CreateHallRequest struct {
	Name          string   `json:"name"`
	Capacity      int      `json:"capacity"`
	Facilities    []string `json:"facilities,omitempty"`
	AvailableFrom string   `json:"available_from,omitempty"`
	AvailableTo   string   `json:"available_to,omitempty"`
	BasePrice     float64  `json:"base_price"`
	PricePerHour  float64  `json:"price_per_hour"`
}

type UpdateHallRequest struct {
	Name          *string  `json:"name,omitempty"`
	Capacity      *int     `json:"capacity,omitempty"`
	Facilities    []string `json:"facilities,omitempty"`
	AvailableFrom *string  `json:"available_from,omitempty"`
	AvailableTo   *string  `json:"available_to,omitempty"`
	BasePrice     *float64 `json:"base_price,omitempty"`
	PricePerHour  *float64 `json:"price_per_hour,omitempty"`
}

type CreateBookingRequest struct {
	HallID           uint   `json:"hall_id"`
	CustomerName     string `json:"customer_name"`
	CustomerPhone    string `json:"customer_phone"`
	EventPurpose     string `json:"event_purpose,omitempty"`
	BookingStartDate string `json:"booking_start_date"`
	BookingEndDate   string `json:"booking_end_date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

type CreateSevaBookingRequest struct {
	SevaID   uint   `json:"seva_id"`
	SevaDate string `json:"seva_date"`
	Name     string `json:"name"`
	MobileNo string `json:"mobile_no"`
	GotraID  *uint  `json:"gotra_id,omitempty"`
	Address  string `json:"address,omitempty"`
	Remarks  string `json:"remarks,omitempty"`
}

type UpdateSevaBookingRequest struct {
	SevaID   *uint   `json:"seva_id,omitempty"`
	SevaDate *string `json:"seva_date,omitempty"`
	Name     *string `json:"name,omitempty"`
	MobileNo *string `json:"mobile_no,omitempty"`
	GotraID  *uint   `json:"gotra_id,omitempty"`
	Address  *string `json:"address,omitempty"`
	Remarks  *string `json:"remarks,omitempty"`
}

type MultiSevaAggregationRequest struct {
	SevaIDs   []uint `json:"seva_ids"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}
