package dto

import (
	"encoding/json"
	"time"

	"github.com/templedesk/temple-booking/internal/models"
	"github.com/templedesk/temple-booking/internal/service"
)

type HallResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Capacity      int       `json:"capacity"`
	Facilities    []string  `json:"facilities,omitempty"`
	AvailableFrom string    `json:"available_from,omitempty"`
	AvailableTo   string    `json:"available_to,omitempty"`
	BasePrice     float64   `json:"base_price"`
	PricePerHour  float64   `json:"price_per_hour"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type BookingResponse struct {
	ID               uint                 `json:"id"`
	HallID           uint                 `json:"hall_id"`
	CustomerName     string               `json:"customer_name"`
	CustomerPhone    string               `json:"customer_phone"`
	EventPurpose     string               `json:"event_purpose,omitempty"`
	BookingStartDate string               `json:"booking_start_date"`
	BookingEndDate   string               `json:"booking_end_date"`
	StartTime        string               `json:"start_time"`
	EndTime          string               `json:"end_time"`
	Status           models.BookingStatus `json:"status"`
	TotalPrice       float64              `json:"total_price"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	Hall             *HallResponse        `json:"hall,omitempty"`
}

// BookingListItem is the flattened list row: the hall name instead of the
// embedded hall object.
type BookingListItem struct {
	ID               uint                 `json:"id"`
	HallID           uint                 `json:"hall_id"`
	HallName         string               `json:"hall_name"`
	CustomerName     string               `json:"customer_name"`
	CustomerPhone    string               `json:"customer_phone"`
	EventPurpose     string               `json:"event_purpose,omitempty"`
	BookingStartDate string               `json:"booking_start_date"`
	BookingEndDate   string               `json:"booking_end_date"`
	StartTime        string               `json:"start_time"`
	EndTime          string               `json:"end_time"`
	Status           models.BookingStatus `json:"status"`
	TotalPrice       float64              `json:"total_price"`
	CreatedAt        time.Time            `json:"created_at"`
}

type CalendarBookingItem struct {
	ID               uint                 `json:"id"`
	HallID           uint                 `json:"hall_id"`
	HallName         string               `json:"hall_name"`
	EventPurpose     string               `json:"event_purpose,omitempty"`
	CustomerName     string               `json:"customer_name"`
	CustomerPhone    string               `json:"customer_phone"`
	BookingStartDate string               `json:"booking_start_date"`
	BookingEndDate   string               `json:"booking_end_date"`
	StartTime        string               `json:"start_time"`
	EndTime          string               `json:"end_time"`
	Status           models.BookingStatus `json:"status"`
}

type CalendarDayResponse struct {
	Date          string                `json:"date"`
	Bookings      []CalendarBookingItem `json:"bookings"`
	TotalBookings int                   `json:"total_bookings"`
}

type CalendarWeekResponse struct {
	StartDate     string                `json:"start_date"`
	EndDate       string                `json:"end_date"`
	Bookings      []CalendarBookingItem `json:"bookings"`
	TotalBookings int                   `json:"total_bookings"`
}

type CalendarMonthResponse struct {
	Year          int                   `json:"year"`
	Month         int                   `json:"month"`
	Bookings      []CalendarBookingItem `json:"bookings"`
	TotalBookings int                   `json:"total_bookings"`
}

type SevaResponse struct {
	ID     uint     `json:"id"`
	Name   string   `json:"name"`
	Amount *float64 `json:"amount"`
}

type GotraResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type SevaBookingResponse struct {
	ID          uint                 `json:"id"`
	ReceiptDate string               `json:"receipt_date"`
	SevaID      uint                 `json:"seva_id"`
	SevaDate    string               `json:"seva_date"`
	Name        string               `json:"name"`
	MobileNo    string               `json:"mobile_no"`
	GotraID     *uint                `json:"gotra_id,omitempty"`
	Status      models.BookingStatus `json:"status"`
	Address     string               `json:"address,omitempty"`
	Remarks     string               `json:"remarks,omitempty"`
	Seva        *SevaResponse        `json:"seva,omitempty"`
	Gotra       *GotraResponse       `json:"gotra,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// SevaBookingListItem is the flattened list row with master-table names
// joined in.
type SevaBookingListItem struct {
	ID          uint                 `json:"id"`
	ReceiptDate string               `json:"receipt_date"`
	SevaDate    string               `json:"seva_date"`
	SevaName    string               `json:"seva_name"`
	SevaAmount  *float64             `json:"seva_amount"`
	Name        string               `json:"name"`
	MobileNo    string               `json:"mobile_no"`
	Status      models.BookingStatus `json:"status"`
	GotraName   string               `json:"gotra_name,omitempty"`
	Address     string               `json:"address,omitempty"`
	Remarks     string               `json:"remarks,omitempty"`
}

type SevaBookingListResponse struct {
	TotalCount int64                 `json:"total_count"`
	Skip       int                   `json:"skip"`
	Limit      int                   `json:"limit"`
	Data       []SevaBookingListItem `json:"data"`
}

type SevaCountItem struct {
	SevaName string `json:"seva_name"`
	Count    int    `json:"count"`
}

type SevaAggregationResponse struct {
	SevaID      uint                  `json:"seva_id"`
	SevaName    string                `json:"seva_name"`
	SevaAmount  *float64              `json:"seva_amount"`
	TotalCount  int                   `json:"total_count"`
	TotalAmount float64               `json:"total_amount"`
	Bookings    []SevaBookingListItem `json:"bookings"`
}

type DateAggregationItem struct {
	SevaDate      string                `json:"seva_date"`
	TotalBookings int                   `json:"total_bookings"`
	TotalAmount   float64               `json:"total_amount"`
	SevaList      []SevaCountItem       `json:"seva_list"`
	Bookings      []SevaBookingListItem `json:"bookings"`
}

type MultiSevaSummaryResponse struct {
	SelectedSevaIDs []uint                    `json:"selected_seva_ids"`
	TotalBookings   int                       `json:"total_bookings"`
	TotalAmount     float64                   `json:"total_amount"`
	BookingsBySeva  []SevaAggregationResponse `json:"bookings_by_seva"`
	BookingsByDate  []DateAggregationItem     `json:"bookings_by_date"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func ToHallResponse(h *models.Hall) HallResponse {
	resp := HallResponse{
		ID:            h.ID,
		Name:          h.Name,
		Capacity:      h.Capacity,
		AvailableFrom: h.AvailableFrom,
		AvailableTo:   h.AvailableTo,
		BasePrice:     h.BasePrice,
		PricePerHour:  h.PricePerHour,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
	if len(h.Facilities) > 0 {
		// Stored as a JSON array; a decode failure leaves facilities empty.
		_ = json.Unmarshal(h.Facilities, &resp.Facilities)
	}
	return resp
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:               b.ID,
		HallID:           b.HallID,
		CustomerName:     b.CustomerName,
		CustomerPhone:    b.CustomerPhone,
		EventPurpose:     b.EventPurpose,
		BookingStartDate: FormatDate(b.BookingStartDate),
		BookingEndDate:   FormatDate(b.BookingEndDate),
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Status:           b.Status,
		TotalPrice:       b.TotalPrice,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
	if b.Hall != nil {
		hall := ToHallResponse(b.Hall)
		resp.Hall = &hall
	}
	return resp
}

func ToBookingListItem(b *models.Booking) BookingListItem {
	item := BookingListItem{
		ID:               b.ID,
		HallID:           b.HallID,
		CustomerName:     b.CustomerName,
		CustomerPhone:    b.CustomerPhone,
		EventPurpose:     b.EventPurpose,
		BookingStartDate: FormatDate(b.BookingStartDate),
		BookingEndDate:   FormatDate(b.BookingEndDate),
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Status:           b.Status,
		TotalPrice:       b.TotalPrice,
		CreatedAt:        b.CreatedAt,
	}
	if b.Hall != nil {
		item.HallName = b.Hall.Name
	}
	return item
}

func ToCalendarBookingItem(b *models.Booking) CalendarBookingItem {
	item := CalendarBookingItem{
		ID:               b.ID,
		HallID:           b.HallID,
		EventPurpose:     b.EventPurpose,
		CustomerName:     b.CustomerName,
		CustomerPhone:    b.CustomerPhone,
		BookingStartDate: FormatDate(b.BookingStartDate),
		BookingEndDate:   FormatDate(b.BookingEndDate),
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Status:           b.Status,
	}
	if b.Hall != nil {
		item.HallName = b.Hall.Name
	}
	return item
}

func ToCalendarBookingItems(bookings []models.Booking) []CalendarBookingItem {
	items := make([]CalendarBookingItem, len(bookings))
	for i := range bookings {
		items[i] = ToCalendarBookingItem(&bookings[i])
	}
	return items
}

func ToSevaResponse(s *models.Seva) SevaResponse {
	return SevaResponse{ID: s.ID, Name: s.Name, Amount: s.Amount}
}

func ToGotraResponse(g *models.Gotra) GotraResponse {
	return GotraResponse{ID: g.ID, Name: g.Name}
}

func ToSevaBookingResponse(b *models.SevaBooking) SevaBookingResponse {
	resp := SevaBookingResponse{
		ID:          b.ID,
		ReceiptDate: FormatDate(b.ReceiptDate),
		SevaID:      b.SevaID,
		SevaDate:    FormatDate(b.SevaDate),
		Name:        b.Name,
		MobileNo:    b.MobileNo,
		GotraID:     b.GotraID,
		Status:      b.Status,
		Address:     b.Address,
		Remarks:     b.Remarks,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.Seva != nil {
		seva := ToSevaResponse(b.Seva)
		resp.Seva = &seva
	}
	if b.Gotra != nil {
		gotra := ToGotraResponse(b.Gotra)
		resp.Gotra = &gotra
	}
	return resp
}

func ToSevaBookingListItem(b *models.SevaBooking) SevaBookingListItem {
	item := SevaBookingListItem{
		ID:          b.ID,
		ReceiptDate: FormatDate(b.ReceiptDate),
		SevaDate:    FormatDate(b.SevaDate),
		Name:        b.Name,
		MobileNo:    b.MobileNo,
		Status:      b.Status,
		Address:     b.Address,
		Remarks:     b.Remarks,
	}
	if b.Seva != nil {
		item.SevaName = b.Seva.Name
		item.SevaAmount = b.Seva.Amount
	}
	if b.Gotra != nil {
		item.GotraName = b.Gotra.Name
	}
	return item
}

func ToSevaBookingListItems(bookings []models.SevaBooking) []SevaBookingListItem {
	items := make([]SevaBookingListItem, len(bookings))
	for i := range bookings {
		items[i] = ToSevaBookingListItem(&bookings[i])
	}
	return items
}

func ToSevaAggregationResponse(t *service.SevaTotals) SevaAggregationResponse {
	return SevaAggregationResponse{
		SevaID:      t.SevaID,
		SevaName:    t.SevaName,
		SevaAmount:  t.SevaAmount,
		TotalCount:  t.TotalCount,
		TotalAmount: t.TotalAmount,
		Bookings:    ToSevaBookingListItems(t.Bookings),
	}
}

func ToDateAggregationItems(groups []service.DateTotals) []DateAggregationItem {
	items := make([]DateAggregationItem, len(groups))
	for i, g := range groups {
		sevaList := make([]SevaCountItem, len(g.SevaList))
		for j, sc := range g.SevaList {
			sevaList[j] = SevaCountItem{SevaName: sc.SevaName, Count: sc.Count}
		}
		items[i] = DateAggregationItem{
			SevaDate:      FormatDate(g.SevaDate),
			TotalBookings: g.TotalBookings,
			TotalAmount:   g.TotalAmount,
			SevaList:      sevaList,
			Bookings:      ToSevaBookingListItems(g.Bookings),
		}
	}
	return items
}

func ToMultiSevaSummaryResponse(s *service.MultiSevaSummary) MultiSevaSummaryResponse {
	bySeva := make([]SevaAggregationResponse, len(s.BySeva))
	for i := range s.BySeva {
		t := s.BySeva[i]
		bySeva[i] = SevaAggregationResponse{
			SevaID:      t.SevaID,
			SevaName:    t.SevaName,
			SevaAmount:  t.SevaAmount,
			TotalCount:  t.TotalCount,
			TotalAmount: t.TotalAmount,
		}
	}
	return MultiSevaSummaryResponse{
		SelectedSevaIDs: s.SevaIDs,
		TotalBookings:   s.TotalBookings,
		TotalAmount:     s.TotalAmount,
		BookingsBySeva:  bySeva,
		BookingsByDate:  ToDateAggregationItems(s.ByDate),
	}
}
