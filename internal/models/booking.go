package models

import "time"

type Booking struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	HallID        uint   `gorm:"not null;index" json:"hall_id"`
	CustomerName  string `gorm:"not null" json:"customer_name"`
	CustomerPhone string `gorm:"not null" json:"customer_phone"`
	EventPurpose  string `json:"event_purpose,omitempty"`
	// Dates carry no time component; the daily window lives in StartTime/EndTime.
	BookingStartDate time.Time `gorm:"type:date;not null;index" json:"booking_start_date"`
	BookingEndDate   time.Time `gorm:"type:date;not null;index" json:"booking_end_date"`
	// Times are kept as the submitted "HH:MM" strings so they round-trip exactly.
	StartTime  string        `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime    string        `gorm:"type:varchar(5);not null" json:"end_time"`
	Status     BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalPrice float64       `gorm:"not null;default:0" json:"total_price"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	Hall *Hall `gorm:"foreignKey:HallID" json:"hall,omitempty"`
}
