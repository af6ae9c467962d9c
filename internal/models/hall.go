package models

import (
	"time"

	"gorm.io/datatypes"
)

type Hall struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	Name     string         `gorm:"uniqueIndex;not null" json:"name"`
	Capacity int            `gorm:"not null" json:"capacity"`
	// Facilities is stored as a JSON array of strings, e.g. ["AC", "Stage"].
	Facilities datatypes.JSON `json:"facilities,omitempty"`
	// Optional daily availability window, "HH:MM". Empty means open all day.
	AvailableFrom string    `gorm:"type:varchar(5)" json:"available_from,omitempty"`
	AvailableTo   string    `gorm:"type:varchar(5)" json:"available_to,omitempty"`
	BasePrice     float64   `gorm:"not null;default:0" json:"base_price"`
	PricePerHour  float64   `gorm:"not null;default:0" json:"price_per_hour"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
