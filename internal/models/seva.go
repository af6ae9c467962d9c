package models

import "time"

// Seva is a temple service from the master table. Amount is a pointer
// because some sevas (donation-style entries) have no fixed price.
type Seva struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Amount    *float64  `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Gotra is a customer lineage master record, referenced optionally
// by seva bookings.
type Gotra struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type SevaBooking struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	ReceiptDate time.Time     `gorm:"type:date;not null" json:"receipt_date"`
	SevaID      uint          `gorm:"not null;index" json:"seva_id"`
	SevaDate    time.Time     `gorm:"type:date;not null;index" json:"seva_date"`
	Name        string        `gorm:"not null" json:"name"`
	MobileNo    string        `gorm:"not null;index" json:"mobile_no"`
	GotraID     *uint         `gorm:"index" json:"gotra_id,omitempty"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'confirmed';index" json:"status"`
	Address     string        `json:"address,omitempty"`
	Remarks     string        `json:"remarks,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Seva  *Seva  `gorm:"foreignKey:SevaID" json:"seva,omitempty"`
	Gotra *Gotra `gorm:"foreignKey:GotraID" json:"gotra,omitempty"`
}
