package models

import (
	"gorm.io/gorm"
)

const (
	TransactionPending = "pending"
	TransactionPaid    = "paid"
	TransactionFailed  = "failed"
)

// Transaction tracks a payment owed for a booking. The amount is copied
// from the room's monthly price at creation time. Gateway/RefID are
// bookkeeping only; no payment provider is called.
type Transaction struct {
	gorm.Model

	StudentID uint `json:"student_id" gorm:"index"`
	BookingID uint `json:"booking_id" gorm:"index"`

	Amount      uint   `json:"amount"`
	Status      string `json:"status" gorm:"type:varchar(10);default:pending"`
	Gateway     string `json:"gateway,omitempty" gorm:"type:varchar(20)"`
	RefID       string `json:"ref_id,omitempty" gorm:"column:ref_id;type:varchar(100)"`
	Description string `json:"description,omitempty" gorm:"type:text"`

	Student User    `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Booking Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
}
