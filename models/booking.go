package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BookingPending  = "pending"
	BookingApproved = "approved"
	BookingRejected = "rejected"
	BookingCanceled = "canceled"
)

// Booking is a student's request to occupy a room. Room and bed references
// are cleared, not cascaded, when the referent is deleted.
type Booking struct {
	gorm.Model

	StudentID uint  `json:"student_id" gorm:"index"`
	RoomID    *uint `json:"room_id,omitempty" gorm:"index"`
	BedID     *uint `json:"bed_id,omitempty" gorm:"index"`

	Status          string         `json:"status" gorm:"type:varchar(10);default:pending"`
	StartDate       datatypes.Date `json:"start_date"`
	EndDate         datatypes.Date `json:"end_date"`
	RejectionReason string         `json:"rejection_reason,omitempty" gorm:"type:text"`
	ReferenceCode   string         `json:"reference_code" gorm:"type:varchar(64)"`

	Student User  `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Room    *Room `json:"room,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:SET NULL"`
	Bed     *Bed  `json:"bed,omitempty" gorm:"foreignKey:BedID;constraint:OnDelete:SET NULL"`
}
