package models

import (
	"gorm.io/gorm"
)

// Bed is one sleeping slot in a room. IsOccupied is the source of truth
// for occupancy; booking approval and cancellation toggle it.
//
// BedNumber is a display value. Siblings are renumbered contiguously
// ("1", "2", ...) whenever a bed in the same room is deleted.
type Bed struct {
	gorm.Model

	RoomID     uint   `json:"room_id" gorm:"index"`
	BedNumber  string `json:"bed_number" gorm:"type:varchar(10)"`
	IsOccupied bool   `json:"is_occupied" gorm:"default:false"`
}
