package models

import (
	"gorm.io/gorm"
)

// Room is a bookable unit inside a dorm.
//
// Full is derived state: it is recomputed from the beds' occupancy after
// every bed mutation and must never be set directly by API clients.
type Room struct {
	gorm.Model

	DormID     uint   `json:"dorm_id" gorm:"index"`
	RoomNumber string `json:"room_number" gorm:"column:room_number;type:varchar(10)"`
	Capacity   uint   `json:"capacity"`
	Floor      int    `json:"floor"`
	Full       bool   `json:"full" gorm:"default:false"`
	Price      uint   `json:"price"`

	Beds []Bed `json:"beds,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}
