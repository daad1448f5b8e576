package models

import (
	"gorm.io/gorm"
)

// Dorm is a residential building. GenderRestriction gates booking
// eligibility: every dorm is either male-only or female-only.
type Dorm struct {
	gorm.Model

	Name              string `json:"name" gorm:"type:varchar(100)"`
	Location          string `json:"location" gorm:"type:text"`
	GenderRestriction string `json:"gender_restriction" gorm:"type:varchar(6);default:male"`
	Description       string `json:"description,omitempty" gorm:"type:text"`

	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:DormID;constraint:OnDelete:CASCADE"`
}
