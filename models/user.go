package models

import (
	"gorm.io/gorm"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// User is a registered student. Staff and admin accounts share the same
// table; the flags below gate management endpoints.
type User struct {
	gorm.Model

	Email        *string `json:"email,omitempty" gorm:"uniqueIndex;type:varchar(255)"`
	FirstName    string  `json:"first_name" gorm:"type:varchar(30)"`
	LastName     string  `json:"last_name" gorm:"type:varchar(30)"`
	StudentCode  string  `json:"student_code" gorm:"uniqueIndex;type:varchar(20)"`
	NationalCode string  `json:"national_code" gorm:"uniqueIndex;type:varchar(10)"`
	PhoneNumber  string  `json:"phone_number" gorm:"uniqueIndex;type:varchar(15)"`
	Gender       string  `json:"gender" gorm:"type:varchar(6);default:male"`
	Password     string  `json:"-" gorm:"type:varchar(100)"`

	IsActive bool `json:"is_active" gorm:"default:true"`
	IsStaff  bool `json:"is_staff" gorm:"default:false"`
	IsAdmin  bool `json:"is_admin" gorm:"default:false"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Staff reports whether the user may act on other students' records.
func (u *User) Staff() bool {
	return u.IsStaff || u.IsAdmin
}
