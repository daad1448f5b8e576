package models

import (
	"gorm.io/gorm"
)

// Complaint is a thread opened by a student; messages hang off it like a
// small chat room between the student and staff.
type Complaint struct {
	gorm.Model

	StudentID uint   `json:"student_id" gorm:"index"`
	Title     string `json:"title" gorm:"type:varchar(255)"`
	IsRead    bool   `json:"is_read" gorm:"default:false"`

	Student  User               `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Messages []ComplaintMessage `json:"messages,omitempty" gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE"`
}

type ComplaintMessage struct {
	gorm.Model

	ComplaintID uint   `json:"complaint_id" gorm:"index"`
	SenderID    uint   `json:"sender_id" gorm:"index"`
	Message     string `json:"message" gorm:"type:text"`

	Sender User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}
