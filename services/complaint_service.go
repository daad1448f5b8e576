package services

import (
	"errors"

	"gorm.io/gorm"

	"dorm-backend/models"
)

type ComplaintService struct {
	DB *gorm.DB
}

func NewComplaintService(db *gorm.DB) *ComplaintService {
	return &ComplaintService{DB: db}
}

type CreateComplaintInput struct {
	Title string `json:"title" binding:"required"`
}

func (s *ComplaintService) Create(student models.User, in CreateComplaintInput) (models.Complaint, error) {
	complaint := models.Complaint{StudentID: student.ID, Title: in.Title}
	if err := s.DB.Create(&complaint).Error; err != nil {
		return models.Complaint{}, err
	}
	return complaint, nil
}

// List returns all complaints for staff, newest first, and only the
// caller's own for students.
func (s *ComplaintService) List(user models.User) ([]models.Complaint, error) {
	q := s.DB.Order("created_at DESC")
	if !user.Staff() {
		q = q.Where("student_id = ?", user.ID)
	}

	var complaints []models.Complaint
	err := q.Find(&complaints).Error
	return complaints, err
}

// Delete removes a complaint thread. Only the owning student or staff may
// delete it; its messages go with it.
func (s *ComplaintService) Delete(user models.User, id uint) error {
	complaint, err := s.getComplaint(id)
	if err != nil {
		return err
	}
	if user.ID != complaint.StudentID && !user.Staff() {
		return ErrForbidden
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("complaint_id = ?", id).Delete(&models.ComplaintMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Complaint{}, id).Error
	})
}

type CreateMessageInput struct {
	Message string `json:"message" binding:"required"`
}

// AddMessage appends a message to a complaint thread. Only the complaint's
// owner or staff may post.
func (s *ComplaintService) AddMessage(user models.User, complaintID uint, in CreateMessageInput) (models.ComplaintMessage, error) {
	complaint, err := s.getComplaint(complaintID)
	if err != nil {
		return models.ComplaintMessage{}, err
	}
	if user.ID != complaint.StudentID && !user.Staff() {
		return models.ComplaintMessage{}, ErrForbidden
	}

	msg := models.ComplaintMessage{
		ComplaintID: complaintID,
		SenderID:    user.ID,
		Message:     in.Message,
	}
	if err := s.DB.Create(&msg).Error; err != nil {
		return models.ComplaintMessage{}, err
	}
	return msg, nil
}

// Messages lists a thread's messages oldest first, with the same
// visibility rule as AddMessage.
func (s *ComplaintService) Messages(user models.User, complaintID uint) ([]models.ComplaintMessage, error) {
	complaint, err := s.getComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if user.ID != complaint.StudentID && !user.Staff() {
		return nil, ErrForbidden
	}

	var msgs []models.ComplaintMessage
	err = s.DB.Preload("Sender").
		Where("complaint_id = ?", complaintID).
		Order("created_at").
		Find(&msgs).Error
	return msgs, err
}

// UpdateMessage edits a message body. Only the original sender may edit.
func (s *ComplaintService) UpdateMessage(user models.User, messageID uint, in CreateMessageInput) (models.ComplaintMessage, error) {
	var msg models.ComplaintMessage
	if err := s.DB.First(&msg, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ComplaintMessage{}, ErrNotFound
		}
		return models.ComplaintMessage{}, err
	}
	if user.ID != msg.SenderID {
		return models.ComplaintMessage{}, ErrForbidden
	}

	msg.Message = in.Message
	if err := s.DB.Save(&msg).Error; err != nil {
		return models.ComplaintMessage{}, err
	}
	return msg, nil
}

// DeleteMessage removes a message. The sender or staff may delete it.
func (s *ComplaintService) DeleteMessage(user models.User, messageID uint) error {
	var msg models.ComplaintMessage
	if err := s.DB.First(&msg, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if user.ID != msg.SenderID && !user.Staff() {
		return ErrForbidden
	}
	return s.DB.Delete(&msg).Error
}

func (s *ComplaintService) getComplaint(id uint) (models.Complaint, error) {
	var complaint models.Complaint
	if err := s.DB.First(&complaint, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Complaint{}, ErrNotFound
		}
		return models.Complaint{}, err
	}
	return complaint, nil
}
