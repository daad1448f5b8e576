package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"dorm-backend/models"
)

type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

const dateLayout = "2006-01-02"

type CreateBookingInput struct {
	DormID    uint   `json:"dorm_id" binding:"required"`
	RoomID    uint   `json:"room_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// Create registers a pending booking for the student after the room and
// gender gates pass. The gender gate compares the student's gender with
// the dorm's restriction exactly; there is no "any" category.
func (s *BookingService) Create(student models.User, in CreateBookingInput) (models.Booking, error) {
	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return models.Booking{}, validationErrorf("start_date must be formatted as %s", dateLayout)
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return models.Booking{}, validationErrorf("end_date must be formatted as %s", dateLayout)
	}

	var room models.Room
	if err := s.DB.Where("id = ? AND dorm_id = ?", in.RoomID, in.DormID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, validationErrorf("the selected room does not exist in this dorm")
		}
		return models.Booking{}, err
	}

	if room.Full {
		return models.Booking{}, validationErrorf("this room has reached its capacity")
	}

	var dorm models.Dorm
	if err := s.DB.First(&dorm, room.DormID).Error; err != nil {
		return models.Booking{}, fmt.Errorf("load dorm %d: %w", room.DormID, err)
	}
	if dorm.GenderRestriction != student.Gender {
		return models.Booking{}, validationErrorf("your gender does not match this dorm's restriction")
	}

	booking := models.Booking{
		StudentID:     student.ID,
		RoomID:        &room.ID,
		Status:        models.BookingPending,
		StartDate:     datatypes.Date(start),
		EndDate:       datatypes.Date(end),
		ReferenceCode: uuid.NewString(),
	}
	if err := s.DB.Create(&booking).Error; err != nil {
		return models.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

// List returns every booking for staff and only the caller's own
// bookings for students.
func (s *BookingService) List(user models.User) ([]models.Booking, error) {
	q := s.DB.Preload("Room").Preload("Bed").Order("created_at DESC")
	if !user.Staff() {
		q = q.Where("student_id = ?", user.ID)
	}

	var bookings []models.Booking
	err := q.Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetByID(user models.User, id uint) (models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room").Preload("Bed").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrNotFound
		}
		return models.Booking{}, err
	}
	if !user.Staff() && booking.StudentID != user.ID {
		return models.Booking{}, ErrForbidden
	}
	return booking, nil
}

type UpdateBookingInput struct {
	Status          *string `json:"status" binding:"omitempty,oneof=pending approved rejected canceled"`
	RejectionReason *string `json:"rejection_reason"`
	BedID           *uint   `json:"bed_id"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
}

// Update is the staff review flow. Rejection requires a reason, approval
// requires a bed; assigning a bed marks it occupied and recomputes the
// room's full flag in the same transaction.
func (s *BookingService) Update(id uint, in UpdateBookingInput) (models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrNotFound
		}
		return models.Booking{}, err
	}

	if in.Status != nil && *in.Status == models.BookingRejected {
		if in.RejectionReason == nil || *in.RejectionReason == "" {
			return models.Booking{}, validationErrorf("a rejection reason is required when rejecting a booking")
		}
	}
	if in.Status != nil && *in.Status == models.BookingApproved && in.BedID == nil {
		return models.Booking{}, validationErrorf("a bed must be assigned when approving a booking")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if in.BedID != nil {
			var bed models.Bed
			if err := tx.First(&bed, *in.BedID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return validationErrorf("bed %d does not exist", *in.BedID)
				}
				return err
			}
			if booking.RoomID == nil || bed.RoomID != *booking.RoomID {
				return validationErrorf("bed %d does not belong to the booking's room", *in.BedID)
			}

			if err := tx.Model(&bed).Update("is_occupied", true).Error; err != nil {
				return fmt.Errorf("occupy bed %d: %w", bed.ID, err)
			}
			if err := recalculateRoomFull(tx, bed.RoomID); err != nil {
				return err
			}
			booking.BedID = in.BedID
		}

		if in.Status != nil {
			booking.Status = *in.Status
		}
		if in.RejectionReason != nil {
			booking.RejectionReason = *in.RejectionReason
		}
		if in.StartDate != nil {
			start, err := time.Parse(dateLayout, *in.StartDate)
			if err != nil {
				return validationErrorf("start_date must be formatted as %s", dateLayout)
			}
			booking.StartDate = datatypes.Date(start)
		}
		if in.EndDate != nil {
			end, err := time.Parse(dateLayout, *in.EndDate)
			if err != nil {
				return validationErrorf("end_date must be formatted as %s", dateLayout)
			}
			booking.EndDate = datatypes.Date(end)
		}

		if err := tx.Save(&booking).Error; err != nil {
			return fmt.Errorf("save booking %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// Delete cancels a booking. Students may only cancel their own. An
// assigned bed is released and the room's full flag recomputed before the
// booking row is removed.
func (s *BookingService) Delete(user models.User, id uint) error {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !user.Staff() && booking.StudentID != user.ID {
		return ErrForbidden
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if booking.BedID != nil {
			var bed models.Bed
			if err := tx.First(&bed, *booking.BedID).Error; err == nil {
				if err := tx.Model(&bed).Update("is_occupied", false).Error; err != nil {
					return fmt.Errorf("release bed %d: %w", bed.ID, err)
				}
				if err := recalculateRoomFull(tx, bed.RoomID); err != nil {
					return err
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		return tx.Delete(&booking).Error
	})
}
