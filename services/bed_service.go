package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"dorm-backend/models"
)

type BedService struct {
	DB *gorm.DB
}

func NewBedService(db *gorm.DB) *BedService {
	return &BedService{DB: db}
}

type CreateBedInput struct {
	RoomID     uint   `json:"room_id" binding:"required"`
	BedNumber  string `json:"bed_number"`
	IsOccupied bool   `json:"is_occupied"`
}

// Create adds a bed to a room after the capacity guard passes, then
// recomputes the room's full flag. The guard is a point-in-time check:
// concurrent creations against the same room can jointly overshoot
// capacity, matching the behavior this system replaces.
func (s *BedService) Create(in CreateBedInput) (models.Bed, error) {
	var room models.Room
	if err := s.DB.First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Bed{}, validationErrorf("room %d does not exist", in.RoomID)
		}
		return models.Bed{}, err
	}

	bed := models.Bed{RoomID: in.RoomID, BedNumber: in.BedNumber, IsOccupied: in.IsOccupied}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		n, err := countBeds(tx, room.ID)
		if err != nil {
			return fmt.Errorf("count beds: %w", err)
		}
		if n >= int64(room.Capacity) {
			return validationErrorf("the number of beds cannot exceed the room's capacity (%d)", room.Capacity)
		}

		if bed.BedNumber == "" {
			bed.BedNumber = fmt.Sprintf("%d", n+1)
		}
		if err := tx.Create(&bed).Error; err != nil {
			return fmt.Errorf("create bed: %w", err)
		}

		return recalculateRoomFull(tx, room.ID)
	})
	if err != nil {
		return models.Bed{}, err
	}
	return bed, nil
}

type UpdateBedInput struct {
	IsOccupied *bool   `json:"is_occupied"`
	BedNumber  *string `json:"bed_number"`
}

// Update saves occupancy or display-number changes and unconditionally
// recomputes the owning room's full flag.
func (s *BedService) Update(id uint, in UpdateBedInput) (models.Bed, error) {
	var bed models.Bed
	if err := s.DB.First(&bed, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Bed{}, ErrNotFound
		}
		return models.Bed{}, err
	}

	if in.IsOccupied != nil {
		bed.IsOccupied = *in.IsOccupied
	}
	if in.BedNumber != nil {
		bed.BedNumber = *in.BedNumber
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&bed).Error; err != nil {
			return fmt.Errorf("save bed %d: %w", id, err)
		}
		return recalculateRoomFull(tx, bed.RoomID)
	})
	if err != nil {
		return models.Bed{}, err
	}
	return bed, nil
}

// Delete removes a bed, renumbers its surviving siblings contiguously and
// recomputes the room's full flag, all in one transaction.
func (s *BedService) Delete(id uint) error {
	var bed models.Bed
	if err := s.DB.First(&bed, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&bed).Error; err != nil {
			return fmt.Errorf("delete bed %d: %w", id, err)
		}
		if err := resequenceRoomBeds(tx, bed.RoomID); err != nil {
			return err
		}
		return recalculateRoomFull(tx, bed.RoomID)
	})
}

// BedFilter narrows List results; nil fields are ignored.
type BedFilter struct {
	RoomID     *uint
	BedNumber  *string
	IsOccupied *bool
}

func (s *BedService) List(f BedFilter) ([]models.Bed, error) {
	q := s.DB.Model(&models.Bed{})
	if f.RoomID != nil {
		q = q.Where("room_id = ?", *f.RoomID)
	}
	if f.BedNumber != nil {
		q = q.Where("bed_number = ?", *f.BedNumber)
	}
	if f.IsOccupied != nil {
		q = q.Where("is_occupied = ?", *f.IsOccupied)
	}

	var beds []models.Bed
	err := q.Find(&beds).Error
	return beds, err
}
