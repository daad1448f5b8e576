package services

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"dorm-backend/models"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// CreateRoomInput carries the admin-facing fields for room creation.
// RoomNumber is optional; when empty the next number for the floor is
// assigned automatically.
type CreateRoomInput struct {
	DormID     uint   `json:"dorm_id" binding:"required"`
	Floor      int    `json:"floor"`
	Capacity   uint   `json:"capacity" binding:"required"`
	RoomNumber string `json:"room_number"`
	Price      uint   `json:"price"`
}

// Create persists a room and, when a capacity is given, auto-populates
// one bed per slot numbered "1".."capacity". Room row, beds and the
// derived full flag are written in a single transaction.
func (s *RoomService) Create(in CreateRoomInput) (models.Room, error) {
	var dorm models.Dorm
	if err := s.DB.First(&dorm, in.DormID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, validationErrorf("dorm %d does not exist", in.DormID)
		}
		return models.Room{}, err
	}

	room := models.Room{
		DormID:     in.DormID,
		RoomNumber: in.RoomNumber,
		Capacity:   in.Capacity,
		Floor:      in.Floor,
		Price:      in.Price,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if room.RoomNumber == "" {
			number, err := nextRoomNumber(tx, in.DormID, in.Floor)
			if err != nil {
				return err
			}
			room.RoomNumber = number
		}

		if err := tx.Create(&room).Error; err != nil {
			return fmt.Errorf("create room: %w", err)
		}

		for i := uint(1); i <= in.Capacity; i++ {
			bed := models.Bed{RoomID: room.ID, BedNumber: strconv.FormatUint(uint64(i), 10)}
			if err := tx.Create(&bed).Error; err != nil {
				return fmt.Errorf("auto-populate bed %d: %w", i, err)
			}
		}

		return recalculateRoomFull(tx, room.ID)
	})
	if err != nil {
		return models.Room{}, err
	}

	// Re-read so the response carries the beds and the recomputed flag.
	if err := s.DB.Preload("Beds").First(&room, room.ID).Error; err != nil {
		return models.Room{}, err
	}
	return room, nil
}

// nextRoomNumber scans sibling rooms on the same floor of the same dorm
// and produces the next sequential number: "{floor}01" when the floor is
// empty, otherwise max(existing)+1. Every sibling number must itself have
// been produced by this scheme; a hand-entered non-numeric value fails
// the request rather than risking a colliding assignment.
func nextRoomNumber(tx *gorm.DB, dormID uint, floor int) (string, error) {
	var numbers []string
	if err := tx.Model(&models.Room{}).
		Where("dorm_id = ? AND floor = ?", dormID, floor).
		Pluck("room_number", &numbers).Error; err != nil {
		return "", fmt.Errorf("list sibling room numbers: %w", err)
	}

	if len(numbers) == 0 {
		return fmt.Sprintf("%d01", floor), nil
	}

	highest := 0
	for _, raw := range numbers {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return "", validationErrorf("existing room number %q on floor %d is not numeric; assign a room number explicitly", raw, floor)
		}
		if n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1), nil
}

// RoomFilter narrows List results; nil fields are ignored.
type RoomFilter struct {
	DormID   *uint
	Floor    *int
	Capacity *uint
}

func (s *RoomService) List(f RoomFilter) ([]models.Room, error) {
	q := s.DB.Preload("Beds")
	if f.DormID != nil {
		q = q.Where("dorm_id = ?", *f.DormID)
	}
	if f.Floor != nil {
		q = q.Where("floor = ?", *f.Floor)
	}
	if f.Capacity != nil {
		q = q.Where("capacity = ?", *f.Capacity)
	}

	var rooms []models.Room
	err := q.Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("Beds").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrNotFound
		}
		return models.Room{}, err
	}
	return room, nil
}

// AvailableBeds counts the room's unoccupied beds on demand.
func (s *RoomService) AvailableBeds(roomID uint) (int64, error) {
	if _, err := s.GetByID(roomID); err != nil {
		return 0, err
	}
	var free int64
	err := s.DB.Model(&models.Bed{}).
		Where("room_id = ? AND is_occupied = ?", roomID, false).
		Count(&free).Error
	return free, err
}

func (s *RoomService) Delete(id uint) error {
	res := s.DB.Select("Beds").Delete(&models.Room{Model: gorm.Model{ID: id}})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
