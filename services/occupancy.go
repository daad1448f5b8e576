package services

import (
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"dorm-backend/models"
)

// recalculateRoomFull recomputes the room's derived Full flag from its
// beds and persists it. It must run inside the same transaction as the
// bed write that triggered it, so callers never observe a stale flag
// after their own request completes.
func recalculateRoomFull(tx *gorm.DB, roomID uint) error {
	var free int64
	if err := tx.Model(&models.Bed{}).
		Where("room_id = ? AND is_occupied = ?", roomID, false).
		Count(&free).Error; err != nil {
		return fmt.Errorf("count free beds for room %d: %w", roomID, err)
	}

	if err := tx.Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("full", free == 0).Error; err != nil {
		return fmt.Errorf("update full flag for room %d: %w", roomID, err)
	}
	return nil
}

// resequenceRoomBeds rewrites the remaining beds of a room as "1", "2", ...
// in their current lexicographic bed_number order. Called after a bed is
// deleted; this is shift-down renumbering, not gap preservation.
func resequenceRoomBeds(tx *gorm.DB, roomID uint) error {
	var beds []models.Bed
	if err := tx.Where("room_id = ?", roomID).
		Order("bed_number").
		Find(&beds).Error; err != nil {
		return fmt.Errorf("list beds for room %d: %w", roomID, err)
	}

	for i := range beds {
		number := strconv.Itoa(i + 1)
		if beds[i].BedNumber == number {
			continue
		}
		if err := tx.Model(&beds[i]).Update("bed_number", number).Error; err != nil {
			return fmt.Errorf("renumber bed %d: %w", beds[i].ID, err)
		}
	}
	return nil
}

// countBeds returns how many beds currently belong to the room.
func countBeds(tx *gorm.DB, roomID uint) (int64, error) {
	var n int64
	err := tx.Model(&models.Bed{}).Where("room_id = ?", roomID).Count(&n).Error
	return n, err
}
