package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"dorm-backend/models"
)

type DormService struct {
	DB *gorm.DB
}

func NewDormService(db *gorm.DB) *DormService {
	return &DormService{DB: db}
}

type CreateDormInput struct {
	Name              string `json:"name" binding:"required"`
	Location          string `json:"location" binding:"required"`
	GenderRestriction string `json:"gender_restriction" binding:"required,oneof=male female"`
	Description       string `json:"description"`
}

func (s *DormService) Create(in CreateDormInput) (models.Dorm, error) {
	dorm := models.Dorm{
		Name:              strings.TrimSpace(in.Name),
		Location:          in.Location,
		GenderRestriction: in.GenderRestriction,
		Description:       in.Description,
	}
	if err := s.DB.Create(&dorm).Error; err != nil {
		return models.Dorm{}, err
	}
	return dorm, nil
}

// DormFilter narrows List results. Name and Location match as substrings,
// GenderRestriction exactly.
type DormFilter struct {
	Name              string
	Location          string
	GenderRestriction string
}

func (s *DormService) List(f DormFilter) ([]models.Dorm, error) {
	q := s.DB.Preload("Rooms")
	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+f.Name+"%")
	}
	if f.Location != "" {
		q = q.Where("location LIKE ?", "%"+f.Location+"%")
	}
	if f.GenderRestriction != "" {
		q = q.Where("gender_restriction = ?", f.GenderRestriction)
	}

	var dorms []models.Dorm
	err := q.Find(&dorms).Error
	return dorms, err
}

func (s *DormService) GetByID(id uint) (models.Dorm, error) {
	var dorm models.Dorm
	if err := s.DB.Preload("Rooms.Beds").First(&dorm, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Dorm{}, ErrNotFound
		}
		return models.Dorm{}, err
	}
	return dorm, nil
}

// Delete removes the dorm with its rooms and their beds.
func (s *DormService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var rooms []models.Room
		if err := tx.Where("dorm_id = ?", id).Find(&rooms).Error; err != nil {
			return err
		}
		for _, room := range rooms {
			if err := tx.Where("room_id = ?", room.ID).Delete(&models.Bed{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("dorm_id = ?", id).Delete(&models.Room{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Dorm{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
