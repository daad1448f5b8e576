package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"dorm-backend/models"
)

type TransactionService struct {
	DB *gorm.DB
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{DB: db}
}

type CreateTransactionInput struct {
	BookingID   uint   `json:"booking_id" binding:"required"`
	Gateway     string `json:"gateway" binding:"omitempty,oneof=zarinpal idpay payir"`
	Description string `json:"description"`
}

// Create opens a pending transaction for one of the caller's bookings.
// The amount is copied from the booked room's monthly price; at most one
// pending transaction may exist per booking.
func (s *TransactionService) Create(student models.User, in CreateTransactionInput) (models.Transaction, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room").First(&booking, in.BookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Transaction{}, validationErrorf("booking %d was not found", in.BookingID)
		}
		return models.Transaction{}, err
	}

	if booking.StudentID != student.ID {
		return models.Transaction{}, ErrForbidden
	}
	if booking.Room == nil {
		return models.Transaction{}, validationErrorf("booking %d has no room to charge for", in.BookingID)
	}

	var pending int64
	if err := s.DB.Model(&models.Transaction{}).
		Where("booking_id = ? AND status = ?", booking.ID, models.TransactionPending).
		Count(&pending).Error; err != nil {
		return models.Transaction{}, err
	}
	if pending > 0 {
		return models.Transaction{}, validationErrorf("a pending transaction already exists for this booking")
	}

	txn := models.Transaction{
		StudentID:   student.ID,
		BookingID:   booking.ID,
		Amount:      booking.Room.Price,
		Status:      models.TransactionPending,
		Gateway:     in.Gateway,
		Description: in.Description,
	}
	if err := s.DB.Create(&txn).Error; err != nil {
		return models.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return txn, nil
}

// List returns all transactions for staff, newest first, and only the
// caller's own for students.
func (s *TransactionService) List(user models.User) ([]models.Transaction, error) {
	q := s.DB.Order("created_at DESC")
	if !user.Staff() {
		q = q.Where("student_id = ?", user.ID)
	}

	var txns []models.Transaction
	err := q.Find(&txns).Error
	return txns, err
}

func (s *TransactionService) GetByID(user models.User, id uint) (models.Transaction, error) {
	var txn models.Transaction
	if err := s.DB.First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Transaction{}, ErrNotFound
		}
		return models.Transaction{}, err
	}
	if !user.Staff() && txn.StudentID != user.ID {
		return models.Transaction{}, ErrForbidden
	}
	return txn, nil
}

// Delete removes a transaction. Only the owning student may delete, and
// only while it is still pending.
func (s *TransactionService) Delete(user models.User, id uint) error {
	var txn models.Transaction
	if err := s.DB.First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if txn.StudentID != user.ID {
		return ErrForbidden
	}
	if txn.Status != models.TransactionPending {
		return ErrForbidden
	}
	return s.DB.Delete(&txn).Error
}

// MarkPaid records a successful payment with its gateway reference.
func (s *TransactionService) MarkPaid(id uint, refID string) (models.Transaction, error) {
	var txn models.Transaction
	if err := s.DB.First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Transaction{}, ErrNotFound
		}
		return models.Transaction{}, err
	}
	if refID == "" {
		return models.Transaction{}, validationErrorf("a payment reference id is required")
	}

	txn.Status = models.TransactionPaid
	txn.RefID = refID
	if err := s.DB.Save(&txn).Error; err != nil {
		return models.Transaction{}, err
	}
	return txn, nil
}

type StatusTotal struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
	Total  uint   `json:"total"`
}

type DormRevenue struct {
	DormID   uint   `json:"dorm_id"`
	DormName string `json:"dorm_name"`
	Total    uint   `json:"total"`
}

type FinancialReport struct {
	ByStatus    []StatusTotal `json:"by_status"`
	PaidByDorm  []DormRevenue `json:"paid_by_dorm"`
	TotalPaid   uint          `json:"total_paid"`
	TotalUnpaid uint          `json:"total_unpaid"`
}

// Financial aggregates transaction amounts by status and, for paid
// transactions, revenue per dorm through the booking -> room -> dorm
// chain.
func (s *TransactionService) Financial() (FinancialReport, error) {
	var report FinancialReport

	if err := s.DB.Model(&models.Transaction{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Group("status").
		Order("status").
		Scan(&report.ByStatus).Error; err != nil {
		return FinancialReport{}, fmt.Errorf("aggregate by status: %w", err)
	}

	for _, row := range report.ByStatus {
		if row.Status == models.TransactionPaid {
			report.TotalPaid += row.Total
		} else {
			report.TotalUnpaid += row.Total
		}
	}

	if err := s.DB.Model(&models.Transaction{}).
		Select("dorms.id AS dorm_id, dorms.name AS dorm_name, COALESCE(SUM(transactions.amount), 0) AS total").
		Joins("JOIN bookings ON bookings.id = transactions.booking_id AND bookings.deleted_at IS NULL").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Joins("JOIN dorms ON dorms.id = rooms.dorm_id").
		Where("transactions.status = ?", models.TransactionPaid).
		Group("dorms.id, dorms.name").
		Order("dorms.id").
		Scan(&report.PaidByDorm).Error; err != nil {
		return FinancialReport{}, fmt.Errorf("aggregate paid revenue by dorm: %w", err)
	}

	return report, nil
}
