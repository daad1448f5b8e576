package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dorm-backend/models"
)

func createTestBooking(t *testing.T, db *gorm.DB, studentID, roomID uint) models.Booking {
	t.Helper()
	booking := models.Booking{StudentID: studentID, RoomID: &roomID, Status: models.BookingPending}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}

func TestCreateTransactionCopiesRoomPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	dorm := createTestDorm(t, db, models.GenderMale)
	room := createTestRoom(t, db, dorm.ID, "101", 2)
	student := createTestStudent(t, db, "1001", models.GenderMale)
	booking := createTestBooking(t, db, student.ID, room.ID)

	txn, err := svc.Create(student, CreateTransactionInput{BookingID: booking.ID})
	require.NoError(t, err)
	assert.Equal(t, room.Price, txn.Amount)
	assert.Equal(t, models.TransactionPending, txn.Status)
}

func TestCreateTransactionRules(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	dorm := createTestDorm(t, db, models.GenderMale)
	room := createTestRoom(t, db, dorm.ID, "101", 2)
	owner := createTestStudent(t, db, "1001", models.GenderMale)
	other := createTestStudent(t, db, "1002", models.GenderMale)
	booking := createTestBooking(t, db, owner.ID, room.ID)

	// Unknown booking.
	_, err := svc.Create(owner, CreateTransactionInput{BookingID: 999})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	// Someone else's booking.
	_, err = svc.Create(other, CreateTransactionInput{BookingID: booking.ID})
	assert.ErrorIs(t, err, ErrForbidden)

	// Second pending transaction for the same booking.
	_, err = svc.Create(owner, CreateTransactionInput{BookingID: booking.ID})
	require.NoError(t, err)
	_, err = svc.Create(owner, CreateTransactionInput{BookingID: booking.ID})
	assert.ErrorAs(t, err, &ve)
}

func TestMarkPaidAllowsNewPendingTransaction(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	dorm := createTestDorm(t, db, models.GenderMale)
	room := createTestRoom(t, db, dorm.ID, "101", 2)
	student := createTestStudent(t, db, "1001", models.GenderMale)
	booking := createTestBooking(t, db, student.ID, room.ID)

	txn, err := svc.Create(student, CreateTransactionInput{BookingID: booking.ID})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(txn.ID, "REF-42")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionPaid, paid.Status)
	assert.Equal(t, "REF-42", paid.RefID)

	_, err = svc.MarkPaid(txn.ID, "")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	// The pending slot is free again.
	_, err = svc.Create(student, CreateTransactionInput{BookingID: booking.ID})
	assert.NoError(t, err)
}

func TestDeleteTransactionRules(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	dorm := createTestDorm(t, db, models.GenderMale)
	room := createTestRoom(t, db, dorm.ID, "101", 2)
	owner := createTestStudent(t, db, "1001", models.GenderMale)
	other := createTestStudent(t, db, "1002", models.GenderMale)
	booking := createTestBooking(t, db, owner.ID, room.ID)

	txn, err := svc.Create(owner, CreateTransactionInput{BookingID: booking.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(other, txn.ID), ErrForbidden)

	_, err = svc.MarkPaid(txn.ID, "REF-1")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Delete(owner, txn.ID), ErrForbidden, "paid transactions cannot be deleted")
}

func TestTransactionVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	dorm := createTestDorm(t, db, models.GenderMale)
	room := createTestRoom(t, db, dorm.ID, "101", 2)
	alice := createTestStudent(t, db, "1001", models.GenderMale)
	bob := createTestStudent(t, db, "1002", models.GenderMale)
	staff := createTestStaff(t, db, "9001")

	aliceTxn, err := svc.Create(alice, CreateTransactionInput{BookingID: createTestBooking(t, db, alice.ID, room.ID).ID})
	require.NoError(t, err)
	_, err = svc.Create(bob, CreateTransactionInput{BookingID: createTestBooking(t, db, bob.ID, room.ID).ID})
	require.NoError(t, err)

	own, err := svc.List(alice)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := svc.List(staff)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.GetByID(bob, aliceTxn.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.GetByID(staff, aliceTxn.ID)
	assert.NoError(t, err)
}

func TestFinancialReport(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)

	dormA := createTestDorm(t, db, models.GenderMale)
	dormB := createTestDorm(t, db, models.GenderFemale)
	require.NoError(t, db.Model(&dormA).Update("name", "North Hall").Error)
	require.NoError(t, db.Model(&dormB).Update("name", "South Hall").Error)
	roomA := createTestRoom(t, db, dormA.ID, "101", 2)
	roomB := createTestRoom(t, db, dormB.ID, "101", 2)
	require.NoError(t, db.Model(&roomB).Update("price", 800).Error)

	alice := createTestStudent(t, db, "1001", models.GenderMale)
	sara := createTestStudent(t, db, "1002", models.GenderFemale)

	// Paid in dorm A, paid in dorm B, one still pending in dorm A.
	txnA, err := svc.Create(alice, CreateTransactionInput{BookingID: createTestBooking(t, db, alice.ID, roomA.ID).ID})
	require.NoError(t, err)
	_, err = svc.MarkPaid(txnA.ID, "REF-A")
	require.NoError(t, err)

	txnB, err := svc.Create(sara, CreateTransactionInput{BookingID: createTestBooking(t, db, sara.ID, roomB.ID).ID})
	require.NoError(t, err)
	_, err = svc.MarkPaid(txnB.ID, "REF-B")
	require.NoError(t, err)

	_, err = svc.Create(alice, CreateTransactionInput{BookingID: createTestBooking(t, db, alice.ID, roomA.ID).ID})
	require.NoError(t, err)

	report, err := svc.Financial()
	require.NoError(t, err)

	assert.Equal(t, uint(500+800), report.TotalPaid)
	assert.Equal(t, uint(500), report.TotalUnpaid)

	require.Len(t, report.PaidByDorm, 2)
	byName := map[string]uint{}
	for _, row := range report.PaidByDorm {
		byName[row.DormName] = row.Total
	}
	assert.Equal(t, uint(500), byName["North Hall"])
	assert.Equal(t, uint(800), byName["South Hall"])
}
