package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dorm-backend/models"
)

func TestComplaintVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewComplaintService(db)
	alice := createTestStudent(t, db, "1001", models.GenderFemale)
	bob := createTestStudent(t, db, "1002", models.GenderMale)
	staff := createTestStaff(t, db, "9001")

	_, err := svc.Create(alice, CreateComplaintInput{Title: "Broken heater"})
	require.NoError(t, err)
	_, err = svc.Create(bob, CreateComplaintInput{Title: "Noisy neighbors"})
	require.NoError(t, err)

	own, err := svc.List(alice)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "Broken heater", own[0].Title)

	all, err := svc.List(staff)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestComplaintMessagePermissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewComplaintService(db)
	owner := createTestStudent(t, db, "1001", models.GenderFemale)
	other := createTestStudent(t, db, "1002", models.GenderMale)
	staff := createTestStaff(t, db, "9001")

	complaint, err := svc.Create(owner, CreateComplaintInput{Title: "Broken heater"})
	require.NoError(t, err)

	// Owner and staff may post, a stranger may not.
	_, err = svc.AddMessage(owner, complaint.ID, CreateMessageInput{Message: "It's been cold for a week."})
	require.NoError(t, err)
	staffMsg, err := svc.AddMessage(staff, complaint.ID, CreateMessageInput{Message: "A technician is on the way."})
	require.NoError(t, err)
	_, err = svc.AddMessage(other, complaint.ID, CreateMessageInput{Message: "me too"})
	assert.ErrorIs(t, err, ErrForbidden)

	// Same rule for reading the thread.
	msgs, err := svc.Messages(owner, complaint.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
	_, err = svc.Messages(other, complaint.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Only the sender may edit; even staff cannot edit someone else's message.
	_, err = svc.UpdateMessage(staff, staffMsg.ID, CreateMessageInput{Message: "A technician arrives tomorrow."})
	require.NoError(t, err)
	_, err = svc.UpdateMessage(owner, staffMsg.ID, CreateMessageInput{Message: "hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	// Sender or staff may delete a message.
	assert.ErrorIs(t, svc.DeleteMessage(other, staffMsg.ID), ErrForbidden)
	assert.NoError(t, svc.DeleteMessage(staff, staffMsg.ID))
}

func TestComplaintDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewComplaintService(db)
	owner := createTestStudent(t, db, "1001", models.GenderFemale)
	other := createTestStudent(t, db, "1002", models.GenderMale)
	staff := createTestStaff(t, db, "9001")

	complaint, err := svc.Create(owner, CreateComplaintInput{Title: "Broken heater"})
	require.NoError(t, err)
	_, err = svc.AddMessage(owner, complaint.ID, CreateMessageInput{Message: "still cold"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(other, complaint.ID), ErrForbidden)
	require.NoError(t, svc.Delete(owner, complaint.ID))

	// Messages go with the thread.
	var msgCount int64
	require.NoError(t, db.Model(&models.ComplaintMessage{}).Where("complaint_id = ?", complaint.ID).Count(&msgCount).Error)
	assert.Zero(t, msgCount)

	assert.ErrorIs(t, svc.Delete(staff, complaint.ID), ErrNotFound)

	staffOwned, err := svc.Create(other, CreateComplaintInput{Title: "Leaky faucet"})
	require.NoError(t, err)
	assert.NoError(t, svc.Delete(staff, staffOwned.ID), "staff may delete any thread")
}
