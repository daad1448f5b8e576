package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dorm-backend/models"
)

func validRegisterInput(code string) RegisterInput {
	return RegisterInput{
		FirstName:    "Sara",
		LastName:     "Ahmadi",
		StudentCode:  code,
		NationalCode: "nc-" + code,
		PhoneNumber:  "09121234567",
		Gender:       models.GenderFemale,
		Password:     "secret123",
	}
}

func TestNormalizePhoneNumber(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "international prefix", in: "+989121234567", want: "09121234567"},
		{name: "missing leading zero", in: "9121234567", want: "09121234567"},
		{name: "already local", in: "09121234567", want: "09121234567"},
		{name: "unsupported prefix", in: "121234567", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizePhoneNumber(tc.in)
			if tc.wantErr {
				var ve *ValidationError
				assert.ErrorAs(t, err, &ve)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register(validRegisterInput("40012345"))
	require.NoError(t, err)
	assert.Equal(t, "40012345", user.StudentCode)
	assert.Equal(t, "09121234567", user.PhoneNumber)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")

	got, err := svc.Authenticate("40012345", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate("40012345", "wrong")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Authenticate("does-not-exist", "secret123")
	assert.ErrorAs(t, err, &ve)
}

func TestRegisterDuplicateStudentCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Register(validRegisterInput("40012345"))
	require.NoError(t, err)

	dup := validRegisterInput("40012345")
	dup.PhoneNumber = "09129999999"
	dup.NationalCode = "other"
	_, err = svc.Register(dup)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register(validRegisterInput("40012345"))
	require.NoError(t, err)
	require.NoError(t, db.Model(&user).Update("is_active", false).Error)

	_, err = svc.Authenticate("40012345", "secret123")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}
