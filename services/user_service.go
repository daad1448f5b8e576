package services

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dorm-backend/models"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type RegisterInput struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	StudentCode  string `json:"student_code" binding:"required"`
	NationalCode string `json:"national_code" binding:"required"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
	Gender       string `json:"gender" binding:"required,oneof=male female"`
	Password     string `json:"password" binding:"required,min=6"`
}

// Register creates a student account. Phone numbers are normalized to the
// local "0..." form; student code, national code, phone and email must be
// unique.
func (s *UserService) Register(in RegisterInput) (models.User, error) {
	phone, err := normalizePhoneNumber(in.PhoneNumber)
	if err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		StudentCode:  strings.TrimSpace(in.StudentCode),
		NationalCode: strings.TrimSpace(in.NationalCode),
		PhoneNumber:  phone,
		Gender:       in.Gender,
		Password:     string(hash),
		IsActive:     true,
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		user.Email = &email
	}

	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return models.User{}, validationErrorf("a user with this student code, national code, phone number or email already exists")
		}
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies the student code and password, returning the user
// on success. Inactive accounts cannot log in.
func (s *UserService) Authenticate(studentCode, password string) (models.User, error) {
	var user models.User
	if err := s.DB.Where("student_code = ?", strings.TrimSpace(studentCode)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, validationErrorf("invalid credentials")
		}
		return models.User{}, err
	}
	if !user.IsActive {
		return models.User{}, validationErrorf("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return models.User{}, validationErrorf("invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetByID(id uint) (models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// normalizePhoneNumber rewrites "+98xxxxxxxxxx" and "9xxxxxxxxx" into the
// local "0..." form, and rejects anything else that does not already
// start with 0.
func normalizePhoneNumber(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(phone, "+98"):
		return "0" + phone[3:], nil
	case strings.HasPrefix(phone, "9"):
		return "0" + phone, nil
	case strings.HasPrefix(phone, "0"):
		return phone, nil
	default:
		return "", validationErrorf("phone number must start with 0 or 9")
	}
}

// isDuplicateKey detects unique-index violations from MySQL (error 1062)
// and from SQLite, which the tests run on.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
