package users

import (
	"errors"
	"strings"

	"github.com/recipevault/recipevault/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// NormalizeEmail lower-cases the domain part of an address and leaves the
// local part untouched.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)

	at := strings.LastIndex(email, "@")

	if at < 0 {
		return email
	}

	return email[:at+1] + strings.ToLower(email[at+1:])
}

// Create stores a new user with a bcrypt password hash. The email is
// normalized first and must be non-empty.
func Create(db *gorm.DB, email, password, name string) (*models.User, error) {
	email = NormalizeEmail(email)

	if email == "" {
		return nil, ErrEmailRequired
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// CreateSuperuser creates a user with staff and superuser flags set.
func CreateSuperuser(db *gorm.DB, email, password string) (*models.User, error) {
	user, err := Create(db, email, password, "")

	if err != nil {
		return nil, err
	}

	user.IsStaff = true
	user.IsSuperuser = true

	if err := db.Model(user).Updates(map[string]interface{}{
		"is_staff":     true,
		"is_superuser": true,
	}).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate resolves an email/password pair to the stored user.
// Unknown emails and wrong passwords both return ErrInvalidCredentials.
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User

	err := db.Where("email = ?", NormalizeEmail(email)).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}
