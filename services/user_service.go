// Package services: services/user_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gaittrib/config"
	"gaittrib/logger"
	"gaittrib/models"
)

// SignupInput carries the fields of the signup form.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Gender   models.Gender
	Age      int
	Phone    string
}

// ProfileInput carries the demographic fields of the complete-profile form.
type ProfileInput struct {
	Gender models.Gender
	Age    int
	Phone  string
}

// UserServiceInterface manages accounts, credentials and profile state.
type UserServiceInterface interface {
	Signup(input SignupInput) (*models.User, error)
	Login(email, password string) (*models.User, error)
	CompleteProfile(userID string, input ProfileInput) (*models.User, error)
	Get(userID string) (*models.User, error)
}

// UserService implements account management. The role of a new account
// comes from the ADMIN_EMAILS allowlist in configuration.
type UserService struct {
	db  *gorm.DB
	cfg config.Config
}

// NewUserService creates a UserService.
func NewUserService(db *gorm.DB, cfg config.Config) *UserService {
	return &UserService{db: db, cfg: cfg}
}

func validGender(g models.Gender) bool {
	switch g {
	case models.GenderMale, models.GenderFemale, models.GenderOther:
		return true
	}
	return false
}

// Signup creates a credentials account. Demographics are collected up
// front, so the profile is complete from the start.
func (s *UserService) Signup(input SignupInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if len(strings.TrimSpace(input.Name)) < 2 {
		return nil, NewValidationError("name must be at least 2 characters")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, NewValidationError("a valid email is required")
	}
	if len(input.Password) < 8 {
		return nil, NewValidationError("password must be at least 8 characters")
	}
	if !validGender(input.Gender) {
		return nil, NewValidationError("gender must be MALE, FEMALE or OTHER")
	}
	if input.Age < 10 || input.Age > 100 {
		return nil, NewValidationError("age must be between 10 and 100")
	}
	if len(strings.TrimSpace(input.Phone)) < 8 {
		return nil, NewValidationError("phone must be at least 8 digits")
	}

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, NewValidationError("an account with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := models.RoleUser
	if s.cfg.IsAdminEmail(email) {
		role = models.RoleAdmin
	}

	gender := input.Gender
	age := input.Age
	user := models.User{
		Name:             input.Name,
		Email:            email,
		PasswordHash:     string(hash),
		Role:             role,
		Gender:           &gender,
		Age:              &age,
		Phone:            input.Phone,
		ProfileCompleted: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	logger.Info.Printf("Signup: user %s (%s) role=%s", user.ID, user.Email, user.Role)
	return &user, nil
}

// Login verifies credentials and returns the account. Failures are
// deliberately indistinguishable between unknown email and wrong password.
func (s *UserService) Login(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if user.PasswordHash == "" {
		return nil, ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		logger.Warn.Printf("Login: bad password for %s", email)
		return nil, ErrUnauthorized
	}

	return &user, nil
}

// CompleteProfile fills in the demographic fields and flips the
// profile-completion flag that gates registration.
func (s *UserService) CompleteProfile(userID string, input ProfileInput) (*models.User, error) {
	if !validGender(input.Gender) {
		return nil, NewValidationError("gender must be MALE, FEMALE or OTHER")
	}
	if input.Age < 10 || input.Age > 100 {
		return nil, NewValidationError("age must be between 10 and 100")
	}
	if len(strings.TrimSpace(input.Phone)) < 8 {
		return nil, NewValidationError("phone must be at least 8 digits")
	}

	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	gender := input.Gender
	age := input.Age
	updates := map[string]interface{}{
		"gender":            gender,
		"age":               age,
		"phone":             input.Phone,
		"profile_completed": true,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	user.Gender = &gender
	user.Age = &age
	user.Phone = input.Phone
	user.ProfileCompleted = true

	logger.Info.Printf("CompleteProfile: user %s", userID)
	return user, nil
}

// Get loads one user by id.
func (s *UserService) Get(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}
