package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAuthEmailExists        = errors.New("auth email exists")
	ErrAuthInvalidLogin       = errors.New("auth invalid login")
	ErrPasswordMismatch       = errors.New("password mismatch")
	ErrInvalidCurrentPassword = errors.New("invalid current password")
	ErrNewPasswordMustDiffer  = errors.New("new password must differ")
	ErrPasswordChangeInvalid  = errors.New("password change invalid input")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
	UpdateRole(userID uint, role string) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func (service *AuthService) Register(emailRaw string, password string, language string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, password)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return models.User{}, ErrAuthEmailExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleMember,
		Goal:         models.GoalMaintain,
		Language:     language,
		CreatedAt:    time.Now().UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate returns ErrAuthInvalidLogin for unknown emails and wrong
// passwords alike.
func (service *AuthService) Authenticate(emailRaw string, password string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, password)
	if err != nil {
		return models.User{}, ErrAuthInvalidLogin
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAuthInvalidLogin
		}
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthInvalidLogin
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

func (service *AuthService) FindByEmail(emailRaw string) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return service.users.FindByNormalizedEmail(email)
}

func (service *AuthService) ChangePassword(user models.User, currentPassword string, newPassword string, confirmPassword string) error {
	if err := ValidatePasswordChange(user.PasswordHash, currentPassword, newPassword, confirmPassword); err != nil {
		return err
	}
	hash, err := HashPassword(strings.TrimSpace(newPassword))
	if err != nil {
		return err
	}
	return service.users.UpdatePassword(user.ID, hash, false)
}

// SetTemporaryPassword replaces the password and forces a change on next
// login.
func (service *AuthService) SetTemporaryPassword(userID uint, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return service.users.UpdatePassword(userID, hash, true)
}

// SetPassword stores an operator-chosen password and clears any pending
// forced change.
func (service *AuthService) SetPassword(userID uint, password string) error {
	if err := ValidatePasswordStrength(password); err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return service.users.UpdatePassword(userID, hash, false)
}

func (service *AuthService) SetRole(userID uint, role string) error {
	switch role {
	case models.RoleMember, models.RoleAdmin:
	default:
		return fmt.Errorf("unknown role %q", role)
	}
	return service.users.UpdateRole(userID, role)
}

func ValidatePasswordChange(passwordHash string, currentPassword string, newPassword string, confirmPassword string) error {
	currentPassword = strings.TrimSpace(currentPassword)
	newPassword = strings.TrimSpace(newPassword)
	confirmPassword = strings.TrimSpace(confirmPassword)

	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		return ErrPasswordChangeInvalid
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCurrentPassword
	}
	if currentPassword == newPassword {
		return ErrNewPasswordMustDiffer
	}
	return ValidatePasswordStrength(newPassword)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
