package services

import (
	"errors"

	"github.com/Saimongu007/Breez/internal/database"
	"github.com/Saimongu007/Breez/internal/models"
	"github.com/Saimongu007/Breez/internal/utils"
	"github.com/Saimongu007/Breez/pkg/monitor"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("user with this email already exists")
var ErrUsernameTaken = errors.New("user with this username already exists")
var ErrAccountDisabled = errors.New("account is disabled")

type RegisterRequest struct {
	Email      string
	Username   string
	Password   string
	University string
	Course     string
}

// RegisterUser creates an account with zero coins. The very first account
// becomes the admin.
func RegisterUser(req RegisterRequest) (*models.User, error) {
	var existing models.User
	result := database.DB.Where("email = ?", req.Email).First(&existing)
	if result.Error == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	result = database.DB.Where("username = ?", req.Username).First(&existing)
	if result.Error == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var userCount int64
	database.DB.Model(&models.User{}).Count(&userCount)

	role := "user"
	if userCount == 0 {
		role = "admin"
	}

	user := &models.User{
		Email:      req.Email,
		Username:   req.Username,
		Password:   string(hashedPassword),
		Role:       role,
		University: req.University,
		Course:     req.Course,
		IsActive:   true,
	}

	if err := database.DB.Create(user).Error; err != nil {
		return nil, err
	}

	if monitor.Business != nil {
		monitor.Business.UserRegisteredTotal.Inc()
	}

	return user, nil
}

func LoginUser(email, password string) (string, *models.User, error) {
	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if !user.IsActive {
		return "", nil, ErrAccountDisabled
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}
