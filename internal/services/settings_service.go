package services

import (
	"github.com/Saimongu007/Breez/internal/database"
	"github.com/Saimongu007/Breez/internal/models"
)

// GetUserSettings returns the user's settings row, creating it with
// defaults on first access.
func GetUserSettings(userID uint) (*models.UserSettings, error) {
	settings := models.UserSettings{
		UserID:             userID,
		EmailNotifications: true,
		DownloadAlerts:     true,
		ProfilePublic:      true,
		Language:           "en",
	}
	err := database.DB.Where(models.UserSettings{UserID: userID}).
		Attrs(settings).FirstOrCreate(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateUserSettings applies the given changes to the user's settings row
func UpdateUserSettings(userID uint, updates map[string]interface{}) (*models.UserSettings, error) {
	settings, err := GetUserSettings(userID)
	if err != nil {
		return nil, err
	}

	if err := database.DB.Model(settings).Updates(updates).Error; err != nil {
		return nil, err
	}

	return settings, nil
}
