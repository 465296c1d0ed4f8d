package services

import (
	"errors"

	"github.com/Saimongu007/Breez/internal/database"
	"github.com/Saimongu007/Breez/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAchievementCodeTaken = errors.New("achievement with this code already exists")

// CounterSnapshot is the set of user statistics achievements are judged on
type CounterSnapshot struct {
	Uploads     int64
	Downloads   int64
	CoinsEarned int64
	CoinsSpent  int64
}

func SnapshotCounters(user *models.User) CounterSnapshot {
	return CounterSnapshot{
		Uploads:     user.UploadCount,
		Downloads:   user.DownloadCount,
		CoinsEarned: user.CoinsEarned,
		CoinsSpent:  user.CoinsSpent,
	}
}

// MeetsThreshold reports whether a snapshot satisfies one badge definition
func MeetsThreshold(snap CounterSnapshot, def models.Achievement) bool {
	switch def.Counter {
	case models.CounterUploads:
		return snap.Uploads >= def.Threshold
	case models.CounterDownloads:
		return snap.Downloads >= def.Threshold
	case models.CounterCoinsEarned:
		return snap.CoinsEarned >= def.Threshold
	case models.CounterCoinsSpent:
		return snap.CoinsSpent >= def.Threshold
	}
	return false
}

// EvaluateAchievements grants every badge the user now qualifies for.
// It runs inside the caller's transaction on the already-updated user so
// the grant commits or rolls back together with the counter move that
// triggered it. Grants are idempotent: the unique (user, achievement)
// index plus ON CONFLICT DO NOTHING make a re-evaluation a no-op.
// Returns only the badges newly awarded in this call.
func EvaluateAchievements(tx *gorm.DB, user *models.User) ([]models.Achievement, error) {
	var defs []models.Achievement
	if err := tx.Where("is_active = ?", true).Find(&defs).Error; err != nil {
		return nil, err
	}

	snap := SnapshotCounters(user)

	var awarded []models.Achievement
	for _, def := range defs {
		if !MeetsThreshold(snap, def) {
			continue
		}

		grant := models.UserAchievement{
			UserID:        user.ID,
			AchievementID: def.ID,
		}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&grant)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected > 0 {
			awarded = append(awarded, def)
		}
	}

	return awarded, nil
}

// FindAchievements returns the full catalog
func FindAchievements() ([]models.Achievement, error) {
	var defs []models.Achievement
	if err := database.DB.Order("threshold asc").Find(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

// FindUserAchievements returns the badges a user has earned
func FindUserAchievements(userID uint) ([]models.UserAchievement, error) {
	var grants []models.UserAchievement
	if err := database.DB.Preload("Achievement").Where("user_id = ?", userID).Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}

// CountUserAchievements returns how many badges a user has earned
func CountUserAchievements(userID uint) (int64, error) {
	var count int64
	err := database.DB.Model(&models.UserAchievement{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CreateAchievement adds a badge definition to the catalog
func CreateAchievement(def *models.Achievement) error {
	var existing models.Achievement
	result := database.DB.Where("code = ?", def.Code).First(&existing)
	if result.Error == nil {
		return ErrAchievementCodeTaken
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	return database.DB.Create(def).Error
}

// SeedAchievements inserts the built-in badge catalog. Existing codes are
// left untouched so redeploys never alter live definitions.
func SeedAchievements(db *gorm.DB) error {
	catalog := []models.Achievement{
		{Code: "first_upload", Name: "First Upload", Description: "Share your first resource", Counter: models.CounterUploads, Threshold: 1, Tier: models.AchievementTierBronze, Icon: "upload"},
		{Code: "keen_contributor", Name: "Keen Contributor", Description: "Share 10 resources", Counter: models.CounterUploads, Threshold: 10, Tier: models.AchievementTierSilver, Icon: "stack"},
		{Code: "campus_librarian", Name: "Campus Librarian", Description: "Share 50 resources", Counter: models.CounterUploads, Threshold: 50, Tier: models.AchievementTierGold, Icon: "library"},
		{Code: "first_download", Name: "First Download", Description: "Download your first resource", Counter: models.CounterDownloads, Threshold: 1, Tier: models.AchievementTierBronze, Icon: "download"},
		{Code: "knowledge_seeker", Name: "Knowledge Seeker", Description: "Download 25 resources", Counter: models.CounterDownloads, Threshold: 25, Tier: models.AchievementTierSilver, Icon: "compass"},
		{Code: "coin_collector", Name: "Coin Collector", Description: "Earn 100 coins", Counter: models.CounterCoinsEarned, Threshold: 100, Tier: models.AchievementTierSilver, Icon: "coins"},
		{Code: "coin_tycoon", Name: "Coin Tycoon", Description: "Earn 1000 coins", Counter: models.CounterCoinsEarned, Threshold: 1000, Tier: models.AchievementTierGold, Icon: "crown"},
		{Code: "generous_spender", Name: "Generous Spender", Description: "Spend 250 coins", Counter: models.CounterCoinsSpent, Threshold: 250, Tier: models.AchievementTierSilver, Icon: "gift"},
	}

	for _, def := range catalog {
		var existing models.Achievement
		err := db.Where("code = ?", def.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&def).Error; err != nil {
			return err
		}
	}

	return nil
}
