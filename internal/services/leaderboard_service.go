package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Saimongu007/Breez/internal/database"
	"github.com/Saimongu007/Breez/internal/models"

	"gorm.io/gorm"
)

const leaderboardCacheTTL = 2 * time.Minute

// LeaderboardEntry is one ranked row of the leaderboard
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	University  string `json:"university"`
	AvatarURL   string `json:"avatar_url"`
	CoinsEarned int64  `json:"coins_earned"`
	UploadCount int64  `json:"upload_count"`
	BadgeCount  int64  `json:"badge_count"`
}

// GetLeaderboard returns the top users ranked by lifetime coins earned,
// upload count as tiebreak. Results are cached in redis with a short TTL,
// the database stays the source of truth.
func GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	cacheKey := fmt.Sprintf("leaderboard:top:%d", limit)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var entries []LeaderboardEntry
			if err := json.Unmarshal([]byte(val), &entries); err == nil {
				return entries, nil
			}
		}
	}

	var users []models.User
	err := database.DB.Where("is_active = ?", true).
		Order("coins_earned desc, upload_count desc, id asc").
		Limit(limit).Find(&users).Error
	if err != nil {
		return nil, err
	}

	badgeCounts, err := badgeCountsFor(users)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:        i + 1,
			UserID:      u.ID,
			Username:    u.Username,
			University:  u.University,
			AvatarURL:   u.AvatarURL,
			CoinsEarned: u.CoinsEarned,
			UploadCount: u.UploadCount,
			BadgeCount:  badgeCounts[u.ID],
		})
	}

	if database.RedisClient != nil {
		if data, err := json.Marshal(entries); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, leaderboardCacheTTL)
		}
	}

	return entries, nil
}

// GetUserRank computes one user's leaderboard position without the cache
func GetUserRank(userID uint) (*LeaderboardEntry, error) {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var ahead int64
	err := database.DB.Model(&models.User{}).
		Where("is_active = ?", true).
		Where(
			"coins_earned > ? OR (coins_earned = ? AND upload_count > ?) OR (coins_earned = ? AND upload_count = ? AND id < ?)",
			user.CoinsEarned, user.CoinsEarned, user.UploadCount,
			user.CoinsEarned, user.UploadCount, user.ID,
		).
		Count(&ahead).Error
	if err != nil {
		return nil, err
	}

	badges, err := CountUserAchievements(userID)
	if err != nil {
		return nil, err
	}

	return &LeaderboardEntry{
		Rank:        int(ahead) + 1,
		UserID:      user.ID,
		Username:    user.Username,
		University:  user.University,
		AvatarURL:   user.AvatarURL,
		CoinsEarned: user.CoinsEarned,
		UploadCount: user.UploadCount,
		BadgeCount:  badges,
	}, nil
}

func badgeCountsFor(users []models.User) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(users))
	if len(users) == 0 {
		return counts, nil
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	type row struct {
		UserID uint
		Total  int64
	}
	var rows []row
	err := database.DB.Model(&models.UserAchievement{}).
		Select("user_id, COUNT(*) as total").
		Where("user_id IN ?", ids).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.UserID] = r.Total
	}
	return counts, nil
}
