package models

import "time"

type AchievementTier string

const (
	AchievementTierBronze AchievementTier = "bronze"
	AchievementTierSilver AchievementTier = "silver"
	AchievementTierGold   AchievementTier = "gold"
)

// AchievementCounter names the user statistic an achievement watches
type AchievementCounter string

const (
	CounterUploads     AchievementCounter = "uploads"
	CounterDownloads   AchievementCounter = "downloads"
	CounterCoinsEarned AchievementCounter = "coins_earned"
	CounterCoinsSpent  AchievementCounter = "coins_spent"
)

// Achievement is a badge definition. A user earns it the first time the
// watched counter reaches the threshold.
type Achievement struct {
	ID          uint               `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Code        string             `gorm:"uniqueIndex;not null" json:"code"`
	Name        string             `gorm:"not null" json:"name"`
	Description string             `json:"description"`
	Counter     AchievementCounter `gorm:"type:varchar(30);not null" json:"counter"`
	Threshold   int64              `gorm:"not null" json:"threshold"`
	Tier        AchievementTier    `gorm:"type:varchar(20);not null;default:'bronze'" json:"tier"`
	Icon        string             `json:"icon"`
	IsActive    bool               `gorm:"not null;default:true" json:"is_active"`
}

// UserAchievement links a user to a badge they earned. The unique index
// makes grants idempotent.
type UserAchievement struct {
	ID            uint        `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time   `json:"created_at"`
	UserID        uint        `gorm:"uniqueIndex:idx_user_achievement;not null" json:"user_id"`
	AchievementID uint        `gorm:"uniqueIndex:idx_user_achievement;not null" json:"achievement_id"`
	Achievement   Achievement `gorm:"foreignKey:AchievementID" json:"achievement"`
}
