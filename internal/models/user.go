package models

import "time"

type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Email     string `gorm:"uniqueIndex;not null"`
	Username  string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"not null;default:'user'"`

	University string `gorm:"type:varchar(100)"`
	Course     string `gorm:"type:varchar(100)"`
	AvatarURL  string

	// Coin balances. TotalCoins is always CoinsEarned - CoinsSpent.
	TotalCoins  int64 `gorm:"not null;default:0"`
	CoinsEarned int64 `gorm:"not null;default:0"`
	CoinsSpent  int64 `gorm:"not null;default:0"`

	// Activity counters used by achievements and the leaderboard
	UploadCount   int64 `gorm:"not null;default:0"`
	DownloadCount int64 `gorm:"not null;default:0"`

	IsActive bool `gorm:"not null;default:true"`
	Version  int  `gorm:"default:1"`
}
