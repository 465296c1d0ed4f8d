package models

import "time"

// UserSettings holds per-user preferences. One row per user, created
// lazily on first access.
type UserSettings struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	UserID             uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	EmailNotifications bool      `gorm:"not null;default:true" json:"email_notifications"`
	DownloadAlerts     bool      `gorm:"not null;default:true" json:"download_alerts"`
	ProfilePublic      bool      `gorm:"not null;default:true" json:"profile_public"`
	Language           string    `gorm:"type:varchar(10);not null;default:'en'" json:"language"`
}
