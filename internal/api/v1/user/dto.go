package user

import "time"

// UserResponse defines the response structure for user information.
type UserResponse struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	Role          string    `json:"role"`
	University    string    `json:"university,omitempty"`
	Course        string    `json:"course,omitempty"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	TotalCoins    int64     `json:"total_coins"`
	CoinsEarned   int64     `json:"coins_earned"`
	CoinsSpent    int64     `json:"coins_spent"`
	UploadCount   int64     `json:"upload_count"`
	DownloadCount int64     `json:"download_count"`
	BadgeCount    int64     `json:"badge_count"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	Token         string    `json:"token,omitempty"`
}

// UpdateProfileRequest is the PATCH /users/me body. All fields optional.
type UpdateProfileRequest struct {
	Username   *string `json:"username,omitempty" binding:"omitempty,min=3,max=30"`
	Password   *string `json:"password,omitempty" binding:"omitempty,min=6"`
	University *string `json:"university,omitempty" binding:"omitempty,max=100"`
	Course     *string `json:"course,omitempty" binding:"omitempty,max=100"`
	AvatarURL  *string `json:"avatar_url,omitempty" binding:"omitempty,url"`
}

// UpdateSettingsRequest is the PUT /users/me/settings body.
type UpdateSettingsRequest struct {
	EmailNotifications *bool   `json:"email_notifications,omitempty"`
	DownloadAlerts     *bool   `json:"download_alerts,omitempty"`
	ProfilePublic      *bool   `json:"profile_public,omitempty"`
	Language           *string `json:"language,omitempty" binding:"omitempty,min=2,max=10"`
}
