package user

import (
	"net/http"

	"github.com/Saimongu007/Breez/internal/database"
	"github.com/Saimongu007/Breez/internal/models"
	"github.com/Saimongu007/Breez/internal/services"
	"github.com/Saimongu007/Breez/internal/utils"

	"github.com/gin-gonic/gin"
)

// NewUserResponse maps a user onto the wire shape shared with the auth handlers
func NewUserResponse(u models.User, badgeCount int64, token string) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		Role:          u.Role,
		University:    u.University,
		Course:        u.Course,
		AvatarURL:     u.AvatarURL,
		TotalCoins:    u.TotalCoins,
		CoinsEarned:   u.CoinsEarned,
		CoinsSpent:    u.CoinsSpent,
		UploadCount:   u.UploadCount,
		DownloadCount: u.DownloadCount,
		BadgeCount:    badgeCount,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		Token:         token,
	}
}

// CurrentUser godoc
// @Summary Get current user
// @Description Get current user's profile, coin totals and badge count
// @Tags user
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=user.UserResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/user [get]
func CurrentUser(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	u := user.(models.User)

	// Force reload user from DB to ensure we have the latest balance/stats
	// ignoring the cached version from middleware
	var latestUser models.User
	if err := database.DB.First(&latestUser, u.ID).Error; err == nil {
		u = latestUser
	}

	badges, err := services.CountUserAchievements(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load achievements"))
		return
	}

	token, err := utils.GenerateToken(u.ID, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Could not generate token"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User information retrieved successfully", NewUserResponse(u, badges, token)))
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Update profile fields of the logged-in user
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} utils.Response{data=user.UserResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /users/me [patch]
func UpdateProfile(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	me := userVal.(models.User)

	var req UpdateProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	updates := make(map[string]interface{})
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Password != nil {
		updates["password"] = *req.Password
	}
	if req.University != nil {
		updates["university"] = *req.University
	}
	if req.Course != nil {
		updates["course"] = *req.Course
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "No fields to update"))
		return
	}

	updated, err := services.UpdateUser(me.ID, updates, me.Username)
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
			return
		}
		if err == services.ErrOptimisticLock {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update profile"))
		return
	}

	badges, _ := services.CountUserAchievements(me.ID)

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Profile updated successfully", NewUserResponse(*updated, badges, "")))
}

// GetSettings godoc
// @Summary Get own settings
// @Description Get the logged-in user's settings, creating defaults on first access
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=models.UserSettings}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /users/me/settings [get]
func GetSettings(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	me := userVal.(models.User)

	settings, err := services.GetUserSettings(me.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load settings"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Settings retrieved successfully", settings))
}

// UpdateSettings godoc
// @Summary Update own settings
// @Description Update the logged-in user's settings
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body UpdateSettingsRequest true "Settings to update"
// @Success 200 {object} utils.Response{data=models.UserSettings}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /users/me/settings [put]
func UpdateSettings(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	me := userVal.(models.User)

	var req UpdateSettingsRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	updates := make(map[string]interface{})
	if req.EmailNotifications != nil {
		updates["email_notifications"] = *req.EmailNotifications
	}
	if req.DownloadAlerts != nil {
		updates["download_alerts"] = *req.DownloadAlerts
	}
	if req.ProfilePublic != nil {
		updates["profile_public"] = *req.ProfilePublic
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "No fields to update"))
		return
	}

	settings, err := services.UpdateUserSettings(me.ID, updates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update settings"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Settings updated successfully", settings))
}
