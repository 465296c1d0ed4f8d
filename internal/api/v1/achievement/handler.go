package achievement

import (
	"net/http"
	"time"

	"github.com/Saimongu007/Breez/internal/models"
	"github.com/Saimongu007/Breez/internal/services"
	"github.com/Saimongu007/Breez/internal/utils"

	"github.com/gin-gonic/gin"
)

// BadgeStatus is one catalog entry annotated with the caller's progress
type BadgeStatus struct {
	Achievement models.Achievement `json:"achievement"`
	Earned      bool               `json:"earned"`
	AwardedAt   *time.Time         `json:"awarded_at,omitempty"`
}

type BadgeListResponse struct {
	Badges      []BadgeStatus `json:"badges"`
	EarnedCount int           `json:"earned_count"`
}

// ListAchievements godoc
// @Summary List achievements
// @Description Get the full badge catalog with the caller's earned state per badge
// @Tags achievement
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=achievement.BadgeListResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /achievements [get]
func ListAchievements(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	me := userVal.(models.User)

	defs, err := services.FindAchievements()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to retrieve achievements"))
		return
	}

	grants, err := services.FindUserAchievements(me.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to retrieve achievements"))
		return
	}

	awardedAt := make(map[uint]time.Time, len(grants))
	for _, g := range grants {
		awardedAt[g.AchievementID] = g.CreatedAt
	}

	badges := make([]BadgeStatus, 0, len(defs))
	for _, def := range defs {
		status := BadgeStatus{Achievement: def}
		if at, ok := awardedAt[def.ID]; ok {
			status.Earned = true
			t := at
			status.AwardedAt = &t
		}
		badges = append(badges, status)
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Achievements retrieved successfully", BadgeListResponse{
		Badges:      badges,
		EarnedCount: len(grants),
	}))
}
