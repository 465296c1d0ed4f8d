package achievement

import (
	"net/http"

	"github.com/Saimongu007/Breez/internal/models"
	"github.com/Saimongu007/Breez/internal/services"
	"github.com/Saimongu007/Breez/internal/utils"

	"github.com/gin-gonic/gin"
)

// CreateAchievementRequest defines a new badge
type CreateAchievementRequest struct {
	Code        string `json:"code" binding:"required,min=3,max=50"`
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"omitempty,max=255"`
	Counter     string `json:"counter" binding:"required,oneof=uploads downloads coins_earned coins_spent"`
	Threshold   int64  `json:"threshold" binding:"required,gt=0"`
	Tier        string `json:"tier" binding:"omitempty,oneof=bronze silver gold"`
	Icon        string `json:"icon" binding:"omitempty,max=50"`
}

// ListAchievements godoc
// @Summary List achievement definitions
// @Description Get the full badge catalog including inactive definitions. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]models.Achievement}
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/achievements [get]
func ListAchievements(c *gin.Context) {
	defs, err := services.FindAchievements()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch achievements"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Achievements retrieved successfully", defs))
}

// CreateAchievement godoc
// @Summary Create an achievement definition
// @Description Add a badge to the catalog. Existing users qualify on their next counter change. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body CreateAchievementRequest true "Badge definition"
// @Success 201 {object} utils.Response{data=models.Achievement}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/achievements [post]
func CreateAchievement(c *gin.Context) {
	var req CreateAchievementRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	tier := models.AchievementTier(req.Tier)
	if req.Tier == "" {
		tier = models.AchievementTierBronze
	}

	def := &models.Achievement{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Counter:     models.AchievementCounter(req.Counter),
		Threshold:   req.Threshold,
		Tier:        tier,
		Icon:        req.Icon,
		IsActive:    true,
	}

	if err := services.CreateAchievement(def); err != nil {
		if err == services.ErrAchievementCodeTaken {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create achievement"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Achievement created successfully", def))
}
