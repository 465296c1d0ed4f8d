package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Saimongu007/Breez/config"
	"github.com/Saimongu007/Breez/internal/database"
	"github.com/Saimongu007/Breez/internal/models"
	"github.com/Saimongu007/Breez/pkg/monitor"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrInvalidPrice     = errors.New("coin price cannot be negative")
)

// ResourceFilter defines criteria for browsing the resource catalog
type ResourceFilter struct {
	OwnerID  *uint
	Subject  string
	Semester string
	FileType string
	FreeOnly bool
	Keyword  string
	Status   *models.ResourceStatus
	Sort     string // latest | popular | price
	Page     int
	Limit    int
}

type CreateResourceRequest struct {
	OwnerID     uint
	Title       string
	Description string
	Subject     string
	Semester    string
	FilePath    string
	FileType    string
	FileSize    int64
	CoinPrice   int64
	Tags        []string
}

// UploadReceipt reports what the uploader got out of a successful upload
type UploadReceipt struct {
	CoinsAwarded int64                `json:"coins_awarded"`
	NewBalance   int64                `json:"new_balance"`
	Achievements []models.Achievement `json:"achievements"`
}

// CreateResource inserts the resource and credits the upload reward in one
// transaction. The reward is fused with the resource's own INSERT, so it
// applies exactly once per resource.
func CreateResource(req CreateResourceRequest) (*models.Resource, *UploadReceipt, error) {
	if req.CoinPrice < 0 {
		return nil, nil, ErrInvalidPrice
	}

	var tags datatypes.JSON
	if len(req.Tags) > 0 {
		raw, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, nil, err
		}
		tags = datatypes.JSON(raw)
		if err := models.ValidateResourceTags(tags); err != nil {
			return nil, nil, err
		}
	}

	cfg, _ := config.LoadConfig()
	reward := int64(10)
	if cfg != nil {
		reward = int64(cfg.UploadRewardCoins)
	}

	resource := &models.Resource{
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		Semester:    req.Semester,
		FilePath:    req.FilePath,
		FileType:    req.FileType,
		FileSize:    req.FileSize,
		CoinPrice:   req.CoinPrice,
		Status:      models.ResourceStatusActive,
		Tags:        tags,
	}

	receipt := &UploadReceipt{CoinsAwarded: reward}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(resource).Error; err != nil {
			return err
		}

		var owner models.User
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&owner, req.OwnerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		owner.UploadCount++

		_, err := ApplyLedgerEntry(tx, &owner, LedgerEntry{
			Kind:       models.CoinKindEarned,
			Amount:     reward,
			Reason:     fmt.Sprintf("Upload reward: %s", resource.Title),
			Operator:   "system",
			ResourceID: resource.ID,
		})
		if err != nil {
			return err
		}

		awarded, err := EvaluateAchievements(tx, &owner)
		if err != nil {
			return err
		}

		receipt.NewBalance = owner.TotalCoins
		receipt.Achievements = awarded
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	InvalidateUserCache(req.OwnerID)

	if monitor.Business != nil {
		monitor.Business.ResourceUploadedTotal.Inc()
		monitor.Business.CoinsMovedTotal.WithLabelValues(string(models.CoinKindEarned)).Add(float64(reward))
		for _, a := range receipt.Achievements {
			monitor.Business.AchievementAwardedTotal.WithLabelValues(a.Code).Inc()
		}
	}

	return resource, receipt, nil
}

// FindResources retrieves a paginated slice of the catalog with filtering
func FindResources(filter ResourceFilter) ([]models.Resource, int64, error) {
	var resources []models.Resource
	var total int64

	query := database.DB.Model(&models.Resource{})

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.Semester != "" {
		query = query.Where("semester = ?", filter.Semester)
	}
	if filter.FileType != "" {
		query = query.Where("file_type = ?", filter.FileType)
	}
	if filter.FreeOnly {
		query = query.Where("coin_price = 0")
	}
	if filter.Keyword != "" {
		query = query.Where("title LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case "popular":
		query = query.Order("download_count desc")
	case "price":
		query = query.Order("coin_price asc")
	default:
		query = query.Order("created_at desc")
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Limit(filter.Limit).Offset(offset).Find(&resources).Error; err != nil {
		return nil, 0, err
	}

	return resources, total, nil
}

// GetResourceByID retrieves a resource by ID
func GetResourceByID(id uint) (*models.Resource, error) {
	var resource models.Resource
	if err := database.DB.First(&resource, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	return &resource, nil
}

// UpdateResourceStatus hides or restores a resource
func UpdateResourceStatus(id uint, status models.ResourceStatus) (*models.Resource, error) {
	resource, err := GetResourceByID(id)
	if err != nil {
		return nil, err
	}

	if err := database.DB.Model(resource).Update("status", status).Error; err != nil {
		return nil, err
	}
	return resource, nil
}

// ResourceEarnings pairs a resource with the coins its owner earned from it
type ResourceEarnings struct {
	Resource models.Resource `json:"resource"`
	Earned   int64           `json:"earned"`
}

// FindUserResources lists a user's own uploads together with what each
// one earned them.
func FindUserResources(ownerID uint, page, limit int) ([]ResourceEarnings, int64, error) {
	ownerFilter := ownerID
	resources, total, err := FindResources(ResourceFilter{
		OwnerID: &ownerFilter,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return nil, 0, err
	}

	out := make([]ResourceEarnings, 0, len(resources))
	for _, r := range resources {
		var earned int64
		err := database.DB.Model(&models.CoinTransaction{}).
			Where("user_id = ? AND resource_id = ? AND amount > 0", ownerID, r.ID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&earned).Error
		if err != nil {
			return nil, 0, err
		}
		out = append(out, ResourceEarnings{Resource: r, Earned: earned})
	}

	return out, total, nil
}
