package services

import (
	"errors"
	"fmt"

	"github.com/Saimongu007/Breez/internal/database"
	"github.com/Saimongu007/Breez/internal/models"
	"github.com/Saimongu007/Breez/pkg/monitor"

	"gorm.io/gorm"
)

var (
	ErrOwnResource         = errors.New("cannot download your own resource")
	ErrAlreadyDownloaded   = errors.New("resource already downloaded")
	ErrResourceUnavailable = errors.New("resource is not available")
)

// DownloadReceipt reports the outcome of a settled download
type DownloadReceipt struct {
	Download     models.Download      `json:"download"`
	Resource     models.Resource      `json:"resource"`
	CoinsSpent   int64                `json:"coins_spent"`
	NewBalance   int64                `json:"new_balance"`
	Achievements []models.Achievement `json:"achievements"`
}

// SettleDownload charges a user for a resource and records the download,
// all in one transaction. A user pays for a given resource at most once:
// repeat requests fail on the pre-check, and two racing first requests
// fail on the (user, resource) unique index. Either everything commits
// (download row, ledger debit, both counters, any badge grants) or
// nothing does.
func SettleDownload(userID, resourceID uint, operatorName string) (*DownloadReceipt, error) {
	receipt := &DownloadReceipt{}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var resource models.Resource
		if err := tx.First(&resource, resourceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResourceNotFound
			}
			return err
		}
		if resource.Status != models.ResourceStatusActive {
			return ErrResourceUnavailable
		}
		if resource.OwnerID == userID {
			return ErrOwnResource
		}

		var existing models.Download
		err := tx.Where("user_id = ? AND resource_id = ?", userID, resourceID).First(&existing).Error
		if err == nil {
			return ErrAlreadyDownloaded
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var user models.User
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if user.TotalCoins < resource.CoinPrice {
			return ErrInsufficientCoins
		}

		download := models.Download{
			UserID:     userID,
			ResourceID: resourceID,
			CoinCost:   resource.CoinPrice,
		}
		if err := tx.Create(&download).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyDownloaded
			}
			return err
		}

		user.DownloadCount++

		_, err = ApplyLedgerEntry(tx, &user, LedgerEntry{
			Kind:       models.CoinKindSpent,
			Amount:     -resource.CoinPrice,
			Reason:     fmt.Sprintf("Download: %s", resource.Title),
			Operator:   operatorName,
			OperatorID: userID,
			ResourceID: resource.ID,
			DownloadID: download.ID,
		})
		if err != nil {
			return err
		}

		if err := tx.Model(&resource).
			UpdateColumn("download_count", gorm.Expr("download_count + ?", 1)).Error; err != nil {
			return err
		}
		resource.DownloadCount++

		awarded, err := EvaluateAchievements(tx, &user)
		if err != nil {
			return err
		}

		download.Resource = resource
		receipt.Download = download
		receipt.Resource = resource
		receipt.CoinsSpent = resource.CoinPrice
		receipt.NewBalance = user.TotalCoins
		receipt.Achievements = awarded
		return nil
	})
	if err != nil {
		return nil, err
	}

	InvalidateUserCache(userID)

	if monitor.Business != nil {
		monitor.Business.ResourceDownloadedTotal.Inc()
		monitor.Business.CoinsMovedTotal.WithLabelValues(string(models.CoinKindSpent)).Add(float64(receipt.CoinsSpent))
		for _, a := range receipt.Achievements {
			monitor.Business.AchievementAwardedTotal.WithLabelValues(a.Code).Inc()
		}
	}

	return receipt, nil
}

// HasDownloaded reports whether the user already paid for the resource
func HasDownloaded(userID, resourceID uint) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Download{}).
		Where("user_id = ? AND resource_id = ?", userID, resourceID).
		Count(&count).Error
	return count > 0, err
}

// FindUserDownloads returns a user's purchase history, newest first
func FindUserDownloads(userID uint, page, limit int) ([]models.Download, int64, error) {
	var downloads []models.Download
	var total int64

	query := database.DB.Model(&models.Download{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Resource").Order("created_at desc").
		Limit(limit).Offset(offset).Find(&downloads).Error; err != nil {
		return nil, 0, err
	}

	return downloads, total, nil
}
