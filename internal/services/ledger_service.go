package services

import (
	"errors"
	"time"

	"github.com/Saimongu007/Breez/config"
	"github.com/Saimongu007/Breez/internal/database"
	"github.com/Saimongu007/Breez/internal/models"
	"github.com/Saimongu007/Breez/pkg/monitor"

	"gorm.io/gorm"
)

var ErrInsufficientCoins = errors.New("insufficient coins")

// LedgerEntry describes a single coin movement to apply to a user.
// Amount is signed: positive for earned/bonus, negative for spent/penalty.
type LedgerEntry struct {
	Kind       models.CoinTransactionKind
	Amount     int64
	Reason     string
	Operator   string
	OperatorID uint
	ResourceID uint
	DownloadID uint
}

// ApplyLedgerEntry moves coins on the given user and appends the matching
// ledger row. It must run inside the caller's transaction, with user freshly
// loaded in that transaction. Counter fields already staged on the user
// (UploadCount, DownloadCount) are persisted in the same guarded update.
//
// If the movement would drive TotalCoins negative, nothing is written and
// ErrInsufficientCoins is returned, rolling back the enclosing transaction.
func ApplyLedgerEntry(tx *gorm.DB, user *models.User, entry LedgerEntry) (*models.CoinTransaction, error) {
	balanceBefore := user.TotalCoins
	balanceAfter := balanceBefore + entry.Amount
	if balanceAfter < 0 {
		return nil, ErrInsufficientCoins
	}

	earned := user.CoinsEarned
	spent := user.CoinsSpent
	if entry.Amount >= 0 {
		earned += entry.Amount
	} else {
		spent += -entry.Amount
	}

	// Version check makes the update atomic even without a row lock
	currentVersion := user.Version
	updates := map[string]interface{}{
		"total_coins":    balanceAfter,
		"coins_earned":   earned,
		"coins_spent":    spent,
		"upload_count":   user.UploadCount,
		"download_count": user.DownloadCount,
		"version":        currentVersion + 1,
	}

	result := tx.Model(user).Where("version = ?", currentVersion).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrOptimisticLock
	}

	user.TotalCoins = balanceAfter
	user.CoinsEarned = earned
	user.CoinsSpent = spent
	user.Version = currentVersion + 1

	transaction := models.CoinTransaction{
		UserID:        user.ID,
		Amount:        entry.Amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Kind:          entry.Kind,
		Reason:        entry.Reason,
		Operator:      entry.Operator,
		OperatorID:    entry.OperatorID,
		ResourceID:    entry.ResourceID,
		DownloadID:    entry.DownloadID,
		CreatedAt:     time.Now(),
	}
	transaction.Hash = transaction.GenerateHash(ledgerSecret())

	if err := tx.Create(&transaction).Error; err != nil {
		return nil, err
	}

	return &transaction, nil
}

func ledgerSecret() string {
	cfg, _ := config.LoadConfig()
	secret := "default-secret"
	if cfg != nil && cfg.JWTSecret != "" {
		secret = cfg.JWTSecret
	}
	return secret
}

// AdjustmentReceipt reports the outcome of an admin coin adjustment
type AdjustmentReceipt struct {
	TransactionID uint                       `json:"transaction_id"`
	Kind          models.CoinTransactionKind `json:"kind"`
	Amount        int64                      `json:"amount"`
	NewBalance    int64                      `json:"new_balance"`
	Achievements  []models.Achievement       `json:"achievements"`
}

// AdjustUserCoins applies an admin bonus (positive amount) or penalty
// (negative amount) through the ledger. A penalty that would drive the
// balance negative is rejected whole.
func AdjustUserCoins(userID uint, amount int64, reason, operatorName string, operatorID uint) (*AdjustmentReceipt, error) {
	kind := models.CoinKindBonus
	if amount < 0 {
		kind = models.CoinKindPenalty
	}

	receipt := &AdjustmentReceipt{}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		transaction, err := ApplyLedgerEntry(tx, &user, LedgerEntry{
			Kind:       kind,
			Amount:     amount,
			Reason:     reason,
			Operator:   operatorName,
			OperatorID: operatorID,
		})
		if err != nil {
			return err
		}

		awarded, err := EvaluateAchievements(tx, &user)
		if err != nil {
			return err
		}

		receipt.TransactionID = transaction.ID
		receipt.Kind = transaction.Kind
		receipt.Amount = transaction.Amount
		receipt.NewBalance = user.TotalCoins
		receipt.Achievements = awarded
		return nil
	})
	if err != nil {
		return nil, err
	}

	InvalidateUserCache(userID)

	if monitor.Business != nil {
		moved := amount
		if moved < 0 {
			moved = -moved
		}
		monitor.Business.CoinsMovedTotal.WithLabelValues(string(kind)).Add(float64(moved))
		for _, a := range receipt.Achievements {
			monitor.Business.AchievementAwardedTotal.WithLabelValues(a.Code).Inc()
		}
	}

	return receipt, nil
}
