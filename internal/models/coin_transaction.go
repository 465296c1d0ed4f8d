package models

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

type CoinTransactionKind string

const (
	CoinKindEarned  CoinTransactionKind = "earned"
	CoinKindSpent   CoinTransactionKind = "spent"
	CoinKindBonus   CoinTransactionKind = "bonus"
	CoinKindPenalty CoinTransactionKind = "penalty"
)

// CoinTransaction is an append-only ledger entry. Every coin movement in
// the system produces exactly one row.
type CoinTransaction struct {
	ID            uint                `gorm:"primarykey"`
	CreatedAt     time.Time           `gorm:"precision:3"` // Millisecond precision
	UserID        uint                `gorm:"index;not null"`
	Amount        int64               `gorm:"not null"` // Negative for spent/penalty
	BalanceBefore int64               `gorm:"not null"`
	BalanceAfter  int64               `gorm:"not null"`
	Kind          CoinTransactionKind `gorm:"type:varchar(20);index;not null"`
	Reason        string              `gorm:"type:text"`
	Operator      string              `gorm:"type:varchar(100)"`          // Username or 'system'
	OperatorID    uint                `gorm:"index;default:0"`            // 0 for system, otherwise UserID
	ResourceID    uint                `gorm:"index;default:0"`            // 0 when not tied to a resource
	DownloadID    uint                `gorm:"default:0"`                 // 0 when not tied to a download
	Hash          string              `gorm:"type:varchar(64);default:''"` // HMAC SHA256
}

// GenerateHash generates a tamper-proof hash for the transaction
func (t *CoinTransaction) GenerateHash(secret string) string {
	data := fmt.Sprintf("%d|%d|%d|%d|%d|%s|%s|%s|%d|%d|%d",
		t.UserID, t.CreatedAt.UnixNano(), t.Amount, t.BalanceBefore, t.BalanceAfter,
		t.Reason, t.Operator, t.Kind, t.OperatorID, t.ResourceID, t.DownloadID)

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
