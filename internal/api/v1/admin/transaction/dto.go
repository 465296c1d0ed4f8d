package transaction

import (
	"time"

	"github.com/Saimongu007/Breez/internal/models"
)

type TransactionListItem struct {
	ID            uint                       `json:"id"`
	CreatedAt     time.Time                  `json:"created_at"`
	UserID        uint                       `json:"user_id"`
	Kind          models.CoinTransactionKind `json:"kind"`
	Amount        int64                      `json:"amount"`
	BalanceBefore int64                      `json:"balance_before"`
	BalanceAfter  int64                      `json:"balance_after"`
	Reason        string                     `json:"reason"`
	Operator      string                     `json:"operator"`
	ResourceID    uint                       `json:"resource_id,omitempty"`
	DownloadID    uint                       `json:"download_id,omitempty"`
	Hash          string                     `json:"hash"`
}

type TransactionListResponse struct {
	Transactions []TransactionListItem `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}
