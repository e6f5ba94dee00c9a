package domain

import "time"

// Ledger entry types.
const (
	TxBet        = "bet"
	TxWin        = "win"
	TxLoss       = "loss"
	TxDeposit    = "deposit"
	TxWithdrawal = "withdrawal"
)

// Transaction Model. Entries are append-only; BalanceAfter must equal
// BalanceBefore + Amount on every committed row.
type Transaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index:idx_tx_user_date,priority:1;not null" json:"userId"`
	Type            string    `gorm:"size:10;index;not null" json:"type"`
	Amount          int64     `gorm:"not null" json:"amount"` // Signed: debits negative, credits positive
	BalanceBefore   int64     `gorm:"not null" json:"balanceBefore"`
	BalanceAfter    int64     `gorm:"not null" json:"balanceAfter"`
	GameID          *uint     `json:"gameId"` // Set on bet/win/loss entries
	Description     string    `gorm:"not null" json:"description"`
	TransactionDate time.Time `gorm:"index:idx_tx_user_date,priority:2" json:"transactionDate"`
}
