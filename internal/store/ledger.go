package store

import (
	"tossbash/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// LedgerStore writes and reads wallet transactions. Entries are append-only;
// there are no update or delete paths.
type LedgerStore struct {
	db *gorm.DB
}

func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// WithTx returns a store bound to an open transaction.
func (s *LedgerStore) WithTx(tx *gorm.DB) *LedgerStore {
	return &LedgerStore{db: tx}
}

// Append writes one ledger entry.
func (s *LedgerStore) Append(t *domain.Transaction) error {
	return s.db.Create(t).Error
}

// ListByUser returns one page of a user's entries, newest first with
// insertion order as the tie-break, plus the total count.
func (s *LedgerStore) ListByUser(userID uint, limit, offset int) ([]domain.Transaction, int64, error) {
	var total int64
	if err := s.db.Model(&domain.Transaction{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var txs []domain.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("transaction_date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&txs).Error; err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

// StatsByUser sums the ledger by entry type. Debit-type totals come back as
// absolute values.
func (s *LedgerStore) StatsByUser(userID uint) (*domain.WalletStats, error) {
	var stats domain.WalletStats
	err := s.db.Model(&domain.Transaction{}).
		Select(`COALESCE(SUM(CASE WHEN type = 'deposit' THEN amount ELSE 0 END), 0) AS total_deposits,
			COALESCE(SUM(CASE WHEN type = 'withdrawal' THEN ABS(amount) ELSE 0 END), 0) AS total_withdrawals,
			COALESCE(SUM(CASE WHEN type = 'bet' THEN ABS(amount) ELSE 0 END), 0) AS total_bets,
			COALESCE(SUM(CASE WHEN type = 'win' THEN amount ELSE 0 END), 0) AS total_wins,
			COALESCE(SUM(CASE WHEN type = 'loss' THEN ABS(amount) ELSE 0 END), 0) AS total_losses`).
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	stats.NetGamingProfit = stats.TotalWins - stats.TotalBets
	stats.TotalNetFlow = stats.TotalDeposits - stats.TotalWithdrawals
	return &stats, nil
}
