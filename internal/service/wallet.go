package service

import (
	"fmt"
	"time"
	"tossbash/internal/domain" // Importing domain models
	"tossbash/internal/store"

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Wallet handles the manual deposit/withdrawal path and the read side of the
// ledger. It shares the account lock registry with the settlement engine.
type Wallet struct {
	db       *gorm.DB
	accounts *store.AccountStore
	ledger   *store.LedgerStore
	locks    *AccountLocks
}

func NewWallet(db *gorm.DB, accounts *store.AccountStore, ledger *store.LedgerStore, locks *AccountLocks) *Wallet {
	return &Wallet{db: db, accounts: accounts, ledger: ledger, locks: locks}
}

// Balance returns the current balance.
func (s *Wallet) Balance(userID uint) (int64, error) {
	user, err := s.accounts.FindByID(userID)
	if err != nil {
		return 0, err
	}
	return user.WalletBalance, nil
}

// Deposit credits diamonds and writes the matching ledger entry.
func (s *Wallet) Deposit(userID uint, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	m := s.locks.Lock(userID)
	defer m.Unlock()

	user, err := s.accounts.FindByID(userID)
	if err != nil {
		return 0, err
	}
	balanceBefore := user.WalletBalance
	balanceAfter := balanceBefore + amount

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.accounts.WithTx(tx).AdjustBalanceClamped(userID, amount); err != nil {
			return err
		}
		return s.ledger.WithTx(tx).Append(&domain.Transaction{
			UserID:          userID,
			Type:            domain.TxDeposit,
			Amount:          amount,
			BalanceBefore:   balanceBefore,
			BalanceAfter:    balanceAfter,
			Description:     fmt.Sprintf("Added %d diamonds to wallet", amount),
			TransactionDate: time.Now(),
		})
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"amount":  amount,
			"error":   err.Error(),
		}).Error("Deposit failed")
		return 0, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount,
		"type":    domain.TxDeposit,
		"balance": balanceAfter,
	}).Info("Deposit transaction")
	return balanceAfter, nil
}

// Withdraw debits diamonds after a sufficiency check and writes the matching
// ledger entry.
func (s *Wallet) Withdraw(userID uint, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	m := s.locks.Lock(userID)
	defer m.Unlock()

	user, err := s.accounts.FindByID(userID)
	if err != nil {
		return 0, err
	}
	if user.WalletBalance < amount {
		return 0, domain.ErrInsufficientFunds
	}
	balanceBefore := user.WalletBalance
	balanceAfter := balanceBefore - amount

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.accounts.WithTx(tx).Debit(userID, amount); err != nil {
			return err
		}
		return s.ledger.WithTx(tx).Append(&domain.Transaction{
			UserID:          userID,
			Type:            domain.TxWithdrawal,
			Amount:          -amount,
			BalanceBefore:   balanceBefore,
			BalanceAfter:    balanceAfter,
			Description:     fmt.Sprintf("Withdrew %d diamonds from wallet", amount),
			TransactionDate: time.Now(),
		})
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"amount":  amount,
			"error":   err.Error(),
		}).Error("Withdrawal failed")
		return 0, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount,
		"type":    domain.TxWithdrawal,
		"balance": balanceAfter,
	}).Info("Withdrawal transaction")
	return balanceAfter, nil
}

// Transactions returns one page of the user's ledger.
func (s *Wallet) Transactions(userID uint, limit, offset int) ([]domain.Transaction, int64, error) {
	return s.ledger.ListByUser(userID, limit, offset)
}

// Stats returns the ledger aggregates plus the live balance.
func (s *Wallet) Stats(userID uint) (*domain.WalletStats, error) {
	user, err := s.accounts.FindByID(userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.ledger.StatsByUser(userID)
	if err != nil {
		return nil, err
	}
	stats.CurrentBalance = user.WalletBalance
	return stats, nil
}
