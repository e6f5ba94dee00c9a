package store

import (
	"errors"
	"time"
	"tossbash/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// AccountStore persists user accounts. Balance columns are only ever changed
// through the guarded update helpers below; callers never write a computed
// balance from memory.
type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

// WithTx returns a store bound to an open transaction.
func (s *AccountStore) WithTx(tx *gorm.DB) *AccountStore {
	return &AccountStore{db: tx}
}

// Create inserts a new account. Fails with ErrDuplicateIdentity when the
// username or email is already taken.
func (s *AccountStore) Create(u *domain.User) error {
	var count int64
	if err := s.db.Model(&domain.User{}).
		Where("username = ? OR email = ?", u.Username, u.Email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrDuplicateIdentity
	}
	return s.db.Create(u).Error
}

// FindByID fetches an account by primary key.
func (s *AccountStore) FindByID(id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail fetches an account by its login email.
func (s *AccountStore) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial username/email update, enforcing the
// uniqueness constraint against other accounts.
func (s *AccountStore) UpdateProfile(id uint, updates map[string]any) (*domain.User, error) {
	if username, ok := updates["username"]; ok {
		var count int64
		if err := s.db.Model(&domain.User{}).
			Where("username = ? AND id <> ?", username, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, domain.ErrDuplicateIdentity
		}
	}
	if email, ok := updates["email"]; ok {
		var count int64
		if err := s.db.Model(&domain.User{}).
			Where("email = ? AND id <> ?", email, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, domain.ErrDuplicateIdentity
		}
	}
	if len(updates) > 0 {
		if err := s.db.Model(&domain.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.FindByID(id)
}

// TouchLastLogin records a successful login.
func (s *AccountStore) TouchLastLogin(id uint) error {
	return s.db.Model(&domain.User{}).Where("id = ?", id).
		Update("last_login", time.Now()).Error
}

// Debit subtracts amount from the balance, guarded so the balance can never
// go negative even if two settlements race past the in-memory check.
func (s *AccountStore) Debit(id uint, amount int64) error {
	res := s.db.Model(&domain.User{}).
		Where("id = ? AND wallet_balance >= ?", id, amount).
		Update("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// Credit adds amount to the balance.
func (s *AccountStore) Credit(id uint, amount int64) error {
	res := s.db.Model(&domain.User{}).
		Where("id = ?", id).
		Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// AdjustBalanceClamped applies a signed delta with a zero floor. Used by the
// manual deposit/withdrawal path, not by game settlement.
func (s *AccountStore) AdjustBalanceClamped(id uint, delta int64) error {
	res := s.db.Model(&domain.User{}).
		Where("id = ?", id).
		Update("wallet_balance", gorm.Expr("GREATEST(wallet_balance + ?, 0)", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
