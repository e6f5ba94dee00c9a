package service

import (
	"fmt"
	"math/rand"
	"time"
	"tossbash/internal/domain" // Importing domain models
	"tossbash/internal/store"

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CoinFlipper produces the resolved side of one flip. Injectable so tests can
// force an outcome.
type CoinFlipper func() string

// FairCoin draws heads or tails uniformly and independently.
func FairCoin() string {
	if rand.Intn(2) == 0 {
		return domain.SideHeads
	}
	return domain.SideTails
}

// Multiplier returns the payout multiplier tier for a requested stake.
// Tiers are evaluated against the bet amount, not the balance.
func Multiplier(bet int64) float64 {
	switch {
	case bet >= 500:
		return 2.0
	case bet >= 100:
		return 1.5
	default:
		return 1.2
	}
}

// Winnings computes floor(bet * multiplier) without going through floats.
func Winnings(bet int64) int64 {
	switch {
	case bet >= 500:
		return bet * 2
	case bet >= 100:
		return bet * 3 / 2
	case bet > 0:
		return bet * 6 / 5
	default:
		return 0
	}
}

// Settlement resolves coin-flip rounds and applies their financial effects.
// It is the sole writer of balances and ledger entries during game play.
type Settlement struct {
	db       *gorm.DB
	accounts *store.AccountStore
	games    *store.GameStore
	ledger   *store.LedgerStore
	locks    *AccountLocks
	flip     CoinFlipper
}

func NewSettlement(db *gorm.DB, accounts *store.AccountStore, games *store.GameStore, ledger *store.LedgerStore, locks *AccountLocks, flip CoinFlipper) *Settlement {
	if flip == nil {
		flip = FairCoin
	}
	return &Settlement{db: db, accounts: accounts, games: games, ledger: ledger, locks: locks, flip: flip}
}

// PlayRound settles one round: draws the coin, computes the payout and writes
// the round plus its ledger entries and balance change as a single unit.
// Returns the recorded round and the balance after settlement.
func (s *Settlement) PlayRound(userID uint, choice string, bet int64) (*domain.Game, int64, error) {
	if !domain.ValidSide(choice) {
		return nil, 0, domain.ErrInvalidChoice
	}
	if bet < 0 {
		return nil, 0, domain.ErrInvalidAmount
	}

	// Hold the account lock across the whole read-check-write so two
	// concurrent rounds cannot both pass the sufficiency check on a stale
	// balance.
	m := s.locks.Lock(userID)
	defer m.Unlock()

	user, err := s.accounts.FindByID(userID)
	if err != nil {
		return nil, 0, err
	}
	if bet > 0 && user.WalletBalance < bet {
		return nil, 0, domain.ErrInsufficientFunds
	}

	result := s.flip()
	outcome := domain.OutcomeLose
	if choice == result {
		outcome = domain.OutcomeWin
	}
	winnings := int64(0)
	if outcome == domain.OutcomeWin {
		winnings = Winnings(bet)
	}

	game := &domain.Game{
		UserID:      userID,
		GameType:    domain.GameTypeCoinFlip,
		BetAmount:   bet,
		UserChoice:  choice,
		Result:      result,
		Outcome:     outcome,
		Winnings:    winnings,
		IsBetPlaced: bet > 0,
		PlayedAt:    time.Now(),
	}

	balanceBefore := user.WalletBalance
	newBalance := balanceBefore

	if bet == 0 {
		// No-stakes round: recorded as a historical fact, wallet untouched.
		if err := s.games.Create(game); err != nil {
			return nil, 0, err
		}
		return game, newBalance, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		accounts := s.accounts.WithTx(tx)
		games := s.games.WithTx(tx)
		ledger := s.ledger.WithTx(tx)

		// Debit the stake. The conditional update is a second guard behind
		// the lock: a failed guard rolls the whole settlement back.
		if err := accounts.Debit(userID, bet); err != nil {
			return err
		}
		if err := games.Create(game); err != nil {
			return err
		}

		afterDebit := balanceBefore - bet
		now := time.Now()
		if err := ledger.Append(&domain.Transaction{
			UserID:          userID,
			Type:            domain.TxBet,
			Amount:          -bet,
			BalanceBefore:   balanceBefore,
			BalanceAfter:    afterDebit,
			GameID:          &game.ID,
			Description:     fmt.Sprintf("Bet placed on coin flip - %s", choice),
			TransactionDate: now,
		}); err != nil {
			return err
		}

		if outcome == domain.OutcomeWin {
			if err := accounts.Credit(userID, winnings); err != nil {
				return err
			}
			newBalance = afterDebit + winnings
			return ledger.Append(&domain.Transaction{
				UserID:          userID,
				Type:            domain.TxWin,
				Amount:          winnings,
				BalanceBefore:   afterDebit,
				BalanceAfter:    newBalance,
				GameID:          &game.ID,
				Description:     fmt.Sprintf("Won coin flip bet - %d", winnings),
				TransactionDate: now,
			})
		}

		// The loss entry mirrors the bet debit for the audit trail; the
		// balance was already reduced by the bet entry above.
		newBalance = afterDebit
		return ledger.Append(&domain.Transaction{
			UserID:          userID,
			Type:            domain.TxLoss,
			Amount:          -bet,
			BalanceBefore:   balanceBefore,
			BalanceAfter:    afterDebit,
			GameID:          &game.ID,
			Description:     fmt.Sprintf("Lost coin flip bet - %d", bet),
			TransactionDate: now,
		})
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"choice":  choice,
			"bet":     bet,
			"error":   err.Error(),
		}).Error("Settlement failed")
		return nil, 0, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"choice":   choice,
		"result":   result,
		"outcome":  outcome,
		"bet":      bet,
		"winnings": winnings,
		"balance":  newBalance,
	}).Info("Round settled")
	return game, newBalance, nil
}

// History returns one page of the user's rounds.
func (s *Settlement) History(userID uint, limit, offset int) ([]domain.Game, int64, error) {
	return s.games.ListByUser(userID, limit, offset)
}

// Stats returns the user's aggregate game statistics.
func (s *Settlement) Stats(userID uint) (*domain.GameStats, error) {
	return s.games.StatsByUser(userID)
}
