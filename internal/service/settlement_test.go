package service

import (
	"sync"
	"testing"
	"tossbash/internal/domain"
	"tossbash/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	dialector := mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func newSettlement(db *gorm.DB, flip CoinFlipper) *Settlement {
	return NewSettlement(
		db,
		store.NewAccountStore(db),
		store.NewGameStore(db),
		store.NewLedgerStore(db),
		NewAccountLocks(),
		flip,
	)
}

func forced(side string) CoinFlipper {
	return func() string { return side }
}

func userRow(balance int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "wallet_balance", "is_active"}).
		AddRow(1, "player", "player@example.com", balance, true)
}

func TestMultiplierTiers(t *testing.T) {
	assert.Equal(t, 1.2, Multiplier(1))
	assert.Equal(t, 1.2, Multiplier(99))
	assert.Equal(t, 1.5, Multiplier(100))
	assert.Equal(t, 1.5, Multiplier(499))
	assert.Equal(t, 2.0, Multiplier(500))
	assert.Equal(t, 2.0, Multiplier(10000))
}

func TestWinningsFloorsPayout(t *testing.T) {
	assert.Equal(t, int64(0), Winnings(0))
	assert.Equal(t, int64(8), Winnings(7))     // floor(7 * 1.2) = 8
	assert.Equal(t, int64(118), Winnings(99))  // floor(99 * 1.2) = 118
	assert.Equal(t, int64(150), Winnings(100)) // 100 * 1.5
	assert.Equal(t, int64(748), Winnings(499)) // floor(499 * 1.5) = 748
	assert.Equal(t, int64(1000), Winnings(500))
	assert.Equal(t, int64(300), Winnings(200))
}

func TestFairCoinDistribution(t *testing.T) {
	const trials = 10000
	heads := 0
	for i := 0; i < trials; i++ {
		side := FairCoin()
		require.True(t, domain.ValidSide(side))
		if side == domain.SideHeads {
			heads++
		}
	}
	// Uniform within three percentage points over 10k trials; a fair coin
	// stays inside this band with overwhelming probability.
	assert.Greater(t, heads, 4700)
	assert.Less(t, heads, 5300)
}

func TestPlayRoundRejectsInvalidChoice(t *testing.T) {
	db, _ := newMockDB(t)
	s := newSettlement(db, forced(domain.SideHeads))

	_, _, err := s.PlayRound(1, "edge", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidChoice)

	_, _, err = s.PlayRound(1, "", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidChoice)
}

func TestPlayRoundRejectsNegativeBet(t *testing.T) {
	db, _ := newMockDB(t)
	s := newSettlement(db, forced(domain.SideHeads))

	_, _, err := s.PlayRound(1, domain.SideHeads, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestPlayRoundInsufficientFunds(t *testing.T) {
	db, mock := newMockDB(t)
	s := newSettlement(db, forced(domain.SideHeads))

	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(userRow(50))

	_, _, err := s.PlayRound(1, domain.SideHeads, 100)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlayRoundZeroBetRecordsRoundOnly(t *testing.T) {
	db, mock := newMockDB(t)
	s := newSettlement(db, forced(domain.SideTails))

	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(userRow(1000))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `games`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	game, balance, err := s.PlayRound(1, domain.SideHeads, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
	assert.False(t, game.IsBetPlaced)
	assert.Equal(t, domain.OutcomeLose, game.Outcome)
	assert.Equal(t, int64(0), game.Winnings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlayRoundWinSettlesBetAndWinEntries(t *testing.T) {
	db, mock := newMockDB(t)
	s := newSettlement(db, forced(domain.SideHeads))

	// Signup balance 1000, bet 200 on heads, coin forced heads:
	// multiplier 1.5, winnings 300, final balance 1100.
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(userRow(1000))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 1)) // debit 200
	mock.ExpectExec("INSERT INTO `games`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO `transactions`").
		WithArgs(1, domain.TxBet, int64(-200), int64(1000), int64(800), 7, "Bet placed on coin flip - heads", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 1)) // credit 300
	mock.ExpectExec("INSERT INTO `transactions`").
		WithArgs(1, domain.TxWin, int64(300), int64(800), int64(1100), 7, "Won coin flip bet - 300", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	game, balance, err := s.PlayRound(1, domain.SideHeads, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(1100), balance)
	assert.Equal(t, domain.OutcomeWin, game.Outcome)
	assert.Equal(t, int64(300), game.Winnings)
	assert.True(t, game.IsBetPlaced)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlayRoundLossMirrorsDebitInLossEntry(t *testing.T) {
	db, mock := newMockDB(t)
	s := newSettlement(db, forced(domain.SideTails))

	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(userRow(1000))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 1)) // debit 200
	mock.ExpectExec("INSERT INTO `games`").WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec("INSERT INTO `transactions`").
		WithArgs(1, domain.TxBet, int64(-200), int64(1000), int64(800), 3, "Bet placed on coin flip - heads", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `transactions`").
		WithArgs(1, domain.TxLoss, int64(-200), int64(1000), int64(800), 3, "Lost coin flip bet - 200", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	game, balance, err := s.PlayRound(1, domain.SideHeads, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(800), balance)
	assert.Equal(t, domain.OutcomeLose, game.Outcome)
	assert.Equal(t, int64(0), game.Winnings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two simultaneous bet-1000 rounds against a balance of 1000: the account
// lock serializes them, so the second reads the post-settlement balance and
// fails the sufficiency check instead of driving the wallet negative.
func TestPlayRoundConcurrentBetsSerialized(t *testing.T) {
	db, mock := newMockDB(t)
	s := newSettlement(db, forced(domain.SideTails))

	// First round sees the full balance and settles as a loss.
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(userRow(1000))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `games`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `transactions`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `transactions`").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()
	// Second round reads the drained balance.
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(userRow(0))

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.PlayRound(1, domain.SideHeads, 1000)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case err == domain.ErrInsufficientFunds:
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, insufficient)
	assert.NoError(t, mock.ExpectationsWereMet())
}
