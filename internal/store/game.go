package store

import (
	"math"
	"tossbash/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// GameStore writes and reads coin-flip rounds. Rounds are immutable once
// created.
type GameStore struct {
	db *gorm.DB
}

func NewGameStore(db *gorm.DB) *GameStore {
	return &GameStore{db: db}
}

// WithTx returns a store bound to an open transaction.
func (s *GameStore) WithTx(tx *gorm.DB) *GameStore {
	return &GameStore{db: tx}
}

// Create records one settled round.
func (s *GameStore) Create(g *domain.Game) error {
	return s.db.Create(g).Error
}

// ListByUser returns one page of a user's rounds, newest first with insertion
// order as the tie-break, plus the total count.
func (s *GameStore) ListByUser(userID uint, limit, offset int) ([]domain.Game, int64, error) {
	var total int64
	if err := s.db.Model(&domain.Game{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var games []domain.Game
	if err := s.db.Where("user_id = ?", userID).
		Order("played_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&games).Error; err != nil {
		return nil, 0, err
	}
	return games, total, nil
}

// StatsByUser aggregates a user's round history and derives the win rate and
// net profit.
func (s *GameStore) StatsByUser(userID uint) (*domain.GameStats, error) {
	var stats domain.GameStats
	err := s.db.Model(&domain.Game{}).
		Select(`COUNT(*) AS total_games,
			COALESCE(SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END), 0) AS total_wins,
			COALESCE(SUM(CASE WHEN outcome = 'lose' THEN 1 ELSE 0 END), 0) AS total_losses,
			COALESCE(SUM(bet_amount), 0) AS total_bet_amount,
			COALESCE(SUM(winnings), 0) AS total_winnings,
			COALESCE(SUM(CASE WHEN is_bet_placed THEN 1 ELSE 0 END), 0) AS games_with_bet`).
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	if stats.TotalGames > 0 {
		rate := float64(stats.TotalWins) / float64(stats.TotalGames) * 100
		stats.WinRate = math.Round(rate*100) / 100
	}
	stats.NetProfit = stats.TotalWinnings - stats.TotalBetAmount
	return &stats, nil
}
