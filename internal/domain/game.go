package domain

import "time"

// Coin sides a player can pick and a flip can land on.
const (
	SideHeads = "heads"
	SideTails = "tails"
)

// Round outcomes.
const (
	OutcomeWin  = "win"
	OutcomeLose = "lose"
)

// GameTypeCoinFlip is the only game type currently offered.
const GameTypeCoinFlip = "coin_flip"

// ValidSide reports whether s is a playable coin side.
func ValidSide(s string) bool {
	return s == SideHeads || s == SideTails
}

// Game Model. A settled round is a historical fact and is never updated.
type Game struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index:idx_games_user_played,priority:1;not null" json:"userId"`
	GameType    string    `gorm:"size:20;not null;default:coin_flip" json:"gameType"`
	BetAmount   int64     `gorm:"not null;default:0" json:"betAmount"` // Requested stake, 0 for no-stakes rounds
	UserChoice  string    `gorm:"size:5;not null" json:"userChoice"`
	Result      string    `gorm:"size:5;not null" json:"result"` // Side the coin landed on
	Outcome     string    `gorm:"size:4;not null" json:"outcome"`
	Winnings    int64     `gorm:"not null;default:0" json:"winnings"`
	IsBetPlaced bool      `gorm:"index;not null;default:false" json:"isBetPlaced"`
	PlayedAt    time.Time `gorm:"index:idx_games_user_played,priority:2" json:"playedAt"`
}
