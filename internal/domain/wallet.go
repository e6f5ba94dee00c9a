package domain

// GameStats aggregates a user's game history.
type GameStats struct {
	TotalGames     int64   `json:"totalGames"`
	TotalWins      int64   `json:"totalWins"`
	TotalLosses    int64   `json:"totalLosses"`
	TotalBetAmount int64   `json:"totalBetAmount"`
	TotalWinnings  int64   `json:"totalWinnings"`
	GamesWithBet   int64   `json:"gamesWithBet"`
	WinRate        float64 `json:"winRate"` // Percentage, two decimals
	NetProfit      int64   `json:"netProfit"`
}

// WalletStats aggregates a user's ledger by entry type. Withdrawal, bet and
// loss totals are absolute values.
type WalletStats struct {
	TotalDeposits    int64 `json:"totalDeposits"`
	TotalWithdrawals int64 `json:"totalWithdrawals"`
	TotalBets        int64 `json:"totalBets"`
	TotalWins        int64 `json:"totalWins"`
	TotalLosses      int64 `json:"totalLosses"`
	CurrentBalance   int64 `json:"currentBalance"`
	NetGamingProfit  int64 `json:"netGamingProfit"` // TotalWins - TotalBets
	TotalNetFlow     int64 `json:"totalNetFlow"`    // TotalDeposits - TotalWithdrawals
}
