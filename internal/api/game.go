package api

import (
	"errors"
	"net/http" // HTTP status codes
	"tossbash/internal/domain"
	"tossbash/internal/service"
	"tossbash/internal/utils" // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// CoinFlipRequest mirrors the coin-flip payload of the public API. A zero or
// omitted betAmount plays a no-stakes round.
type CoinFlipRequest struct {
	Choice    string `json:"choice" binding:"required,oneof=heads tails"`
	BetAmount int64  `json:"betAmount" binding:"omitempty,gte=0"`
}

type gamePagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalGames  int64 `json:"totalGames"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

type gameHistoryResponse struct {
	Games      []domain.Game  `json:"games"`
	Pagination gamePagination `json:"pagination"`
}

// PlayCoinFlipHandler settles one round for the authenticated account.
func PlayCoinFlipHandler(settlement *service.Settlement, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req CoinFlipRequest
		if !bindJSON(c, &req) {
			return
		}
		game, balance, err := settlement.PlayRound(userID, req.Choice, req.BetAmount)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidChoice):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid choice. Must be heads or tails."})
			case errors.Is(err, domain.ErrInsufficientFunds):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Insufficient wallet balance for this bet."})
			case errors.Is(err, domain.ErrAccountNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
			default:
				serverError(c, err, "Server error during game")
			}
			return
		}
		utils.InvalidateUserCache(c.Request.Context(), rdb, userID)
		c.JSON(http.StatusOK, gin.H{
			"message": "Game completed successfully",
			"game": gin.H{
				"id":          game.ID,
				"userChoice":  game.UserChoice,
				"result":      game.Result,
				"outcome":     game.Outcome,
				"betAmount":   game.BetAmount,
				"winnings":    game.Winnings,
				"isBetPlaced": game.IsBetPlaced,
				"playedAt":    game.PlayedAt,
			},
			"walletBalance": balance,
		})
	}
}

// GameHistoryHandler returns one page of the account's rounds.
func GameHistoryHandler(settlement *service.Settlement, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		page, limit, offset := parsePage(c)
		ctx := c.Request.Context()
		cacheKey := utils.GameHistoryKey(userID, page, limit)
		var cached gameHistoryResponse
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		games, total, err := settlement.History(userID, limit, offset)
		if err != nil {
			serverError(c, err, "Server error")
			return
		}
		p := utils.NewPagination(page, limit, total)
		resp := gameHistoryResponse{
			Games: games,
			Pagination: gamePagination{
				CurrentPage: p.CurrentPage,
				TotalPages:  p.TotalPages,
				TotalGames:  p.Total,
				HasNext:     p.HasNext,
				HasPrev:     p.HasPrev,
			},
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, utils.CacheTTL)
		c.JSON(http.StatusOK, resp)
	}
}

// GameStatsHandler returns the account's aggregate game statistics.
func GameStatsHandler(settlement *service.Settlement, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		cacheKey := utils.GameStatsKey(userID)
		var cached domain.GameStats
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"stats": cached})
			return
		}
		stats, err := settlement.Stats(userID)
		if err != nil {
			serverError(c, err, "Server error")
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, stats, utils.CacheTTL)
		c.JSON(http.StatusOK, gin.H{"stats": stats})
	}
}
