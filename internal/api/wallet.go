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

// AmountRequest is the deposit/withdrawal payload.
type AmountRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

type balanceResponse struct {
	Balance int64 `json:"balance"`
}

type txPagination struct {
	CurrentPage       int   `json:"currentPage"`
	TotalPages        int   `json:"totalPages"`
	TotalTransactions int64 `json:"totalTransactions"`
	HasNext           bool  `json:"hasNext"`
	HasPrev           bool  `json:"hasPrev"`
}

type txHistoryResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	Pagination   txPagination         `json:"pagination"`
}

// WalletBalanceHandler returns the account's balance.
func WalletBalanceHandler(wallet *service.Wallet, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		cacheKey := utils.BalanceKey(userID)
		var cached balanceResponse
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		balance, err := wallet.Balance(userID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
				return
			}
			serverError(c, err, "Server error")
			return
		}
		resp := balanceResponse{Balance: balance}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, utils.CacheTTL)
		c.JSON(http.StatusOK, resp)
	}
}

// WalletTransactionsHandler returns one page of the account's ledger.
func WalletTransactionsHandler(wallet *service.Wallet, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		page, limit, offset := parsePage(c)
		ctx := c.Request.Context()
		cacheKey := utils.TxHistoryKey(userID, page, limit)
		var cached txHistoryResponse
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		txs, total, err := wallet.Transactions(userID, limit, offset)
		if err != nil {
			serverError(c, err, "Server error")
			return
		}
		p := utils.NewPagination(page, limit, total)
		resp := txHistoryResponse{
			Transactions: txs,
			Pagination: txPagination{
				CurrentPage:       p.CurrentPage,
				TotalPages:        p.TotalPages,
				TotalTransactions: p.Total,
				HasNext:           p.HasNext,
				HasPrev:           p.HasPrev,
			},
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, utils.CacheTTL)
		c.JSON(http.StatusOK, resp)
	}
}

// AddMoneyHandler credits diamonds to the account's wallet.
func AddMoneyHandler(wallet *service.Wallet, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req AmountRequest
		if !bindJSON(c, &req) {
			return
		}
		balance, err := wallet.Deposit(userID, req.Amount)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidAmount):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Amount must be positive"})
			case errors.Is(err, domain.ErrAccountNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
			default:
				serverError(c, err, "Server error")
			}
			return
		}
		utils.InvalidateUserCache(c.Request.Context(), rdb, userID)
		c.JSON(http.StatusOK, gin.H{
			"message": "Money added successfully",
			"balance": balance,
		})
	}
}

// WithdrawHandler debits diamonds from the account's wallet.
func WithdrawHandler(wallet *service.Wallet, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req AmountRequest
		if !bindJSON(c, &req) {
			return
		}
		balance, err := wallet.Withdraw(userID, req.Amount)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidAmount):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Amount must be positive"})
			case errors.Is(err, domain.ErrInsufficientFunds):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Insufficient balance for withdrawal"})
			case errors.Is(err, domain.ErrAccountNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
			default:
				serverError(c, err, "Server error")
			}
			return
		}
		utils.InvalidateUserCache(c.Request.Context(), rdb, userID)
		c.JSON(http.StatusOK, gin.H{
			"message": "Money withdrawn successfully",
			"balance": balance,
		})
	}
}

// WalletStatsHandler returns the account's ledger aggregates.
func WalletStatsHandler(wallet *service.Wallet, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		cacheKey := utils.WalletStatsKey(userID)
		var cached domain.WalletStats
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"stats": cached})
			return
		}
		stats, err := wallet.Stats(userID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
				return
			}
			serverError(c, err, "Server error")
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, stats, utils.CacheTTL)
		c.JSON(http.StatusOK, gin.H{"stats": stats})
	}
}
