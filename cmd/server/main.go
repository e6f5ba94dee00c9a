package main

import (
	"context"
	"log"
	"tossbash/internal/api"        // Custom package for API handlers
	"tossbash/internal/config"     // Custom package for configuration
	"tossbash/internal/middleware" // Custom package for middleware
	"tossbash/internal/service"
	"tossbash/internal/store"

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig()

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database. The handle is created once here and injected
	// into every store; nothing else opens connections.
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Stores and services
	accounts := store.NewAccountStore(db)
	games := store.NewGameStore(db)
	ledger := store.NewLedgerStore(db)
	locks := service.NewAccountLocks()
	identity := service.NewIdentity(accounts, cfg.JWTSecret)
	settlement := service.NewSettlement(db, accounts, games, ledger, locks, nil)
	wallet := service.NewWallet(db, accounts, ledger, locks)

	// Setup Gin
	r := gin.Default()
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret)

	// Auth routes
	authGroup := r.Group("/api/auth")
	authGroup.POST("/signup", api.SignupHandler(identity))
	authGroup.POST("/login", api.LoginHandler(identity))
	authGroup.GET("/profile", auth, api.GetProfileHandler(identity))
	authGroup.PUT("/profile", auth, api.UpdateProfileHandler(identity))

	// Game routes (protected by JWT)
	gameGroup := r.Group("/api/game")
	gameGroup.Use(auth)
	gameGroup.POST("/coin-flip", api.PlayCoinFlipHandler(settlement, redisClient))
	gameGroup.GET("/history", api.GameHistoryHandler(settlement, redisClient))
	gameGroup.GET("/stats", api.GameStatsHandler(settlement, redisClient))

	// Wallet routes (protected by JWT)
	walletGroup := r.Group("/api/wallet")
	walletGroup.Use(auth)
	walletGroup.GET("/balance", api.WalletBalanceHandler(wallet, redisClient))
	walletGroup.GET("/transactions", api.WalletTransactionsHandler(wallet, redisClient))
	walletGroup.POST("/add-money", api.AddMoneyHandler(wallet, redisClient))
	walletGroup.POST("/withdraw", api.WithdrawHandler(wallet, redisClient))
	walletGroup.GET("/stats", api.WalletStatsHandler(wallet, redisClient))

	log.Println("Server running on " + cfg.AppPort)
	r.Run(":" + cfg.AppPort)
}
