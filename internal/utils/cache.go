package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"
	"time" // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// CacheTTL is how long read-side responses stay cached.
const CacheTTL = 60 * time.Second

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}

// Cache key builders. One namespace per read endpoint, all keyed by user.

func BalanceKey(userID uint) string {
	return "balance:user:" + strconv.Itoa(int(userID))
}

func TxHistoryKey(userID uint, page, limit int) string {
	return "txhistory:user:" + strconv.Itoa(int(userID)) + ":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(limit)
}

func GameHistoryKey(userID uint, page, limit int) string {
	return "gamehistory:user:" + strconv.Itoa(int(userID)) + ":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(limit)
}

func WalletStatsKey(userID uint) string {
	return "walletstats:user:" + strconv.Itoa(int(userID))
}

func GameStatsKey(userID uint) string {
	return "gamestats:user:" + strconv.Itoa(int(userID))
}

// InvalidateUserCache drops every cached read for a user after a balance
// mutation. History pages are invalidated with the simple first-pages sweep.
func InvalidateUserCache(ctx context.Context, rdb *redis.Client, userID uint) {
	_ = DeleteCache(ctx, rdb, BalanceKey(userID))
	_ = DeleteCache(ctx, rdb, WalletStatsKey(userID))
	_ = DeleteCache(ctx, rdb, GameStatsKey(userID))
	for i := 1; i <= 5; i++ {
		_ = DeleteCache(ctx, rdb, TxHistoryKey(userID, i, 10))
		_ = DeleteCache(ctx, rdb, GameHistoryKey(userID, i, 10))
	}
}
