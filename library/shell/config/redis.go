package config

import (
	"github.com/redis/go-redis/v9"
)

// RedisClient builds the client for the notification stream. It does not connect.
func RedisClient(cfg NotifierConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}
