package utils

import (
	"context"
	"log"
	"time"

	"fixitnow/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// ChatPubSubClient is the dedicated client for chat fan-out.
	ChatPubSubClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitChatPubSub initializes the Redis client used to fan out chat events.
func InitChatPubSub() {
	ChatPubSubClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisChatPubSubDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := ChatPubSubClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Chat PubSub): %v", err)
	}
}

// GetChatPubSubClient returns the Redis client for chat fan-out.
func GetChatPubSubClient() *redis.Client {
	if ChatPubSubClient == nil {
		InitChatPubSub()
	}
	return ChatPubSubClient
}
