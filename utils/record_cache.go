package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// UserCachePrefix namespaces read-through cached user records.
const UserCachePrefix = "user:"

// RecordCacheTTL is the time-to-live for cached collaborator records. Users
// and listings are owned elsewhere, so cached copies must expire quickly.
const RecordCacheTTL = 5 * time.Minute

// SaveCachedRecord marshals v and stores it under key with a TTL.
func SaveCachedRecord(client *redis.Client, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cached record: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, key, data, RecordCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cached record: %w", err)
	}
	return nil
}

// GetCachedRecord unmarshals the record stored under key into out. Returns
// redis.Nil when the key is absent or expired.
func GetCachedRecord(client *redis.Client, key string, out interface{}) error {
	ctx := context.Background()
	data, err := client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("failed to unmarshal cached record: %w", err)
	}
	return nil
}

// DeleteCachedRecord removes the record stored under key.
func DeleteCachedRecord(client *redis.Client, key string) error {
	ctx := context.Background()
	return client.Del(ctx, key).Err()
}
