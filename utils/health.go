package utils

import (
	"context"
	"sync"
	"time"

	"fixitnow/database"
)

// HealthStatus is the latest snapshot of external-service connectivity.
type HealthStatus struct {
	Mongo      bool      `json:"mongo"`
	Cache      bool      `json:"cache"`
	ChatPubSub bool      `json:"chatPubSub"`
	CheckedAt  time.Time `json:"checkedAt"`
}

var (
	currentHealth   HealthStatus
	currentHealthMu sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	currentHealthMu.RLock()
	defer currentHealthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor runs periodic connectivity checks against Mongo and
// both Redis clients, updating the in-memory snapshot served by /health.
func StartHealthMonitor() {
	check := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		status := HealthStatus{
			Mongo:      database.MongoClient.Ping(ctx, nil) == nil,
			Cache:      GetCacheClient().Ping(ctx).Err() == nil,
			ChatPubSub: GetChatPubSubClient().Ping(ctx).Err() == nil,
			CheckedAt:  time.Now(),
		}

		currentHealthMu.Lock()
		currentHealth = status
		currentHealthMu.Unlock()
	}

	go func() {
		check()
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			check()
		}
	}()
}
