// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"gkmslots/config"

	"github.com/go-redis/redis/v8"
)

var (
	// StoreClient backs the local key-value store (slots, notes, week marker, migration flags).
	StoreClient *redis.Client
	// EventsClient carries change notifications between server instances.
	EventsClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitStore initializes the Redis client for the local store.
func InitStore() {
	StoreClient = newRedisClient(config.AppConfig.RedisStoreDB, "Store")
}

// GetStoreClient returns the local store client.
func GetStoreClient() *redis.Client {
	if StoreClient == nil {
		InitStore()
	}
	return StoreClient
}

// InitEvents initializes the Redis client used for pub/sub.
func InitEvents() {
	EventsClient = newRedisClient(config.AppConfig.RedisEventsDB, "Events")
}

// GetEventsClient returns the pub/sub client.
func GetEventsClient() *redis.Client {
	if EventsClient == nil {
		InitEvents()
	}
	return EventsClient
}
