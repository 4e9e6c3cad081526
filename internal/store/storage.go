package store

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	fredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"
)

// Backend bundles the storage shared by sessions and preferences. Redis is
// nil when running in memory.
type Backend struct {
	Storage fiber.Storage
	Redis   redis.UniversalClient
}

func (b *Backend) Close() error {
	return b.Storage.Close()
}

// NewBackend connects to redis when redisURL is set and falls back to the
// in-process memory storage otherwise.
func NewBackend(redisURL string) *Backend {
	if redisURL == "" {
		return &Backend{
			Storage: memory.New(memory.Config{GCInterval: 10 * time.Second}),
		}
	}
	storage := fredis.New(fredis.Config{URL: redisURL})
	return &Backend{
		Storage: storage,
		Redis:   storage.Conn(),
	}
}
