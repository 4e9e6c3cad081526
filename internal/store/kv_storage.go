package store

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

var ErrResetShared = errors.New("reset is not supported on a prefixed view of a shared storage")

// PrefixedStorage is a view of a shared fiber.Storage where every key lives
// under a fixed prefix. Sessions and preferences share one backend this way.
type PrefixedStorage struct {
	fiber.Storage
	keyPrefix string
}

func (s *PrefixedStorage) Get(key string) ([]byte, error) {
	return s.Storage.Get(s.keyPrefix + key)
}

func (s *PrefixedStorage) Set(key string, val []byte, exp time.Duration) error {
	return s.Storage.Set(s.keyPrefix+key, val, exp)
}

func (s *PrefixedStorage) Delete(key string) error {
	return s.Storage.Delete(s.keyPrefix + key)
}

// Reset would wipe every other prefix of the underlying storage.
func (s *PrefixedStorage) Reset() error {
	return ErrResetShared
}

// Close leaves the shared storage open; its owner closes it.
func (s *PrefixedStorage) Close() error {
	return nil
}

func NewKVStorage(storage fiber.Storage, keyPrefix string) fiber.Storage {
	return &PrefixedStorage{
		Storage:   storage,
		keyPrefix: keyPrefix,
	}
}
