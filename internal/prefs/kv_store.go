package prefs

import (
	"context"
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/cas-portal/internal/store"
)

// KVStore keeps the two preference keys side by side in a fiber.Storage,
// the same layout browser local storage uses.
type KVStore struct {
	mu      *sync.Mutex
	storage fiber.Storage
}

func (s *KVStore) Load(ctx context.Context) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flag, err := s.storage.Get(KeyRememberMe)
	if err != nil {
		return Record{}, err
	}
	if string(flag) != rememberValue {
		return Record{}, nil
	}
	identifier, err := s.storage.Get(KeySavedEmail)
	if err != nil {
		return Record{}, err
	}
	return recordOf(true, string(identifier)), nil
}

func (s *KVStore) Save(ctx context.Context, identifier string) error {
	if identifier == "" {
		return ErrEmptyIdentifier
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(KeySavedEmail, []byte(identifier), 0); err != nil {
		return err
	}
	if err := s.storage.Set(KeyRememberMe, []byte(rememberValue), 0); err != nil {
		// roll back so the identifier does not outlive a missing flag
		return errors.Join(err, s.storage.Delete(KeySavedEmail))
	}
	return nil
}

func (s *KVStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// the flag goes first: a leftover identifier without flag is never read
	if err := s.storage.Delete(KeyRememberMe); err != nil {
		return err
	}
	return s.storage.Delete(KeySavedEmail)
}

type KVProvider struct {
	mu      sync.Mutex
	storage fiber.Storage
	prefix  string
}

func (p *KVProvider) Open(namespace string) Store {
	return &KVStore{
		mu:      &p.mu,
		storage: store.NewKVStorage(p.storage, p.prefix+namespace+":"),
	}
}

func NewKVProvider(storage fiber.Storage, keyPrefix string) *KVProvider {
	return &KVProvider{
		storage: storage,
		prefix:  keyPrefix,
	}
}
