package prefs

import (
	"context"
	"errors"

	"github.com/khanghh/cas-portal/internal/store"
	"github.com/redis/go-redis/v9"
)

type entry struct {
	RememberMe string `redis:"rememberMe"`
	SavedEmail string `redis:"savedEmail"`
}

// RecordStore keeps both keys as fields of one record, written in a single
// operation of the underlying store.
type RecordStore struct {
	records   store.Store[entry]
	namespace string
}

func (s *RecordStore) Load(ctx context.Context) (Record, error) {
	e, err := s.records.Get(ctx, s.namespace)
	if errors.Is(err, store.ErrNotFound) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, err
	}
	return recordOf(e.RememberMe == rememberValue, e.SavedEmail), nil
}

func (s *RecordStore) Save(ctx context.Context, identifier string) error {
	if identifier == "" {
		return ErrEmptyIdentifier
	}
	return s.records.Save(ctx, s.namespace, entry{RememberMe: rememberValue, SavedEmail: identifier})
}

func (s *RecordStore) Clear(ctx context.Context) error {
	return s.records.Del(ctx, s.namespace)
}

type RecordProvider struct {
	records store.Store[entry]
}

func (p *RecordProvider) Open(namespace string) Store {
	return &RecordStore{records: p.records, namespace: namespace}
}

// NewRedisProvider stores each namespace as a redis hash.
func NewRedisProvider(rdb redis.UniversalClient, keyPrefix string) *RecordProvider {
	return &RecordProvider{records: store.NewRedisStore[entry](rdb, keyPrefix)}
}

// NewMemoryProvider keeps records in process memory.
func NewMemoryProvider() *RecordProvider {
	return &RecordProvider{records: store.NewMemoryStore[entry]()}
}
