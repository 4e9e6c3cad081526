package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/storage/memory/v2"
	"github.com/redis/go-redis/v9"
)

type person struct {
	Name string `redis:"name"`
	Age  int    `redis:"age"`
}

func newTestRedis(t *testing.T) redis.UniversalClient {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func testStoreRoundTrip(t *testing.T, s Store[person]) {
	ctx := context.Background()
	if _, err := s.Get(ctx, "1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Save(ctx, "1", person{Name: "John Doe", Age: 30}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := s.Get(ctx, "1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "John Doe" || got.Age != 30 {
		t.Fatalf("unexpected record %+v", got)
	}
	if err := s.Save(ctx, "1", person{Name: "Jane"}); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Get(ctx, "1")
	if got.Name != "Jane" || got.Age != 0 {
		t.Fatalf("Save must replace the whole record, got %+v", got)
	}
	if err := s.Del(ctx, "1"); err != nil {
		t.Fatalf("Del failed: %v", err)
	}
	if _, err := s.Get(ctx, "1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after Del, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStoreRoundTrip(t, NewMemoryStore[person]())
}

func TestStorageStorePrefixesKeys(t *testing.T) {
	storage := memory.New()
	s := NewStorageStore[person](storage, "person:")
	testStoreRoundTrip(t, s)

	if err := s.Save(context.Background(), "2", person{Name: "Bob"}); err != nil {
		t.Fatal(err)
	}
	blob, err := storage.Get("person:2")
	if err != nil || blob == nil {
		t.Fatalf("expected prefixed key in shared storage, got %v, %v", blob, err)
	}
}

func TestRedisStore(t *testing.T) {
	testStoreRoundTrip(t, NewRedisStore[person](newTestRedis(t), "person:"))
}

func TestRedisStoreExpiry(t *testing.T) {
	rdb := newTestRedis(t)
	s := NewRedisStore[person](rdb, "person:")
	ctx := context.Background()
	if err := s.Set(ctx, "1", person{Name: "John"}, time.Minute); err != nil {
		t.Fatal(err)
	}
	ttl, err := rdb.TTL(ctx, "person:1").Result()
	if err != nil {
		t.Fatal(err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}
}

func TestPrefixedStorageIsolation(t *testing.T) {
	shared := memory.New()
	sessions := NewKVStorage(shared, "session:")
	prefs := NewKVStorage(shared, "prefs:")

	if err := sessions.Set("a", []byte("1"), 0); err != nil {
		t.Fatal(err)
	}
	if blob, _ := prefs.Get("a"); blob != nil {
		t.Fatalf("prefix leaked, got %q", blob)
	}
	if blob, _ := shared.Get("session:a"); string(blob) != "1" {
		t.Fatalf("expected prefixed key in shared storage, got %q", blob)
	}
	if err := prefs.Reset(); !errors.Is(err, ErrResetShared) {
		t.Fatalf("expected ErrResetShared, got %v", err)
	}
	if err := prefs.Close(); err != nil {
		t.Fatal(err)
	}
	if blob, _ := sessions.Get("a"); string(blob) != "1" {
		t.Fatalf("closing a prefixed view closed the shared storage")
	}
}
