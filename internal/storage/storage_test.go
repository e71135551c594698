package storage

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Get(ctx, "user"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key got %v", err)
	}

	if err := store.Set(ctx, "user", []byte(`{"id":"1"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(ctx, "user")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, []byte(`{"id":"1"}`)) {
		t.Fatalf("unexpected value %q", got)
	}

	if err := store.Set(ctx, "user", []byte(`{"id":"2"}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = store.Get(ctx, "user")
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if !bytes.Equal(got, []byte(`{"id":"2"}`)) {
		t.Fatalf("expected overwritten value got %q", got)
	}

	if err := store.Set(ctx, "videoSummaries", []byte(`[]`)); err != nil {
		t.Fatalf("set second key: %v", err)
	}

	if err := store.Delete(ctx, "user"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "user"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete got %v", err)
	}
	if err := store.Delete(ctx, "user"); err != nil {
		t.Fatalf("deleting a missing key should succeed: %v", err)
	}
	if _, err := store.Get(ctx, "videoSummaries"); err != nil {
		t.Fatalf("unrelated key should survive delete: %v", err)
	}

	if err := store.Set(ctx, "../escape", []byte("x")); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemory()
	value := []byte("abc")
	if err := store.Set(context.Background(), "k", value); err != nil {
		t.Fatalf("set: %v", err)
	}
	value[0] = 'z'
	got, _ := store.Get(context.Background(), "k")
	if string(got) != "abc" {
		t.Fatalf("stored value was aliased: %q", got)
	}
}

func TestFileStore(t *testing.T) {
	store, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	defer store.Close()

	exerciseStore(t, store)
}

func TestFileStoreSharesDirectory(t *testing.T) {
	dir := t.TempDir()
	first, err := NewFile(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	defer first.Close()
	second, err := NewFile(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	defer second.Close()

	if err := first.Set(context.Background(), "user", []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := second.Get(context.Background(), "user")
	if err != nil {
		t.Fatalf("get from second handle: %v", err)
	}
	if string(got) != "v1" {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestFileStoreRequiresDirectory(t *testing.T) {
	if _, err := NewFile(""); err == nil {
		t.Fatal("expected error for empty directory")
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "kv.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	exerciseStore(t, store)
}

func TestRedisStore(t *testing.T) {
	server := miniredis.RunT(t)
	store, err := OpenRedis(context.Background(), RedisOptions{Addr: server.Addr(), Prefix: "vidinsight:"})
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	defer store.Close()

	exerciseStore(t, store)

	if !server.Exists("vidinsight:videoSummaries") {
		t.Fatal("expected value stored under the configured prefix")
	}
	if server.Exists("videoSummaries") {
		t.Fatal("expected no unprefixed key")
	}
}

func TestRedisStorePrefixIsolation(t *testing.T) {
	server := miniredis.RunT(t)
	ctx := context.Background()
	first, err := OpenRedis(ctx, RedisOptions{Addr: server.Addr(), Prefix: "a:"})
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	defer first.Close()
	second, err := OpenRedis(ctx, RedisOptions{Addr: server.Addr(), Prefix: "b:"})
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	defer second.Close()

	if err := first.Set(ctx, "user", []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := second.Get(ctx, "user"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound across prefixes got %v", err)
	}
	if err := second.Delete(ctx, "user"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, err := first.Get(ctx, "user"); err != nil || string(got) != "v1" {
		t.Fatalf("expected first prefix untouched got %q %v", got, err)
	}
}

func TestOpenRedisRequiresAddress(t *testing.T) {
	if _, err := OpenRedis(context.Background(), RedisOptions{}); err == nil {
		t.Fatal("expected error for empty address")
	}
}

func TestOpenRedisReportsUnreachableServer(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	if _, err := OpenRedis(context.Background(), RedisOptions{Addr: addr}); err == nil {
		t.Fatal("expected ping error for closed server")
	}
}
