package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/vidinsight/backend/internal/config"
	"github.com/vidinsight/backend/internal/repositories"
	"github.com/vidinsight/backend/internal/storage"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Storage.Driver = config.DriverFile
	cfg.Storage.Dir = t.TempDir()
	cfg.ProcessingDelay = time.Hour
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildDependencies(t *testing.T) {
	cfg := testConfig(t)

	rt, err := buildDependencies(context.Background(), cfg, discardLogger())
	if err != nil {
		t.Fatalf("build dependencies: %v", err)
	}
	defer func() {
		if err := rt.Close(context.Background()); err != nil {
			t.Fatalf("close: %v", err)
		}
	}()

	deps := rt.handlerDependencies()
	if deps.Sessions == nil || deps.Videos == nil || deps.RateLimiter == nil {
		t.Fatalf("expected all handler dependencies configured: %+v", deps)
	}
	if got := len(rt.videos.List()); got != 2 {
		t.Fatalf("expected seeded demo videos got %d", got)
	}
}

func TestLogoutResetsVideos(t *testing.T) {
	for _, resets := range []bool{true, false} {
		mem := storage.NewMemory()
		cfg := testConfig(t)
		cfg.LogoutResetsVideos = resets

		rt, err := wireStores(context.Background(), mem, cfg, discardLogger())
		if err != nil {
			t.Fatalf("wire stores: %v", err)
		}

		ctx := context.Background()
		if _, err := rt.sessions.Login(ctx, "ada@example.com", "secret1"); err != nil {
			t.Fatalf("login: %v", err)
		}
		if err := rt.sessions.Logout(ctx); err != nil {
			t.Fatalf("logout: %v", err)
		}

		if mem.Has(repositories.KeyUser) {
			t.Fatal("expected user cleared on logout")
		}
		if got := mem.Has(repositories.KeyVideos); got == resets {
			t.Fatalf("resets=%v: unexpected videoSummaries presence %v", resets, got)
		}
		_ = rt.Close(ctx)
	}
}

func TestBuildDependenciesRejectsCorruptState(t *testing.T) {
	mem := storage.NewMemory()
	if err := mem.Set(context.Background(), repositories.KeyUser, []byte("not json")); err != nil {
		t.Fatalf("set: %v", err)
	}

	_, err := wireStores(context.Background(), mem, testConfig(t), discardLogger())
	if !errors.Is(err, repositories.ErrCorruptState) {
		t.Fatalf("expected corrupt state got %v", err)
	}
}

func TestBuildDependenciesRestoresSession(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	rt, err := buildDependencies(ctx, cfg, discardLogger())
	if err != nil {
		t.Fatalf("build dependencies: %v", err)
	}
	user, err := rt.sessions.Login(ctx, "admin@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := rt.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	rt, err = buildDependencies(ctx, cfg, discardLogger())
	if err != nil {
		t.Fatalf("rebuild dependencies: %v", err)
	}
	defer rt.Close(ctx)

	restored, ok := rt.sessions.Current()
	if !ok || restored != user {
		t.Fatalf("expected restored user %+v got %+v", user, restored)
	}
}
