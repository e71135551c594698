package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vidinsight/backend/internal/auth"
	"github.com/vidinsight/backend/internal/config"
	"github.com/vidinsight/backend/internal/handlers"
	"github.com/vidinsight/backend/internal/httpserver"
	"github.com/vidinsight/backend/internal/middleware"
	"github.com/vidinsight/backend/internal/repositories"
	"github.com/vidinsight/backend/internal/storage"
	"github.com/vidinsight/backend/internal/videos"
)

// runtime holds the long-lived services shared by the HTTP handlers.
type runtime struct {
	store    storage.Store
	sessions *auth.Sessions
	videos   *videos.Store
	limiter  *middleware.KeyedRateLimiter
}

// buildDependencies opens storage, restores the persisted session and video
// collection and wires the stores together.
func buildDependencies(ctx context.Context, cfg config.Config, logger *slog.Logger) (*runtime, error) {
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}

	rt, err := wireStores(ctx, store, cfg, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return rt, nil
}

func wireStores(ctx context.Context, store storage.Store, cfg config.Config, logger *slog.Logger) (*runtime, error) {
	var videoStore *videos.Store

	var opts []auth.Option
	if cfg.LogoutResetsVideos {
		opts = append(opts, auth.WithLogoutHook(func(ctx context.Context) error {
			return videoStore.Reset(ctx)
		}))
	}
	sessions := auth.NewSessions(repositories.NewUserRepository(store), opts...)

	videoStore = videos.NewStore(repositories.NewVideoRepository(store), sessions, videos.StoreConfig{
		ProcessingDelay: cfg.ProcessingDelay,
		Analyzer:        videos.CannedAnalyzer{},
		Metadata:        metadataProvider(cfg.Metadata),
		Logger:          logger,
	})

	if err := sessions.Restore(ctx); err != nil {
		logCorrupt(logger, repositories.KeyUser, err)
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if err := videoStore.Load(ctx); err != nil {
		logCorrupt(logger, repositories.KeyVideos, err)
		return nil, fmt.Errorf("load videos: %w", err)
	}

	return &runtime{
		store:    store,
		sessions: sessions,
		videos:   videoStore,
		limiter:  middleware.NewKeyedRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.Burst, 0),
	}, nil
}

func metadataProvider(cfg config.MetadataConfig) videos.Provider {
	if !cfg.Enabled {
		return nil
	}
	return videos.NewCachingProvider(videos.NewYTDLPProvider(cfg.YTDLPPath, cfg.Timeout), cfg.CacheTTL)
}

func logCorrupt(logger *slog.Logger, key string, err error) {
	if errors.Is(err, repositories.ErrCorruptState) {
		logger.Error("persisted state is corrupt, refusing to start", "key", key, "error", err)
	}
}

func (rt *runtime) handlerDependencies() handlers.Dependencies {
	return handlers.Dependencies{
		Sessions:    rt.sessions,
		Videos:      rt.videos,
		RateLimiter: rt.limiter,
	}
}

// Close stops pending video completions and releases storage.
func (rt *runtime) Close(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), httpserver.ShutdownTimeout)
	defer cancel()

	return errors.Join(rt.videos.Shutdown(shutdownCtx), rt.store.Close())
}
