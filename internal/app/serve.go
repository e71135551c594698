package app

import (
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vidinsight/backend/internal/handlers"
	"github.com/vidinsight/backend/internal/httpserver"
	"github.com/vidinsight/backend/internal/logging"
	"github.com/vidinsight/backend/internal/middleware"
)

func newServeCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.loadConfig()
			if err != nil {
				return err
			}
			logger := cc.newLogger(cfg, cc.stdout)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx = logging.WithLogger(ctx, logger)

			rt, err := buildDependencies(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := rt.Close(ctx); err != nil {
					logger.Error("release dependencies", "error", err)
				}
			}()

			mux := http.NewServeMux()
			handlers.RegisterRoutes(mux, rt.handlerDependencies())

			handler := middleware.RequestLogger(logger, rt.sessions)(mux)
			srv := httpserver.New(cfg.AppPort, handler)

			logger.Info("starting http server", "port", cfg.AppPort, "storage", cfg.Storage.Driver)
			return srv.Serve(ctx, nil)
		},
	}
}
