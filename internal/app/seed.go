package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vidinsight/backend/internal/config"
	"github.com/vidinsight/backend/internal/repositories"
	"github.com/vidinsight/backend/internal/storage"
	"github.com/vidinsight/backend/internal/videos"
)

func newSeedCommand(cc *commandContext) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the demo video collection to storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.loadConfig()
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg, reset, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Replace an existing collection with the demo videos")
	return cmd
}

func runSeed(ctx context.Context, cfg config.Config, reset bool, out io.Writer) error {
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	defer store.Close()

	repo := repositories.NewVideoRepository(store)
	existing, ok, err := repo.Load(ctx)
	if err != nil && !reset {
		return err
	}
	if ok && !reset {
		fmt.Fprintf(out, "%s already holds %d videos; use --reset to replace them\n", repositories.KeyVideos, len(existing))
		return nil
	}

	seed := videos.DemoVideos()
	if err := repo.Save(ctx, seed); err != nil {
		return err
	}
	fmt.Fprintf(out, "seeded %d demo videos into %s storage\n", len(seed), cfg.Storage.Driver)
	return nil
}
