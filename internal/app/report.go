package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vidinsight/backend/internal/config"
	"github.com/vidinsight/backend/internal/models"
	"github.com/vidinsight/backend/internal/repositories"
	"github.com/vidinsight/backend/internal/storage"
	"github.com/vidinsight/backend/internal/videos"
)

func newReportCommand(cc *commandContext) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print dashboard and analytics aggregates for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.loadConfig()
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), cfg, userID, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User id to report on (defaults to the signed-in user)")
	return cmd
}

func runReport(ctx context.Context, cfg config.Config, userID string, out io.Writer) error {
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	defer store.Close()

	if userID == "" {
		user, ok, err := repositories.NewUserRepository(store).Load(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("no signed-in user; pass --user")
		}
		userID = user.ID
	}

	all, _, err := repositories.NewVideoRepository(store).Load(ctx)
	if err != nil {
		return err
	}

	owned := videos.OwnedBy(all, userID)
	_, err = io.WriteString(out, renderReport(userID, owned, shouldColorize(out)))
	return err
}

func renderReport(userID string, owned []models.VideoRecord, colorize bool) string {
	dash := videos.Dashboard(owned)
	stats := videos.Analytics(owned)

	summary := newTable(colorize, "Metric", "Value")
	summary.SetTitle("User " + userID)
	summary.AppendRows([]table.Row{
		{"Total videos", dash.TotalVideos},
		{"Processed", dash.Processed},
		{"Total duration", formatDuration(dash.TotalDuration)},
		{"Avg confidence", fmt.Sprintf("%.0f%%", stats.AverageConfidence*100)},
		{"Avg engagement", fmt.Sprintf("%.0f%%", stats.AverageEngagement)},
		{"Avg complexity", fmt.Sprintf("%.0f%%", stats.AverageComplexity)},
	})
	summary.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})

	sentiment := newTable(colorize, "Sentiment", "Videos")
	for _, s := range []models.Sentiment{models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative} {
		sentiment.AppendRow(table.Row{string(s), stats.SentimentDistribution[s]})
	}

	topics := newTable(colorize, "Topic", "Mentions")
	for _, tc := range stats.TopTopics {
		topics.AppendRow(table.Row{tc.Topic, tc.Count})
	}

	recent := newTable(colorize, "Title", "Status", "Uploaded", "Duration")
	for _, v := range dash.Recent {
		recent.AppendRow(table.Row{v.Title, string(v.Status), v.UploadedAt.Format("2006-01-02"), formatDuration(v.Duration)})
	}

	return summary.Render() + "\n\n" +
		sentiment.Render() + "\n\n" +
		topics.Render() + "\n\n" +
		recent.Render() + "\n"
}

func newTable(colorize bool, headers ...string) table.Writer {
	tw := table.NewWriter()
	if colorize {
		tw.SetStyle(table.StyleColoredBright)
	} else {
		tw.SetStyle(table.StyleRounded)
	}

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	return tw
}

// formatDuration renders seconds as h:mm:ss, or m:ss under an hour.
func formatDuration(seconds int) string {
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
