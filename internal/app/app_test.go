package app

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/vidinsight/backend/internal/models"
	"github.com/vidinsight/backend/internal/videos"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestSeedAndReportCommands(t *testing.T) {
	t.Setenv("VIDINSIGHT_CONFIG", "")
	t.Setenv("VIDINSIGHT_STORAGE_DRIVER", "file")
	t.Setenv("VIDINSIGHT_STORAGE_DIR", t.TempDir())

	out, err := runCommand(t, "seed")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "seeded 2 demo videos") {
		t.Fatalf("unexpected seed output %q", out)
	}

	out, err = runCommand(t, "seed")
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if !strings.Contains(out, "already holds 2 videos") {
		t.Fatalf("expected existing collection to be kept, got %q", out)
	}

	out, err = runCommand(t, "report", "--user", "1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, want := range []string{"Product Launch Presentation", "Customer Feedback Session", "1:30:00", "90%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}

	if _, err := runCommand(t, "report"); err == nil || !strings.Contains(err.Error(), "no signed-in user") {
		t.Fatalf("expected missing user error got %v", err)
	}
}

func TestMigrateRejectsUnknownCommand(t *testing.T) {
	t.Setenv("VIDINSIGHT_CONFIG", "")

	_, err := runCommand(t, "migrate", "down")
	if err == nil || !strings.Contains(err.Error(), "unknown migrate command") {
		t.Fatalf("expected unknown command error got %v", err)
	}
}

func TestRenderReportEmpty(t *testing.T) {
	out := renderReport("nobody", nil, false)
	if !strings.Contains(out, "User nobody") || !strings.Contains(out, "0%") {
		t.Fatalf("unexpected empty report:\n%s", out)
	}
}

func TestRenderReportCountsOnlyOwner(t *testing.T) {
	owned := videos.OwnedBy(append(videos.DemoVideos(), models.VideoRecord{
		ID: "x", Title: "Someone else's", UserID: "2", UploadedAt: time.Now(), Status: models.VideoStatusProcessing,
	}), "1")

	out := renderReport("1", owned, false)
	if strings.Contains(out, "Someone else's") {
		t.Fatalf("report leaked another user's video:\n%s", out)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{0: "0:00", 59: "0:59", 1800: "30:00", 3600: "1:00:00", 3725: "1:02:05"}
	for in, want := range cases {
		if got := formatDuration(in); got != want {
			t.Fatalf("formatDuration(%d) = %q want %q", in, got, want)
		}
	}
}
