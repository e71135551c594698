package videos

import (
	"context"

	"github.com/vidinsight/backend/internal/models"
)

// Analysis is the result attached to a video once processing completes.
type Analysis struct {
	Summary  models.Summary
	Insights models.Insights
}

// Analyzer produces the summary and insights for an uploaded video.
type Analyzer interface {
	Analyze(ctx context.Context, video models.VideoRecord) (Analysis, error)
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, video models.VideoRecord) (Analysis, error)

// Analyze implements Analyzer.
func (f AnalyzerFunc) Analyze(ctx context.Context, video models.VideoRecord) (Analysis, error) {
	return f(ctx, video)
}

// CannedAnalyzer performs no inference and returns the same placeholder
// analysis for every video.
type CannedAnalyzer struct{}

// Analyze implements Analyzer.
func (CannedAnalyzer) Analyze(context.Context, models.VideoRecord) (Analysis, error) {
	return Analysis{
		Summary: models.Summary{
			Overview:   "AI-generated summary of the video content.",
			KeyPoints:  []string{"Key insight 1", "Key insight 2", "Key insight 3"},
			Sentiment:  models.SentimentNeutral,
			Topics:     []string{"Topic 1", "Topic 2"},
			Confidence: 0.85,
		},
		Insights: models.Insights{
			Engagement:      75,
			Complexity:      60,
			ActionItems:     []string{"Action item 1", "Action item 2"},
			Recommendations: []string{"Recommendation 1", "Recommendation 2"},
		},
	}, nil
}
