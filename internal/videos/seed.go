package videos

import (
	"time"

	"github.com/vidinsight/backend/internal/models"
)

// DemoVideos returns the two completed example records written when no
// collection has been persisted yet.
func DemoVideos() []models.VideoRecord {
	return []models.VideoRecord{
		{
			ID:           "1",
			Title:        "Product Launch Presentation",
			VideoURL:     "https://example.com/video1",
			ThumbnailURL: "https://images.pexels.com/photos/1181675/pexels-photo-1181675.jpeg?auto=compress&cs=tinysrgb&w=400",
			Duration:     1800,
			UploadedAt:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			Status:       models.VideoStatusCompleted,
			Summary: &models.Summary{
				Overview: "Comprehensive product launch presentation covering new features, market positioning, and go-to-market strategy.",
				KeyPoints: []string{
					"New AI-powered analytics dashboard",
					"Enhanced user experience improvements",
					"Competitive pricing strategy",
					"Q2 launch timeline confirmed",
				},
				Sentiment:  models.SentimentPositive,
				Topics:     []string{"Product Launch", "AI Analytics", "Market Strategy", "User Experience"},
				Confidence: 0.92,
			},
			Insights: &models.Insights{
				Engagement: 85,
				Complexity: 68,
				ActionItems: []string{
					"Finalize marketing materials",
					"Schedule customer demos",
					"Prepare sales training",
				},
				Recommendations: []string{
					"Focus on AI capabilities in messaging",
					"Highlight competitive advantages",
					"Emphasize user experience improvements",
				},
			},
			UserID: "1",
		},
		{
			ID:           "2",
			Title:        "Customer Feedback Session",
			VideoURL:     "https://example.com/video2",
			ThumbnailURL: "https://images.pexels.com/photos/1181244/pexels-photo-1181244.jpeg?auto=compress&cs=tinysrgb&w=400",
			Duration:     3600,
			UploadedAt:   time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC),
			Status:       models.VideoStatusCompleted,
			Summary: &models.Summary{
				Overview: "Customer feedback session revealing insights about user satisfaction, pain points, and feature requests.",
				KeyPoints: []string{
					"High satisfaction with core features",
					"Request for mobile app improvements",
					"Need for better integration options",
					"Positive reception of new UI design",
				},
				Sentiment:  models.SentimentPositive,
				Topics:     []string{"Customer Feedback", "Mobile App", "Integrations", "UI Design"},
				Confidence: 0.88,
			},
			Insights: &models.Insights{
				Engagement: 92,
				Complexity: 45,
				ActionItems: []string{
					"Prioritize mobile app enhancements",
					"Research integration partnerships",
					"Continue UI/UX improvements",
				},
				Recommendations: []string{
					"Develop mobile app roadmap",
					"Create integration marketplace",
					"Conduct more frequent feedback sessions",
				},
			},
			UserID: "1",
		},
	}
}
