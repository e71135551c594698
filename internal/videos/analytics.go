package videos

import (
	"cmp"
	"slices"
	"strings"

	"github.com/vidinsight/backend/internal/models"
)

const (
	// DefaultTopTopics is how many topics the analytics summary reports.
	DefaultTopTopics = 5
	// DefaultRecentVideos is how many records the dashboard lists.
	DefaultRecentVideos = 5
	// StatusAll matches records of any status in Filter.
	StatusAll = "all"
)

// TopicCount is the number of completed videos mentioning a topic.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// DashboardSummary is the headline view of a user's videos.
type DashboardSummary struct {
	TotalVideos       int                  `json:"totalVideos"`
	TotalDuration     int                  `json:"totalDuration"`
	AverageConfidence float64              `json:"averageConfidence"`
	Processed         int                  `json:"processed"`
	Recent            []models.VideoRecord `json:"recentVideos"`
}

// AnalyticsSummary aggregates the analysis results of a user's videos.
type AnalyticsSummary struct {
	TotalVideos           int                      `json:"totalVideos"`
	TotalDuration         int                      `json:"totalDuration"`
	AverageConfidence     float64                  `json:"averageConfidence"`
	AverageEngagement     float64                  `json:"averageEngagement"`
	AverageComplexity     float64                  `json:"averageComplexity"`
	SentimentDistribution map[models.Sentiment]int `json:"sentimentDistribution"`
	TopTopics             []TopicCount             `json:"topTopics"`
}

// OwnedBy returns the records belonging to ownerID, preserving order.
func OwnedBy(videos []models.VideoRecord, ownerID string) []models.VideoRecord {
	out := make([]models.VideoRecord, 0, len(videos))
	for _, v := range videos {
		if v.UserID == ownerID {
			out = append(out, v)
		}
	}
	return out
}

// Completed returns the records whose analysis has finished.
func Completed(videos []models.VideoRecord) []models.VideoRecord {
	out := make([]models.VideoRecord, 0, len(videos))
	for _, v := range videos {
		if v.Status == models.VideoStatusCompleted {
			out = append(out, v)
		}
	}
	return out
}

// TotalDuration sums the duration of every record, in seconds.
func TotalDuration(videos []models.VideoRecord) int {
	total := 0
	for _, v := range videos {
		total += v.Duration
	}
	return total
}

// AverageConfidence is the mean summary confidence over completed records.
func AverageConfidence(videos []models.VideoRecord) float64 {
	return averageCompleted(videos, func(v models.VideoRecord) float64 {
		if v.Summary == nil {
			return 0
		}
		return v.Summary.Confidence
	})
}

// AverageEngagement is the mean engagement score over completed records.
func AverageEngagement(videos []models.VideoRecord) float64 {
	return averageCompleted(videos, func(v models.VideoRecord) float64 {
		if v.Insights == nil {
			return 0
		}
		return v.Insights.Engagement
	})
}

// AverageComplexity is the mean complexity score over completed records.
func AverageComplexity(videos []models.VideoRecord) float64 {
	return averageCompleted(videos, func(v models.VideoRecord) float64 {
		if v.Insights == nil {
			return 0
		}
		return v.Insights.Complexity
	})
}

func averageCompleted(videos []models.VideoRecord, value func(models.VideoRecord) float64) float64 {
	completed := Completed(videos)
	if len(completed) == 0 {
		return 0
	}
	var sum float64
	for _, v := range completed {
		sum += value(v)
	}
	return sum / float64(len(completed))
}

// SentimentDistribution counts completed records by summary sentiment. Only
// sentiments that occur are present.
func SentimentDistribution(videos []models.VideoRecord) map[models.Sentiment]int {
	dist := make(map[models.Sentiment]int)
	for _, v := range Completed(videos) {
		if v.Summary != nil {
			dist[v.Summary.Sentiment]++
		}
	}
	return dist
}

// TopicFrequency counts topic occurrences across completed records in the
// order each topic is first seen.
func TopicFrequency(videos []models.VideoRecord) []TopicCount {
	var counts []TopicCount
	index := make(map[string]int)
	for _, v := range Completed(videos) {
		if v.Summary == nil {
			continue
		}
		for _, topic := range v.Summary.Topics {
			if i, ok := index[topic]; ok {
				counts[i].Count++
				continue
			}
			index[topic] = len(counts)
			counts = append(counts, TopicCount{Topic: topic, Count: 1})
		}
	}
	return counts
}

// TopTopics returns the n most frequent topics. Ties keep discovery order.
func TopTopics(videos []models.VideoRecord, n int) []TopicCount {
	counts := TopicFrequency(videos)
	slices.SortStableFunc(counts, func(a, b TopicCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	if counts == nil {
		counts = []TopicCount{}
	}
	return counts
}

// RecentVideos returns up to n records, newest upload first.
func RecentVideos(videos []models.VideoRecord, n int) []models.VideoRecord {
	out := slices.Clone(videos)
	slices.SortStableFunc(out, func(a, b models.VideoRecord) int {
		return b.UploadedAt.Compare(a.UploadedAt)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	if out == nil {
		out = []models.VideoRecord{}
	}
	return out
}

// Filter keeps records whose title contains search, ignoring case, and whose
// status equals status. An empty status or StatusAll matches any status.
func Filter(videos []models.VideoRecord, search, status string) []models.VideoRecord {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.VideoRecord, 0, len(videos))
	for _, v := range videos {
		if needle != "" && !strings.Contains(strings.ToLower(v.Title), needle) {
			continue
		}
		if status != "" && status != StatusAll && string(v.Status) != status {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Dashboard summarises a user's records for the landing view.
func Dashboard(videos []models.VideoRecord) DashboardSummary {
	return DashboardSummary{
		TotalVideos:       len(videos),
		TotalDuration:     TotalDuration(videos),
		AverageConfidence: AverageConfidence(videos),
		Processed:         len(Completed(videos)),
		Recent:            RecentVideos(videos, DefaultRecentVideos),
	}
}

// Analytics aggregates analysis results across a user's records.
func Analytics(videos []models.VideoRecord) AnalyticsSummary {
	return AnalyticsSummary{
		TotalVideos:           len(videos),
		TotalDuration:         TotalDuration(videos),
		AverageConfidence:     AverageConfidence(videos),
		AverageEngagement:     AverageEngagement(videos),
		AverageComplexity:     AverageComplexity(videos),
		SentimentDistribution: SentimentDistribution(videos),
		TopTopics:             TopTopics(videos, DefaultTopTopics),
	}
}
