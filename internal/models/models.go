package models

import "time"

// Role distinguishes administrators from regular users.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents the identity installed by the session store.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// VideoStatus tracks where a record is in the simulated analysis pipeline.
type VideoStatus string

const (
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusCompleted  VideoStatus = "completed"
	VideoStatusFailed     VideoStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s VideoStatus) Valid() bool {
	switch s {
	case VideoStatusProcessing, VideoStatusCompleted, VideoStatusFailed:
		return true
	}
	return false
}

// Sentiment is the overall tone detected in a video.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Summary holds the analysis overview attached to a completed video.
type Summary struct {
	Overview   string    `json:"overview"`
	KeyPoints  []string  `json:"keyPoints"`
	Sentiment  Sentiment `json:"sentiment"`
	Topics     []string  `json:"topics"`
	Confidence float64   `json:"confidence"`
}

// Insights holds engagement scoring and follow-ups for a completed video.
type Insights struct {
	Engagement      float64  `json:"engagement"`
	Complexity      float64  `json:"complexity"`
	ActionItems     []string `json:"actionItems"`
	Recommendations []string `json:"recommendations"`
}

// VideoRecord is a single uploaded video and, once processed, its analysis.
type VideoRecord struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	VideoURL     string      `json:"videoUrl"`
	ThumbnailURL string      `json:"thumbnailUrl,omitempty"`
	Duration     int         `json:"duration"`
	UploadedAt   time.Time   `json:"uploadedAt"`
	Status       VideoStatus `json:"status"`
	Summary      *Summary    `json:"summary,omitempty"`
	Insights     *Insights   `json:"insights,omitempty"`
	UserID       string      `json:"userId"`
}

// Clone returns a deep copy so callers cannot mutate store-owned slices.
func (v VideoRecord) Clone() VideoRecord {
	out := v
	if v.Summary != nil {
		s := *v.Summary
		s.KeyPoints = cloneStrings(v.Summary.KeyPoints)
		s.Topics = cloneStrings(v.Summary.Topics)
		out.Summary = &s
	}
	if v.Insights != nil {
		in := *v.Insights
		in.ActionItems = cloneStrings(v.Insights.ActionItems)
		in.Recommendations = cloneStrings(v.Insights.Recommendations)
		out.Insights = &in
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
