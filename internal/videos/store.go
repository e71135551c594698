package videos

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vidinsight/backend/internal/logging"
	"github.com/vidinsight/backend/internal/models"
)

// DefaultTitle is used when a video is added without a title.
const DefaultTitle = "Untitled Video"

// DefaultProcessingDelay is how long a new record stays in processing.
const DefaultProcessingDelay = 3 * time.Second

// Repository persists the full video collection.
type Repository interface {
	Load(ctx context.Context) ([]models.VideoRecord, bool, error)
	Save(ctx context.Context, videos []models.VideoRecord) error
	Clear(ctx context.Context) error
}

// Identity reports the signed-in user, if any.
type Identity interface {
	Current() (models.User, bool)
}

// StoreConfig controls processing and optional collaborators of a Store.
type StoreConfig struct {
	ProcessingDelay time.Duration
	Analyzer        Analyzer
	Metadata        Provider
	Now             func() time.Time
	NewID           func() string
	Logger          *slog.Logger
}

// NewVideo describes a video submitted by the current user.
type NewVideo struct {
	Title        string
	VideoURL     string
	ThumbnailURL string
	Duration     int
}

// VideoPatch lists the fields to merge into an existing record. Nil fields
// are left untouched.
type VideoPatch struct {
	Title        *string
	VideoURL     *string
	ThumbnailURL *string
	Duration     *int
	Status       *models.VideoStatus
	Summary      *models.Summary
	Insights     *models.Insights
}

// Store owns the shared video collection, persists every mutation and
// simulates analysis of newly added videos.
type Store struct {
	repo      Repository
	identity  Identity
	analyzer  Analyzer
	metadata  Provider
	delay     time.Duration
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
	scheduler *Scheduler

	mu     sync.RWMutex
	videos []models.VideoRecord
}

// NewStore constructs an empty store. Call Load before serving requests.
func NewStore(repo Repository, identity Identity, cfg StoreConfig) *Store {
	if cfg.ProcessingDelay <= 0 {
		cfg.ProcessingDelay = DefaultProcessingDelay
	}
	if cfg.Analyzer == nil {
		cfg.Analyzer = CannedAnalyzer{}
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Store{
		repo:      repo,
		identity:  identity,
		analyzer:  cfg.Analyzer,
		metadata:  cfg.Metadata,
		delay:     cfg.ProcessingDelay,
		now:       cfg.Now,
		newID:     cfg.NewID,
		logger:    cfg.Logger,
		scheduler: NewScheduler(),
		videos:    []models.VideoRecord{},
	}
}

// Load reads the persisted collection, seeding and persisting the demo videos
// when none exists. Records still processing are scheduled again.
func (s *Store) Load(ctx context.Context) error {
	videos, ok, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		videos = DemoVideos()
		if err := s.repo.Save(ctx, videos); err != nil {
			return fmt.Errorf("seed videos: %w", err)
		}
		logging.FromContext(ctx).Info("seeded demo videos", "count", len(videos))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.scheduler.CancelAll()
	s.videos = videos
	for _, video := range s.videos {
		if video.Status == models.VideoStatusProcessing {
			s.scheduleLocked(video.ID)
		}
	}
	return nil
}

// Add appends a processing record owned by the current user and schedules its
// completion.
func (s *Store) Add(ctx context.Context, input NewVideo) (models.VideoRecord, error) {
	user, ok := s.identity.Current()
	if !ok {
		return models.VideoRecord{}, ErrNoSession
	}
	if input.Duration < 0 {
		return models.VideoRecord{}, fmt.Errorf("%w: duration must not be negative", ErrInvalidVideo)
	}

	input = s.enrich(ctx, input)
	if strings.TrimSpace(input.Title) == "" {
		input.Title = DefaultTitle
	}

	video := models.VideoRecord{
		ID:           s.newID(),
		Title:        input.Title,
		VideoURL:     input.VideoURL,
		ThumbnailURL: input.ThumbnailURL,
		Duration:     input.Duration,
		UploadedAt:   s.now(),
		Status:       models.VideoStatusProcessing,
		UserID:       user.ID,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.videos = append(s.videos, video)
	if err := s.persistLocked(ctx); err != nil {
		s.videos = s.videos[:len(s.videos)-1]
		return models.VideoRecord{}, err
	}
	s.scheduleLocked(video.ID)

	logging.FromContext(ctx).Info("video added", "videoId", video.ID, "userId", user.ID)
	return video.Clone(), nil
}

// Update merges patch into the record with the given id.
func (s *Store) Update(ctx context.Context, id string, patch VideoPatch) (models.VideoRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return models.VideoRecord{}, ErrVideoNotFound
	}

	previous := s.videos[idx]
	updated, err := applyPatch(previous.Clone(), patch)
	if err != nil {
		return models.VideoRecord{}, err
	}

	s.videos[idx] = updated
	if err := s.persistLocked(ctx); err != nil {
		s.videos[idx] = previous
		return models.VideoRecord{}, err
	}

	if previous.Status != updated.Status {
		if updated.Status == models.VideoStatusProcessing {
			s.scheduleLocked(id)
		} else {
			s.scheduler.Cancel(id)
		}
	}

	logging.FromContext(ctx).Info("video updated", "videoId", id, "status", updated.Status)
	return updated.Clone(), nil
}

// Delete removes the record with the given id and cancels its pending
// completion.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return ErrVideoNotFound
	}

	previous := slices.Clone(s.videos)
	s.videos = slices.Delete(s.videos, idx, idx+1)
	if err := s.persistLocked(ctx); err != nil {
		s.videos = previous
		return err
	}
	s.scheduler.Cancel(id)

	logging.FromContext(ctx).Info("video deleted", "videoId", id)
	return nil
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (models.VideoRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return models.VideoRecord{}, false
	}
	return s.videos[idx].Clone(), true
}

// List returns a copy of every record in collection order.
func (s *Store) List() []models.VideoRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.videos)
}

// ListByOwner returns copies of the records owned by ownerID.
func (s *Store) ListByOwner(ownerID string) []models.VideoRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(OwnedBy(s.videos, ownerID))
}

// Reset drops every record, cancels pending completions and deletes the
// persisted collection.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancelled := s.scheduler.CancelAll()
	s.videos = []models.VideoRecord{}
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}

	logging.FromContext(ctx).Info("video collection reset", "cancelledTasks", cancelled)
	return nil
}

// Shutdown cancels pending completions and waits for running ones.
func (s *Store) Shutdown(ctx context.Context) error {
	return s.scheduler.Shutdown(ctx)
}

func (s *Store) enrich(ctx context.Context, input NewVideo) NewVideo {
	if s.metadata == nil || input.VideoURL == "" {
		return input
	}
	if input.Title != "" && input.ThumbnailURL != "" && input.Duration > 0 {
		return input
	}

	metadata, err := s.metadata.Lookup(ctx, input.VideoURL)
	if err != nil {
		logging.FromContext(ctx).Warn("video metadata lookup failed", "url", input.VideoURL, "error", err)
		return input
	}

	if input.Title == "" {
		input.Title = metadata.Title
	}
	if input.ThumbnailURL == "" {
		input.ThumbnailURL = metadata.Thumbnail
	}
	if input.Duration == 0 && metadata.Duration > 0 {
		input.Duration = metadata.Duration
	}
	return input
}

func (s *Store) scheduleLocked(id string) {
	s.scheduler.Schedule(id, s.delay, func() { s.complete(id) })
}

func (s *Store) complete(id string) {
	ctx := logging.WithLogger(context.Background(), s.logger.With("videoId", id))
	ctx, span := logging.StartSpan(ctx, "videos.complete")

	s.mu.RLock()
	idx := s.indexLocked(id)
	var snapshot models.VideoRecord
	if idx >= 0 {
		snapshot = s.videos[idx].Clone()
	}
	s.mu.RUnlock()

	if idx < 0 || snapshot.Status != models.VideoStatusProcessing {
		span.End()
		return
	}

	analysis, analyzeErr := s.analyzer.Analyze(ctx, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()

	// The record may have been deleted or edited while the analyzer ran.
	idx = s.indexLocked(id)
	if idx < 0 || s.videos[idx].Status != models.VideoStatusProcessing {
		span.End()
		return
	}

	video := &s.videos[idx]
	if analyzeErr != nil {
		video.Status = models.VideoStatusFailed
	} else {
		summary, insights := analysis.Summary, analysis.Insights
		video.Status = models.VideoStatusCompleted
		video.Summary = &summary
		video.Insights = &insights
	}

	if err := s.persistLocked(ctx); err != nil {
		span.EndWithError(err)
		return
	}
	span.EndWithError(analyzeErr)
}

func (s *Store) persistLocked(ctx context.Context) error {
	return s.repo.Save(ctx, s.videos)
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.videos, func(v models.VideoRecord) bool { return v.ID == id })
}

func applyPatch(video models.VideoRecord, patch VideoPatch) (models.VideoRecord, error) {
	if patch.Title != nil {
		video.Title = *patch.Title
	}
	if patch.VideoURL != nil {
		video.VideoURL = *patch.VideoURL
	}
	if patch.ThumbnailURL != nil {
		video.ThumbnailURL = *patch.ThumbnailURL
	}
	if patch.Duration != nil {
		if *patch.Duration < 0 {
			return video, fmt.Errorf("%w: duration must not be negative", ErrInvalidPatch)
		}
		video.Duration = *patch.Duration
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return video, fmt.Errorf("%w: unknown status %q", ErrInvalidPatch, *patch.Status)
		}
		video.Status = *patch.Status
		if video.Status != models.VideoStatusCompleted {
			video.Summary = nil
			video.Insights = nil
		}
	}
	if patch.Summary != nil {
		if c := patch.Summary.Confidence; c < 0 || c > 1 {
			return video, fmt.Errorf("%w: confidence %v outside [0,1]", ErrInvalidPatch, c)
		}
		summary := *patch.Summary
		video.Summary = &summary
	}
	if patch.Insights != nil {
		in := *patch.Insights
		if in.Engagement < 0 || in.Engagement > 100 || in.Complexity < 0 || in.Complexity > 100 {
			return video, fmt.Errorf("%w: engagement and complexity must be within [0,100]", ErrInvalidPatch)
		}
		video.Insights = &in
	}
	if video.Status != models.VideoStatusCompleted && (video.Summary != nil || video.Insights != nil) {
		return video, fmt.Errorf("%w: analysis requires status %q", ErrInvalidPatch, models.VideoStatusCompleted)
	}
	if video.Status == models.VideoStatusCompleted && (video.Summary == nil || video.Insights == nil) {
		return video, fmt.Errorf("%w: completed videos require summary and insights", ErrInvalidPatch)
	}
	return video.Clone(), nil
}

func cloneAll(videos []models.VideoRecord) []models.VideoRecord {
	out := make([]models.VideoRecord, 0, len(videos))
	for _, v := range videos {
		out = append(out, v.Clone())
	}
	return out
}
