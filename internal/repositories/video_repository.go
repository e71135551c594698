package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vidinsight/backend/internal/models"
	"github.com/vidinsight/backend/internal/storage"
)

// KeyVideos is the storage key holding every user's video records.
const KeyVideos = "videoSummaries"

// VideoRepository persists the whole video collection as one JSON array.
type VideoRepository struct {
	store storage.Store
}

// NewVideoRepository constructs a video repository over store.
func NewVideoRepository(store storage.Store) *VideoRepository {
	return &VideoRepository{store: store}
}

// Load returns the persisted collection. ok is false when nothing is stored.
func (r *VideoRepository) Load(ctx context.Context) (videos []models.VideoRecord, ok bool, err error) {
	data, err := r.store.Get(ctx, KeyVideos)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load videos: %w", err)
	}
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w: %v", KeyVideos, ErrCorruptState, err)
	}
	if videos == nil {
		videos = []models.VideoRecord{}
	}
	return videos, true, nil
}

// Save replaces the persisted collection.
func (r *VideoRepository) Save(ctx context.Context, videos []models.VideoRecord) error {
	if videos == nil {
		videos = []models.VideoRecord{}
	}
	data, err := json.Marshal(videos)
	if err != nil {
		return fmt.Errorf("encode videos: %w", err)
	}
	if err := r.store.Set(ctx, KeyVideos, data); err != nil {
		return fmt.Errorf("save videos: %w", err)
	}
	return nil
}

// Clear removes the persisted collection.
func (r *VideoRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, KeyVideos); err != nil {
		return fmt.Errorf("clear videos: %w", err)
	}
	return nil
}
