package handlers

import (
	"context"

	"github.com/vidinsight/backend/internal/models"
	"github.com/vidinsight/backend/internal/videos"
)

// SessionStore captures the session operations required by the auth handlers.
type SessionStore interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, email, password, name string) (models.User, error)
	Logout(ctx context.Context) error
	Current() (models.User, bool)
}

// VideoStore captures the video record operations required by the video and
// analytics handlers.
type VideoStore interface {
	Add(ctx context.Context, input videos.NewVideo) (models.VideoRecord, error)
	Update(ctx context.Context, id string, patch videos.VideoPatch) (models.VideoRecord, error)
	Delete(ctx context.Context, id string) error
	Get(id string) (models.VideoRecord, bool)
	ListByOwner(ownerID string) []models.VideoRecord
}
