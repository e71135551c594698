package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vidinsight/backend/internal/models"
	"github.com/vidinsight/backend/internal/storage"
)

// KeyUser is the storage key holding the current session user.
const KeyUser = "user"

// UserRepository persists the single session user as JSON.
type UserRepository struct {
	store storage.Store
}

// NewUserRepository constructs a user repository over store.
func NewUserRepository(store storage.Store) *UserRepository {
	return &UserRepository{store: store}
}

// Load returns the persisted user. ok is false when no user is stored.
func (r *UserRepository) Load(ctx context.Context) (user models.User, ok bool, err error) {
	data, err := r.store.Get(ctx, KeyUser)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, false, nil
		}
		return models.User{}, false, fmt.Errorf("load user: %w", err)
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return models.User{}, false, fmt.Errorf("decode %s: %w: %v", KeyUser, ErrCorruptState, err)
	}
	if user.ID == "" {
		return models.User{}, false, fmt.Errorf("decode %s: %w: missing id", KeyUser, ErrCorruptState)
	}
	return user, true, nil
}

// Save replaces the persisted user.
func (r *UserRepository) Save(ctx context.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := r.store.Set(ctx, KeyUser, data); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Clear removes the persisted user.
func (r *UserRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, KeyUser); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}
