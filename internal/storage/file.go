package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 25 * time.Millisecond

// File stores each key as <dir>/<key>.json. All access is serialised through
// an advisory lock file so several processes can share one directory; mu
// keeps goroutines of this process from sharing the lock handle.
type File struct {
	dir  string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewFile prepares dir and returns a Store rooted there.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("file storage: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file storage: create %s: %w", dir, err)
	}
	return &File{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, ".vidinsight.lock")),
	}, nil
}

// Get reads the value for key under a shared lock.
func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := f.acquire(ctx, false); err != nil {
		return nil, err
	}
	defer f.release()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("file storage: read %s: %w", key, err)
	}
	return data, nil
}

// Set atomically replaces the value for key under an exclusive lock.
func (f *File) Set(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := f.acquire(ctx, true); err != nil {
		return err
	}
	defer f.release()

	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("file storage: create temp for %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("file storage: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("file storage: close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("file storage: replace %s: %w", key, err)
	}
	return nil
}

// Delete removes the file for key.
func (f *File) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := f.acquire(ctx, true); err != nil {
		return err
	}
	defer f.release()

	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("file storage: delete %s: %w", key, err)
	}
	return nil
}

// Close releases the lock handle.
func (f *File) Close() error {
	return f.lock.Close()
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *File) acquire(ctx context.Context, exclusive bool) error {
	f.mu.Lock()
	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = f.lock.TryLockContext(ctx, lockRetryDelay)
	} else {
		ok, err = f.lock.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		f.mu.Unlock()
		return fmt.Errorf("file storage: acquire lock: %w", err)
	}
	if !ok {
		f.mu.Unlock()
		return errors.New("file storage: lock not acquired")
	}
	return nil
}

func (f *File) release() {
	_ = f.lock.Unlock()
	f.mu.Unlock()
}
