package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vidinsight/backend/internal/logging"
	"github.com/vidinsight/backend/internal/models"
)

// ErrNoSession indicates no user is signed in.
var ErrNoSession = errors.New("no active session")

// UserStore persists the session user across restarts.
type UserStore interface {
	Load(ctx context.Context) (models.User, bool, error)
	Save(ctx context.Context, user models.User) error
	Clear(ctx context.Context) error
}

// LogoutHook runs after the session user has been cleared.
type LogoutHook func(ctx context.Context) error

// Sessions owns the single current user of the process. Login and Register
// accept any well-formed input: no credentials are stored or checked, so
// this must never be treated as real authentication.
type Sessions struct {
	store    UserStore
	onLogout []LogoutHook
	newID    func() string

	mu      sync.RWMutex
	current *models.User
}

// Option customises Sessions.
type Option func(*Sessions)

// WithLogoutHook registers a hook invoked by Logout.
func WithLogoutHook(hook LogoutHook) Option {
	return func(s *Sessions) {
		if hook != nil {
			s.onLogout = append(s.onLogout, hook)
		}
	}
}

// WithIDGenerator overrides user id generation. Useful for tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Sessions) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewSessions constructs a session store persisting through store.
func NewSessions(store UserStore, opts ...Option) *Sessions {
	if store == nil {
		panic("auth: user store must not be nil")
	}
	s := &Sessions{store: store, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore installs a previously persisted user, without re-validating it.
func (s *Sessions) Restore(ctx context.Context) error {
	user, ok, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.current = &user
		logging.FromContext(ctx).Info("restored session", "userId", user.ID)
	} else {
		s.current = nil
	}
	return nil
}

// Login installs a user synthesized from email. It fails without touching
// state when the email or password is malformed.
func (s *Sessions) Login(ctx context.Context, email, password string) (models.User, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return models.User{}, err
	}
	return s.install(ctx, s.newUser(email, DisplayName(email)))
}

// Register is Login with an explicit display name.
func (s *Sessions) Register(ctx context.Context, email, password, name string) (models.User, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return models.User{}, err
	}
	if err := ValidateName(name); err != nil {
		return models.User{}, err
	}
	return s.install(ctx, s.newUser(email, strings.TrimSpace(name)))
}

// Logout clears the current user and runs the registered logout hooks.
func (s *Sessions) Logout(ctx context.Context) error {
	s.mu.Lock()
	previous := s.current
	s.current = nil
	err := s.store.Clear(ctx)
	s.mu.Unlock()

	if previous != nil {
		logging.FromContext(ctx).Info("session ended", "userId", previous.ID)
	}

	for _, hook := range s.onLogout {
		if hookErr := hook(ctx); hookErr != nil {
			err = errors.Join(err, hookErr)
		}
	}
	return err
}

// Current returns the signed-in user.
func (s *Sessions) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

func (s *Sessions) newUser(email, name string) models.User {
	return models.User{
		ID:     s.newID(),
		Email:  email,
		Name:   name,
		Role:   RoleFor(email),
		Avatar: DefaultAvatar,
	}
}

func (s *Sessions) install(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, user); err != nil {
		return models.User{}, err
	}
	s.current = &user

	logging.FromContext(ctx).Info("session started", "userId", user.ID, "role", user.Role)
	return user, nil
}
