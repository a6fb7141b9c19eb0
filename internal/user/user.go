package user

import (
	"context"
	"errors"
	"sync"

	"blushmart-web/internal/api"
	"blushmart-web/internal/logger"

	"go.uber.org/zap"
)

var ErrUserNotFound = errors.New("user not found")

// User is the admin-facing account record.
type User struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	OptIn     bool     `json:"optIn"`
	Active    bool     `json:"active"`
	Role      string   `json:"role"`
	Orders    []string `json:"orders"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// Backend is the users slice of the upstream API.
type Backend interface {
	Fetch(ctx context.Context, token string) ([]User, error)
	SetActive(ctx context.Context, token, id string, active bool) (*User, error)
	Profile(ctx context.Context, token string) (*User, error)
}

type apiBackend struct {
	client *api.Client
}

func NewBackend(client *api.Client) Backend {
	return &apiBackend{client: client}
}

func (b *apiBackend) Fetch(ctx context.Context, token string) ([]User, error) {
	var out struct {
		Users []User `json:"users"`
	}
	if err := b.client.GetJSON(ctx, "/api/users", token, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (b *apiBackend) SetActive(ctx context.Context, token, id string, active bool) (*User, error) {
	body := map[string]bool{"active": active}
	var updated User
	if err := b.client.PatchJSON(ctx, "/api/users/"+id, token, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (b *apiBackend) Profile(ctx context.Context, token string) (*User, error) {
	var out User
	if err := b.client.GetJSON(ctx, "/api/users/profile", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Store is the admin user list plus the signed-in customer's profile.
type Store struct {
	mu      sync.Mutex
	backend Backend

	users   []User
	profile *User
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Fetch loads the user list, keeping prior state on failure.
func (s *Store) Fetch(ctx context.Context, token string) error {
	users, err := s.backend.Fetch(ctx, token)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch users", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return nil
}

// SetActive toggles an account after the backend confirms the change:
// the local list is patched only from the PATCH response.
func (s *Store) SetActive(ctx context.Context, token, id string, active bool) error {
	updated, err := s.backend.SetActive(ctx, token, id, active)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to toggle user",
			zap.String("user_id", id), zap.Bool("active", active), zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i] = *updated
			return nil
		}
	}
	return ErrUserNotFound
}

// FetchProfile loads the signed-in customer's profile snapshot.
func (s *Store) FetchProfile(ctx context.Context, token string) (*User, error) {
	profile, err := s.backend.Profile(ctx, token)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch profile", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	return profile, nil
}

// Users returns a snapshot of the admin list.
func (s *Store) Users() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}
