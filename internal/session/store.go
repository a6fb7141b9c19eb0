package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"blushmart-web/internal/localstore"
	"blushmart-web/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Store holds the bearer token, role and user profile for one session,
// mirrored to a localstore so it survives restarts. It performs no network
// calls of its own beyond the injected auth Backend.
type Store struct {
	mu      sync.Mutex
	local   localstore.Store
	backend Backend

	token  string
	role   string
	userID string
	user   *User
}

// New restores any persisted session. A token without a role or user is an
// incomplete record: it is cleared rather than trusted.
func New(ctx context.Context, local localstore.Store, backend Backend) *Store {
	s := &Store{local: local, backend: backend}

	token, errToken := local.Get(ctx, localstore.KeyToken)
	role, errRole := local.Get(ctx, localstore.KeyRole)
	rawUser, errUser := local.Get(ctx, localstore.KeyUser)

	if errToken != nil || errRole != nil || errUser != nil {
		if errToken == nil {
			logger.FromCtx(ctx).Warn("incomplete persisted session, clearing")
		}
		_ = s.Logout(ctx)
		return s
	}

	var user User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		logger.FromCtx(ctx).Warn("corrupt persisted user record, clearing", zap.Error(err))
		_ = s.Logout(ctx)
		return s
	}

	s.token = token
	s.role = role
	s.user = &user
	if userID, err := local.Get(ctx, localstore.KeyUserID); err == nil {
		s.userID = userID
	}
	return s
}

// Login stores the session fields in memory and in the localstore.
func (s *Store) Login(ctx context.Context, token, role, userID string, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rawUser, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if err := s.local.Set(ctx, localstore.KeyToken, token); err != nil {
		return err
	}
	if err := s.local.Set(ctx, localstore.KeyRole, role); err != nil {
		return err
	}
	if err := s.local.Set(ctx, localstore.KeyUserID, userID); err != nil {
		return err
	}
	if err := s.local.Set(ctx, localstore.KeyUser, string(rawUser)); err != nil {
		return err
	}

	s.token = token
	s.role = role
	s.userID = userID
	s.user = &user
	return nil
}

// Logout clears the session from memory and from the localstore.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.role = ""
	s.userID = ""
	s.user = nil

	var firstErr error
	for _, key := range []string{
		localstore.KeyToken,
		localstore.KeyRole,
		localstore.KeyUserID,
		localstore.KeyUser,
	} {
		if err := s.local.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SignIn authenticates against the backend and, on success, populates the
// session. A rejected signin leaves the session untouched.
func (s *Store) SignIn(ctx context.Context, creds Credentials) error {
	return s.signIn(ctx, creds, s.backend.SignIn)
}

// AdminSignIn is SignIn against the admin endpoint.
func (s *Store) AdminSignIn(ctx context.Context, creds Credentials) error {
	return s.signIn(ctx, creds, s.backend.AdminSignIn)
}

func (s *Store) signIn(ctx context.Context, creds Credentials, call func(context.Context, Credentials) (*AuthResult, error)) error {
	if creds.Email == "" || creds.Password == "" {
		return ErrMissingCredentials
	}

	result, err := call(ctx, creds)
	if err != nil {
		logger.FromCtx(ctx).Info("signin rejected", zap.String("email", creds.Email), zap.Error(err))
		return err
	}

	return s.Login(ctx, result.Token, result.Role, result.UserID, result.User)
}

// SignUp registers a new account and logs it in.
func (s *Store) SignUp(ctx context.Context, input SignupInput, passwordConfirm string) error {
	if input.Email == "" || input.Password == "" {
		return ErrMissingCredentials
	}
	if input.Password != passwordConfirm {
		return ErrPasswordMismatch
	}

	result, err := s.backend.SignUp(ctx, input)
	if err != nil {
		return err
	}
	return s.Login(ctx, result.Token, result.Role, result.UserID, result.User)
}

// Authenticated reports whether a usable session exists. It is derived
// solely from the token: present, and not past its JWT expiry when the
// token is a parseable JWT. Signature verification belongs to the backend.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.token, claims); err != nil {
		// Opaque bearer token, nothing to inspect.
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.After(time.Now())
}

// RequireRole guards a protected view: the session must be usable and
// carry the expected role.
func (s *Store) RequireRole(role string) error {
	if !s.Authenticated() {
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.role != role {
		return ErrForbidden
	}
	return nil
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) Role() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// User returns a copy of the profile snapshot, or nil when logged out.
func (s *Store) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}
