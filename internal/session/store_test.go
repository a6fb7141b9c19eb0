package session

import (
	"context"
	"testing"
	"time"

	"blushmart-web/internal/localstore"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBackend is a mock implementation of the Backend interface
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) SignIn(ctx context.Context, creds Credentials) (*AuthResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResult), args.Error(1)
}

func (m *MockBackend) SignUp(ctx context.Context, input SignupInput) (*AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResult), args.Error(1)
}

func (m *MockBackend) AdminSignIn(ctx context.Context, creds Credentials) (*AuthResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResult), args.Error(1)
}

func newLocal(t *testing.T) localstore.Store {
	t.Helper()
	local, err := localstore.NewFileStore(t.TempDir(), "sess")
	assert.NoError(t, err)
	return local
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u-1",
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return signed
}

func TestStore_LoginLogout(t *testing.T) {
	ctx := context.Background()
	local := newLocal(t)
	s := New(ctx, local, new(MockBackend))

	user := User{ID: "u-1", Name: "Jane", Email: "jane@example.com"}

	assert.NoError(t, s.Login(ctx, "tok-1", RoleCustomer, "u-1", user))
	assert.True(t, s.Authenticated())
	assert.Equal(t, RoleCustomer, s.Role())
	assert.Equal(t, "u-1", s.UserID())
	assert.Equal(t, "Jane", s.User().Name)

	// Persisted alongside memory
	v, err := local.Get(ctx, localstore.KeyToken)
	assert.NoError(t, err)
	assert.Equal(t, "tok-1", v)

	assert.NoError(t, s.Logout(ctx))
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.User())

	_, err = local.Get(ctx, localstore.KeyToken)
	assert.ErrorIs(t, err, localstore.ErrKeyNotFound)
}

func TestStore_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("Full record restored", func(t *testing.T) {
		local := newLocal(t)
		first := New(ctx, local, new(MockBackend))
		assert.NoError(t, first.Login(ctx, "tok-1", RoleAdmin, "u-2", User{ID: "u-2", Name: "Amina"}))

		restored := New(ctx, local, new(MockBackend))
		assert.True(t, restored.Authenticated())
		assert.Equal(t, RoleAdmin, restored.Role())
		assert.Equal(t, "u-2", restored.UserID())
		assert.Equal(t, "Amina", restored.User().Name)
	})

	t.Run("Token without role and user is cleared", func(t *testing.T) {
		local := newLocal(t)
		assert.NoError(t, local.Set(ctx, localstore.KeyToken, "orphan-token"))

		restored := New(ctx, local, new(MockBackend))
		assert.False(t, restored.Authenticated())

		_, err := local.Get(ctx, localstore.KeyToken)
		assert.ErrorIs(t, err, localstore.ErrKeyNotFound)
	})

	t.Run("Corrupt user record is cleared", func(t *testing.T) {
		local := newLocal(t)
		assert.NoError(t, local.Set(ctx, localstore.KeyToken, "tok"))
		assert.NoError(t, local.Set(ctx, localstore.KeyRole, RoleCustomer))
		assert.NoError(t, local.Set(ctx, localstore.KeyUser, "{not json"))

		restored := New(ctx, local, new(MockBackend))
		assert.False(t, restored.Authenticated())
	})
}

func TestStore_SignIn(t *testing.T) {
	ctx := context.Background()
	creds := Credentials{Email: "jane@example.com", Password: "secret"}

	t.Run("Success populates session", func(t *testing.T) {
		backend := new(MockBackend)
		backend.On("SignIn", mock.Anything, creds).Return(&AuthResult{
			Token:  "tok-9",
			Role:   RoleCustomer,
			UserID: "u-9",
			User:   User{ID: "u-9", Name: "Jane"},
		}, nil)

		s := New(ctx, newLocal(t), backend)
		assert.NoError(t, s.SignIn(ctx, creds))
		assert.True(t, s.Authenticated())
		assert.Equal(t, "tok-9", s.Token())
		backend.AssertExpectations(t)
	})

	t.Run("Rejected signin leaves session untouched", func(t *testing.T) {
		backend := new(MockBackend)
		backend.On("SignIn", mock.Anything, creds).Return(nil, assert.AnError)

		s := New(ctx, newLocal(t), backend)
		err := s.SignIn(ctx, creds)
		assert.Error(t, err)
		assert.NotEmpty(t, err.Error())
		assert.False(t, s.Authenticated())
		assert.Empty(t, s.Token())
	})

	t.Run("Missing credentials never reach the backend", func(t *testing.T) {
		backend := new(MockBackend)
		s := New(ctx, newLocal(t), backend)

		assert.ErrorIs(t, s.SignIn(ctx, Credentials{Email: "x@y.z"}), ErrMissingCredentials)
		backend.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything)
	})
}

func TestStore_SignUp(t *testing.T) {
	ctx := context.Background()
	input := SignupInput{Name: "Jane", Email: "jane@example.com", Password: "secret"}

	t.Run("Password mismatch rejected client-side", func(t *testing.T) {
		backend := new(MockBackend)
		s := New(ctx, newLocal(t), backend)

		assert.ErrorIs(t, s.SignUp(ctx, input, "different"), ErrPasswordMismatch)
		backend.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything)
	})

	t.Run("Success logs in", func(t *testing.T) {
		backend := new(MockBackend)
		backend.On("SignUp", mock.Anything, input).Return(&AuthResult{
			Token: "tok-n", Role: RoleCustomer, UserID: "u-n", User: User{ID: "u-n"},
		}, nil)

		s := New(ctx, newLocal(t), backend)
		assert.NoError(t, s.SignUp(ctx, input, "secret"))
		assert.True(t, s.Authenticated())
	})
}

func TestStore_Authenticated(t *testing.T) {
	ctx := context.Background()

	t.Run("Unexpired JWT", func(t *testing.T) {
		s := New(ctx, newLocal(t), new(MockBackend))
		tok := signedToken(t, time.Now().Add(time.Hour))
		assert.NoError(t, s.Login(ctx, tok, RoleCustomer, "u-1", User{}))
		assert.True(t, s.Authenticated())
	})

	t.Run("Expired JWT", func(t *testing.T) {
		s := New(ctx, newLocal(t), new(MockBackend))
		tok := signedToken(t, time.Now().Add(-time.Hour))
		assert.NoError(t, s.Login(ctx, tok, RoleCustomer, "u-1", User{}))
		assert.False(t, s.Authenticated())
	})

	t.Run("Opaque token counts as usable", func(t *testing.T) {
		s := New(ctx, newLocal(t), new(MockBackend))
		assert.NoError(t, s.Login(ctx, "opaque-bearer", RoleCustomer, "u-1", User{}))
		assert.True(t, s.Authenticated())
	})
}

func TestStore_RequireRole(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, newLocal(t), new(MockBackend))

	assert.ErrorIs(t, s.RequireRole(RoleAdmin), ErrNotAuthenticated)

	assert.NoError(t, s.Login(ctx, "tok", RoleCustomer, "u-1", User{}))
	assert.ErrorIs(t, s.RequireRole(RoleAdmin), ErrForbidden)
	assert.NoError(t, s.RequireRole(RoleCustomer))
}
