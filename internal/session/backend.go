package session

import (
	"context"

	"blushmart-web/internal/api"
)

// Backend is the slice of the upstream API the session store depends on.
type Backend interface {
	SignIn(ctx context.Context, creds Credentials) (*AuthResult, error)
	SignUp(ctx context.Context, input SignupInput) (*AuthResult, error)
	AdminSignIn(ctx context.Context, creds Credentials) (*AuthResult, error)
}

type apiBackend struct {
	client *api.Client
}

func NewBackend(client *api.Client) Backend {
	return &apiBackend{client: client}
}

func (b *apiBackend) SignIn(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var out AuthResult
	if err := b.client.PostJSON(ctx, "/api/auth/signin", "", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *apiBackend) SignUp(ctx context.Context, input SignupInput) (*AuthResult, error) {
	var out AuthResult
	if err := b.client.PostJSON(ctx, "/api/auth/signup", "", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *apiBackend) AdminSignIn(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var out AuthResult
	if err := b.client.PostJSON(ctx, "/api/admin/signin", "", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
