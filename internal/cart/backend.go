package cart

import (
	"context"

	"blushmart-web/internal/api"
)

// cartResponse is the backend's cart envelope: every mutation answers
// with the full authoritative item list.
type cartResponse struct {
	Items []CartItem `json:"items"`
}

// Backend is the cart slice of the upstream API.
type Backend interface {
	Fetch(ctx context.Context, token string) ([]CartItem, error)
	Add(ctx context.Context, token string, params AddItemParams) ([]CartItem, error)
	Remove(ctx context.Context, token, id string) ([]CartItem, error)
	UpdateQuantity(ctx context.Context, token string, params UpdateQuantityParams) ([]CartItem, error)
}

type apiBackend struct {
	client *api.Client
}

func NewBackend(client *api.Client) Backend {
	return &apiBackend{client: client}
}

func (b *apiBackend) Fetch(ctx context.Context, token string) ([]CartItem, error) {
	var out cartResponse
	if err := b.client.GetJSON(ctx, "/api/cart", token, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (b *apiBackend) Add(ctx context.Context, token string, params AddItemParams) ([]CartItem, error) {
	var out cartResponse
	if err := b.client.PostJSON(ctx, "/api/cart", token, params, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (b *apiBackend) Remove(ctx context.Context, token, id string) ([]CartItem, error) {
	var out cartResponse
	if err := b.client.DeleteJSON(ctx, "/api/cart/"+id, token, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (b *apiBackend) UpdateQuantity(ctx context.Context, token string, params UpdateQuantityParams) ([]CartItem, error) {
	var out cartResponse
	if err := b.client.PutJSON(ctx, "/api/cart", token, params, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}
