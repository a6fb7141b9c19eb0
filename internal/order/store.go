package order

import (
	"context"
	"errors"
	"sync"

	"blushmart-web/internal/api"
	"blushmart-web/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrInvalidStatus = errors.New("invalid order status")
	ErrOrderNotFound = errors.New("order not found")
)

// Backend is the orders slice of the upstream API.
type Backend interface {
	Fetch(ctx context.Context, token string) ([]Order, error)
	UpdateStatus(ctx context.Context, token, orderID string, status Status) error
}

type apiBackend struct {
	client *api.Client
}

func NewBackend(client *api.Client) Backend {
	return &apiBackend{client: client}
}

func (b *apiBackend) Fetch(ctx context.Context, token string) ([]Order, error) {
	var out struct {
		Orders []Order `json:"orders"`
	}
	if err := b.client.GetJSON(ctx, "/api/order", token, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (b *apiBackend) UpdateStatus(ctx context.Context, token, orderID string, status Status) error {
	body := map[string]string{"status": string(status)}
	return b.client.PatchJSON(ctx, "/api/order/"+orderID, token, body, nil)
}

// Store is the admin order list. Status changes are optimistic for a
// responsive dropdown, but always confirmed upstream: the local patch is
// rolled back when the PATCH fails.
type Store struct {
	mu      sync.Mutex
	backend Backend

	orders []Order
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Fetch loads the order list, keeping prior state on failure.
func (s *Store) Fetch(ctx context.Context, token string) error {
	orders, err := s.backend.Fetch(ctx, token)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch orders", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return nil
}

// UpdateStatus patches the order locally, confirms upstream, and rolls
// the local entry back if the backend refuses.
func (s *Store) UpdateStatus(ctx context.Context, token, orderID string, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	prev, ok := s.patch(orderID, status)
	if !ok {
		return ErrOrderNotFound
	}

	if err := s.backend.UpdateStatus(ctx, token, orderID, status); err != nil {
		logger.FromCtx(ctx).Error("order status rejected, rolling back",
			zap.String("order_id", orderID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		s.patch(orderID, prev)
		return err
	}
	return nil
}

// patch sets the status of one order and returns the previous value.
func (s *Store) patch(orderID string, status Status) (Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			prev := s.orders[i].Status
			s.orders[i].Status = status
			return prev, true
		}
	}
	return "", false
}

// Orders returns a snapshot of the list.
func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}
