package discount

import (
	"context"
	"errors"
	"sync"

	"blushmart-web/internal/api"
	"blushmart-web/internal/catalog"
	"blushmart-web/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrInvalidPercentage = errors.New("discount must be between 0 and 100")
	ErrDealNotFound      = errors.New("deal not found")
)

// Deal is a product with an active discount as the admin edits it.
type Deal struct {
	Product  catalog.Product
	Discount float64
	Active   bool
}

// Backend pushes discount edits upstream via the product update endpoint.
type Backend interface {
	FetchDeals(ctx context.Context) ([]catalog.Product, error)
	UpdateDiscount(ctx context.Context, token, productID string, discount float64, active bool) error
}

type apiBackend struct {
	client *api.Client
}

func NewBackend(client *api.Client) Backend {
	return &apiBackend{client: client}
}

func (b *apiBackend) FetchDeals(ctx context.Context) ([]catalog.Product, error) {
	var out struct {
		Deals []catalog.Product `json:"deals"`
	}
	if err := b.client.GetJSON(ctx, "/api/deals", "", &out); err != nil {
		return nil, err
	}
	return out.Deals, nil
}

func (b *apiBackend) UpdateDiscount(ctx context.Context, token, productID string, discount float64, active bool) error {
	if !active {
		discount = 0
	}
	body := map[string]float64{"discount": discount}
	return b.client.PutJSON(ctx, "/api/products/"+productID, token, body, nil)
}

// Store is the admin discount manager: the deals list with confirmed
// percentage edits and active/inactive toggles.
type Store struct {
	mu      sync.Mutex
	backend Backend

	deals []Deal
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Fetch loads the deals list, keeping prior state on failure.
func (s *Store) Fetch(ctx context.Context) error {
	products, err := s.backend.FetchDeals(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch deals", zap.Error(err))
		return err
	}

	deals := make([]Deal, 0, len(products))
	for _, p := range products {
		deals = append(deals, Deal{Product: p, Discount: p.Discount, Active: p.Discount > 0})
	}

	s.mu.Lock()
	s.deals = deals
	s.mu.Unlock()
	return nil
}

// SetDiscount updates one deal's percentage upstream, then locally.
func (s *Store) SetDiscount(ctx context.Context, token, productID string, discount float64) error {
	if discount < 0 || discount > 100 {
		return ErrInvalidPercentage
	}
	return s.update(ctx, token, productID, discount, discount > 0)
}

// SetActive toggles a deal on or off; toggling off zeroes the discount
// upstream while remembering the last percentage for re-enable.
func (s *Store) SetActive(ctx context.Context, token, productID string, active bool) error {
	s.mu.Lock()
	var discount float64
	found := false
	for _, d := range s.deals {
		if d.Product.ID == productID {
			discount = d.Discount
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return ErrDealNotFound
	}
	return s.update(ctx, token, productID, discount, active)
}

func (s *Store) update(ctx context.Context, token, productID string, discount float64, active bool) error {
	if err := s.backend.UpdateDiscount(ctx, token, productID, discount, active); err != nil {
		logger.FromCtx(ctx).Error("failed to update discount",
			zap.String("product_id", productID),
			zap.Float64("discount", discount),
			zap.Bool("active", active),
			zap.Error(err),
		)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.deals {
		if s.deals[i].Product.ID == productID {
			s.deals[i].Discount = discount
			s.deals[i].Active = active
			return nil
		}
	}
	return ErrDealNotFound
}

// Deals returns a snapshot of the list.
func (s *Store) Deals() []Deal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Deal, len(s.deals))
	copy(out, s.deals)
	return out
}
