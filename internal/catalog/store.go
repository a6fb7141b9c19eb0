package catalog

import (
	"context"
	"sync"

	"blushmart-web/internal/logger"

	"go.uber.org/zap"
)

// Store holds the product catalog and the deals subset for one session.
// Each Fetch replaces the local list wholesale with one page of server
// results; there is no accumulation across pages.
type Store struct {
	mu      sync.Mutex
	backend Backend

	products []Product
	deals    []Product
	loading  bool
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Fetch loads one catalog page. On failure the prior state is kept and
// the error is only logged, matching the storefront's quiet degradation.
func (s *Store) Fetch(ctx context.Context, page, limit int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	s.setLoading(true)
	defer s.setLoading(false)

	products, err := s.backend.FetchPage(ctx, page, limit)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch products",
			zap.Int("page", page), zap.Int("limit", limit), zap.Error(err))
		return
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
}

// FetchDeals loads the discounted subset. Quiet on failure, like Fetch.
func (s *Store) FetchDeals(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	deals, err := s.backend.FetchDeals(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch deals", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.deals = deals
	s.mu.Unlock()
}

// Create posts a new product and optimistically prepends it to the local
// list, with DiscountedPrice derived client-side. Returns nil on failure.
func (s *Store) Create(ctx context.Context, token string, input NewProduct, images []ImageFile) *Product {
	if err := validateNewProduct(input); err != nil {
		logger.FromCtx(ctx).Warn("rejected product input", zap.Error(err))
		return nil
	}

	s.setLoading(true)
	defer s.setLoading(false)

	created, err := s.backend.Create(ctx, token, input, images)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create product",
			zap.String("name", input.Name), zap.Error(err))
		return nil
	}

	created.DiscountedPrice = created.EffectivePrice()

	s.mu.Lock()
	s.products = append([]Product{*created}, s.products...)
	s.mu.Unlock()

	return created
}

// Delete removes the product upstream, then drops the matching id from
// local state. On failure the list is untouched and the error only logged.
func (s *Store) Delete(ctx context.Context, token, id string) {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.backend.Delete(ctx, token, id); err != nil {
		logger.FromCtx(ctx).Error("failed to delete product",
			zap.String("product_id", id), zap.Error(err))
		return
	}

	s.mu.Lock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.mu.Unlock()
}

// FeaturedByCategory filters to well-rated products of one category,
// preserving catalog order.
func (s *Store) FeaturedByCategory(category string) []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	var featured []Product
	for _, p := range s.products {
		if p.Rating >= featuredMinRating && p.Category == category {
			featured = append(featured, p)
		}
	}
	return featured
}

// Products returns a snapshot of the current page.
func (s *Store) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// Deals returns a snapshot of the deals subset.
func (s *Store) Deals() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Product, len(s.deals))
	copy(out, s.deals)
	return out
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func validateNewProduct(input NewProduct) error {
	if input.Name == "" {
		return ErrNameRequired
	}
	if input.Category == "" {
		return ErrCategoryRequired
	}
	if input.Price < 0 {
		return ErrNegativePrice
	}
	if input.Discount < 0 || input.Discount > 100 {
		return ErrInvalidDiscount
	}
	return nil
}
