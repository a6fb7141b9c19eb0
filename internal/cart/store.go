package cart

import (
	"context"
	"sync"
	"time"

	"blushmart-web/internal/catalog"
	"blushmart-web/internal/logger"
	"blushmart-web/internal/session"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store holds the cart line items and their derived totals for one
// session. Every mutation is a single round trip: the local list is
// replaced wholesale with the server's authoritative response, then the
// totals and delivery estimate are recomputed. There is no optimistic
// patching and no retry.
type Store struct {
	mu      sync.Mutex
	backend Backend
	auth    *session.Store
	now     func() time.Time

	items        []CartItem
	totalPrice   float64
	finalPrice   float64
	deliveryDate time.Time
}

func NewStore(backend Backend, auth *session.Store) *Store {
	return &Store{backend: backend, auth: auth, now: time.Now}
}

// Fetch loads the current cart. Failures are logged and swallowed,
// leaving the prior state in place.
func (s *Store) Fetch(ctx context.Context) {
	items, err := s.backend.Fetch(ctx, s.auth.Token())
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch cart", zap.Error(err))
		return
	}
	s.replace(items)
}

// Add puts one unit of product in the cart, snapshotting its name, images
// and discounted unit price. Failures are logged and swallowed.
func (s *Store) Add(ctx context.Context, product catalog.Product) {
	params := AddItemParams{
		ProductID: product.ID,
		Quantity:  1,
		Name:      product.Name,
		Price:     product.EffectivePrice(),
		ImageURLs: product.ImageURLs,
	}

	items, err := s.backend.Add(ctx, s.auth.Token(), params)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to add item to cart",
			zap.String("product_id", product.ID), zap.Error(err))
		return
	}
	s.replace(items)
}

// Remove deletes one line by item id. The error is returned so the
// caller can surface a message.
func (s *Store) Remove(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingItemID
	}

	items, err := s.backend.Remove(ctx, s.auth.Token(), id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to remove cart item",
			zap.String("item_id", id), zap.Error(err))
		return err
	}
	s.replace(items)
	return nil
}

// UpdateQuantity sets a line's quantity. Non-positive quantities are
// rejected before any network call, leaving state untouched.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	items, err := s.backend.UpdateQuantity(ctx, s.auth.Token(), UpdateQuantityParams{
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update cart quantity",
			zap.String("product_id", productID), zap.Int("quantity", quantity), zap.Error(err))
		return err
	}
	s.replace(items)
	return nil
}

// replace swaps in the server's item list and recomputes the derived
// totals and delivery estimate.
func (s *Store) replace(items []CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = items

	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	s.totalPrice, _ = total.Float64()
	// No client-side discount composition today: final mirrors total.
	s.finalPrice = s.totalPrice
	s.deliveryDate = s.now().Add(deliveryOffset)
}

// Items returns a snapshot of the current lines.
func (s *Store) Items() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPrice
}

func (s *Store) FinalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalPrice
}

// DeliveryDate is the display-formatted shipping estimate, empty until
// the first successful mutation.
func (s *Store) DeliveryDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deliveryDate.IsZero() {
		return ""
	}
	return s.deliveryDate.Format("Jan 2, 2006")
}
