package transport

import (
	"context"
	"sync"
	"time"

	"blushmart-web/internal/analytics"
	"blushmart-web/internal/api"
	"blushmart-web/internal/cart"
	"blushmart-web/internal/catalog"
	"blushmart-web/internal/chat"
	"blushmart-web/internal/discount"
	"blushmart-web/internal/listing"
	"blushmart-web/internal/localstore"
	"blushmart-web/internal/logger"
	"blushmart-web/internal/order"
	"blushmart-web/internal/payment"
	"blushmart-web/internal/review"
	"blushmart-web/internal/session"
	"blushmart-web/internal/user"
)

// Idle bundles are swept so drive-by sessions cannot grow the map without
// bound. Evicted state survives in the localstore namespace.
const (
	bundleIdleTTL = 30 * time.Minute
	sweepInterval = time.Minute
)

// StoreFactory opens the persistent key/value namespace for one browser
// session.
type StoreFactory func(namespace string) (localstore.Store, error)

// Bundle holds every store scoped to one browser session. Each session
// gets its own bundle so concurrent shoppers never share cart or auth
// state.
type Bundle struct {
	Session   *session.Store
	Cart      *cart.Store
	Catalog   *catalog.Store
	Recent    *listing.RecentlyViewed
	Orders    *order.Store
	Users     *user.Store
	Discounts *discount.Store
	Analytics *analytics.Store
	Payments  *payment.Flow
	Chat      *chat.Store
	Reviews   *review.Store
}

// sessionEntry tracks when a bundle was last resolved.
type sessionEntry struct {
	bundle   *Bundle
	lastSeen time.Time
}

// Registry lazily builds and caches one Bundle per session id.
type Registry struct {
	client  *api.Client
	factory StoreFactory

	mu      sync.Mutex
	bundles map[string]*sessionEntry
}

func NewRegistry(client *api.Client, factory StoreFactory) *Registry {
	r := &Registry{
		client:  client,
		factory: factory,
		bundles: make(map[string]*sessionEntry),
	}
	go r.sweepIdle()
	return r
}

// Resolve returns the bundle for the session carried by ctx, building it
// on first sight. State persisted by an earlier process is restored from
// the session's namespace.
func (r *Registry) Resolve(ctx context.Context) (*Bundle, error) {
	sessID := logger.SessionIDFrom(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.bundles[sessID]; ok {
		e.lastSeen = time.Now()
		return e.bundle, nil
	}

	local, err := r.factory(sessID)
	if err != nil {
		return nil, err
	}

	auth := session.New(ctx, local, session.NewBackend(r.client))

	b := &Bundle{
		Session:   auth,
		Cart:      cart.NewStore(cart.NewBackend(r.client), auth),
		Catalog:   catalog.NewStore(catalog.NewBackend(r.client)),
		Recent:    listing.NewRecentlyViewed(ctx, local),
		Orders:    order.NewStore(order.NewBackend(r.client)),
		Users:     user.NewStore(user.NewBackend(r.client)),
		Discounts: discount.NewStore(discount.NewBackend(r.client)),
		Analytics: analytics.NewStore(analytics.NewBackend(r.client)),
		Payments:  payment.NewFlow(payment.NewBackend(r.client), local),
		Chat:      chat.NewStore(chat.NewBackend(r.client)),
		Reviews:   review.NewStore(review.NewBackend(r.client), auth),
	}
	r.bundles[sessID] = &sessionEntry{bundle: b, lastSeen: time.Now()}
	return b, nil
}

// Drop forgets a session's bundle. The next request rebuilds it from the
// persisted namespace.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bundles, sessionID)
}

// evictIdle removes bundles not resolved within maxIdle and reports how
// many were dropped.
func (r *Registry) evictIdle(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for sessID, e := range r.bundles {
		if time.Since(e.lastSeen) > maxIdle {
			delete(r.bundles, sessID)
			evicted++
		}
	}
	return evicted
}

func (r *Registry) sweepIdle() {
	for {
		time.Sleep(sweepInterval)
		r.evictIdle(bundleIdleTTL)
	}
}
