package review

import (
	"context"
	"errors"
	"strings"
	"sync"

	"blushmart-web/internal/api"
	"blushmart-web/internal/logger"
	"blushmart-web/internal/session"

	"go.uber.org/zap"
)

var (
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrEmptyText      = errors.New("review text is required")
	ErrReviewNotFound = errors.New("review not found")
	ErrNotOwner       = errors.New("only the author can delete a review")
)

// Reviewer is the author reference embedded in a review.
type Reviewer struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Review is a customer review as the backend returns it. The author
// arrives under the userId key as a populated reference.
type Review struct {
	ID       string   `json:"_id"`
	UserName string   `json:"userName"`
	Rating   int      `json:"rating"`
	Text     string   `json:"text"`
	Date     string   `json:"date"`
	Reviewer Reviewer `json:"userId"`
}

// CreateInput is the leave-a-review form payload.
type CreateInput struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
}

// reviewsResponse is the backend's reviews envelope: list plus the
// recomputed average. Deletes answer with the same shape.
type reviewsResponse struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"averageRating"`
}

// Backend is the reviews slice of the upstream API.
type Backend interface {
	Fetch(ctx context.Context, productID string) ([]Review, float64, error)
	Create(ctx context.Context, token string, input CreateInput) error
	Delete(ctx context.Context, token, reviewID string) ([]Review, float64, error)
}

type apiBackend struct {
	client *api.Client
}

func NewBackend(client *api.Client) Backend {
	return &apiBackend{client: client}
}

func (b *apiBackend) Fetch(ctx context.Context, productID string) ([]Review, float64, error) {
	var out reviewsResponse
	if err := b.client.GetJSON(ctx, "/api/reviews/"+productID, "", &out); err != nil {
		return nil, 0, err
	}
	return out.Reviews, out.AverageRating, nil
}

func (b *apiBackend) Create(ctx context.Context, token string, input CreateInput) error {
	return b.client.PostJSON(ctx, "/api/reviews", token, input, nil)
}

func (b *apiBackend) Delete(ctx context.Context, token, reviewID string) ([]Review, float64, error) {
	var out reviewsResponse
	if err := b.client.DeleteJSON(ctx, "/api/reviews/"+reviewID, token, &out); err != nil {
		return nil, 0, err
	}
	return out.Reviews, out.AverageRating, nil
}

// Store holds the review list for the product currently being viewed,
// with the backend-computed average rating.
type Store struct {
	mu      sync.Mutex
	backend Backend
	auth    *session.Store

	productID     string
	reviews       []Review
	averageRating float64
}

func NewStore(backend Backend, auth *session.Store) *Store {
	return &Store{backend: backend, auth: auth}
}

// Fetch loads the reviews for one product, replacing the snapshot
// wholesale.
func (s *Store) Fetch(ctx context.Context, productID string) error {
	reviews, average, err := s.backend.Fetch(ctx, productID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch reviews",
			zap.String("product_id", productID), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.productID = productID
	s.reviews = reviews
	s.averageRating = average
	s.mu.Unlock()
	return nil
}

// Create submits a review for the current product and refreshes the list
// so the new entry and average show up. Rating and text are required
// before any network call; only a signed-in customer can review.
func (s *Store) Create(ctx context.Context, productID string, rating int, text string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if !s.auth.Authenticated() {
		return session.ErrNotAuthenticated
	}

	input := CreateInput{ProductID: productID, Rating: rating, Text: strings.TrimSpace(text)}
	if err := s.backend.Create(ctx, s.auth.Token(), input); err != nil {
		logger.FromCtx(ctx).Error("failed to create review",
			zap.String("product_id", productID), zap.Error(err))
		return err
	}

	return s.Fetch(ctx, productID)
}

// Delete removes one of the signed-in customer's own reviews and replaces
// the snapshot with the list the backend returns.
func (s *Store) Delete(ctx context.Context, reviewID string) error {
	if !s.auth.Authenticated() {
		return session.ErrNotAuthenticated
	}

	s.mu.Lock()
	var target *Review
	for i := range s.reviews {
		if s.reviews[i].ID == reviewID {
			target = &s.reviews[i]
			break
		}
	}
	s.mu.Unlock()

	if target == nil {
		return ErrReviewNotFound
	}
	if target.Reviewer.ID != s.auth.UserID() {
		return ErrNotOwner
	}

	reviews, average, err := s.backend.Delete(ctx, s.auth.Token(), reviewID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to delete review",
			zap.String("review_id", reviewID), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.reviews = reviews
	s.averageRating = average
	s.mu.Unlock()
	return nil
}

// Reviews returns a snapshot of the current product's reviews.
func (s *Store) Reviews() []Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}

// AverageRating is the backend-computed average for the current product.
func (s *Store) AverageRating() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.averageRating
}

// ProductID is the product whose reviews are currently loaded.
func (s *Store) ProductID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productID
}
