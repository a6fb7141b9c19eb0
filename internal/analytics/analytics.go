package analytics

import (
	"context"
	"errors"
	"sync"

	"blushmart-web/internal/api"
	"blushmart-web/internal/logger"

	"go.uber.org/zap"
)

var ErrMalformedReport = errors.New("malformed analytics payload")

type SalesOverview struct {
	TotalSales           float64 `json:"totalSales"`
	PendingDeliverySales float64 `json:"pendingDeliverySales"`
	DeliveredSales       float64 `json:"deliveredSales"`
}

type TopProduct struct {
	Name       string   `json:"name"`
	TotalSales float64  `json:"totalSales"`
	ImageURLs  []string `json:"imageUrls"`
}

// Report is the admin dashboard's analytics view model.
type Report struct {
	SalesOverview    SalesOverview  `json:"salesOverview"`
	OrderStatusCount map[string]int `json:"orderStatusCount"`
	TopProducts      []TopProduct   `json:"topProducts"`
}

// reportPayload keeps the required sections as pointers so a response
// with the wrong shape is detectable instead of silently zero.
type reportPayload struct {
	SalesOverview    *SalesOverview `json:"salesOverview"`
	OrderStatusCount map[string]int `json:"orderStatusCount"`
	TopProducts      []TopProduct   `json:"topProducts"`
}

// Backend is the analytics slice of the upstream API.
type Backend interface {
	Fetch(ctx context.Context, token string) (*Report, error)
}

type apiBackend struct {
	client *api.Client
}

func NewBackend(client *api.Client) Backend {
	return &apiBackend{client: client}
}

func (b *apiBackend) Fetch(ctx context.Context, token string) (*Report, error) {
	var payload reportPayload
	if err := b.client.GetJSON(ctx, "/api/analytics", token, &payload); err != nil {
		return nil, err
	}

	report, err := validate(payload)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// validate rejects payloads missing a required section or carrying
// impossible values; the dashboard renders a validated shape only.
func validate(payload reportPayload) (*Report, error) {
	if payload.SalesOverview == nil || payload.OrderStatusCount == nil {
		return nil, ErrMalformedReport
	}
	if payload.SalesOverview.TotalSales < 0 {
		return nil, ErrMalformedReport
	}
	for _, count := range payload.OrderStatusCount {
		if count < 0 {
			return nil, ErrMalformedReport
		}
	}
	for _, p := range payload.TopProducts {
		if p.Name == "" {
			return nil, ErrMalformedReport
		}
	}

	return &Report{
		SalesOverview:    *payload.SalesOverview,
		OrderStatusCount: payload.OrderStatusCount,
		TopProducts:      payload.TopProducts,
	}, nil
}

// Store caches the last valid report for the dashboard.
type Store struct {
	mu      sync.Mutex
	backend Backend

	report *Report
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Fetch refreshes the report; a failed or malformed fetch keeps the
// previous one.
func (s *Store) Fetch(ctx context.Context, token string) error {
	report, err := s.backend.Fetch(ctx, token)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch analytics", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.report = report
	s.mu.Unlock()
	return nil
}

// Report returns the last valid report, or nil before the first fetch.
func (s *Store) Report() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.report == nil {
		return nil
	}

	// Copy the map and slice too so a caller cannot reach the cached
	// report through the snapshot.
	r := *s.report
	r.OrderStatusCount = make(map[string]int, len(s.report.OrderStatusCount))
	for k, v := range s.report.OrderStatusCount {
		r.OrderStatusCount[k] = v
	}
	r.TopProducts = append([]TopProduct(nil), s.report.TopProducts...)
	return &r
}
