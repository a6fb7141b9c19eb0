package payment

import (
	"context"
	"testing"

	"blushmart-web/internal/localstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBackend is a mock implementation of the Backend interface
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Initialize(ctx context.Context, token string, params InitializeParams) (*InitializeResult, error) {
	args := m.Called(ctx, token, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*InitializeResult), args.Error(1)
}

func (m *MockBackend) Verify(ctx context.Context, token, reference, orderID string) (*VerifyResult, error) {
	args := m.Called(ctx, token, reference, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*VerifyResult), args.Error(1)
}

func newLocal(t *testing.T) localstore.Store {
	t.Helper()
	local, err := localstore.NewFileStore(t.TempDir(), "payment")
	assert.NoError(t, err)
	return local
}

func TestFlow_Initialize(t *testing.T) {
	ctx := context.Background()
	params := InitializeParams{Email: "jane@example.com", Amount: 1600, OrderID: "o-1"}

	t.Run("Persists pending order id", func(t *testing.T) {
		backend := new(MockBackend)
		local := newLocal(t)
		f := NewFlow(backend, local)

		backend.On("Initialize", mock.Anything, "tok", params).Return(&InitializeResult{
			AuthorizationURL: "https://pay.example.com/x",
			Reference:        "ref-1",
			OrderID:          "o-1",
		}, nil)

		result, err := f.Initialize(ctx, "tok", params)
		assert.NoError(t, err)
		assert.Equal(t, "ref-1", result.Reference)

		stored, err := local.Get(ctx, localstore.KeyOrderID)
		assert.NoError(t, err)
		assert.Equal(t, "o-1", stored)
	})

	t.Run("Missing token", func(t *testing.T) {
		f := NewFlow(new(MockBackend), newLocal(t))
		_, err := f.Initialize(ctx, "", params)
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("Backend failure leaves no pending marker", func(t *testing.T) {
		backend := new(MockBackend)
		local := newLocal(t)
		f := NewFlow(backend, local)

		backend.On("Initialize", mock.Anything, "tok", params).Return(nil, assert.AnError)

		_, err := f.Initialize(ctx, "tok", params)
		assert.Error(t, err)
		_, err = local.Get(ctx, localstore.KeyOrderID)
		assert.ErrorIs(t, err, localstore.ErrKeyNotFound)
	})
}

func TestFlow_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("Success clears the pending marker", func(t *testing.T) {
		backend := new(MockBackend)
		local := newLocal(t)
		f := NewFlow(backend, local)
		assert.NoError(t, local.Set(ctx, localstore.KeyOrderID, "o-1"))

		backend.On("Verify", mock.Anything, "tok", "ref-1", "o-1").Return(&VerifyResult{
			Status: "success",
			OrderDetails: OrderDetails{
				OrderID: "o-1", TotalPrice: 1600, Currency: "KES",
			},
		}, nil)

		result, err := f.Verify(ctx, "tok", "ref-1")
		assert.NoError(t, err)
		assert.Equal(t, "success", result.Status)

		_, err = local.Get(ctx, localstore.KeyOrderID)
		assert.ErrorIs(t, err, localstore.ErrKeyNotFound)
	})

	t.Run("Missing reference", func(t *testing.T) {
		f := NewFlow(new(MockBackend), newLocal(t))
		_, err := f.Verify(ctx, "tok", "")
		assert.ErrorIs(t, err, ErrMissingReference)
	})

	t.Run("Missing pending order id", func(t *testing.T) {
		f := NewFlow(new(MockBackend), newLocal(t))
		_, err := f.Verify(ctx, "tok", "ref-1")
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("Backend failure keeps the marker", func(t *testing.T) {
		backend := new(MockBackend)
		local := newLocal(t)
		f := NewFlow(backend, local)
		assert.NoError(t, local.Set(ctx, localstore.KeyOrderID, "o-1"))

		backend.On("Verify", mock.Anything, "tok", "ref-1", "o-1").Return(nil, assert.AnError)

		_, err := f.Verify(ctx, "tok", "ref-1")
		assert.Error(t, err)

		stored, err := local.Get(ctx, localstore.KeyOrderID)
		assert.NoError(t, err)
		assert.Equal(t, "o-1", stored)
	})
}

func TestReceipt(t *testing.T) {
	details := OrderDetails{
		OrderID:         "o-123",
		DeliveryDate:    "2026-03-12T00:00:00Z",
		ShippingAddress: "12 Riverside Dr, Nairobi",
		TotalPrice:      1600,
		Currency:        "KES",
	}

	pdf, err := Receipt(details, "KES", "en-KE")
	assert.NoError(t, err)
	assert.NotEmpty(t, pdf)
	// A PDF document, not an error page.
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestReceiptNumber(t *testing.T) {
	a := ReceiptNumber()
	b := ReceiptNumber()
	assert.Contains(t, a, "RCT-")
	assert.NotEqual(t, a, b)
}

func TestLongDate(t *testing.T) {
	assert.Equal(t, "Thursday, March 12, 2026", longDate("2026-03-12T00:00:00Z"))
	assert.Equal(t, "Thursday, March 12, 2026", longDate("2026-03-12"))
	assert.Equal(t, "soon", longDate("soon"))
}
