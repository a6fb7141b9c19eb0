package payment

import (
	"context"
	"errors"

	"blushmart-web/internal/api"
	"blushmart-web/internal/localstore"
	"blushmart-web/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrMissingReference   = errors.New("missing payment reference")
	ErrMissingCredentials = errors.New("missing required credentials")
)

// Backend is the payment slice of the upstream API. Verification uses
// the single canonical /api/verify-payment path.
type Backend interface {
	Initialize(ctx context.Context, token string, params InitializeParams) (*InitializeResult, error)
	Verify(ctx context.Context, token, reference, orderID string) (*VerifyResult, error)
}

type apiBackend struct {
	client *api.Client
}

func NewBackend(client *api.Client) Backend {
	return &apiBackend{client: client}
}

func (b *apiBackend) Initialize(ctx context.Context, token string, params InitializeParams) (*InitializeResult, error) {
	var out InitializeResult
	if err := b.client.PostJSON(ctx, "/api/payment/initialize-payment", token, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *apiBackend) Verify(ctx context.Context, token, reference, orderID string) (*VerifyResult, error) {
	body := map[string]string{"reference": reference, "orderId": orderID}
	var out VerifyResult
	if err := b.client.PostJSON(ctx, "/api/verify-payment", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Flow drives checkout: initialize remembers the pending order id in the
// localstore so the return leg of the hosted checkout can verify it.
type Flow struct {
	backend Backend
	local   localstore.Store
}

func NewFlow(backend Backend, local localstore.Store) *Flow {
	return &Flow{backend: backend, local: local}
}

// Initialize starts a payment and persists the order id for the
// verification step.
func (f *Flow) Initialize(ctx context.Context, token string, params InitializeParams) (*InitializeResult, error) {
	if token == "" {
		return nil, ErrMissingCredentials
	}

	result, err := f.backend.Initialize(ctx, token, params)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to initialize payment",
			zap.String("order_id", params.OrderID), zap.Error(err))
		return nil, err
	}

	orderID := result.OrderID
	if orderID == "" {
		orderID = params.OrderID
	}
	if err := f.local.Set(ctx, localstore.KeyOrderID, orderID); err != nil {
		logger.FromCtx(ctx).Warn("failed to persist pending order id", zap.Error(err))
	}
	return result, nil
}

// Verify confirms the payment referenced by the provider redirect,
// resolving the pending order id from the localstore.
func (f *Flow) Verify(ctx context.Context, token, reference string) (*VerifyResult, error) {
	if reference == "" {
		return nil, ErrMissingReference
	}

	orderID, err := f.local.Get(ctx, localstore.KeyOrderID)
	if token == "" || err != nil || orderID == "" {
		return nil, ErrMissingCredentials
	}

	result, verifyErr := f.backend.Verify(ctx, token, reference, orderID)
	if verifyErr != nil {
		logger.FromCtx(ctx).Error("payment verification failed",
			zap.String("reference", reference),
			zap.String("order_id", orderID),
			zap.Error(verifyErr),
		)
		return nil, verifyErr
	}

	// The pending marker has served its purpose.
	_ = f.local.Delete(ctx, localstore.KeyOrderID)
	return result, nil
}
