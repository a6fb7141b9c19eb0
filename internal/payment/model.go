package payment

// InitializeParams starts a checkout with the payment provider via the
// backend.
type InitializeParams struct {
	Email       string  `json:"email"`
	Amount      float64 `json:"amount"`
	OrderID     string  `json:"orderId"`
	CallbackURL string  `json:"callbackUrl,omitempty"`
}

// InitializeResult carries the provider's hosted-checkout handle.
type InitializeResult struct {
	AuthorizationURL string `json:"authorizationUrl"`
	Reference        string `json:"reference"`
	OrderID          string `json:"orderId"`
}

// OrderDetails is the receipt-facing slice of a verified order.
type OrderDetails struct {
	OrderID         string  `json:"orderId"`
	DeliveryDate    string  `json:"deliveryDate"`
	ShippingAddress string  `json:"shippingAddress"`
	TotalPrice      float64 `json:"totalPrice"`
	Currency        string  `json:"currency"`
}

// VerifyResult is the payment verification outcome.
type VerifyResult struct {
	Status       string       `json:"status"`
	OrderDetails OrderDetails `json:"orderDetails"`
}
