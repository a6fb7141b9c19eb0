package order

import "blushmart-web/internal/cart"

// Status is the order lifecycle enum.
type Status string

const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCanceled  Status = "canceled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// ShippingDetails is the delivery sub-record of an order.
type ShippingDetails struct {
	FullName     string `json:"fullName"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
	PostalCode   string `json:"postalCode"`
	Phone        string `json:"phone"`
	DeliveryDate string `json:"deliveryDate"`
}

// PaymentDetails is the payment sub-record of an order.
type PaymentDetails struct {
	Method        string `json:"method"`
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
}

// Order is the read-only order view model; the backend owns it.
type Order struct {
	OrderID         string          `json:"_id"`
	Items           []cart.CartItem `json:"items"`
	TotalPrice      float64         `json:"totalPrice"`
	DiscountApplied float64         `json:"discountApplied,omitempty"`
	FinalPrice      float64         `json:"finalPrice"`
	Status          Status          `json:"status"`
	Payment         PaymentDetails  `json:"payment"`
	Shipping        ShippingDetails `json:"shipping"`
	OrderDate       string          `json:"orderDate"`
	LastUpdated     string          `json:"lastUpdated"`
}
