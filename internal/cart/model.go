package cart

import "time"

// CartItem is one line of the cart: a product reference plus the
// name/price/image snapshot taken at add time. Price is the discounted
// unit price.
type CartItem struct {
	ID        string   `json:"_id"`
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Quantity  int      `json:"quantity"`
	ImageURLs []string `json:"imageUrls"`
}

// AddItemParams is the add-to-cart request body. Quantity is always 1:
// repeat adds let the backend bump the line.
type AddItemParams struct {
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	ImageURLs []string `json:"imageUrls"`
}

type UpdateQuantityParams struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// deliveryOffset is the fixed shipping estimate added to the current date
// after every cart mutation.
const deliveryOffset = 48 * time.Hour
