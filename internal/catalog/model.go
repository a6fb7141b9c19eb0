package catalog

import "github.com/shopspring/decimal"

// Product is a catalog entry as the backend returns it. Discount is a
// percentage in [0,100]; zero means no active deal.
type Product struct {
	ID              string   `json:"_id"`
	Name            string   `json:"name"`
	ImageURLs       []string `json:"imageUrls"`
	Price           float64  `json:"price"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Rating          float64  `json:"rating"`
	Discount        float64  `json:"discount,omitempty"`
	DiscountedPrice float64  `json:"discountedPrice,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
}

// EffectivePrice is price × (1 − discount/100) when a discount is active,
// otherwise the list price. Computed in decimal to keep cents exact.
func (p Product) EffectivePrice() float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	price := decimal.NewFromFloat(p.Price)
	factor := decimal.NewFromInt(1).Sub(
		decimal.NewFromFloat(p.Discount).Div(decimal.NewFromInt(100)),
	)
	out, _ := price.Mul(factor).Float64()
	return out
}

// NewProduct is the admin create form payload.
type NewProduct struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Discount    float64 `json:"discount,omitempty"`
}

// ImageFile is an uploaded product image attached to a multipart request.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

const featuredMinRating = 3.5
