package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"

	"blushmart-web/internal/api"
)

// Backend is the catalog slice of the upstream API.
type Backend interface {
	FetchPage(ctx context.Context, page, limit int) ([]Product, error)
	FetchDeals(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, token string, input NewProduct, images []ImageFile) (*Product, error)
	Delete(ctx context.Context, token, id string) error
	BulkUpload(ctx context.Context, token string, products []BulkRow, images []ImageFile) error
}

type apiBackend struct {
	client *api.Client
}

func NewBackend(client *api.Client) Backend {
	return &apiBackend{client: client}
}

func (b *apiBackend) FetchPage(ctx context.Context, page, limit int) ([]Product, error) {
	var out struct {
		Products []Product `json:"products"`
	}
	path := fmt.Sprintf("/api/products?page=%d&limit=%d", page, limit)
	if err := b.client.GetJSON(ctx, path, "", &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (b *apiBackend) FetchDeals(ctx context.Context) ([]Product, error) {
	var out struct {
		Deals []Product `json:"deals"`
	}
	if err := b.client.GetJSON(ctx, "/api/deals", "", &out); err != nil {
		return nil, err
	}
	return out.Deals, nil
}

func (b *apiBackend) Create(ctx context.Context, token string, input NewProduct, images []ImageFile) (*Product, error) {
	body, contentType, err := encodeProductForm(input, images)
	if err != nil {
		return nil, err
	}

	var created Product
	if err := b.client.PostMultipart(ctx, "/api/products", token, contentType, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (b *apiBackend) Delete(ctx context.Context, token, id string) error {
	return b.client.DeleteJSON(ctx, "/api/products/"+id, token, nil)
}

func (b *apiBackend) BulkUpload(ctx context.Context, token string, products []BulkRow, images []ImageFile) error {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	rawProducts, err := json.Marshal(products)
	if err != nil {
		return err
	}
	if err := w.WriteField("products", string(rawProducts)); err != nil {
		return err
	}
	if err := writeImages(w, images); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return b.client.PostMultipart(ctx, "/api/products/bulk", token, w.FormDataContentType(), body, nil)
}

func encodeProductForm(input NewProduct, images []ImageFile) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := map[string]string{
		"name":        input.Name,
		"category":    input.Category,
		"price":       fmt.Sprintf("%g", input.Price),
		"description": input.Description,
		"rating":      fmt.Sprintf("%g", input.Rating),
	}
	if input.Discount > 0 {
		fields["discount"] = fmt.Sprintf("%g", input.Discount)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := writeImages(w, images); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

func writeImages(w *multipart.Writer, images []ImageFile) error {
	for _, img := range images {
		part, err := w.CreateFormFile("images", img.Name)
		if err != nil {
			return err
		}
		if _, err := part.Write(img.Data); err != nil {
			return err
		}
	}
	return nil
}
