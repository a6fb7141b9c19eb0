package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestParseBulkCSV(t *testing.T) {
	t.Run("Header-mapped rows", func(t *testing.T) {
		csv := "name,category,price,description,rating,imageUrls\n" +
			"Rose Serum,Skincare,1200,Hydrating serum,4.5,https://cdn.example.com/rose.jpg\n" +
			"Clay Mask,Skincare,800,Deep cleanse,3.9,\"/images/clay.jpg, https://cdn.example.com/clay2.jpg\"\n"

		rows, err := ParseBulkCSV([]byte(csv))
		assert.NoError(t, err)
		assert.Len(t, rows, 2)

		assert.Equal(t, "Rose Serum", rows[0].Name)
		assert.Equal(t, 1200.0, rows[0].Price)
		assert.Equal(t, []string{"https://cdn.example.com/rose.jpg"}, rows[0].ImageURLs)

		assert.Equal(t, []string{"/images/clay.jpg", "https://cdn.example.com/clay2.jpg"}, rows[1].ImageURLs)
	})

	t.Run("Rows without name or category skipped", func(t *testing.T) {
		csv := "name,category,price,description,rating,imageUrls\n" +
			",Skincare,100,x,4,\n" +
			"Lip Balm,,100,x,4,\n" +
			"Lip Balm,Makeup,100,x,4,\n"

		rows, err := ParseBulkCSV([]byte(csv))
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "Lip Balm", rows[0].Name)
	})

	t.Run("Invalid image URLs dropped", func(t *testing.T) {
		csv := "name,category,price,description,rating,imageUrls\n" +
			"Balm,Makeup,100,x,4,\"not a url, /images/ok.png, relative/path\"\n"

		rows, err := ParseBulkCSV([]byte(csv))
		assert.NoError(t, err)
		assert.Equal(t, []string{"/images/ok.png"}, rows[0].ImageURLs)
	})

	t.Run("Rating clamped and negative price zeroed", func(t *testing.T) {
		csv := "name,category,price,description,rating,imageUrls\n" +
			"Balm,Makeup,-50,x,9.9,\n"

		rows, err := ParseBulkCSV([]byte(csv))
		assert.NoError(t, err)
		assert.Equal(t, 0.0, rows[0].Price)
		assert.Equal(t, 5.0, rows[0].Rating)
	})

	t.Run("No valid rows", func(t *testing.T) {
		csv := "name,category,price,description,rating,imageUrls\n,,,,,\n"
		_, err := ParseBulkCSV([]byte(csv))
		assert.ErrorIs(t, err, ErrNoValidRows)
	})
}

func TestStore_BulkUpload(t *testing.T) {
	ctx := context.Background()
	rows := []BulkRow{{Name: "Balm", Category: "Makeup", Price: 100}}

	t.Run("Success", func(t *testing.T) {
		backend := new(MockBackend)
		s := NewStore(backend)

		backend.On("BulkUpload", mock.Anything, "tok", rows, mock.Anything).Return(nil)
		assert.NoError(t, s.BulkUpload(ctx, "tok", rows, nil))
		backend.AssertExpectations(t)
	})

	t.Run("Empty upload rejected", func(t *testing.T) {
		backend := new(MockBackend)
		s := NewStore(backend)

		assert.ErrorIs(t, s.BulkUpload(ctx, "tok", nil, nil), ErrEmptyUpload)
		backend.AssertNotCalled(t, "BulkUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Backend error surfaced", func(t *testing.T) {
		backend := new(MockBackend)
		s := NewStore(backend)

		backend.On("BulkUpload", mock.Anything, "tok", rows, mock.Anything).Return(assert.AnError)
		assert.Error(t, s.BulkUpload(ctx, "tok", rows, nil))
	})
}
