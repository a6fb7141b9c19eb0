package catalog

import (
	"context"
	"net/url"
	"strings"

	"blushmart-web/internal/logger"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

// BulkRow is one CSV record of the admin bulk import. ImageURLs is a
// comma-separated list inside a single cell.
type BulkRow struct {
	Name        string   `csv:"name" json:"name"`
	Category    string   `csv:"category" json:"category"`
	Price       float64  `csv:"price" json:"price"`
	Description string   `csv:"description" json:"description"`
	Rating      float64  `csv:"rating" json:"rating"`
	ImageURLs   []string `csv:"-" json:"imageUrls"`

	RawImageURLs string `csv:"imageUrls" json:"-"`
}

// ParseBulkCSV decodes a header-mapped CSV file into validated rows.
// Lenient like the browser importer: bad numbers become zero, invalid
// image URLs are dropped; rows without a name or category are skipped.
func ParseBulkCSV(data []byte) ([]BulkRow, error) {
	var rows []BulkRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, ErrMalformedCSV
	}

	valid := make([]BulkRow, 0, len(rows))
	for _, row := range rows {
		row.Name = strings.TrimSpace(row.Name)
		row.Category = strings.TrimSpace(row.Category)
		if row.Name == "" || row.Category == "" {
			continue
		}
		if row.Price < 0 {
			row.Price = 0
		}
		if row.Rating < 0 {
			row.Rating = 0
		} else if row.Rating > 5 {
			row.Rating = 5
		}

		row.ImageURLs = nil
		for _, raw := range strings.Split(row.RawImageURLs, ",") {
			u := strings.TrimSpace(raw)
			if u == "" {
				continue
			}
			if validImageURL(u) {
				row.ImageURLs = append(row.ImageURLs, u)
			}
		}
		row.RawImageURLs = ""

		valid = append(valid, row)
	}

	if len(valid) == 0 {
		return nil, ErrNoValidRows
	}
	return valid, nil
}

// validImageURL accepts absolute URLs and the local /images path the
// storefront serves its seeded assets from.
func validImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" && u.Host != "" {
		return true
	}
	return strings.HasPrefix(raw, "/images")
}

// BulkUpload validates the parsed rows and posts them with their image
// files as one multipart request.
func (s *Store) BulkUpload(ctx context.Context, token string, rows []BulkRow, images []ImageFile) error {
	if len(rows) == 0 {
		return ErrEmptyUpload
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.backend.BulkUpload(ctx, token, rows, images); err != nil {
		logger.FromCtx(ctx).Error("bulk upload failed",
			zap.Int("rows", len(rows)), zap.Error(err))
		return err
	}

	logger.FromCtx(ctx).Info("bulk upload accepted", zap.Int("rows", len(rows)))
	return nil
}
