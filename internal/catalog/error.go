package catalog

import "errors"

var (
	// -- Validation & Input --
	ErrNameRequired     = errors.New("product name is required")
	ErrCategoryRequired = errors.New("product category is required")
	ErrNegativePrice    = errors.New("product price cannot be negative")
	ErrInvalidDiscount  = errors.New("discount must be a percentage between 0 and 100")

	// -- Bulk import --
	ErrEmptyUpload     = errors.New("no products to upload")
	ErrUnsupportedFile = errors.New("unsupported file format")
	ErrMalformedCSV    = errors.New("error parsing CSV")
	ErrNoValidRows     = errors.New("no valid product rows in file")
)
