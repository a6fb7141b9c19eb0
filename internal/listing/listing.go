package listing

import (
	"sort"
	"strings"

	"blushmart-web/internal/catalog"
)

// PageSize is the fixed number of product cards per listing page.
const PageSize = 3

// Categories is the storefront's category set, in display order.
var Categories = []string{
	"Skincare",
	"Makeup",
	"Haircare",
	"Fragrance",
	"Bath & Body",
	"Nail Care",
	"Tools & Brushes",
	"Men's Grooming",
}

type SortMode string

const (
	SortNone      SortMode = ""
	SortPriceAsc  SortMode = "lowest-price"
	SortPriceDesc SortMode = "highest-price"
	// SortNewest is declared in the storefront UI but has no comparator:
	// products carry no usable creation timestamp yet, so it sorts
	// nothing. See DESIGN.md.
	SortNewest SortMode = "newest-arrivals"
)

// View is the ephemeral listing state: search text, category multi-select,
// sort mode and current page. Zero value means "everything, unsorted,
// page one".
type View struct {
	Query    string
	Selected map[string]bool
	Sort     SortMode
	Page     int
}

func NewView() *View {
	return &View{Selected: map[string]bool{}, Page: 1}
}

// ToggleCategory flips one category in the multi-select.
func (v *View) ToggleCategory(category string) {
	if v.Selected == nil {
		v.Selected = map[string]bool{}
	}
	if v.Selected[category] {
		delete(v.Selected, category)
	} else {
		v.Selected[category] = true
	}
}

// Filter keeps products whose name contains the query
// (case-insensitively) and whose category is selected. An empty selection
// matches every category.
func (v *View) Filter(products []catalog.Product) []catalog.Product {
	query := strings.ToLower(v.Query)

	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if len(v.Selected) > 0 && !v.Selected[p.Category] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Apply filters then sorts, returning a fresh slice.
func (v *View) Apply(products []catalog.Product) []catalog.Product {
	out := v.Filter(products)

	switch v.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNewest, SortNone:
		// Source order.
	}
	return out
}

// PageCount is ceil(n / PageSize).
func PageCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// Paginate slices out the 1-indexed page. Out-of-range pages are empty.
func Paginate(products []catalog.Product, page int) []catalog.Product {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(products) {
		return nil
	}
	end := start + PageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

// CurrentPage applies the view's filter/sort and returns the active page
// plus the total page count.
func (v *View) CurrentPage(products []catalog.Product) ([]catalog.Product, int) {
	applied := v.Apply(products)
	return Paginate(applied, v.Page), PageCount(len(applied))
}
