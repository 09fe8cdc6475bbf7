package service

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/GTDGit/gtd_catalog/internal/models"
)

// Filter panel bounds.
const (
	PriceFloor   = 0.0
	PriceCeiling = 1000.0
	MaxRating    = 5.0

	// ProductsPageSize is the fixed page size of the product list.
	ProductsPageSize = 8
)

// FilterSpec is the filter panel state. An empty Category matches any
// category; an empty Search matches any title.
type FilterSpec struct {
	Search    string  `json:"search"`
	Category  string  `json:"category"`
	MinPrice  float64 `json:"minPrice"`
	MaxPrice  float64 `json:"maxPrice"`
	MinRating float64 `json:"minRating"`
}

// DefaultFilterSpec returns the cleared filter panel.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		MinPrice: PriceFloor,
		MaxPrice: PriceCeiling,
	}
}

// IsDefault reports whether f equals the cleared panel.
func (f FilterSpec) IsDefault() bool {
	return f == DefaultFilterSpec()
}

// Matches reports whether p satisfies every predicate of f.
func (f FilterSpec) Matches(p *models.Product) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if p.Price < f.MinPrice || p.Price > f.MaxPrice {
		return false
	}
	return p.Rating.Rate >= f.MinRating
}

// Query encodes f as URL query values. Default fields are omitted and
// no page is written, so any filter change lands on page 1.
func (f FilterSpec) Query() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.MinPrice != PriceFloor {
		v.Set("minPrice", formatFloat(f.MinPrice))
	}
	if f.MaxPrice != PriceCeiling {
		v.Set("maxPrice", formatFloat(f.MaxPrice))
	}
	if f.MinRating != 0 {
		v.Set("minRating", formatFloat(f.MinRating))
	}
	return v
}

// ParseFilterSpec reads a FilterSpec from query values. Unparseable numbers
// fall back to defaults, prices are clamped to the panel range, and a low
// price above the high one is pulled down to it.
func ParseFilterSpec(values url.Values) FilterSpec {
	spec := DefaultFilterSpec()
	spec.Search = values.Get("search")
	spec.Category = strings.TrimSpace(values.Get("category"))
	spec.MinPrice = clamp(parseFloat(values.Get("minPrice"), PriceFloor), PriceFloor, PriceCeiling)
	spec.MaxPrice = clamp(parseFloat(values.Get("maxPrice"), PriceCeiling), PriceFloor, PriceCeiling)
	spec.MinRating = clamp(parseFloat(values.Get("minRating"), 0), 0, MaxRating)
	if spec.MinPrice > spec.MaxPrice {
		spec.MinPrice = spec.MaxPrice
	}
	return spec
}

// ApplyFilters returns the products matching spec, in input order.
func ApplyFilters(products []models.Product, spec FilterSpec) []models.Product {
	matched := make([]models.Product, 0, len(products))
	for i := range products {
		if spec.Matches(&products[i]) {
			matched = append(matched, products[i])
		}
	}
	return matched
}

// Paginate returns the 1-based page of items and the total page count.
// The total is never below 1; a page past the end is empty.
func Paginate(items []models.Product, page, pageSize int) ([]models.Product, int) {
	if len(items) == 0 {
		return []models.Product{}, 1
	}
	pageSize = min(max(pageSize, 1), len(items))
	if page < 1 {
		page = 1
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if page > totalPages {
		return []models.Product{}, totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	return items[start:end], totalPages
}

// ParsePage reads a 1-based page number, defaulting to 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func parseFloat(raw string, def float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
