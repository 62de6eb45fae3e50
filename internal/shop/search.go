package shop

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortOrder string

const (
	SortDefault   SortOrder = "default"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortNameAsc   SortOrder = "name-asc"
	SortNameDesc  SortOrder = "name-desc"
)

var SortOrders = []SortOrder{SortDefault, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc}

// ParseSortOrder accepts "" as SortDefault.
func ParseSortOrder(s string) (SortOrder, error) {
	if s == "" {
		return SortDefault, nil
	}
	for _, o := range SortOrders {
		if string(o) == s {
			return o, nil
		}
	}
	return "", newValidationError("sort", fmt.Sprintf("sort must be one of: %v", SortOrders))
}

type SearchOptions struct {
	Query    string
	Category string
	// Nil bounds default to 0 and the ceiling of the highest price.
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     SortOrder
}

type SearchView struct {
	Query      string           `json:"query"`
	Products   []models.Product `json:"products"`
	Categories []string         `json:"categories"`
	MinPrice   decimal.Decimal  `json:"minPrice"`
	MaxPrice   decimal.Decimal  `json:"maxPrice"`
	// PriceCeiling is the upper end of the selectable price range.
	PriceCeiling decimal.Decimal `json:"priceCeiling"`
}

// Search filters the catalog plus pseudo-categories by query, category
// and price range, then sorts.
func (s *Shop) Search(ctx context.Context, opts SearchOptions) SearchView {
	products, categories := s.catalogAndCategories(ctx)
	if products == nil {
		categories = nil
	}
	all := expandCatalog(products)

	ceiling := priceCeiling(all)
	view := SearchView{
		Query:        opts.Query,
		Categories:   categories,
		MinPrice:     decimal.Zero,
		MaxPrice:     ceiling,
		PriceCeiling: ceiling,
	}
	if opts.MinPrice != nil {
		view.MinPrice = *opts.MinPrice
	}
	if opts.MaxPrice != nil {
		view.MaxPrice = *opts.MaxPrice
	}

	result := filterQuery(all, opts.Query)
	result = filterCategory(result, opts.Category)
	result = filterPrice(result, view.MinPrice, view.MaxPrice)
	view.Products = sortProducts(result, opts.Sort)
	return view
}

// filterQuery matches query case-insensitively against title and
// description.
func filterQuery(products []models.Product, query string) []models.Product {
	if query == "" {
		return products
	}
	q := strings.ToLower(query)
	var out []models.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

func filterPrice(products []models.Product, lo, hi decimal.Decimal) []models.Product {
	var out []models.Product
	for _, p := range products {
		if p.Price.GreaterThanOrEqual(lo) && p.Price.LessThanOrEqual(hi) {
			out = append(out, p)
		}
	}
	return out
}

func priceCeiling(products []models.Product) decimal.Decimal {
	hi := decimal.Zero
	for _, p := range products {
		if p.Price.GreaterThan(hi) {
			hi = p.Price
		}
	}
	return hi.Ceil()
}

// sortProducts returns a sorted copy. Ties keep catalog order; names
// compare with English collation rules.
func sortProducts(products []models.Product, order SortOrder) []models.Product {
	out := slices.Clone(products)
	switch order {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b models.Product) int { return a.Price.Cmp(b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b models.Product) int { return b.Price.Cmp(a.Price) })
	case SortNameAsc, SortNameDesc:
		// Collator is not safe for concurrent use.
		c := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b models.Product) int {
			if order == SortNameDesc {
				a, b = b, a
			}
			return c.CompareString(a.Title, b.Title)
		})
	}
	return out
}
