package shop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/platform"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pseudo-categories synthesized from the API catalog.
const (
	CategoryHome  = "home"
	CategoryGifts = "gifts"
)

const (
	homeIDOffset  = 1000
	giftsIDOffset = 2000
	pseudoSize    = 10

	// browseSize is the number of products the browse view pads the
	// catalog to.
	browseSize = 50

	// featuredLimit caps every home page section.
	featuredLimit = 8
)

// DefaultCategories is shown when the categories call fails.
var DefaultCategories = []string{
	"electronics",
	"jewelery",
	"men's clothing",
	"women's clothing",
	CategoryHome,
	CategoryGifts,
}

// CategoryName returns the display label of a category slug.
func CategoryName(slug string) string {
	switch slug {
	case CategoryHome:
		return "Home & Living"
	case CategoryGifts:
		return "Gifts"
	case "":
		return "All"
	}
	return cases.Title(language.English).String(slug)
}

// homeProducts derives the "home" category from products[0:10].
func homeProducts(products []models.Product) []models.Product {
	return derive(window(products, 0), CategoryHome, homeIDOffset, "Home ")
}

// giftProducts derives the "gifts" category from products[10:20].
func giftProducts(products []models.Product) []models.Product {
	return derive(window(products, pseudoSize), CategoryGifts, giftsIDOffset, "Gift ")
}

func window(products []models.Product, from int) []models.Product {
	if from >= len(products) {
		return nil
	}
	return products[from:min(from+pseudoSize, len(products))]
}

func derive(src []models.Product, category string, offset int, prefix string) []models.Product {
	out := make([]models.Product, len(src))
	for i, p := range src {
		p.ID += offset
		p.Category = category
		p.Title = prefix + p.Title
		out[i] = p
	}
	return out
}

// expandCatalog appends the pseudo-categories to products.
func expandCatalog(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products)+2*pseudoSize)
	out = append(out, products...)
	out = append(out, homeProducts(products)...)
	out = append(out, giftProducts(products)...)
	return out
}

// padCatalog repeats products until there are n of them. Copy k (from 2)
// shifts IDs by (k-1)*len(products) and gets a " - Version k" suffix.
func padCatalog(products []models.Product, n int) []models.Product {
	if len(products) == 0 || len(products) >= n {
		return products
	}
	base := len(products)
	out := make([]models.Product, 0, n)
	out = append(out, products...)
	for k := 2; len(out) < n; k++ {
		for _, p := range products {
			if len(out) == n {
				break
			}
			p.ID += base * (k - 1)
			p.Title = p.Title + " - Version " + strconv.Itoa(k)
			out = append(out, p)
		}
	}
	return out
}

// products fetches the catalog; failures are logged and yield nil.
func (s *Shop) products(ctx context.Context) []models.Product {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		log.Printf("shop: fetch products: %v", err)
		return nil
	}
	return products
}

// categories returns the API categories plus the pseudo-categories, or
// DefaultCategories when the call fails.
func (s *Shop) categories(ctx context.Context) []string {
	cats, err := s.catalog.Categories(ctx)
	if err != nil {
		log.Printf("shop: fetch categories: %v", err)
		return append([]string(nil), DefaultCategories...)
	}
	return append(cats, CategoryHome, CategoryGifts)
}

// catalogAndCategories fetches both concurrently. Neither failure aborts
// the other.
func (s *Shop) catalogAndCategories(ctx context.Context) ([]models.Product, []string) {
	var (
		products   []models.Product
		categories []string
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	g.Go(func() error {
		products = s.products(ctx)
		return nil
	})
	g.Go(func() error {
		categories = s.categories(ctx)
		return nil
	})
	_ = g.Wait()
	return products, categories
}

// Categories lists every category slug, pseudo-categories included.
func (s *Shop) Categories(ctx context.Context) []string {
	return s.categories(ctx)
}

type Section struct {
	Slug     string           `json:"slug"`
	Title    string           `json:"title"`
	Products []models.Product `json:"products"`
}

type HomeView struct {
	Categories []string  `json:"categories"`
	Sections   []Section `json:"sections"`
}

var featuredSections = []string{"", "men's clothing", "women's clothing", "electronics", "jewelery", CategoryHome, CategoryGifts}

// Home returns the featured sections: popular first, then one per
// category, each capped at eight products.
func (s *Shop) Home(ctx context.Context) HomeView {
	products, categories := s.catalogAndCategories(ctx)
	all := expandCatalog(products)

	view := HomeView{Categories: categories}
	for _, slug := range featuredSections {
		sec := Section{Slug: slug, Title: CategoryName(slug)}
		if slug == "" {
			sec.Title = "Popular"
			sec.Products = all[:min(featuredLimit, len(all))]
		} else {
			sec.Products = limit(filterCategory(all, slug), featuredLimit)
		}
		view.Sections = append(view.Sections, sec)
	}
	return view
}

type BrowseOptions struct {
	Query    string
	Category string
}

type BrowseView struct {
	Products   []models.Product `json:"products"`
	Categories []string         `json:"categories"`
}

// Browse is the full product list: the catalog padded to fifty products
// plus the pseudo-categories, filtered by category and query.
func (s *Shop) Browse(ctx context.Context, opts BrowseOptions) BrowseView {
	products, categories := s.catalogAndCategories(ctx)
	if products == nil {
		// the list view shows no filters without products
		categories = nil
	}
	all := expandCatalog(padCatalog(products, browseSize))
	all = filterCategory(all, opts.Category)
	all = filterQuery(all, opts.Query)
	return BrowseView{Products: all, Categories: categories}
}

type CategoryView struct {
	Slug     string           `json:"slug"`
	Name     string           `json:"name"`
	Products []models.Product `json:"products"`
}

// Category lists one category. The pseudo-categories are derived from the
// full catalog; the rest come from the category endpoint.
func (s *Shop) Category(ctx context.Context, slug string, order SortOrder) CategoryView {
	var products []models.Product
	switch slug {
	case CategoryHome:
		products = homeProducts(s.products(ctx))
	case CategoryGifts:
		products = giftProducts(s.products(ctx))
	default:
		var err error
		products, err = s.catalog.Category(ctx, slug)
		if err != nil {
			log.Printf("shop: fetch category %q: %v", slug, err)
			products = nil
		}
	}
	return CategoryView{
		Slug:     slug,
		Name:     CategoryName(slug),
		Products: sortProducts(products, order),
	}
}

// product resolves id against the product endpoint first, then against
// the browse catalog so padded and pseudo-category IDs resolve too.
func (s *Shop) product(ctx context.Context, id int) (models.Product, error) {
	p, err := s.catalog.Product(ctx, id)
	if err == nil {
		return *p, nil
	}
	if !errors.Is(err, platform.ErrNotFound) {
		log.Printf("shop: fetch product %d: %v", id, err)
	}
	for _, candidate := range expandCatalog(padCatalog(s.products(ctx), browseSize)) {
		if candidate.ID == id {
			return candidate, nil
		}
	}
	return models.Product{}, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
}

func filterCategory(products []models.Product, category string) []models.Product {
	if category == "" || category == "all" {
		return products
	}
	var out []models.Product
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func limit(products []models.Product, n int) []models.Product {
	if len(products) > n {
		return products[:n]
	}
	return products
}
