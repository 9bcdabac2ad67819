// Package catalog serves the static sample products shown on the home and
// products pages. The data is illustrative and read-only after Load.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no product matches a slug.
var ErrNotFound = errors.New("catalog: not found")

//go:embed data/products.yaml
var defaultData []byte

// Product is one sample catalog entry.
type Product struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Price       int64 // minor units
	Currency    string
	Image       string
	Tag         string // optional badge, e.g. "New Arrival"
	Category    Category
	// FeaturedRank orders the home page showcase; zero means not featured.
	FeaturedRank int
	AddedAt      time.Time
}

// Featured reports whether the product appears in the home showcase.
func (p Product) Featured() bool { return p.FeaturedRank > 0 }

// Catalog is an immutable product list with a slug index.
type Catalog struct {
	products []Product
	bySlug   map[string]int
}

type fileFormat struct {
	Currency string        `yaml:"currency"`
	Products []productYAML `yaml:"products"`
}

type productYAML struct {
	ID          string `yaml:"id"`
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Price       int64  `yaml:"price"`
	Currency    string `yaml:"currency"`
	Image       string `yaml:"image"`
	Tag         string `yaml:"tag"`
	Category    string `yaml:"category"`
	Featured    int    `yaml:"featured"`
	AddedAt     string `yaml:"added_at"`
}

// Default loads the embedded sample catalog.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultData))
}

// Load parses a YAML catalog and validates every entry.
func Load(r io.Reader) (*Catalog, error) {
	var doc fileFormat
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	c := &Catalog{bySlug: make(map[string]int, len(doc.Products))}
	for i, raw := range doc.Products {
		p, err := raw.product(doc.Currency)
		if err != nil {
			return nil, fmt.Errorf("catalog: product %d: %w", i, err)
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("catalog: duplicate slug %q", p.Slug)
		}
		c.bySlug[p.Slug] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

func (y productYAML) product(defaultCurrency string) (Product, error) {
	p := Product{
		ID:           strings.TrimSpace(y.ID),
		Slug:         strings.ToLower(strings.TrimSpace(y.Slug)),
		Title:        strings.TrimSpace(y.Title),
		Description:  strings.TrimSpace(y.Description),
		Price:        y.Price,
		Currency:     strings.ToUpper(firstNonEmpty(y.Currency, defaultCurrency, "USD")),
		Image:        strings.TrimSpace(y.Image),
		Tag:          strings.TrimSpace(y.Tag),
		Category:     Category(strings.ToLower(strings.TrimSpace(y.Category))),
		FeaturedRank: y.Featured,
	}
	switch {
	case p.Slug == "":
		return Product{}, errors.New("missing slug")
	case p.Title == "":
		return Product{}, fmt.Errorf("%s: missing title", p.Slug)
	case p.Price < 0:
		return Product{}, fmt.Errorf("%s: negative price", p.Slug)
	case !p.Category.Valid() || p.Category == All:
		return Product{}, fmt.Errorf("%s: unknown category %q", p.Slug, y.Category)
	}
	if p.ID == "" {
		p.ID = p.Slug
	}
	if v := strings.TrimSpace(y.AddedAt); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return Product{}, fmt.Errorf("%s: added_at: %w", p.Slug, err)
		}
		p.AddedAt = t
	}
	return p, nil
}

// All returns every product in file order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// BySlug returns the product with the given slug or ErrNotFound.
func (c *Catalog) BySlug(slug string) (Product, error) {
	i, ok := c.bySlug[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return Product{}, ErrNotFound
	}
	return c.products[i], nil
}

// Featured returns up to n featured products in showcase order. n <= 0
// returns all of them.
func (c *Catalog) Featured(n int) []Product {
	out := sortProducts(filterProducts(c.products, func(p Product) bool { return p.Featured() }), SortFeatured)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Related returns up to n other products from the same category.
func (c *Catalog) Related(p Product, n int) []Product {
	out := filterProducts(c.products, func(o Product) bool {
		return o.Category == p.Category && o.Slug != p.Slug
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func filterProducts(in []Product, keep func(Product) bool) []Product {
	out := make([]Product, 0, len(in))
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
