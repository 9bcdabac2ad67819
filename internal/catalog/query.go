package catalog

import (
	"cmp"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Category groups products for the listing filters.
type Category string

const (
	All       Category = "all"
	Shirts    Category = "shirts"
	Polos     Category = "polos"
	Trousers  Category = "trousers"
	Outerwear Category = "outerwear"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case All, Shirts, Polos, Trousers, Outerwear:
		return true
	}
	return false
}

// Filter is one filter button on the products page.
type Filter struct {
	Label    string
	Category Category
}

// Filters lists the filter buttons in display order.
var Filters = []Filter{
	{Label: "All", Category: All},
	{Label: "Shirts", Category: Shirts},
	{Label: "Polos", Category: Polos},
	{Label: "Trousers", Category: Trousers},
	{Label: "Outerwear", Category: Outerwear},
}

// Sort is a listing order.
type Sort string

const (
	SortFeatured  Sort = "featured"
	SortNewest    Sort = "newest"
	SortPriceLow  Sort = "price-low"
	SortPriceHigh Sort = "price-high"
)

// SortOption is one entry of the sort select.
type SortOption struct {
	Label string
	Sort  Sort
}

var SortOptions = []SortOption{
	{Label: "Featured", Sort: SortFeatured},
	{Label: "Newest", Sort: SortNewest},
	{Label: "Price: Low to High", Sort: SortPriceLow},
	{Label: "Price: High to Low", Sort: SortPriceHigh},
}

// Valid reports whether s is a known sort.
func (s Sort) Valid() bool {
	switch s {
	case SortFeatured, SortNewest, SortPriceLow, SortPriceHigh:
		return true
	}
	return false
}

// DefaultPerPage is used when no page size is configured.
const DefaultPerPage = 6

// Query selects one page of the listing.
type Query struct {
	Category Category
	Sort     Sort
	Page     int
	PerPage  int
}

// ParseQuery reads category, sort and page from URL values. Unknown or
// malformed values fall back to the defaults rather than failing.
func ParseQuery(v url.Values, perPage int) Query {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	q := Query{Category: All, Sort: SortFeatured, Page: 1, PerPage: perPage}
	if c := Category(strings.ToLower(strings.TrimSpace(v.Get("category")))); c.Valid() {
		q.Category = c
	}
	if s := Sort(strings.ToLower(strings.TrimSpace(v.Get("sort")))); s.Valid() {
		q.Sort = s
	}
	if n, err := strconv.Atoi(v.Get("page")); err == nil && n > 0 {
		q.Page = n
	}
	return q
}

// Values encodes q back into URL values, omitting defaults.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Category != "" && q.Category != All {
		v.Set("category", string(q.Category))
	}
	if q.Sort != "" && q.Sort != SortFeatured {
		v.Set("sort", string(q.Sort))
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

// WithPage returns a copy of q pointing at page n.
func (q Query) WithPage(n int) Query {
	q.Page = n
	return q
}

// Result is one page of the listing.
type Result struct {
	Query Query
	Items []Product
	Total int
	Pages int
}

func (r Result) HasPrev() bool { return r.Query.Page > 1 }
func (r Result) HasNext() bool { return r.Query.Page < r.Pages }

// Search filters, sorts and paginates the catalog. A page past the end is
// clamped to the last page.
func (c *Catalog) Search(q Query) Result {
	if !q.Category.Valid() {
		q.Category = All
	}
	if !q.Sort.Valid() {
		q.Sort = SortFeatured
	}
	if q.PerPage <= 0 {
		q.PerPage = DefaultPerPage
	}
	items := filterProducts(c.products, func(p Product) bool {
		return q.Category == All || p.Category == q.Category
	})
	items = sortProducts(items, q.Sort)

	total := len(items)
	pages := (total + q.PerPage - 1) / q.PerPage
	if pages == 0 {
		pages = 1
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > pages {
		q.Page = pages
	}
	start := (q.Page - 1) * q.PerPage
	end := min(start+q.PerPage, total)
	return Result{Query: q, Items: items[start:end], Total: total, Pages: pages}
}

func sortProducts(in []Product, s Sort) []Product {
	out := slices.Clone(in)
	switch s {
	case SortFeatured:
		slices.SortStableFunc(out, func(a, b Product) int {
			// featured first, by rank; the rest keep file order
			switch {
			case a.Featured() && b.Featured():
				return cmp.Compare(a.FeaturedRank, b.FeaturedRank)
			case a.Featured():
				return -1
			case b.Featured():
				return 1
			}
			return 0
		})
	case SortNewest:
		slices.SortStableFunc(out, func(a, b Product) int { return b.AddedAt.Compare(a.AddedAt) })
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b Product) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b Product) int { return cmp.Compare(b.Price, a.Price) })
	}
	return out
}
