package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"laswell.com/web/internal/catalog"
	"laswell.com/web/internal/format"
)

// ProductGridID is the id of the listing grid swapped by the catalog
// controls.
const ProductGridID = "product-results"

// ProductCard renders one product tile linking to its detail page.
func ProductCard(p catalog.Product) g.Node {
	href := "/products/" + p.Slug
	return h.Article(h.Class("product-card"),
		h.A(h.Href(href), g.Attr("aria-label", p.Title),
			h.Div(h.Class("product-card__image"),
				h.Img(h.Src(p.Image), h.Alt(p.Title), h.Loading("lazy")),
				g.If(p.Tag != "", h.Span(h.Class("product-card__tag"), g.Text(p.Tag))),
			),
		),
		h.Div(h.Class("product-card__body"),
			h.H3(h.Class("product-card__title"), h.A(h.Href(href), g.Text(p.Title))),
			h.P(h.Class("product-card__description"), g.Text(p.Description)),
			h.P(h.Class("product-card__price"), g.Text(format.Currency(p.Price, p.Currency))),
		),
	)
}

// ProductCatalog renders the filter buttons, sort select and the result grid.
func ProductCatalog(res catalog.Result) g.Node {
	return h.Div(h.Class("catalog"),
		h.Div(h.Class("catalog__controls"),
			h.Div(h.Class("catalog__filters"), g.Attr("role", "group"), g.Attr("aria-label", "Category"),
				g.Map(catalog.Filters, func(f catalog.Filter) g.Node {
					q := res.Query
					q.Category = f.Category
					q.Page = 1
					kind := Outline
					if f.Category == res.Query.Category {
						kind = Primary
					}
					return LinkButton(ButtonVariant{Kind: kind, Size: Small}, listingURL("/products", q),
						OnActivate(catalogSwap(q)...),
						g.If(f.Category == res.Query.Category, g.Attr("aria-current", "true")),
						g.Text(f.Label),
					)
				}),
			),
			g.El("form", h.Class("catalog__sort"), h.Method("get"), h.Action("/products"),
				g.Attr("hx-get", "/fragments/products"),
				g.Attr("hx-trigger", "change"),
				g.Attr("hx-target", "#"+ProductGridID),
				g.Attr("hx-swap", "outerHTML"),
				g.Attr("hx-push-url", "false"),
				g.If(res.Query.Category != catalog.All, h.Input(h.Type("hidden"), h.Name("category"), h.Value(string(res.Query.Category)))),
				g.El("label", h.For("sort"), g.Text("Sort by")),
				h.Select(h.ID("sort"), h.Name("sort"),
					g.Map(catalog.SortOptions, func(o catalog.SortOption) g.Node {
						return h.Option(h.Value(string(o.Sort)), g.If(o.Sort == res.Query.Sort, h.Selected()), g.Text(o.Label))
					}),
				),
				h.NoScript(SubmitButton(ButtonVariant{Kind: Tertiary, Size: Small}, g.Text("Apply"))),
			),
		),
		ProductResults(res),
	)
}

// ProductResults renders the grid and pagination; it is also the htmx
// fragment returned by the catalog controls.
func ProductResults(res catalog.Result) g.Node {
	return h.Div(h.ID(ProductGridID),
		g.Attr("data-total", strconv.Itoa(res.Total)),
		g.If(len(res.Items) == 0, h.P(h.Class("section__lead"), g.Text("No products match this filter."))),
		h.Div(h.Class("product-grid"), g.Map(res.Items, ProductCard)),
		pagination(res),
	)
}

func pagination(res catalog.Result) g.Node {
	if res.Pages <= 1 {
		return nil
	}
	prev := res.Query.WithPage(res.Query.Page - 1)
	next := res.Query.WithPage(res.Query.Page + 1)
	return h.Nav(h.Class("pagination"), g.Attr("aria-label", "Pagination"),
		LinkButton(ButtonVariant{Kind: Outline, Size: Small, Disabled: !res.HasPrev()}, listingURL("/products", prev),
			OnActivate(catalogSwap(prev)...),
			Icon("←", false), g.Text("Previous"),
		),
		h.Span(h.Class("pagination__status"), g.Textf("Page %d of %d", res.Query.Page, res.Pages)),
		LinkButton(ButtonVariant{Kind: Outline, Size: Small, Disabled: !res.HasNext()}, listingURL("/products", next),
			OnActivate(catalogSwap(next)...),
			g.Text("Next"), Icon("→", true),
		),
	)
}

func catalogSwap(q catalog.Query) []g.Node {
	return []g.Node{
		g.Attr("hx-get", listingURL("/fragments/products", q)),
		g.Attr("hx-target", "#"+ProductGridID),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("hx-push-url", listingURL("/products", q)),
	}
}

func listingURL(path string, q catalog.Query) string {
	if enc := q.Values().Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// ProductDetail renders the product page body.
func ProductDetail(p catalog.Product, related []catalog.Product) g.Node {
	return g.Group{
		h.Section(h.Class("section"),
			h.Div(h.Class("container product-detail"),
				h.Img(h.Src(p.Image), h.Alt(p.Title)),
				h.Div(
					g.If(p.Tag != "", h.Span(h.Class("product-card__tag"), g.Text(p.Tag))),
					h.H1(g.Text(p.Title)),
					h.P(h.Class("product-detail__price"), g.Text(format.Currency(p.Price, p.Currency))),
					h.P(h.Class("product-detail__description"), g.Text(p.Description)),
					LinkButton(ButtonVariant{Kind: Primary, Uppercase: true}, "/contact", g.Text("Enquire")),
				),
			),
		),
		g.If(len(related) > 0, h.Section(h.Class("section"),
			h.Div(h.Class("container"),
				h.H2(h.Class("section__title"), g.Text("You May Also Like")),
				h.Div(h.Class("product-grid"), g.Map(related, ProductCard)),
			),
		)),
	}
}
