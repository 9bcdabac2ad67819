package components

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"laswell.com/web/internal/catalog"
	"laswell.com/web/internal/content"
)

// HeroSection renders the full height hero with its two calls to action and
// the scroll indicator.
func HeroSection(hero content.Hero, subtitle string) g.Node {
	return h.Section(h.Class("hero"),
		g.If(hero.Image != "", g.Attr("style", "background-image: url('"+hero.Image+"')")),
		h.Div(h.Class("container"),
			h.H1(h.Class("hero__title"),
				g.Map(hero.Lines, func(line string) g.Node {
					return h.Span(g.Text(line), h.Br())
				}),
			),
			g.If(subtitle != "", h.P(h.Class("hero__subtitle"), g.Text(subtitle))),
			h.Div(h.Class("hero__actions"),
				g.If(hero.Primary.Href != "",
					LinkButton(ButtonVariant{Kind: Primary, Size: Large, Uppercase: true}, hero.Primary.Href, g.Text(hero.Primary.Label))),
				g.If(hero.Secondary.Href != "",
					LinkButton(ButtonVariant{Kind: Outline, Size: Large, Uppercase: true}, hero.Secondary.Href, g.Text(hero.Secondary.Label))),
			),
		),
		h.A(h.Class("hero__scroll"), h.Href("#collection"), g.Attr("aria-label", "Scroll to collection"),
			h.Span(g.Text("Scroll")),
		),
	)
}

// CollectionShowcase renders the featured products grid on the home page.
func CollectionShowcase(showcase content.Showcase, products []catalog.Product) g.Node {
	return h.Section(h.ID("collection"), h.Class("section"),
		h.Div(h.Class("container"),
			h.H2(h.Class("section__title"), g.Text(showcase.Title)),
			g.If(showcase.Description != "", h.P(h.Class("section__lead"), g.Text(showcase.Description))),
			h.Div(h.Class("product-grid"),
				g.Map(products, ProductCard),
			),
			h.Div(h.Class("hero__actions"), g.Attr("style", "justify-content: center; margin-top: 3rem"),
				LinkButton(ButtonVariant{Kind: Outline, Uppercase: true}, "/products", g.Text("View All Products")),
			),
		),
	)
}
