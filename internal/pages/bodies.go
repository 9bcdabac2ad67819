package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"laswell.com/web/internal/catalog"
	"laswell.com/web/internal/components"
	"laswell.com/web/internal/content"
)

const showcaseSize = 6

func (s *Site) home(_ *Context, page content.Page) (g.Node, error) {
	return g.Group{
		components.HeroSection(page.Hero, page.Summary),
		components.CollectionShowcase(page.Showcase, s.Catalog.Featured(showcaseSize)),
	}, nil
}

func (s *Site) products(c *Context, page content.Page) (g.Node, error) {
	res := s.Catalog.Search(catalog.ParseQuery(c.Query, s.PerPage))
	return g.Group{
		components.PageIntro(page.Title, page.Summary),
		h.Section(h.Class("section"), g.Attr("style", "padding-top: 0"),
			h.Div(h.Class("container"), components.ProductCatalog(res)),
		),
	}, nil
}

func (s *Site) about(_ *Context, page content.Page) (g.Node, error) {
	return g.Group{
		components.PageIntro(page.Title, page.Summary),
		components.AboutSections(page.Sections),
		components.Values(page.Values),
		g.If(page.CTA.Href != "", h.Section(h.Class("section"),
			h.Div(h.Class("container hero__actions"), g.Attr("style", "justify-content: center"),
				components.LinkButton(components.ButtonVariant{Kind: components.Primary, Size: components.Large, Uppercase: true},
					page.CTA.Href, g.Text(page.CTA.Label)),
			),
		)),
	}, nil
}

func (s *Site) contact(c *Context, page content.Page) (g.Node, error) {
	return g.Group{
		components.PageIntro(page.Title, page.Summary),
		h.Section(h.Class("section"), g.Attr("style", "padding-top: 0"),
			h.Div(h.Class("container contact"),
				components.ContactInfo(page.Info),
				components.ContactForm(components.ContactFormProps{
					Form:      c.Contact,
					Errors:    c.ContactErrors,
					CSRFToken: c.CSRFToken,
					Flash:     c.Flash,
				}),
			),
		),
	}, nil
}
