package components

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"laswell.com/web/internal/content"
)

// AboutSections renders the markdown sections of the about page, each with
// its optional image.
func AboutSections(sections []content.Section) g.Node {
	return g.Map(sections, func(s content.Section) g.Node {
		return h.Section(h.ID(s.ID), h.Class("section"),
			h.Div(h.Class("container product-detail"),
				h.Div(h.Class("prose"),
					h.H2(g.Text(s.Heading)),
					g.Raw(s.HTML),
				),
				g.If(s.Image.Src != "", h.Img(h.Src(s.Image.Src), h.Alt(s.Image.Alt), h.Loading("lazy"))),
			),
		)
	})
}

// Values renders the brand values grid.
func Values(values []content.Value) g.Node {
	if len(values) == 0 {
		return nil
	}
	return h.Section(h.Class("section"),
		h.Div(h.Class("container"),
			h.H2(h.Class("section__title"), g.Text("Our Values")),
			h.Div(h.Class("values"),
				g.Map(values, func(v content.Value) g.Node {
					return h.Div(h.Class("values__item"),
						g.If(v.Icon != "", h.Span(g.Attr("aria-hidden", "true"), g.Text(v.Icon))),
						h.H3(h.Class("values__title"), g.Text(v.Title)),
						h.P(g.Text(v.Description)),
					)
				}),
			),
		),
	)
}
