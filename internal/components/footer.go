package components

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"laswell.com/web/internal/middleware"
	"laswell.com/web/internal/nav"
	"laswell.com/web/internal/seo"
)

// NewsletterID is the id of the newsletter form, swapped in place by htmx.
const NewsletterID = "newsletter"

// NewsletterProps feeds NewsletterForm. Email is echoed back after a
// failed submission.
type NewsletterProps struct {
	Title       string
	Description string
	CSRFToken   string
	Email       string
	Error       string
	Message     string
}

// FooterProps feeds Footer.
type FooterProps struct {
	Blurb      string
	Year       string
	Newsletter NewsletterProps
}

// Footer renders the brand blurb, link groups, newsletter signup and legal
// bar.
func Footer(p FooterProps) g.Node {
	return h.Footer(h.Class("site-footer"),
		h.Div(h.Class("container"),
			h.Div(h.Class("site-footer__grid"),
				h.Div(h.Class("site-footer__brand"),
					h.H3(g.Text(seo.SiteName)),
					h.P(g.Text(p.Blurb)),
					h.Div(h.Class("site-footer__social"),
						g.Map(nav.Socials, func(s nav.Social) g.Node {
							return h.A(h.Href(s.Href), g.Attr("aria-label", s.Label),
								h.Rel("noopener"), h.Target("_blank"), g.Text(s.Label))
						}),
					),
				),
				g.Map(nav.Footer, footerGroup),
				NewsletterForm(p.Newsletter),
			),
			h.Div(h.Class("site-footer__bottom"),
				h.P(g.Textf("© %s %s. All rights reserved.", p.Year, seo.SiteName)),
				h.Div(h.Class("site-footer__links"),
					g.Map(nav.Legal, func(it nav.Item) g.Node {
						return h.A(h.Class("site-footer__link"), h.Href(it.Path), g.Text(it.Label))
					}),
				),
			),
		),
	)
}

func footerGroup(grp nav.Group) g.Node {
	return h.Div(
		h.H4(h.Class("site-footer__heading"), g.Text(grp.Heading)),
		h.Ul(h.Class("site-footer__links"),
			g.Map(grp.Items, func(it nav.Item) g.Node {
				return h.Li(h.A(h.Class("site-footer__link"), h.Href(it.Path), g.Text(it.Label)))
			}),
		),
	)
}

// NewsletterForm renders the signup form. Posting it works with and without
// htmx; htmx swaps the returned form in place.
func NewsletterForm(p NewsletterProps) g.Node {
	return h.Div(h.ID(NewsletterID), h.Class("newsletter"),
		h.H4(h.Class("site-footer__heading"), g.Text(p.Title)),
		h.P(g.Text(p.Description)),
		g.If(p.Message != "", Flash(&middleware.Flash{Kind: FlashSuccess, Message: p.Message})),
		g.El("form",
			h.Method("post"),
			h.Action("/newsletter"),
			g.Attr("hx-post", "/newsletter"),
			g.Attr("hx-target", "#"+NewsletterID),
			g.Attr("hx-swap", "outerHTML"),
			csrfInput(p.CSRFToken),
			g.El("label", h.Class("form__label"), h.For("newsletter-email"), g.Text("Email address")),
			h.Input(
				h.ID("newsletter-email"),
				h.Class("newsletter__input"),
				h.Type("email"),
				h.Name("email"),
				h.Placeholder("Your email address"),
				h.Value(p.Email),
				h.Required(),
				h.AutoComplete("email"),
				g.If(p.Error != "", g.Attr("aria-invalid", "true")),
			),
			g.If(p.Error != "", h.P(h.Class("form__error"), g.Attr("role", "alert"), g.Text(p.Error))),
			SubmitButton(ButtonVariant{Kind: Primary, Size: Small}, g.Text("Subscribe")),
		),
	)
}

func csrfInput(token string) g.Node {
	return h.Input(h.Type("hidden"), h.Name(middleware.CSRFField), h.Value(token))
}
