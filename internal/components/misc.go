package components

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"laswell.com/web/internal/middleware"
)

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash renders a one-shot status message. A nil flash renders nothing.
func Flash(f *middleware.Flash) g.Node {
	if f == nil || f.Message == "" {
		return nil
	}
	kind := f.Kind
	if kind != FlashError {
		kind = FlashSuccess
	}
	role := "status"
	if kind == FlashError {
		role = "alert"
	}
	return h.Div(h.Class("flash flash--"+kind), g.Attr("role", role), g.Text(f.Message))
}

// PageIntro renders the centered title and lead paragraph of an inner page.
func PageIntro(title, lead string) g.Node {
	return h.Div(h.Class("container"), g.Attr("style", "padding-top: 6rem"),
		h.H1(h.Class("section__title"), g.Text(title)),
		g.If(lead != "", h.P(h.Class("section__lead"), g.Text(lead))),
	)
}

// NotFound renders the 404 page body.
func NotFound(path string) g.Node {
	return h.Section(h.Class("section not-found"),
		h.Div(h.Class("container"),
			h.P(h.Class("not-found__code"), g.Text("404")),
			h.H1(g.Text("Page not found")),
			h.P(g.Textf("We couldn't find %s.", path)),
			LinkButton(ButtonVariant{Kind: Primary, Uppercase: true}, "/", g.Text("Back to Home")),
		),
	)
}
