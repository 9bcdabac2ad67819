package components

import (
	"encoding/json"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"laswell.com/web/internal/middleware"
	"laswell.com/web/internal/seo"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.3/dist/htmx.min.js"

// DocumentProps feeds Document.
type DocumentProps struct {
	Meta seo.Meta
	// Stylesheet is the versioned URL of the generated stylesheet.
	Stylesheet   string
	CSRFToken    string
	ScrollLocked bool
	Header       g.Node
	Main         g.Node
	Footer       g.Node
}

// Document wraps a page body with the head, header and footer. The body
// carries data-scroll-reset so the client scrolls to the top after boosted
// navigation.
func Document(p DocumentProps) g.Node {
	hxHeaders, _ := json.Marshal(map[string]string{middleware.CSRFHeader: p.CSRFToken})
	return h.Doctype(
		h.HTML(h.Lang("en"),
			Head(p.Meta, p.Stylesheet),
			h.Body(
				g.If(p.ScrollLocked, h.Class("scroll-locked")),
				g.Attr("data-scroll-reset", "top"),
				g.Attr("hx-boost", "true"),
				g.Attr("hx-headers", string(hxHeaders)),
				p.Header,
				h.Main(h.ID("main"), p.Main),
				p.Footer,
				h.Script(h.Src(htmxSrc), h.Defer()),
				h.Script(h.Src("/assets/js/site.js"), h.Defer()),
			),
		),
	)
}

// Head renders the document head with SEO metadata and JSON-LD.
func Head(m seo.Meta, stylesheet string) g.Node {
	return h.Head(
		h.Meta(h.Charset("utf-8")),
		h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
		g.El("title", g.Text(m.Title)),
		g.If(m.Description != "", h.Meta(h.Name("description"), h.Content(m.Description))),
		g.If(m.Canonical != "", h.Link(h.Rel("canonical"), h.Href(m.Canonical))),
		metaProperty("og:title", m.OG.Title),
		metaProperty("og:description", m.OG.Description),
		metaProperty("og:type", m.OG.Type),
		metaProperty("og:url", m.OG.URL),
		metaProperty("og:image", m.OG.Image),
		g.If(m.Twitter.Card != "", h.Meta(h.Name("twitter:card"), h.Content(m.Twitter.Card))),
		g.If(m.Twitter.Image != "", h.Meta(h.Name("twitter:image"), h.Content(m.Twitter.Image))),
		h.Link(h.Rel("preconnect"), h.Href("https://fonts.googleapis.com")),
		h.Link(h.Rel("stylesheet"), h.Href("https://fonts.googleapis.com/css2?family=Montserrat:wght@400;500;600;700&family=Open+Sans:wght@300;400;500;600&family=Inter:wght@400;500;600&display=swap")),
		h.Link(h.Rel("stylesheet"), h.Href(stylesheet)),
		g.Map(m.JSONLD, func(doc map[string]any) g.Node {
			return h.Script(h.Type("application/ld+json"), g.Raw(seo.JSON(doc)))
		}),
	)
}

func metaProperty(property, content string) g.Node {
	if content == "" {
		return nil
	}
	return h.Meta(g.Attr("property", property), h.Content(content))
}
