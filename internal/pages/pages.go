// Package pages maps the site's routes to page bodies and wraps them in the
// shared document shell.
package pages

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"laswell.com/web/internal/catalog"
	"laswell.com/web/internal/components"
	"laswell.com/web/internal/contact"
	"laswell.com/web/internal/content"
	"laswell.com/web/internal/format"
	"laswell.com/web/internal/middleware"
	"laswell.com/web/internal/nav"
	"laswell.com/web/internal/seo"
	"laswell.com/web/internal/ui"
)

// Route is one declared page.
type Route struct {
	Path string
	// Slug names the content file holding the page copy.
	Slug string
	body func(s *Site, c *Context, page content.Page) (g.Node, error)
}

// Routes are the four declared pages. Everything else renders NotFound.
var Routes = []Route{
	{Path: "/", Slug: "home", body: (*Site).home},
	{Path: "/products", Slug: "products", body: (*Site).products},
	{Path: "/about", Slug: "about", body: (*Site).about},
	{Path: "/contact", Slug: "contact", body: (*Site).contact},
}

// Lookup returns the route declared for path.
func Lookup(path string) (Route, bool) {
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Site holds the read-only data every page renders from.
type Site struct {
	Catalog *catalog.Catalog
	Content *content.Store
	BaseURL string
	// StylesheetURL is the versioned URL of the generated stylesheet.
	StylesheetURL string
	PerPage       int
	Now           func() time.Time
}

// Context is the per request render state.
type Context struct {
	Path      string
	Query     url.Values
	CSRFToken string
	Flash     *middleware.Flash

	Lock     *ui.ScrollLock
	Header   *ui.HeaderState
	Viewport *ui.Viewport
	ScrollY  int

	// Contact and ContactErrors repopulate the contact form after a failed
	// submission.
	Contact       contact.Form
	ContactErrors map[string]string
	Newsletter    components.NewsletterProps
}

// NewContext builds render state for path. The query may carry the scroll
// offset (scroll) and the mobile menu state (menu=open) so the header renders
// without JavaScript.
func NewContext(path string, query url.Values) *Context {
	if query == nil {
		query = url.Values{}
	}
	lock := &ui.ScrollLock{}
	header := ui.NewHeaderState(lock)
	scrollY, _ := strconv.Atoi(query.Get("scroll"))
	if scrollY < 0 {
		scrollY = 0
	}
	header.SetScrollOffset(scrollY)
	if query.Get("menu") == "open" {
		header.ToggleMobileMenu()
	}
	return &Context{
		Path:     path,
		Query:    query,
		Lock:     lock,
		Header:   header,
		Viewport: &ui.Viewport{},
		ScrollY:  scrollY,
	}
}

// Close releases the header's hold on the scroll lock.
func (c *Context) Close() {
	if c.Header != nil {
		c.Header.Close()
	}
}

// Navigate moves the viewport to path. The scroll position always resets
// to the top.
func Navigate(v *ui.Viewport, path string) {
	v.Navigate(path)
}

// Render writes the page declared for c.Path. Undeclared paths render the
// 404 page. It returns the status code the response should carry.
func (s *Site) Render(w io.Writer, c *Context) (int, error) {
	route, ok := Lookup(c.Path)
	if !ok {
		return http.StatusNotFound, s.RenderNotFound(w, c)
	}
	Navigate(c.Viewport, route.Path)
	page, err := s.Content.Get(route.Slug)
	if err != nil {
		return http.StatusInternalServerError, fmt.Errorf("pages: %s: %w", route.Path, err)
	}
	body, err := route.body(s, c, page)
	if err != nil {
		return http.StatusInternalServerError, err
	}
	meta := s.meta(c.Path, page.Title, page.SEO, page.Summary)
	if route.Path == "/" {
		meta.Title = seo.SiteName + " | " + page.Title
		meta.OG.Title = meta.Title
		meta.JSONLD = append(meta.JSONLD,
			seo.Organization(seo.SiteName, s.BaseURL, seo.Absolute(s.BaseURL, "/assets/images/logo.png"), socialURLs()),
			seo.WebSite(seo.SiteName, s.BaseURL),
		)
	} else {
		meta.JSONLD = append(meta.JSONLD, s.breadcrumbs(c.Path, nil))
	}
	return http.StatusOK, s.document(c, meta, body).Render(w)
}

// RenderProduct writes the detail page of the product with slug.
func (s *Site) RenderProduct(w io.Writer, c *Context, slug string) (int, error) {
	p, err := s.Catalog.BySlug(slug)
	if errors.Is(err, catalog.ErrNotFound) {
		return http.StatusNotFound, s.RenderNotFound(w, c)
	}
	if err != nil {
		return http.StatusInternalServerError, err
	}
	Navigate(c.Viewport, c.Path)
	meta := s.meta(c.Path, p.Title, content.SEO{Description: p.Description, OGImage: p.Image}, p.Description)
	meta.OG.Type = "product"
	meta.JSONLD = append(meta.JSONLD,
		seo.Product(seo.ProductInfo{
			Name:        p.Title,
			Description: p.Description,
			URL:         seo.Absolute(s.BaseURL, c.Path),
			Image:       seo.Absolute(s.BaseURL, p.Image),
			SKU:         p.ID,
			Brand:       seo.SiteName,
			Price:       format.Plain(p.Price),
			Currency:    p.Currency,
		}),
		s.breadcrumbs(c.Path, map[string]string{c.Path: p.Title}),
	)
	body := components.ProductDetail(p, s.Catalog.Related(p, 3))
	return http.StatusOK, s.document(c, meta, body).Render(w)
}

// RenderNotFound writes the 404 page.
func (s *Site) RenderNotFound(w io.Writer, c *Context) error {
	Navigate(c.Viewport, c.Path)
	meta := s.meta(c.Path, "Page not found", content.SEO{}, "")
	return s.document(c, meta, components.NotFound(c.Path)).Render(w)
}

// HeaderFragment renders the header alone for htmx swaps.
func (s *Site) HeaderFragment(c *Context) g.Node {
	return components.Header(components.HeaderProps{Path: c.Path, ScrollY: c.ScrollY, State: c.Header})
}

// ProductsFragment renders the listing grid for the given query values.
func (s *Site) ProductsFragment(q url.Values) g.Node {
	return components.ProductResults(s.Catalog.Search(catalog.ParseQuery(q, s.PerPage)))
}

// ContactFragment renders the contact form alone for htmx swaps.
func (s *Site) ContactFragment(c *Context) g.Node {
	return components.ContactForm(components.ContactFormProps{
		Form:      c.Contact,
		Errors:    c.ContactErrors,
		CSRFToken: c.CSRFToken,
		Flash:     c.Flash,
	})
}

// NewsletterFragment renders the newsletter form alone for htmx swaps.
func (s *Site) NewsletterFragment(c *Context) g.Node {
	return components.NewsletterForm(s.newsletterProps(c))
}

func (s *Site) document(c *Context, meta seo.Meta, body g.Node) g.Node {
	footer, _ := s.Content.Get("footer")
	main := body
	if c.Flash != nil && c.Path != "/contact" {
		main = g.Group{h.Div(h.Class("container"), components.Flash(c.Flash)), body}
	}
	return components.Document(components.DocumentProps{
		Meta:         meta,
		Stylesheet:   s.StylesheetURL,
		CSRFToken:    c.CSRFToken,
		ScrollLocked: c.Header.BodyLocked(),
		Header:       s.HeaderFragment(c),
		Main:         main,
		Footer: components.Footer(components.FooterProps{
			Blurb:      footer.Summary,
			Year:       format.Year(s.now()),
			Newsletter: s.newsletterProps(c),
		}),
	})
}

func (s *Site) newsletterProps(c *Context) components.NewsletterProps {
	footer, _ := s.Content.Get("footer")
	p := c.Newsletter
	p.Title = footer.Newsletter.Title
	p.Description = footer.Newsletter.Description
	p.CSRFToken = c.CSRFToken
	return p
}

func (s *Site) meta(path, title string, pageSEO content.SEO, fallback string) seo.Meta {
	desc := pageSEO.Description
	if desc == "" {
		desc = fallback
	}
	return seo.NewMeta(s.BaseURL, path, title, desc, pageSEO.OGImage)
}

func (s *Site) breadcrumbs(path string, titles map[string]string) map[string]any {
	if titles == nil {
		titles = map[string]string{}
	}
	for _, r := range Routes {
		if _, ok := titles[r.Path]; ok {
			continue
		}
		if page, err := s.Content.Get(r.Slug); err == nil {
			titles[r.Path] = page.Title
		}
	}
	crumbs := nav.Breadcrumbs(path, titles)
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, cr := range crumbs {
		items = append(items, seo.BreadcrumbItem{Name: cr.Label, Item: seo.Absolute(s.BaseURL, cr.Href)})
	}
	return seo.BreadcrumbList(items)
}

func (s *Site) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func socialURLs() []string {
	out := make([]string, 0, len(nav.Socials))
	for _, so := range nav.Socials {
		out = append(out, so.Href)
	}
	return out
}
