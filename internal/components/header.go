package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"laswell.com/web/internal/nav"
	"laswell.com/web/internal/seo"
	"laswell.com/web/internal/ui"
)

// HeaderID is the element id htmx swaps when the header is re-rendered.
const HeaderID = "site-header"

// HeaderProps feeds Header. ScrollY is echoed back to the fragment endpoint
// so a menu toggle keeps the scrolled flag.
type HeaderProps struct {
	Path    string
	ScrollY int
	State   *ui.HeaderState
}

// Header renders the fixed site header with desktop navigation, the menu
// toggle and the mobile menu overlay.
func Header(p HeaderProps) g.Node {
	p.Path = nav.LocalPath(p.Path)
	state := p.State
	if state == nil {
		state = ui.NewHeaderState(nil)
	}
	items := nav.Build(p.Path)

	class := "site-header"
	if state.Scrolled {
		class += " site-header--scrolled"
	}

	return h.Header(
		h.ID(HeaderID),
		h.Class(class),
		g.Attr("data-scroll-threshold", strconv.Itoa(ui.ScrollThreshold)),
		g.Attr("data-scrolled", strconv.FormatBool(state.Scrolled)),
		g.Attr("data-path", p.Path),
		h.Div(h.Class("container site-header__inner"),
			h.A(h.Class("site-header__logo"), h.Href("/"), g.Text(seo.SiteName)),
			h.Nav(h.Class("site-nav"), g.Attr("aria-label", "Main"),
				g.Map(items, func(it nav.RenderedItem) g.Node {
					return navLink("site-nav__link", it)
				}),
			),
			menuToggle(p, state.MobileMenuOpen),
		),
		mobileMenu(items, state.MobileMenuOpen),
	)
}

func navLink(base string, it nav.RenderedItem) g.Node {
	class := base
	if it.Active {
		class += " " + base + "--active"
	}
	return h.A(
		h.Class(class),
		h.Href(it.Href),
		g.If(it.Active, g.Attr("aria-current", "page")),
		g.Text(it.Label),
	)
}

func menuToggle(p HeaderProps, open bool) g.Node {
	next, label := "open", "Open menu"
	if open {
		next, label = "", "Close menu"
	}
	href := p.Path + "?menu=" + next
	if next == "" {
		href = p.Path
	}
	return h.A(
		h.Class("menu-toggle"),
		h.Href(href),
		g.Attr("role", "button"),
		g.Attr("aria-label", label),
		g.Attr("aria-controls", "mobile-menu"),
		g.Attr("aria-expanded", strconv.FormatBool(open)),
		g.Attr("hx-get", "/fragments/header"),
		g.Attr("hx-vals", `js:{path: `+strconv.Quote(p.Path)+`, menu: `+strconv.Quote(next)+`, scroll: window.scrollY}`),
		g.Attr("hx-target", "#"+HeaderID),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("hx-push-url", "false"),
		h.Span(h.Class("menu-toggle__line")),
		h.Span(h.Class("menu-toggle__line")),
		h.Span(h.Class("menu-toggle__line")),
	)
}

func mobileMenu(items []nav.RenderedItem, open bool) g.Node {
	return h.Div(
		h.ID("mobile-menu"),
		h.Class("mobile-menu"),
		g.If(!open, g.Attr("hidden", "")),
		h.Nav(g.Attr("aria-label", "Mobile"),
			g.Map(items, func(it nav.RenderedItem) g.Node {
				return navLink("mobile-menu__link", it)
			}),
		),
	)
}
