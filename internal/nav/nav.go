package nav

import (
	"path"
	"strings"
)

// Item is one navigation link.
type Item struct {
	Label string
	Path  string // e.g. "/contact"
}

// RenderedItem is the view model handed to the header components.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Group is a titled list of footer links.
type Group struct {
	Heading string
	Items   []Item
}

// Crumb is one breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Social is an external profile link shown in the footer.
type Social struct {
	Label string
	Href  string
}

// Main is the primary navigation, shared by the desktop and mobile menus.
var Main = []Item{
	{Label: "Home", Path: "/"},
	{Label: "Collection", Path: "/collection"},
	{Label: "Our Story", Path: "/story"},
	{Label: "Journal", Path: "/journal"},
	{Label: "Contact", Path: "/contact"},
}

// Footer holds the footer link groups.
var Footer = []Group{
	{Heading: "Shop", Items: []Item{
		{Label: "New Arrivals", Path: "/collection/new-arrivals"},
		{Label: "T-Shirts", Path: "/collection/t-shirts"},
		{Label: "Shirts", Path: "/collection/shirts"},
		{Label: "Sweaters", Path: "/collection/sweaters"},
		{Label: "Pants", Path: "/collection/pants"},
		{Label: "Accessories", Path: "/collection/accessories"},
	}},
	{Heading: "Company", Items: []Item{
		{Label: "Our Story", Path: "/story"},
		{Label: "Sustainability", Path: "/sustainability"},
		{Label: "Journal", Path: "/journal"},
		{Label: "Stores", Path: "/stores"},
		{Label: "Careers", Path: "/careers"},
		{Label: "Contact Us", Path: "/contact"},
	}},
}

// Legal links sit in the footer bottom bar.
var Legal = []Item{
	{Label: "Privacy Policy", Path: "/privacy"},
	{Label: "Terms of Service", Path: "/terms"},
	{Label: "Shipping & Returns", Path: "/shipping"},
}

var Socials = []Social{
	{Label: "Instagram", Href: "https://instagram.com"},
	{Label: "Facebook", Href: "https://facebook.com"},
	{Label: "Twitter", Href: "https://twitter.com"},
	{Label: "Pinterest", Href: "https://pinterest.com"},
}

// LocalPath returns p when it is an absolute path on this site and "/"
// otherwise. Protocol-relative paths and backslashes are rejected.
func LocalPath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.ContainsAny(p, "\\\r\n") {
		return "/"
	}
	return p
}

// Build renders the main navigation with the active flag for currentPath.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: isActive(it.Path, currentPath),
		})
	}
	return items
}

// Paths returns every internal path reachable from the site chrome, main
// navigation first, without duplicates.
func Paths() []string {
	seen := map[string]bool{}
	var out []string
	add := func(items []Item) {
		for _, it := range items {
			if !seen[it.Path] {
				seen[it.Path] = true
				out = append(out, it.Path)
			}
		}
	}
	add(Main)
	for _, g := range Footer {
		add(g.Items)
	}
	add(Legal)
	return out
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// exact or prefix boundary: "/story" or "/story/..."
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path. Labels for
// known sections come from the route titles passed in, deeper segments are
// prettified.
func Breadcrumbs(currentPath string, titles map[string]string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", Label: "Home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	href := ""
	for i, seg := range parts {
		if seg == "" {
			continue
		}
		href += "/" + seg
		label, ok := titles[href]
		if !ok {
			label = titleFromSegment(seg)
		}
		crumbs = append(crumbs, Crumb{Href: href, Label: label, Active: i == len(parts)-1})
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	// slugs are ASCII
	if len(r) > 0 && r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
