package seo

import "strings"

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Meta is the head metadata for one page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Twitter     Twitter
	// JSONLD holds schema payloads rendered as ld+json script blocks.
	JSONLD []map[string]any
}

// SiteName is the brand used in titles and schemas.
const SiteName = "LasWell"

// NewMeta builds metadata for a page at path under baseURL. An empty title
// yields the bare site name.
func NewMeta(baseURL, path, title, description, image string) Meta {
	full := SiteName
	if title != "" {
		full = title + " | " + SiteName
	}
	canonical := Absolute(baseURL, path)
	img := ""
	if image != "" {
		img = Absolute(baseURL, image)
	}
	return Meta{
		Title:       full,
		Description: description,
		Canonical:   canonical,
		OG: OpenGraph{
			Title:       full,
			Description: description,
			Image:       img,
			Type:        "website",
			URL:         canonical,
		},
		Twitter: Twitter{Card: "summary_large_image", Site: "@laswell", Image: img},
	}
}

// Absolute joins baseURL and path with exactly one slash.
func Absolute(baseURL, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
