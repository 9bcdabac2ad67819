package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildActive(t *testing.T) {
	items := Build("/contact")
	require.Len(t, items, len(Main))
	for _, it := range items {
		assert.Equal(t, it.Href == "/contact", it.Active, it.Href)
	}

	home := Build("")
	assert.True(t, home[0].Active)
	assert.False(t, home[1].Active)

	story := Build("/story/craft")
	assert.True(t, story[2].Active)
	assert.False(t, story[0].Active)
}

func TestLocalPath(t *testing.T) {
	cases := map[string]string{
		"":                     "/",
		"/about":               "/about",
		"/products/polo":       "/products/polo",
		"about":                "/",
		"//evil.example/x":     "/",
		"/\\evil.example":      "/",
		"https://evil.example": "/",
		"/a\r\nSet-Cookie: x":  "/",
	}
	for in, want := range cases {
		assert.Equal(t, want, LocalPath(in), in)
	}
}

func TestMainLabels(t *testing.T) {
	var labels []string
	for _, it := range Main {
		labels = append(labels, it.Label)
	}
	assert.Equal(t, []string{"Home", "Collection", "Our Story", "Journal", "Contact"}, labels)
}

func TestPathsDeduplicates(t *testing.T) {
	paths := Paths()
	seen := map[string]int{}
	for _, p := range paths {
		seen[p]++
	}
	for p, n := range seen {
		assert.Equal(t, 1, n, p)
	}
	assert.Equal(t, "/", paths[0])
	assert.Contains(t, paths, "/shipping")
	assert.Contains(t, paths, "/collection/t-shirts")
}

func TestBreadcrumbs(t *testing.T) {
	crumbs := Breadcrumbs("/products/oxford-shirt", map[string]string{"/products": "Collection"})
	require.Len(t, crumbs, 3)
	assert.Equal(t, Crumb{Href: "/", Label: "Home"}, crumbs[0])
	assert.Equal(t, Crumb{Href: "/products", Label: "Collection"}, crumbs[1])
	assert.Equal(t, Crumb{Href: "/products/oxford-shirt", Label: "Oxford shirt", Active: true}, crumbs[2])

	root := Breadcrumbs("/", nil)
	require.Len(t, root, 1)
	assert.True(t, root[0].Active)
}
