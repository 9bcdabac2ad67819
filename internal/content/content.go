// Package content loads the site copy: markdown files with YAML front matter,
// rendered to sanitised HTML once at start.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned for an unknown page slug.
var ErrNotFound = errors.New("content: not found")

//go:embed pages/*.md
var embedded embed.FS

type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type Image struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt"`
}

type SEO struct {
	Description string `yaml:"description"`
	OGImage     string `yaml:"og_image"`
}

// Hero is the home page banner.
type Hero struct {
	Lines     []string `yaml:"lines"`
	Image     string   `yaml:"image"`
	Primary   Link     `yaml:"primary"`
	Secondary Link     `yaml:"secondary"`
}

type Showcase struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Value struct {
	Title       string `yaml:"title"`
	Icon        string `yaml:"icon"`
	Description string `yaml:"description"`
}

// InfoItem is one entry of the contact information panel.
type InfoItem struct {
	Label string   `yaml:"label"`
	Icon  string   `yaml:"icon"`
	Href  string   `yaml:"href"`
	Lines []string `yaml:"lines"`
}

type Newsletter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Section is one H2 delimited block of the markdown body. HTML is already
// sanitised.
type Section struct {
	ID      string
	Heading string
	HTML    string
	Image   Image
}

// Page is a parsed content file.
type Page struct {
	Slug       string
	Title      string
	Summary    string
	SEO        SEO
	Hero       Hero
	Showcase   Showcase
	Values     []Value
	Info       []InfoItem
	CTA        Link
	Newsletter Newsletter
	Sections   []Section
}

type frontMatter struct {
	Title      string           `yaml:"title"`
	Summary    string           `yaml:"summary"`
	SEO        SEO              `yaml:"seo"`
	Hero       Hero             `yaml:"hero"`
	Showcase   Showcase         `yaml:"showcase"`
	Values     []Value          `yaml:"values"`
	Info       []InfoItem       `yaml:"info"`
	CTA        Link             `yaml:"cta"`
	Newsletter Newsletter       `yaml:"newsletter"`
	Images     map[string]Image `yaml:"images"`
}

// Store holds every page keyed by slug.
type Store struct {
	pages map[string]Page
}

// Default loads the pages compiled into the binary.
func Default() (*Store, error) {
	sub, err := fs.Sub(embedded, "pages")
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	return Load(sub)
}

// Load parses every *.md file at the root of fsys. The file name without the
// extension is the slug.
func Load(fsys fs.FS) (*Store, error) {
	names, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	s := &Store{pages: make(map[string]Page, len(names))}
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", name, err)
		}
		slug := strings.TrimSuffix(path.Base(name), ".md")
		page, err := Parse(slug, data)
		if err != nil {
			return nil, err
		}
		s.pages[slug] = page
	}
	return s, nil
}

// Parse builds a page from one markdown document.
func Parse(slug string, data []byte) (Page, error) {
	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", slug, err)
		}
	}
	sections, err := renderSections([]byte(body))
	if err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", slug, err)
	}
	for i := range sections {
		sections[i].Image = front.Images[sections[i].ID]
	}
	page := Page{
		Slug:       slug,
		Title:      strings.TrimSpace(front.Title),
		Summary:    strings.TrimSpace(front.Summary),
		SEO:        front.SEO,
		Hero:       front.Hero,
		Showcase:   front.Showcase,
		Values:     front.Values,
		Info:       front.Info,
		CTA:        front.CTA,
		Newsletter: front.Newsletter,
		Sections:   sections,
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

// Get returns the page for slug or ErrNotFound.
func (s *Store) Get(slug string) (Page, error) {
	p, ok := s.pages[slug]
	if !ok {
		return Page{}, ErrNotFound
	}
	return p, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func prettifySlug(slug string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(slug))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
