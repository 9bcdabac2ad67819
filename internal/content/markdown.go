package content

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"laswell.com/web/internal/sanitize"
)

var markdown = goldmark.New()

// renderSections splits source at level 2 headings and renders each block.
// Text before the first heading becomes a section without a heading.
func renderSections(source []byte) ([]Section, error) {
	doc := markdown.Parser().Parse(text.NewReader(source))

	type cut struct {
		heading string
		start   int // start of the heading line
		body    int // first byte after the heading line
	}
	var cuts []cut
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		h, ok := child.(*ast.Heading)
		if !ok || h.Level != 2 || h.Lines().Len() == 0 {
			continue
		}
		lines := h.Lines()
		var title bytes.Buffer
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			title.Write(seg.Value(source))
		}
		first := lines.At(0).Start
		last := lines.At(lines.Len() - 1).Stop
		cuts = append(cuts, cut{
			heading: strings.TrimSpace(title.String()),
			start:   lineStart(source, first),
			body:    lineEnd(source, last),
		})
	}

	var sections []Section
	intro := len(source)
	if len(cuts) > 0 {
		intro = cuts[0].start
	}
	if html, err := render(source[:intro]); err != nil {
		return nil, err
	} else if html != "" {
		sections = append(sections, Section{HTML: html})
	}
	for i, c := range cuts {
		end := len(source)
		if i+1 < len(cuts) {
			end = cuts[i+1].start
		}
		html, err := render(source[c.body:end])
		if err != nil {
			return nil, err
		}
		sections = append(sections, Section{ID: anchor(c.heading), Heading: c.heading, HTML: html})
	}
	return sections, nil
}

func render(src []byte) (string, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return "", err
	}
	return sanitize.HTML(buf.String()), nil
}

func lineStart(src []byte, pos int) int {
	return bytes.LastIndexByte(src[:pos], '\n') + 1
}

func lineEnd(src []byte, pos int) int {
	if i := bytes.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(src)
}

// anchor turns a heading into a fragment id, "The LasWell Journey" ->
// "the-laswell-journey".
func anchor(heading string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(heading) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
