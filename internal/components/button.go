// Package components renders the storefront's UI building blocks with
// gomponents. Components take explicit props and hold no state of their own.
package components

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"laswell.com/web/internal/ui"
)

// Kind selects the visual treatment of a button.
type Kind int

const (
	Primary Kind = iota
	Secondary
	Tertiary
	Outline
)

// Size selects the padding and font size of a button.
type Size int

const (
	Medium Size = iota
	Small
	Large
)

// ButtonVariant describes a button. The zero value is a medium primary button.
type ButtonVariant struct {
	Kind      Kind
	Size      Size
	Rounded   bool
	Uppercase bool
	Disabled  bool
}

var kindClasses = [...]string{
	Primary:   "btn--primary",
	Secondary: "btn--secondary",
	Tertiary:  "btn--tertiary",
	Outline:   "btn--outline",
}

var sizeClasses = [...]string{
	Small:  "btn--sm",
	Medium: "btn--md",
	Large:  "btn--lg",
}

// Classes returns the class list for v. It panics on a Kind or Size outside
// the declared constants.
func (v ButtonVariant) Classes() string {
	if v.Kind < 0 || int(v.Kind) >= len(kindClasses) {
		panic(fmt.Sprintf("components: invalid button kind %d", v.Kind))
	}
	if v.Size < 0 || int(v.Size) >= len(sizeClasses) {
		panic(fmt.Sprintf("components: invalid button size %d", v.Size))
	}
	classes := []string{"btn", kindClasses[v.Kind], sizeClasses[v.Size]}
	if v.Rounded {
		classes = append(classes, "btn--rounded")
	}
	if v.Uppercase {
		classes = append(classes, "btn--uppercase")
	}
	return strings.Join(classes, " ")
}

type handler struct {
	nodes g.Group
}

func (hd handler) Render(w io.Writer) error { return hd.nodes.Render(w) }

// OnActivate wraps the attributes that make a button do something (hx-get,
// hx-post, form targets). Button drops them when the variant is disabled.
func OnActivate(attrs ...g.Node) g.Node {
	return handler{nodes: g.Group(attrs)}
}

// Button renders a <button type="button">.
func Button(v ButtonVariant, children ...g.Node) g.Node {
	return button(v, "button", children)
}

// SubmitButton renders a <button type="submit">.
func SubmitButton(v ButtonVariant, children ...g.Node) g.Node {
	return button(v, "submit", children)
}

func button(v ButtonVariant, typ string, children []g.Node) g.Node {
	nodes := []g.Node{h.Type(typ), h.Class(v.Classes())}
	if v.Disabled {
		nodes = append(nodes, h.Disabled(), g.Attr("aria-disabled", "true"))
	} else {
		nodes = append(nodes, rippleAttrs()...)
	}
	nodes = append(nodes, activeChildren(v, children)...)
	return h.Button(nodes...)
}

// LinkButton renders an anchor styled as a button. A disabled link button
// has no href.
func LinkButton(v ButtonVariant, href string, children ...g.Node) g.Node {
	nodes := []g.Node{h.Class(v.Classes())}
	if v.Disabled {
		nodes = append(nodes, g.Attr("role", "link"), g.Attr("aria-disabled", "true"), g.Attr("tabindex", "-1"))
	} else {
		nodes = append(nodes, h.Href(href))
		nodes = append(nodes, rippleAttrs()...)
	}
	nodes = append(nodes, activeChildren(v, children)...)
	return h.A(nodes...)
}

func rippleAttrs() []g.Node {
	return []g.Node{
		g.Attr("data-ripple", ""),
		g.Attr("data-ripple-ms", strconv.FormatInt(ui.RippleDuration.Milliseconds(), 10)),
	}
}

func activeChildren(v ButtonVariant, children []g.Node) []g.Node {
	out := make([]g.Node, 0, len(children))
	for _, c := range children {
		if hd, ok := c.(handler); ok {
			if !v.Disabled {
				out = append(out, hd.nodes)
			}
			continue
		}
		out = append(out, c)
	}
	return out
}

// Icon places a decorative glyph before or after the button label.
func Icon(glyph string, right bool) g.Node {
	class := "btn__icon--left"
	if right {
		class = "btn__icon--right"
	}
	return h.Span(h.Class(class), g.Attr("aria-hidden", "true"), g.Text(glyph))
}
