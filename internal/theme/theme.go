// Package theme holds the LasWell design tokens. The registry is a plain
// struct so every token a component references is checked by the compiler.
package theme

import (
	"strings"
	"unicode"
)

// Theme is the read-only design token registry.
type Theme struct {
	Colors      Colors
	Typography  Typography
	Spacing     Spacing
	Breakpoints Breakpoints
	Animation   Animation
	Shadows     Shadows
	Radii       Radii
}

type Colors struct {
	WhiteDove  string
	White      string
	DejaVuBlue string
	SageGreen  string
	OliveGreen string
	Black      string
	DarkGray   string
	MediumGray string
	LightGray  string
}

type Typography struct {
	FontFamilies  FontFamilies
	FontSizes     FontSizes
	FontWeights   FontWeights
	LineHeights   LineHeights
	LetterSpacing LetterSpacing
}

type FontFamilies struct {
	Heading string
	Body    string
	UI      string
}

type FontSizes struct {
	XS   string
	SM   string
	Base string
	MD   string
	LG   string
	XL   string
	XL2  string
	XL3  string
	XL4  string
	XL5  string
	XL6  string
}

type FontWeights struct {
	Light    string
	Regular  string
	Medium   string
	Semibold string
	Bold     string
}

type LineHeights struct {
	Tight   string
	Base    string
	Relaxed string
	Loose   string
}

type LetterSpacing struct {
	Tight  string
	Normal string
	Wide   string
	Wider  string
	Widest string
}

// Spacing follows the 4px scale; field names carry the scale step.
type Spacing struct {
	S0, S1, S2, S3, S4, S5, S6, S8, S10, S12, S16, S20, S24, S32, S40, S48, S56, S64 string
}

type Breakpoints struct {
	XS  string
	SM  string
	MD  string
	LG  string
	XL  string
	XL2 string
}

type Animation struct {
	Durations Durations
	Easing    Easing
}

type Durations struct {
	Fast     string
	Medium   string
	Slow     string
	VerySlow string
}

type Easing struct {
	EaseOut         string
	EaseIn          string
	EaseInOut       string
	FabricEaseOut   string
	FabricEaseIn    string
	FabricEaseInOut string
	Bounce          string
}

type Shadows struct {
	SM string
	MD string
	LG string
	XL string
}

type Radii struct {
	None string
	SM   string
	MD   string
	LG   string
	XL   string
	Full string
}

var laswell = Theme{
	Colors: Colors{
		WhiteDove:  "#EFEEE5",
		White:      "#FFFFFF",
		DejaVuBlue: "#2E5283",
		SageGreen:  "#9BAA92",
		OliveGreen: "#636B2F",
		Black:      "#000000",
		DarkGray:   "#333333",
		MediumGray: "#666666",
		LightGray:  "#CCCCCC",
	},
	Typography: Typography{
		FontFamilies: FontFamilies{
			Heading: `"Montserrat", sans-serif`,
			Body:    `"Open Sans", sans-serif`,
			UI:      `"Inter", sans-serif`,
		},
		FontSizes: FontSizes{
			XS:   "0.75rem",
			SM:   "0.875rem",
			Base: "1rem",
			MD:   "1.125rem",
			LG:   "1.25rem",
			XL:   "1.5rem",
			XL2:  "1.875rem",
			XL3:  "2.25rem",
			XL4:  "3rem",
			XL5:  "3.75rem",
			XL6:  "4.5rem",
		},
		FontWeights: FontWeights{
			Light:    "300",
			Regular:  "400",
			Medium:   "500",
			Semibold: "600",
			Bold:     "700",
		},
		LineHeights: LineHeights{
			Tight:   "1.2",
			Base:    "1.5",
			Relaxed: "1.75",
			Loose:   "2",
		},
		LetterSpacing: LetterSpacing{
			Tight:  "-0.025em",
			Normal: "0",
			Wide:   "0.025em",
			Wider:  "0.05em",
			Widest: "0.1em",
		},
	},
	Spacing: Spacing{
		S0: "0", S1: "0.25rem", S2: "0.5rem", S3: "0.75rem", S4: "1rem", S5: "1.25rem",
		S6: "1.5rem", S8: "2rem", S10: "2.5rem", S12: "3rem", S16: "4rem", S20: "5rem",
		S24: "6rem", S32: "8rem", S40: "10rem", S48: "12rem", S56: "14rem", S64: "16rem",
	},
	Breakpoints: Breakpoints{
		XS:  "320px",
		SM:  "640px",
		MD:  "768px",
		LG:  "1024px",
		XL:  "1280px",
		XL2: "1536px",
	},
	Animation: Animation{
		Durations: Durations{
			Fast:     "0.2s",
			Medium:   "0.4s",
			Slow:     "0.6s",
			VerySlow: "1s",
		},
		Easing: Easing{
			EaseOut:         "cubic-bezier(0.33, 1, 0.68, 1)",
			EaseIn:          "cubic-bezier(0.32, 0, 0.67, 0)",
			EaseInOut:       "cubic-bezier(0.65, 0, 0.35, 1)",
			FabricEaseOut:   "cubic-bezier(0.22, 1, 0.36, 1)",
			FabricEaseIn:    "cubic-bezier(0.4, 0, 0.2, 1)",
			FabricEaseInOut: "cubic-bezier(0.4, 0, 0.2, 1)",
			Bounce:          "cubic-bezier(0.34, 1.56, 0.64, 1)",
		},
	},
	Shadows: Shadows{
		SM: "0 1px 2px 0 rgba(0, 0, 0, 0.05)",
		MD: "0 4px 6px -1px rgba(0, 0, 0, 0.1), 0 2px 4px -1px rgba(0, 0, 0, 0.06)",
		LG: "0 10px 15px -3px rgba(0, 0, 0, 0.1), 0 4px 6px -2px rgba(0, 0, 0, 0.05)",
		XL: "0 20px 25px -5px rgba(0, 0, 0, 0.1), 0 10px 10px -5px rgba(0, 0, 0, 0.04)",
	},
	Radii: Radii{
		None: "0",
		SM:   "0.125rem",
		MD:   "0.25rem",
		LG:   "0.5rem",
		XL:   "1rem",
		Full: "9999px",
	},
}

// Default returns a copy of the LasWell theme. Callers cannot mutate the
// registry through the returned value.
func Default() Theme { return laswell }

// Token is one flattened entry of the registry.
type Token struct {
	Path  string // dotted lookup path, e.g. "colors.dejaVuBlue"
	Value string
}

// Var returns the CSS custom property name for the token.
func (tk Token) Var() string { return VarName(tk.Path) }

// Tokens flattens the registry in declaration order.
func (t Theme) Tokens() []Token {
	c, ty, sp, an := t.Colors, t.Typography, t.Spacing, t.Animation
	return []Token{
		{"colors.whiteDove", c.WhiteDove},
		{"colors.white", c.White},
		{"colors.dejaVuBlue", c.DejaVuBlue},
		{"colors.sageGreen", c.SageGreen},
		{"colors.oliveGreen", c.OliveGreen},
		{"colors.black", c.Black},
		{"colors.darkGray", c.DarkGray},
		{"colors.mediumGray", c.MediumGray},
		{"colors.lightGray", c.LightGray},

		{"font.heading", ty.FontFamilies.Heading},
		{"font.body", ty.FontFamilies.Body},
		{"font.ui", ty.FontFamilies.UI},

		{"fontSizes.xs", ty.FontSizes.XS},
		{"fontSizes.sm", ty.FontSizes.SM},
		{"fontSizes.base", ty.FontSizes.Base},
		{"fontSizes.md", ty.FontSizes.MD},
		{"fontSizes.lg", ty.FontSizes.LG},
		{"fontSizes.xl", ty.FontSizes.XL},
		{"fontSizes.2xl", ty.FontSizes.XL2},
		{"fontSizes.3xl", ty.FontSizes.XL3},
		{"fontSizes.4xl", ty.FontSizes.XL4},
		{"fontSizes.5xl", ty.FontSizes.XL5},
		{"fontSizes.6xl", ty.FontSizes.XL6},

		{"fontWeights.light", ty.FontWeights.Light},
		{"fontWeights.regular", ty.FontWeights.Regular},
		{"fontWeights.medium", ty.FontWeights.Medium},
		{"fontWeights.semibold", ty.FontWeights.Semibold},
		{"fontWeights.bold", ty.FontWeights.Bold},

		{"lineHeights.tight", ty.LineHeights.Tight},
		{"lineHeights.base", ty.LineHeights.Base},
		{"lineHeights.relaxed", ty.LineHeights.Relaxed},
		{"lineHeights.loose", ty.LineHeights.Loose},

		{"letterSpacing.tight", ty.LetterSpacing.Tight},
		{"letterSpacing.normal", ty.LetterSpacing.Normal},
		{"letterSpacing.wide", ty.LetterSpacing.Wide},
		{"letterSpacing.wider", ty.LetterSpacing.Wider},
		{"letterSpacing.widest", ty.LetterSpacing.Widest},

		{"spacing.0", sp.S0},
		{"spacing.1", sp.S1},
		{"spacing.2", sp.S2},
		{"spacing.3", sp.S3},
		{"spacing.4", sp.S4},
		{"spacing.5", sp.S5},
		{"spacing.6", sp.S6},
		{"spacing.8", sp.S8},
		{"spacing.10", sp.S10},
		{"spacing.12", sp.S12},
		{"spacing.16", sp.S16},
		{"spacing.20", sp.S20},
		{"spacing.24", sp.S24},
		{"spacing.32", sp.S32},
		{"spacing.40", sp.S40},
		{"spacing.48", sp.S48},
		{"spacing.56", sp.S56},
		{"spacing.64", sp.S64},

		{"breakpoints.xs", t.Breakpoints.XS},
		{"breakpoints.sm", t.Breakpoints.SM},
		{"breakpoints.md", t.Breakpoints.MD},
		{"breakpoints.lg", t.Breakpoints.LG},
		{"breakpoints.xl", t.Breakpoints.XL},
		{"breakpoints.2xl", t.Breakpoints.XL2},

		{"durations.fast", an.Durations.Fast},
		{"durations.medium", an.Durations.Medium},
		{"durations.slow", an.Durations.Slow},
		{"durations.verySlow", an.Durations.VerySlow},

		{"easing.easeOut", an.Easing.EaseOut},
		{"easing.easeIn", an.Easing.EaseIn},
		{"easing.easeInOut", an.Easing.EaseInOut},
		{"easing.fabricEaseOut", an.Easing.FabricEaseOut},
		{"easing.fabricEaseIn", an.Easing.FabricEaseIn},
		{"easing.fabricEaseInOut", an.Easing.FabricEaseInOut},
		{"easing.bounce", an.Easing.Bounce},

		{"shadows.sm", t.Shadows.SM},
		{"shadows.md", t.Shadows.MD},
		{"shadows.lg", t.Shadows.LG},
		{"shadows.xl", t.Shadows.XL},

		{"radii.none", t.Radii.None},
		{"radii.sm", t.Radii.SM},
		{"radii.md", t.Radii.MD},
		{"radii.lg", t.Radii.LG},
		{"radii.xl", t.Radii.XL},
		{"radii.full", t.Radii.Full},
	}
}

// Lookup resolves a dotted token path. It exists for templates and tooling
// that only know token names at runtime; Go code should use the fields.
func (t Theme) Lookup(path string) (string, bool) {
	for _, tk := range t.Tokens() {
		if tk.Path == path {
			return tk.Value, true
		}
	}
	return "", false
}

// VarName maps a dotted token path to a CSS custom property,
// "colors.dejaVuBlue" -> "--colors-deja-vu-blue".
func VarName(path string) string {
	var b strings.Builder
	b.WriteString("--")
	prevLower := false
	for _, r := range path {
		switch {
		case r == '.':
			b.WriteByte('-')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return b.String()
}
