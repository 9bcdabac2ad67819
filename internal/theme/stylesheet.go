package theme

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/tdewolff/minify/v2"
	mcss "github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Asset is a generated stylesheet ready to be served.
type Asset struct {
	Body []byte
	ETag string
}

// Build renders, checks and minifies the stylesheet for t.
func Build(t Theme) (Asset, error) {
	raw := Stylesheet(t)
	if missing := Unresolved(t, raw); len(missing) > 0 {
		return Asset{}, fmt.Errorf("theme: stylesheet references unknown tokens: %s", strings.Join(missing, ", "))
	}
	m := minify.New()
	m.AddFunc("text/css", mcss.Minify)
	out, err := m.String("text/css", raw)
	if err != nil {
		return Asset{}, fmt.Errorf("theme: minify stylesheet: %w", err)
	}
	sum := sha256.Sum256([]byte(out))
	return Asset{Body: []byte(out), ETag: `W/"` + hex.EncodeToString(sum[:]) + `"`}, nil
}

// References lists the custom properties read through var() in src, sorted
// and deduplicated.
func References(src string) []string {
	lx := css.NewLexer(parse.NewInputString(src))
	seen := map[string]bool{}
	inVar := false
	for {
		tt, data := lx.Next()
		switch tt {
		case css.ErrorToken:
			out := make([]string, 0, len(seen))
			for name := range seen {
				out = append(out, name)
			}
			sort.Strings(out)
			return out
		case css.WhitespaceToken, css.CommentToken:
			continue
		case css.FunctionToken:
			inVar = bytes.EqualFold(data, []byte("var("))
			continue
		case css.IdentToken, css.CustomPropertyNameToken:
			if inVar && bytes.HasPrefix(data, []byte("--")) {
				seen[string(data)] = true
			}
		}
		inVar = false
	}
}

// Unresolved returns the var() references in src that t does not declare
// with a non-empty value.
func Unresolved(t Theme, src string) []string {
	declared := map[string]bool{}
	for _, tk := range t.Tokens() {
		if strings.TrimSpace(tk.Value) != "" {
			declared[tk.Var()] = true
		}
	}
	var missing []string
	for _, name := range References(src) {
		if !declared[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// Stylesheet renders the unminified site stylesheet: one custom property per
// token followed by the component rules.
func Stylesheet(t Theme) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, tk := range t.Tokens() {
		fmt.Fprintf(&b, "  %s: %s;\n", tk.Var(), tk.Value)
	}
	b.WriteString("}\n")
	b.WriteString(rules)
	// breakpoints cannot be custom properties inside media queries
	fmt.Fprintf(&b, "@media (min-width: %s) {\n%s}\n", t.Breakpoints.MD, desktopRules)
	fmt.Fprintf(&b, "@media (min-width: %s) {\n%s}\n", t.Breakpoints.LG, wideRules)
	return b.String()
}

const rules = `
*, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }
html { scroll-behavior: smooth; }
body {
  font-family: var(--font-body);
  font-size: var(--font-sizes-base);
  line-height: var(--line-heights-base);
  color: var(--colors-dark-gray);
  background-color: var(--colors-white-dove);
}
body.scroll-locked { overflow: hidden; }
h1, h2, h3, h4, h5, h6 {
  font-family: var(--font-heading);
  font-weight: var(--font-weights-semibold);
  line-height: var(--line-heights-tight);
  color: var(--colors-deja-vu-blue);
}
a { color: inherit; text-decoration: none; }
img { max-width: 100%; display: block; }
.container { width: 100%; max-width: var(--breakpoints-xl); margin: 0 auto; padding: 0 var(--spacing-6); }
.section { padding: var(--spacing-20) 0; }
.section__title { font-size: var(--font-sizes-3xl); margin-bottom: var(--spacing-6); text-align: center; }
.section__lead { font-size: var(--font-sizes-md); color: var(--colors-medium-gray); text-align: center; max-width: 40rem; margin: 0 auto var(--spacing-12); }

.btn {
  display: inline-flex;
  align-items: center;
  justify-content: center;
  position: relative;
  overflow: hidden;
  font-family: var(--font-ui);
  font-weight: var(--font-weights-medium);
  letter-spacing: var(--letter-spacing-wide);
  border-radius: var(--radii-md);
  cursor: pointer;
  transition: all var(--durations-medium) var(--easing-fabric-ease-out);
}
.btn:hover { transform: scale(1.02); }
.btn:active { transform: scale(0.98); }
.btn--sm { padding: var(--spacing-2) var(--spacing-4); font-size: var(--font-sizes-sm); }
.btn--md { padding: var(--spacing-3) var(--spacing-6); font-size: var(--font-sizes-base); }
.btn--lg { padding: var(--spacing-4) var(--spacing-8); font-size: var(--font-sizes-lg); }
.btn--rounded { border-radius: var(--radii-full); }
.btn--uppercase { text-transform: uppercase; }
.btn--primary { background-color: var(--colors-deja-vu-blue); color: var(--colors-white); border: none; box-shadow: var(--shadows-md); }
.btn--primary:hover { box-shadow: var(--shadows-lg); }
.btn--secondary { background-color: var(--colors-sage-green); color: var(--colors-white); border: none; }
.btn--secondary:hover { background-color: var(--colors-olive-green); }
.btn--tertiary { background-color: transparent; color: var(--colors-deja-vu-blue); border: none; padding-left: 0; padding-right: 0; }
.btn--tertiary:hover { color: var(--colors-sage-green); }
.btn--tertiary::after {
  content: "";
  position: absolute;
  bottom: 0;
  left: 0;
  width: 0;
  height: 1px;
  background-color: currentColor;
  transition: width var(--durations-medium) var(--easing-fabric-ease-out);
}
.btn--tertiary:hover::after { width: 100%; }
.btn--outline { background-color: transparent; color: var(--colors-deja-vu-blue); border: 1px solid var(--colors-deja-vu-blue); }
.btn--outline:hover { background-color: rgba(46, 82, 131, 0.06); }
.btn[disabled], .btn[aria-disabled="true"] { opacity: 0.5; cursor: not-allowed; pointer-events: none; }
.btn__icon--left { margin-right: var(--spacing-2); }
.btn__icon--right { margin-left: var(--spacing-2); }
.ripple {
  position: absolute;
  border-radius: 50%;
  transform: scale(0);
  background-color: rgba(255, 255, 255, 0.3);
  animation: ripple var(--durations-slow) var(--easing-fabric-ease-out);
}
@keyframes ripple { to { transform: scale(4); opacity: 0; } }

.site-header {
  position: fixed;
  top: 0;
  left: 0;
  right: 0;
  z-index: 100;
  padding: var(--spacing-6) 0;
  transition: all var(--durations-medium) var(--easing-fabric-ease-out);
}
.site-header--scrolled {
  background-color: var(--colors-white);
  box-shadow: var(--shadows-sm);
  padding: var(--spacing-4) 0;
}
.site-header__inner { display: flex; align-items: center; justify-content: space-between; }
.site-header__logo {
  font-family: var(--font-heading);
  font-size: var(--font-sizes-2xl);
  font-weight: var(--font-weights-bold);
  letter-spacing: var(--letter-spacing-wider);
  color: var(--colors-deja-vu-blue);
}
.site-nav { display: none; gap: var(--spacing-8); }
.site-nav__link {
  font-family: var(--font-ui);
  font-size: var(--font-sizes-sm);
  font-weight: var(--font-weights-medium);
  letter-spacing: var(--letter-spacing-wide);
  text-transform: uppercase;
  color: var(--colors-dark-gray);
}
.site-nav__link:hover, .site-nav__link--active { color: var(--colors-deja-vu-blue); }
.menu-toggle { display: flex; flex-direction: column; gap: var(--spacing-1); background: none; border: none; cursor: pointer; padding: var(--spacing-2); }
.menu-toggle__line { width: 24px; height: 2px; background-color: var(--colors-deja-vu-blue); transition: all var(--durations-fast) var(--easing-ease-out); }
.mobile-menu {
  position: fixed;
  inset: 0;
  background-color: var(--colors-white-dove);
  display: flex;
  flex-direction: column;
  align-items: center;
  justify-content: center;
  gap: var(--spacing-8);
  z-index: 99;
}
.mobile-menu[hidden] { display: none; }
.mobile-menu__link { font-family: var(--font-heading); font-size: var(--font-sizes-2xl); color: var(--colors-deja-vu-blue); }
.mobile-menu__link--active { color: var(--colors-sage-green); }

.hero {
  min-height: 100vh;
  display: flex;
  align-items: center;
  background-color: var(--colors-white-dove);
  position: relative;
}
.hero__title { font-size: var(--font-sizes-5xl); font-weight: var(--font-weights-bold); margin-bottom: var(--spacing-6); }
.hero__subtitle { font-size: var(--font-sizes-lg); color: var(--colors-medium-gray); max-width: 36rem; margin-bottom: var(--spacing-10); }
.hero__actions { display: flex; flex-wrap: wrap; gap: var(--spacing-4); }
.hero__scroll {
  position: absolute;
  bottom: var(--spacing-10);
  left: 50%;
  transform: translateX(-50%);
  font-family: var(--font-ui);
  font-size: var(--font-sizes-xs);
  letter-spacing: var(--letter-spacing-widest);
  text-transform: uppercase;
  color: var(--colors-medium-gray);
}

.product-grid { display: grid; grid-template-columns: 1fr; gap: var(--spacing-8); }
.product-card { background-color: var(--colors-white); border-radius: var(--radii-lg); overflow: hidden; box-shadow: var(--shadows-sm); transition: box-shadow var(--durations-medium) var(--easing-fabric-ease-out); }
.product-card:hover { box-shadow: var(--shadows-lg); }
.product-card__image { position: relative; aspect-ratio: 3 / 4; background-color: var(--colors-light-gray); }
.product-card__image img { width: 100%; height: 100%; object-fit: cover; }
.product-card__tag {
  position: absolute;
  top: var(--spacing-4);
  left: var(--spacing-4);
  padding: var(--spacing-1) var(--spacing-3);
  background-color: var(--colors-olive-green);
  color: var(--colors-white);
  font-family: var(--font-ui);
  font-size: var(--font-sizes-xs);
  letter-spacing: var(--letter-spacing-wider);
  text-transform: uppercase;
  border-radius: var(--radii-sm);
}
.product-card__body { padding: var(--spacing-6); }
.product-card__title { font-size: var(--font-sizes-lg); margin-bottom: var(--spacing-2); }
.product-card__description { color: var(--colors-medium-gray); font-size: var(--font-sizes-sm); margin-bottom: var(--spacing-4); }
.product-card__price { font-family: var(--font-ui); font-weight: var(--font-weights-semibold); color: var(--colors-deja-vu-blue); }

.catalog { display: flex; flex-direction: column; }
.catalog__controls { display: flex; flex-wrap: wrap; justify-content: space-between; gap: var(--spacing-4); margin-bottom: var(--spacing-10); }
.catalog__filters { display: flex; flex-wrap: wrap; gap: var(--spacing-2); }
.catalog__sort select { font-family: var(--font-ui); padding: var(--spacing-2) var(--spacing-4); border: 1px solid var(--colors-light-gray); border-radius: var(--radii-md); background-color: var(--colors-white); }
.pagination { display: flex; justify-content: center; align-items: center; gap: var(--spacing-4); margin-top: var(--spacing-12); font-family: var(--font-ui); }
.pagination__status { color: var(--colors-medium-gray); font-size: var(--font-sizes-sm); }

.product-detail { display: grid; grid-template-columns: 1fr; gap: var(--spacing-12); }
.product-detail__price { font-size: var(--font-sizes-xl); color: var(--colors-deja-vu-blue); margin: var(--spacing-4) 0; }
.product-detail__description { color: var(--colors-dark-gray); line-height: var(--line-heights-relaxed); margin-bottom: var(--spacing-8); }

.prose { max-width: 44rem; margin: 0 auto; line-height: var(--line-heights-relaxed); }
.prose p { margin-bottom: var(--spacing-4); }
.prose h2 { font-size: var(--font-sizes-2xl); margin: var(--spacing-10) 0 var(--spacing-4); }
.values { display: grid; grid-template-columns: 1fr; gap: var(--spacing-8); margin-top: var(--spacing-12); }
.values__item { background-color: var(--colors-white); padding: var(--spacing-8); border-radius: var(--radii-lg); }
.values__title { font-size: var(--font-sizes-xl); margin-bottom: var(--spacing-3); }

.contact { display: grid; grid-template-columns: 1fr; gap: var(--spacing-12); }
.contact-info { align-self: start; padding: var(--spacing-8); background-color: var(--colors-white); border-radius: var(--radii-lg); }
.contact-info__item { margin-bottom: var(--spacing-6); }
.contact-info__label { font-family: var(--font-ui); font-size: var(--font-sizes-xs); letter-spacing: var(--letter-spacing-widest); text-transform: uppercase; color: var(--colors-sage-green); }
.form { display: flex; flex-direction: column; gap: var(--spacing-5); }
.form__field { display: flex; flex-direction: column; gap: var(--spacing-2); }
.form__label { font-family: var(--font-ui); font-size: var(--font-sizes-sm); font-weight: var(--font-weights-medium); }
.form__input, .form__textarea {
  font-family: var(--font-body);
  font-size: var(--font-sizes-base);
  padding: var(--spacing-3) var(--spacing-4);
  border: 1px solid var(--colors-light-gray);
  border-radius: var(--radii-md);
  background-color: var(--colors-white);
  transition: border-color var(--durations-fast) var(--easing-ease-out);
}
.form__input:focus, .form__textarea:focus { outline: none; border-color: var(--colors-deja-vu-blue); }
.form__textarea { min-height: 10rem; resize: vertical; }
.form__error { color: #B00020; font-size: var(--font-sizes-sm); }
.flash { padding: var(--spacing-4) var(--spacing-6); border-radius: var(--radii-md); margin-bottom: var(--spacing-6); font-family: var(--font-ui); }
.flash--success { background-color: var(--colors-sage-green); color: var(--colors-white); }
.flash--error { background-color: var(--colors-white); color: var(--colors-dark-gray); border: 1px solid var(--colors-olive-green); }

.site-footer { background-color: var(--colors-deja-vu-blue); color: var(--colors-white-dove); padding: var(--spacing-16) 0 var(--spacing-8); margin-top: var(--spacing-20); }
.site-footer__grid { display: grid; grid-template-columns: 1fr; gap: var(--spacing-10); }
.site-footer__brand { font-family: var(--font-heading); font-size: var(--font-sizes-2xl); font-weight: var(--font-weights-bold); color: var(--colors-white); margin-bottom: var(--spacing-4); }
.site-footer__heading { font-family: var(--font-ui); font-size: var(--font-sizes-sm); letter-spacing: var(--letter-spacing-widest); text-transform: uppercase; color: var(--colors-white); margin-bottom: var(--spacing-4); }
.site-footer__links { list-style: none; display: flex; flex-direction: column; gap: var(--spacing-2); }
.site-footer__link:hover { color: var(--colors-sage-green); }
.site-footer__social { display: flex; gap: var(--spacing-4); margin-top: var(--spacing-4); }
.site-footer__bottom { display: flex; flex-wrap: wrap; justify-content: space-between; gap: var(--spacing-4); border-top: 1px solid rgba(239, 238, 229, 0.2); margin-top: var(--spacing-12); padding-top: var(--spacing-6); font-size: var(--font-sizes-sm); }
.newsletter { display: flex; gap: var(--spacing-2); margin-top: var(--spacing-4); }
.newsletter__input { flex: 1; padding: var(--spacing-3) var(--spacing-4); border: none; border-radius: var(--radii-md); font-family: var(--font-body); }
.not-found { text-align: center; padding: var(--spacing-32) 0; }
.not-found__code { font-size: var(--font-sizes-6xl); color: var(--colors-sage-green); }
`

const desktopRules = `
.site-nav { display: flex; }
.menu-toggle { display: none; }
.product-grid { grid-template-columns: repeat(2, 1fr); }
.values { grid-template-columns: repeat(3, 1fr); }
.contact { grid-template-columns: 1fr 2fr; }
.product-detail { grid-template-columns: 1fr 1fr; }
.site-footer__grid { grid-template-columns: 2fr 1fr 1fr 2fr; }
`

const wideRules = `
.product-grid { grid-template-columns: repeat(3, 1fr); }
.hero__title { font-size: var(--font-sizes-6xl); }
`
