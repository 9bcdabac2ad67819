package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"laswell.com/web/internal/config"
	"laswell.com/web/internal/nav"
	"laswell.com/web/internal/pages"
	"laswell.com/web/internal/testutil"
	"laswell.com/web/internal/theme"
)

// newTestRouter builds the router main serves, with env overriding the test
// defaults.
func newTestRouter(t *testing.T, env map[string]string) http.Handler {
	t.Helper()
	values := map[string]string{
		"LASWELL_ENV":              "test",
		"LASWELL_SESSION_HASH_KEY": strings.Repeat("k", 32),
		"LASWELL_BASE_URL":         "https://laswell.example",
	}
	for k, v := range env {
		values[k] = v
	}
	cfg, err := config.Load(context.Background(),
		config.WithEnvFile(""),
		config.WithEnvMap(values),
		config.WithoutSystemEnv(),
	)
	require.NoError(t, err)

	a, err := newApp(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return a.routes()
}

// browser replays the cookies the server sets, like a real client would.
type browser struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]string
}

func newBrowser(t *testing.T, h http.Handler) *browser {
	return &browser{t: t, h: h, cookies: map[string]string{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for name, value := range b.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	rec := httptest.NewRecorder()
	b.h.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c.Value
	}
	return rec
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, target, nil))
}

// csrf loads the home page and returns the token issued with it.
func (b *browser) csrf() string {
	b.t.Helper()
	rec := b.get("/")
	require.Equal(b.t, http.StatusOK, rec.Code)
	token := b.cookies["csrf_token"]
	require.NotEmpty(b.t, token, "csrf cookie missing")
	require.NotEmpty(b.t, b.cookies["LASWELL_SESSION"], "session cookie missing")
	return token
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(target, token string, body any) *http.Request {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CSRF-Token", token)
	return req
}

func validContact(token string) url.Values {
	return url.Values{
		"csrf_token": {token},
		"name":       {"Ada Lovelace"},
		"email":      {"ada@example.com"},
		"subject":    {"Sizing"},
		"message":    {"Does the blazer run large?"},
	}
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}

func TestDeclaredPagesRender(t *testing.T) {
	srv := newTestRouter(t, nil)
	for _, route := range pages.Routes {
		t.Run(route.Path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, route.Path, nil))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

			doc := testutil.ParseHTML(t, rec.Body.Bytes())
			assert.Equal(t, 1, doc.Find("header#site-header").Length())
			assert.Equal(t, 1, doc.Find("main#main").Length())
			assert.True(t, strings.HasPrefix(doc.Find(`link[rel="stylesheet"][href^="/assets/css/site.css"]`).AttrOr("href", ""), "/assets/css/site.css?v="))
		})
	}
}

func TestUndeclaredNavigationTargetsAreNotFound(t *testing.T) {
	srv := newTestRouter(t, nil)
	checked := 0
	for _, path := range nav.Paths() {
		if _, ok := pages.Lookup(path); ok {
			continue
		}
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Page not found", path)
		checked++
	}
	assert.Greater(t, checked, 0)
}

func TestProductDetailRoute(t *testing.T) {
	srv := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/lightweight-polo", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, "Lightweight Polo", doc.Find(".product-detail h1").Text())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/no-such-thing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductsFragment(t *testing.T) {
	srv := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/fragments/products?category=outerwear&sort=price-high", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/products?category=outerwear&sort=price-high", rec.Header().Get("HX-Push-Url"))

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	cards := doc.Find(".product-card")
	assert.Equal(t, 4, cards.Length())
	assert.Equal(t, "Structured Cotton Blazer", cards.First().Find(".product-card__title").Text())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fragments/products?page=2", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products?page=2", rec.Header().Get("Location"))
}

func TestHeaderFragmentAnnouncesScrollLock(t *testing.T) {
	srv := newTestRouter(t, nil)

	cases := []struct {
		query    string
		locked   bool
		scrolled bool
	}{
		{query: "path=/about&menu=open&scroll=10", locked: true, scrolled: false},
		{query: "path=/about&scroll=51", locked: false, scrolled: true},
		{query: "path=/about&scroll=49", locked: false, scrolled: false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/fragments/header?"+tc.query, nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, tc.query)

		var trigger map[string]map[string]bool
		require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &trigger))
		assert.Equal(t, tc.locked, trigger["scroll-lock"]["locked"], tc.query)

		doc := testutil.ParseHTML(t, rec.Body.Bytes())
		header := doc.Find("header#site-header")
		assert.Equal(t, tc.scrolled, header.HasClass("site-header--scrolled"), tc.query)
		_, hidden := doc.Find("#mobile-menu").Attr("hidden")
		assert.Equal(t, !tc.locked, hidden, tc.query)
	}
}

func TestHeaderFragmentRejectsForeignPath(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/fragments/header?path=//evil.example/x", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, "/", doc.Find("header#site-header").AttrOr("data-path", ""))
}

func TestNotFoundHeaderStaysOnSite(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Path = "//evil.example/x"
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, "/?menu=open", doc.Find(".menu-toggle").AttrOr("href", ""))
	doc.Find("header a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		assert.False(t, strings.HasPrefix(href, "//"), href)
	})
}

func TestOversizedFormPostRejected(t *testing.T) {
	srv := newTestRouter(t, nil)
	b := newBrowser(t, srv)
	token := b.csrf()

	form := validContact(token)
	form.Set("padding", strings.Repeat("x", 1<<20))
	rec := b.do(postForm("/contact", form))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := postJSON("/contact", token, map[string]string{
		"name": "Ada", "email": "ada@example.com", "subject": "Hi", "message": strings.Repeat("x", 1<<20),
	})
	rec = b.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactRequiresCSRF(t *testing.T) {
	srv := newTestRouter(t, nil)
	b := newBrowser(t, srv)
	b.csrf()

	rec := b.do(postForm("/contact", validContact("")))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := postForm("/contact", validContact("wrong"))
	req.Header.Set("HX-Request", "true")
	rec = b.do(req)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "csrf_invalid", decodeJSON(t, rec)["error"])
}

func TestContactFormPostRedirectsWithFlash(t *testing.T) {
	srv := newTestRouter(t, nil)
	b := newBrowser(t, srv)
	token := b.csrf()

	rec := b.do(postForm("/contact", validContact(token)))
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/contact", rec.Header().Get("Location"))

	rec = b.get("/contact")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Contains(t, doc.Find("#contact-form .flash--success").Text(), "Thank you")
	assert.Equal(t, "", doc.Find("#contact-name").AttrOr("value", ""))

	// the flash is shown once
	rec = b.get("/contact")
	doc = testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, 0, doc.Find(".flash--success").Length())
}

func TestContactHTMXSuccessResetsForm(t *testing.T) {
	srv := newTestRouter(t, nil)
	b := newBrowser(t, srv)
	token := b.csrf()

	req := postForm("/contact", validContact(token))
	req.Header.Set("HX-Request", "true")
	rec := b.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, 1, doc.Find("#contact-form .flash--success").Length())
	for _, id := range []string{"#contact-name", "#contact-email", "#contact-subject"} {
		assert.Equal(t, "", doc.Find(id).AttrOr("value", ""), id)
	}
	assert.Equal(t, "", strings.TrimSpace(doc.Find("#contact-message").Text()))
}

func TestContactJSONReceipt(t *testing.T) {
	srv := newTestRouter(t, nil)
	b := newBrowser(t, srv)
	token := b.csrf()

	rec := b.do(postJSON("/contact", token, map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"subject": "Hello",
		"message": "Lovely shirts.",
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeJSON(t, rec)
	assert.Equal(t, "received", body["status"])
	assert.True(t, strings.HasPrefix(body["id"].(string), "msg_"))
}

func TestContactInvalidEmailIs422(t *testing.T) {
	srv := newTestRouter(t, nil)
	b := newBrowser(t, srv)
	token := b.csrf()

	form := validContact(token)
	form.Set("email", "not-an-email")
	rec := b.do(postForm("/contact", form))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.NotEmpty(t, doc.Find("#contact-email-error").Text())
	assert.Equal(t, "Ada Lovelace", doc.Find("#contact-name").AttrOr("value", ""))

	rec = b.do(postJSON("/contact", token, map[string]string{"name": "Ada", "email": "nope", "subject": "x", "message": "y"}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "invalid", body["error"])
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok, "fields missing: %v", body)
	assert.Contains(t, fields, "email")
}

func TestContactMalformedJSONIs400(t *testing.T) {
	srv := newTestRouter(t, nil)
	b := newBrowser(t, srv)
	token := b.csrf()

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CSRF-Token", token)
	rec := b.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactRateLimited(t *testing.T) {
	srv := newTestRouter(t, map[string]string{"LASWELL_CONTACT_RATE_PER_MIN": "1"})
	b := newBrowser(t, srv)
	token := b.csrf()

	req := postForm("/contact", validContact(token))
	req.Header.Set("HX-Request", "true")
	rec := b.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = postForm("/contact", validContact(token))
	req.Header.Set("HX-Request", "true")
	rec = b.do(req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Contains(t, doc.Find("#contact-form .flash--error").Text(), "Too many submissions")
	assert.Equal(t, "Ada Lovelace", doc.Find("#contact-name").AttrOr("value", ""))
}

func TestContactUnboundSinkIs503(t *testing.T) {
	srv := newTestRouter(t, map[string]string{"LASWELL_CONTACT_SINK": "none"})
	b := newBrowser(t, srv)
	token := b.csrf()

	rec := b.do(postJSON("/contact", token, map[string]string{
		"name": "Ada", "email": "ada@example.com", "subject": "Hi", "message": "Hello",
	}))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unavailable", decodeJSON(t, rec)["error"])
}

func TestNewsletterSignup(t *testing.T) {
	srv := newTestRouter(t, nil)
	b := newBrowser(t, srv)
	token := b.csrf()

	req := postForm("/newsletter", url.Values{"csrf_token": {token}, "email": {"ada@example.com"}})
	req.Header.Set("HX-Request", "true")
	rec := b.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, 1, doc.Find("#newsletter .flash--success").Length())

	req = postForm("/newsletter", url.Values{"csrf_token": {token}, "email": {"bad"}})
	req.Header.Set("HX-Request", "true")
	rec = b.do(req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	doc = testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, "bad", doc.Find("#newsletter-email").AttrOr("value", ""))
	assert.NotEmpty(t, doc.Find("#newsletter .form__error").Text())

	rec = b.do(postJSON("/newsletter", token, map[string]string{"email": "grace@example.com"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "subscribed", decodeJSON(t, rec)["status"])
}

func TestNewsletterPlainPostReturnsToReferer(t *testing.T) {
	srv := newTestRouter(t, nil)
	b := newBrowser(t, srv)
	token := b.csrf()

	req := postForm("/newsletter", url.Values{"csrf_token": {token}, "email": {"ada@example.com"}})
	req.Header.Set("Referer", "http://example.com/about")
	rec := b.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/about", rec.Header().Get("Location"))

	rec = b.get("/about")
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Contains(t, doc.Find("main .flash--success").Text(), "Thanks for subscribing")

	req = postForm("/newsletter", url.Values{"csrf_token": {token}, "email": {"ada@example.com"}})
	req.Header.Set("Referer", "https://evil.example/phish")
	rec = b.do(req)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestStylesheetETag(t *testing.T) {
	srv := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), ".btn--primary")
	assert.NotContains(t, rec.Body.String(), "\n\n")
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
}

func TestStaticScriptServed(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/js/site.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "scroll-lock")
}

func TestMenuOpenWithoutJavaScript(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contact?menu=open", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.True(t, doc.Find("body").HasClass("scroll-locked"))
	assert.Equal(t, "true", doc.Find(".menu-toggle").AttrOr("aria-expanded", ""))
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCSSCommand(t *testing.T) {
	want, ok := theme.Default().Lookup("colors.dejaVuBlue")
	require.True(t, ok)

	out, err := runCLI(t, "css", "--token", "colors.dejaVuBlue")
	require.NoError(t, err)
	assert.Equal(t, "--colors-deja-vu-blue: "+want+"\n", out)

	_, err = runCLI(t, "css", "--token", "colors.nope")
	assert.ErrorContains(t, err, "unknown theme token")

	asset, err := theme.Build(theme.Default())
	require.NoError(t, err)
	out, err = runCLI(t, "css", "--minify")
	require.NoError(t, err)
	assert.Equal(t, string(asset.Body), out)
}
