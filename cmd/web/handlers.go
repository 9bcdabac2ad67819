package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	g "maragu.dev/gomponents"

	"laswell.com/web/internal/components"
	"laswell.com/web/internal/contact"
	"laswell.com/web/internal/httpx"
	mw "laswell.com/web/internal/middleware"
	"laswell.com/web/internal/nav"
	"laswell.com/web/internal/pages"
	"laswell.com/web/internal/requestctx"
)

const maxBodyBytes = 64 << 10

const (
	msgContactSent   = "Thank you for your message. We will get back to you shortly."
	msgSubscribed    = "Thanks for subscribing! Watch your inbox for updates."
	msgInvalid       = "Please correct the highlighted fields."
	msgRateLimited   = "Too many submissions. Please try again in a minute."
	msgUnavailable   = "Messages cannot be delivered right now. Please try again later."
	msgInvalidEmail  = "Please enter a valid email address."
	msgInternalError = "Something went wrong. Please try again."
)

var errMalformedBody = errors.New("malformed request body")

func (a *app) newContext(r *http.Request, path string) *pages.Context {
	c := pages.NewContext(path, r.URL.Query())
	c.CSRFToken = mw.CSRFToken(r)
	c.Flash = mw.GetSession(r).PopFlash()
	return c
}

func (a *app) page(w http.ResponseWriter, r *http.Request) {
	c := a.newContext(r, r.URL.Path)
	defer c.Close()
	a.render(w, r, func(buf io.Writer) (int, error) {
		return a.site.Render(buf, c)
	})
}

func (a *app) product(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	c := a.newContext(r, r.URL.Path)
	defer c.Close()
	a.render(w, r, func(buf io.Writer) (int, error) {
		return a.site.RenderProduct(buf, c, slug)
	})
}

func (a *app) notFound(w http.ResponseWriter, r *http.Request) {
	c := a.newContext(r, r.URL.Path)
	defer c.Close()
	a.render(w, r, func(buf io.Writer) (int, error) {
		return http.StatusNotFound, a.site.RenderNotFound(buf, c)
	})
}

func (a *app) submitContact(w http.ResponseWriter, r *http.Request) {
	var form contact.Form
	if err := decodeBody(w, r, &form, func(v url.Values) {
		for _, field := range contact.Fields {
			_ = form.Set(field, v.Get(field))
		}
	}); err != nil {
		a.badRequest(w, r, err)
		return
	}

	ctx := contact.WithClientKey(r.Context(), clientKey(r))
	receipt, err := form.Submit(ctx, a.submitter)
	if err != nil {
		se, ok := contact.AsSubmissionError(err)
		if !ok {
			a.serverError(w, r, err)
			return
		}
		a.logSubmissionFailure(r, "contact", se)
		if wantsJSON(r) {
			writeSubmissionError(w, r, se)
			return
		}
		c := a.newContext(r, "/contact")
		defer c.Close()
		c.Contact = form
		c.ContactErrors = se.Fields
		c.Flash = &mw.Flash{Kind: components.FlashError, Message: submissionMessage(se)}
		if mw.IsHTMX(r.Context()) {
			a.fragment(w, r, se.Status(), a.site.ContactFragment(c))
			return
		}
		a.render(w, r, func(buf io.Writer) (int, error) {
			if _, err := a.site.Render(buf, c); err != nil {
				return http.StatusInternalServerError, err
			}
			return se.Status(), nil
		})
		return
	}

	switch {
	case wantsJSON(r):
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"status": "received", "id": receipt.ID})
	case mw.IsHTMX(r.Context()):
		c := a.newContext(r, "/contact")
		defer c.Close()
		c.Flash = &mw.Flash{Kind: components.FlashSuccess, Message: msgContactSent}
		a.fragment(w, r, http.StatusOK, a.site.ContactFragment(c))
	default:
		mw.GetSession(r).SetFlash(components.FlashSuccess, msgContactSent)
		http.Redirect(w, r, "/contact", http.StatusSeeOther)
	}
}

func (a *app) subscribe(w http.ResponseWriter, r *http.Request) {
	var signup contact.Signup
	if err := decodeBody(w, r, &signup, func(v url.Values) {
		signup.Email = v.Get("email")
	}); err != nil {
		a.badRequest(w, r, err)
		return
	}

	ctx := contact.WithClientKey(r.Context(), clientKey(r))
	receipt, err := signup.Subscribe(ctx, a.subscriber)
	if err != nil {
		se, ok := contact.AsSubmissionError(err)
		if !ok {
			a.serverError(w, r, err)
			return
		}
		a.logSubmissionFailure(r, "newsletter", se)
		msg := submissionMessage(se)
		if se.Kind == contact.KindInvalid {
			msg = msgInvalidEmail
		}
		switch {
		case wantsJSON(r):
			writeSubmissionError(w, r, se)
		case mw.IsHTMX(r.Context()):
			c := a.newContext(r, returnPath(r))
			defer c.Close()
			c.Newsletter = components.NewsletterProps{Email: signup.Email, Error: msg}
			a.fragment(w, r, se.Status(), a.site.NewsletterFragment(c))
		default:
			mw.GetSession(r).SetFlash(components.FlashError, msg)
			http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
		}
		return
	}

	switch {
	case wantsJSON(r):
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"status": "subscribed", "id": receipt.ID})
	case mw.IsHTMX(r.Context()):
		c := a.newContext(r, returnPath(r))
		defer c.Close()
		c.Newsletter = components.NewsletterProps{Message: msgSubscribed}
		a.fragment(w, r, http.StatusOK, a.site.NewsletterFragment(c))
	default:
		mw.GetSession(r).SetFlash(components.FlashSuccess, msgSubscribed)
		http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
	}
}

// headerFragment re-renders the header for the scroll offset and menu state
// in the query. The lock state is announced to the client before the
// request-local lock is released.
func (a *app) headerFragment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c := pages.NewContext(nav.LocalPath(q.Get("path")), q)
	locked := c.Header.BodyLocked()
	defer c.Close()

	trigger, err := json.Marshal(map[string]any{"scroll-lock": map[string]bool{"locked": locked}})
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	w.Header().Set("HX-Trigger", string(trigger))
	w.Header().Set("Cache-Control", "no-store")
	a.fragment(w, r, http.StatusOK, a.site.HeaderFragment(c))
}

func (a *app) productsFragment(w http.ResponseWriter, r *http.Request) {
	if !mw.IsHTMX(r.Context()) {
		target := "/products"
		if raw := r.URL.RawQuery; raw != "" {
			target += "?" + raw
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	if r.URL.RawQuery != "" {
		w.Header().Set("HX-Push-Url", "/products?"+r.URL.RawQuery)
	}
	a.fragment(w, r, http.StatusOK, a.site.ProductsFragment(r.URL.Query()))
}

// render buffers a full page so a failed render never leaves a partial
// response behind.
func (a *app) render(w http.ResponseWriter, r *http.Request, fn func(io.Writer) (int, error)) {
	var buf bytes.Buffer
	status, err := fn(&buf)
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	writeHTML(w, status, &buf)
}

func (a *app) fragment(w http.ResponseWriter, r *http.Request, status int, node g.Node) {
	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		a.serverError(w, r, err)
		return
	}
	writeHTML(w, status, &buf)
}

func writeHTML(w http.ResponseWriter, status int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (a *app) serverError(w http.ResponseWriter, r *http.Request, err error) {
	requestctx.Logger(r.Context()).Error("request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	if wantsJSON(r) || mw.IsHTMX(r.Context()) {
		httpx.WriteError(r.Context(), w, httpx.NewError("internal", msgInternalError, http.StatusInternalServerError))
		return
	}
	http.Error(w, msgInternalError, http.StatusInternalServerError)
}

func (a *app) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	requestctx.Logger(r.Context()).Debug("rejecting request body", zap.Error(err))
	if wantsJSON(r) || mw.IsHTMX(r.Context()) {
		httpx.WriteError(r.Context(), w, httpx.NewError("bad_request", err.Error(), http.StatusBadRequest))
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func (a *app) logSubmissionFailure(r *http.Request, kind string, se *contact.SubmissionError) {
	logger := requestctx.Logger(r.Context())
	fields := []zap.Field{zap.String("submission", kind), zap.Stringer("kind", se.Kind)}
	if se.Kind == contact.KindInvalid {
		logger.Debug("submission rejected", fields...)
		return
	}
	logger.Warn("submission failed", append(fields, zap.Error(se))...)
}

func writeSubmissionError(w http.ResponseWriter, r *http.Request, se *contact.SubmissionError) {
	e := httpx.NewError(se.Kind.String(), submissionMessage(se), se.Status())
	if len(se.Fields) > 0 {
		e = e.WithDetails(map[string]any{"fields": se.Fields})
	}
	httpx.WriteError(r.Context(), w, e)
}

func submissionMessage(se *contact.SubmissionError) string {
	switch se.Kind {
	case contact.KindInvalid:
		return msgInvalid
	case contact.KindRateLimited:
		return msgRateLimited
	case contact.KindUnavailable:
		return msgUnavailable
	}
	return msgInternalError
}

// decodeBody reads a JSON body into dst, or hands parsed form values to
// fromForm for urlencoded and multipart posts.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, fromForm func(url.Values)) error {
	if isJSONBody(r) {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(dst); err != nil {
			return fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		return nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	fromForm(r.PostForm)
	return nil
}

func isJSONBody(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// wantsJSON reports whether the caller expects a JSON response rather than
// HTML.
func wantsJSON(r *http.Request) bool {
	if isJSONBody(r) {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// returnPath is the same-origin path a non-htmx newsletter post returns to.
func returnPath(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != r.Host) {
		return "/"
	}
	return nav.LocalPath(u.Path)
}
