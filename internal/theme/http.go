package theme

import (
	"net/http"
	"sort"
	"strings"
	"time"
)

// ClientHintHeader carries the browser's prefers-color-scheme value.
const ClientHintHeader = "Sec-CH-Prefers-Color-Scheme"

const cookieMaxAge = 365 * 24 * time.Hour

// CookieStorage keeps the preference in a cookie on the visitor's browser.
type CookieStorage struct {
	r *http.Request
	w http.ResponseWriter
}

func NewCookieStorage(w http.ResponseWriter, r *http.Request) *CookieStorage {
	return &CookieStorage{r: r, w: w}
}

func (s *CookieStorage) Get(key string) (string, bool) {
	c, err := s.r.Cookie(key)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

// Set replaces any cookie for key already queued on the response, so a
// response never carries two values for the same key.
func (s *CookieStorage) Set(key, value string) {
	h := s.w.Header()
	pending := h["Set-Cookie"]
	kept := pending[:0]
	for _, c := range pending {
		if !strings.HasPrefix(c, key+"=") {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		h.Del("Set-Cookie")
	} else {
		h["Set-Cookie"] = kept
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClientHint reads the Sec-CH-Prefers-Color-Scheme request header.
type ClientHint struct {
	Header http.Header
}

func (h ClientHint) PrefersDark() (bool, bool) {
	switch strings.Trim(strings.ToLower(h.Header.Get(ClientHintHeader)), `" `) {
	case "dark":
		return true, true
	case "light":
		return false, true
	}
	return false, false
}

// ForRequest returns an initialised controller bound to the request's cookie
// and client hint.
func ForRequest(w http.ResponseWriter, r *http.Request) *Controller {
	c := NewController(NewCookieStorage(w, r), ClientHint{Header: r.Header})
	c.Init(true)
	return c
}

// ClassSet is an in-memory ClassList rendered into the html class attribute.
type ClassSet map[string]struct{}

func (s ClassSet) Add(class string) { s[class] = struct{}{} }
func (s ClassSet) Remove(class string) { delete(s, class) }

func (s ClassSet) Has(class string) bool {
	_, ok := s[class]
	return ok
}

// String returns the classes sorted and space separated.
func (s ClassSet) String() string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return strings.Join(out, " ")
}
