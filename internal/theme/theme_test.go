package theme

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage map[string]string

func (m memStorage) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m memStorage) Set(key, value string) { m[key] = value }

type osPreference struct {
	dark      bool
	available bool
	calls     int
}

func (p *osPreference) PrefersDark() (bool, bool) {
	p.calls++
	return p.dark, p.available
}

func TestInit_Precedence(t *testing.T) {
	tests := []struct {
		name   string
		stored map[string]string
		pref   *osPreference
		want   Theme
	}{
		{name: "persisted wins", stored: map[string]string{StorageKey: "light"}, pref: &osPreference{dark: true, available: true}, want: Light},
		{name: "os dark", stored: map[string]string{}, pref: &osPreference{dark: true, available: true}, want: Dark},
		{name: "os light", stored: map[string]string{}, pref: &osPreference{dark: false, available: true}, want: Light},
		{name: "no signal", stored: map[string]string{}, pref: &osPreference{}, want: Light},
		{name: "garbage persisted value", stored: map[string]string{StorageKey: "purple"}, pref: &osPreference{dark: true, available: true}, want: Dark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := memStorage(tt.stored)
			c := NewController(storage, tt.pref)

			assert.Equal(t, tt.want, c.Init(true))
			assert.Equal(t, tt.want, c.Current())
			assert.Equal(t, string(tt.want), storage[StorageKey])
		})
	}
}

func TestInit_NonInteractive(t *testing.T) {
	storage := memStorage{StorageKey: "dark"}
	pref := &osPreference{dark: true, available: true}
	c := NewController(storage, pref)

	assert.Equal(t, Light, c.Init(false))
	assert.Zero(t, pref.calls)
	assert.Equal(t, "dark", storage[StorageKey], "nothing is persisted")
}

func TestToggle_IsInvolutionAndPersists(t *testing.T) {
	storage := memStorage{}
	c := NewController(storage, &osPreference{dark: true, available: true})
	start := c.Init(true)

	first := c.Toggle()
	assert.Equal(t, start.Toggle(), first)
	assert.Equal(t, string(c.Current()), storage[StorageKey])

	assert.Equal(t, start, c.Toggle())
	assert.Equal(t, string(c.Current()), storage[StorageKey])
}

func TestToggle_Concurrent(t *testing.T) {
	storage := memStorage{}
	c := NewController(storage, nil)
	c.Init(true)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Toggle()
		}()
	}
	wg.Wait()

	assert.Equal(t, Light, c.Current(), "an even number of flips lands where it started")
	assert.Equal(t, "light", storage[StorageKey])
}

func TestToggle_NilStorage(t *testing.T) {
	c := NewController(nil, nil)
	assert.Equal(t, Light, c.Init(true))
	assert.Equal(t, Dark, c.Toggle())
}

func TestMirror_OnlySubscriberWritesClass(t *testing.T) {
	classes := ClassSet{}
	c := NewController(memStorage{}, nil)
	c.Init(true)

	var seen []Theme
	unsubscribe := c.Subscribe(Mirror(classes))
	c.Subscribe(func(t Theme) { seen = append(seen, t) })

	assert.False(t, classes.Has(DarkClass))
	c.Toggle()
	assert.True(t, classes.Has(DarkClass))
	assert.Equal(t, "dark", classes.String())
	c.Toggle()
	assert.False(t, classes.Has(DarkClass))
	assert.Equal(t, []Theme{Light, Dark, Light}, seen)

	unsubscribe()
	c.Toggle()
	assert.False(t, classes.Has(DarkClass), "unsubscribed mirror no longer applies")
}

func TestForRequest(t *testing.T) {
	t.Run("client hint", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(ClientHintHeader, `"dark"`)
		w := httptest.NewRecorder()

		c := ForRequest(w, r)
		assert.Equal(t, Dark, c.Current())

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, StorageKey, cookies[0].Name)
		assert.Equal(t, "dark", cookies[0].Value)
	})

	t.Run("toggle replaces the pending cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/theme/toggle", nil)
		r.AddCookie(&http.Cookie{Name: StorageKey, Value: "light"})
		w := httptest.NewRecorder()
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})

		assert.Equal(t, Dark, ForRequest(w, r).Toggle())

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 2)
		assert.Equal(t, "session", cookies[0].Name)
		assert.Equal(t, StorageKey, cookies[1].Name)
		assert.Equal(t, "dark", cookies[1].Value)
	})

	t.Run("cookie beats hint", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(ClientHintHeader, "dark")
		r.AddCookie(&http.Cookie{Name: StorageKey, Value: "light"})

		c := ForRequest(httptest.NewRecorder(), r)
		assert.Equal(t, Light, c.Current())
	})
}

func TestParse(t *testing.T) {
	for _, s := range []string{"light", "dark"} {
		got, ok := Parse(s)
		assert.True(t, ok)
		assert.Equal(t, s, got.String())
	}
	_, ok := Parse("Dark")
	assert.False(t, ok)
}
