// Package theme resolves, toggles and persists the light/dark preference.
package theme

import "sync"

// Theme is the active colour scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// StorageKey is the client storage key holding "light" or "dark".
const StorageKey = "theme"

// DarkClass marks the document as dark.
const DarkClass = "dark"

// Parse accepts exactly "light" or "dark".
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	}
	return "", false
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) String() string { return string(t) }

// Storage is client-local key/value storage.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// PreferenceSignal reports the operating system colour scheme preference.
// ok is false when the signal is unavailable.
type PreferenceSignal interface {
	PrefersDark() (dark bool, ok bool)
}

// Listener is notified synchronously with every new theme value.
type Listener func(Theme)

// Controller owns the current theme. It persists every change and notifies
// subscribers; applying the value to the page is left to a subscriber (see
// Mirror).
type Controller struct {
	storage Storage
	signal  PreferenceSignal

	mu        sync.Mutex
	current   Theme
	nextID    int
	listeners map[int]Listener
}

// NewController creates a controller starting at Light. storage and signal
// may be nil.
func NewController(storage Storage, signal PreferenceSignal) *Controller {
	return &Controller{
		storage:   storage,
		signal:    signal,
		current:   Light,
		listeners: make(map[int]Listener),
	}
}

// Init resolves the initial theme: persisted value, then OS preference, then
// Light. A non-interactive surface always gets Light and nothing is read or
// persisted.
func (c *Controller) Init(interactive bool) Theme {
	t := Light
	if interactive {
		t = c.resolve()
		c.persist(t)
	}
	c.update(func(Theme) Theme { return t })
	return t
}

func (c *Controller) resolve() Theme {
	if c.storage != nil {
		if raw, ok := c.storage.Get(StorageKey); ok {
			if t, ok := Parse(raw); ok {
				return t
			}
		}
	}
	if c.signal != nil {
		if dark, ok := c.signal.PrefersDark(); ok {
			if dark {
				return Dark
			}
			return Light
		}
	}
	return Light
}

// Current returns the active theme.
func (c *Controller) Current() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Toggle flips the theme, persists it and returns the new value.
func (c *Controller) Toggle() Theme {
	return c.update(func(t Theme) Theme {
		next := t.Toggle()
		c.persist(next)
		return next
	})
}

// Subscribe registers fn and calls it immediately with the current value.
// The returned func removes the subscription.
func (c *Controller) Subscribe(fn Listener) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	current := c.current
	c.mu.Unlock()

	fn(current)
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Controller) persist(t Theme) {
	if c.storage != nil {
		c.storage.Set(StorageKey, string(t))
	}
}

// update replaces current with fn(current) in one critical section, then
// notifies listeners outside the lock.
func (c *Controller) update(fn func(Theme) Theme) Theme {
	c.mu.Lock()
	t := fn(c.current)
	c.current = t
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(t)
	}
	return t
}

// ClassList is the document's set of style classes.
type ClassList interface {
	Add(class string)
	Remove(class string)
}

// Mirror returns the listener that reflects the theme onto classes. It is the
// only place the dark marker is written.
func Mirror(classes ClassList) Listener {
	return func(t Theme) {
		if t == Dark {
			classes.Add(DarkClass)
		} else {
			classes.Remove(DarkClass)
		}
	}
}
