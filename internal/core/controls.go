package core

import (
	"sort"
	"strings"
	"sync"
)

// Key identifiers understood by the minigames.
const (
	KeyUp    = "arrowup"
	KeyDown  = "arrowdown"
	KeyLeft  = "arrowleft"
	KeyRight = "arrowright"
	KeyW     = "w"
	KeyA     = "a"
	KeyS     = "s"
	KeyD     = "d"
	KeySpace = "space"
)

// Vocabulary lists every key id a host may trigger.
var Vocabulary = []string{KeyUp, KeyDown, KeyLeft, KeyRight, KeyW, KeyA, KeyS, KeyD, KeySpace}

var defaultPrevent = []string{KeyUp, KeyDown, KeyLeft, KeyRight, KeySpace}

// Normalize maps a raw key name from any input source to its key id.
func Normalize(key string) string {
	k := strings.ToLower(key)
	switch k {
	case " ", "spacebar":
		return KeySpace
	case "up":
		return KeyUp
	case "down":
		return KeyDown
	case "left":
		return KeyLeft
	case "right":
		return KeyRight
	}
	return k
}

// Controls folds physical key events and virtual button triggers into one held
// set and one fired-once set. It is safe for concurrent use.
type Controls struct {
	mu      sync.Mutex
	pressed map[string]struct{}
	once    map[string]struct{}
	prevent map[string]struct{}
	enabled bool
}

// ControlsOption configures Controls.
type ControlsOption func(*Controls)

// WithPrevent replaces the set of keys whose host default action is suppressed.
func WithPrevent(keys ...string) ControlsOption {
	return func(c *Controls) {
		c.prevent = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			c.prevent[Normalize(k)] = struct{}{}
		}
	}
}

// WithEnabled sets the initial enabled flag.
func WithEnabled(enabled bool) ControlsOption {
	return func(c *Controls) {
		c.enabled = enabled
	}
}

// NewControls creates enabled controls with the default prevented keys.
func NewControls(opts ...ControlsOption) *Controls {
	c := &Controls{
		pressed: make(map[string]struct{}),
		once:    make(map[string]struct{}),
		enabled: true,
	}
	WithPrevent(defaultPrevent...)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TriggerDown marks key as held. The fired-once flag is armed only on the
// down edge, so repeated downs while held do not re-arm it.
func (c *Controls) TriggerDown(key string) {
	k := Normalize(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	if _, held := c.pressed[k]; !held {
		c.once[k] = struct{}{}
	}
	c.pressed[k] = struct{}{}
}

// TriggerUp releases key and drops any unconsumed press.
func (c *Controls) TriggerUp(key string) {
	k := Normalize(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pressed, k)
	delete(c.once, k)
}

// Pressed reports whether key is currently held.
func (c *Controls) Pressed(key string) bool {
	k := Normalize(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pressed[k]
	return ok
}

// Consume returns true at most once per press cycle of key. The key stays
// held.
func (c *Controls) Consume(key string) bool {
	k := Normalize(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.once[k]; !ok {
		return false
	}
	delete(c.once, k)
	return true
}

// Held returns the held keys in vocabulary order, followed by any others.
func (c *Controls) Held() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.pressed))
	seen := make(map[string]struct{}, len(c.pressed))
	for _, k := range Vocabulary {
		if _, ok := c.pressed[k]; ok {
			out = append(out, k)
			seen[k] = struct{}{}
		}
	}
	var extra []string
	for k := range c.pressed {
		if _, ok := seen[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// Prevented reports whether the host should suppress the default action of
// key while a minigame is active.
func (c *Controls) Prevented(key string) bool {
	k := Normalize(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.prevent[k]
	return ok
}

// PreventedKeys returns the suppressed keys, sorted.
func (c *Controls) PreventedKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.prevent))
	for k := range c.prevent {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SetEnabled toggles the controls. Disabling clears both sets and further
// downs are ignored until re-enabled.
func (c *Controls) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
	if !enabled {
		clear(c.pressed)
		clear(c.once)
	}
}

// Enabled reports the enabled flag.
func (c *Controls) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Reset releases every key.
func (c *Controls) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.pressed)
	clear(c.once)
}
