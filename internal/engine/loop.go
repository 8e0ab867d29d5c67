// Package engine runs a minigame variant on a fixed tick. A Loop owns the
// variant's state, feeds it the shared key controls once per tick, renders the
// result and forwards the emitted events upward.
package engine

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/papuso/internal/core"
)

// DefaultTickMs is used when a variant does not set its own interval.
const DefaultTickMs = 90

// UpdateFunc advances a state by one tick.
type UpdateFunc[S any] func(state S, in core.Input) core.Result[S]

// RenderFunc turns a state into text rows.
type RenderFunc[S any] func(state S) []string

// Variant describes one minigame to the engine.
type Variant[S any] struct {
	Initial func(rng *rand.Rand) S
	Update  UpdateFunc[S]
	Render  RenderFunc[S]
	TickMs  int
}

// Options configures a Loop.
type Options struct {
	// Keys is the shared control state. A private Controls is created when nil.
	Keys core.KeyState
	// Seed feeds the loop's rng. Zero picks a time-based seed.
	Seed int64
	// OnEvent receives every event in emission order.
	OnEvent func(core.Event)
	// OnFrame receives the rows rendered after each tick and on reset.
	OnFrame func(rows []string)
	// TickScale multiplies the variant interval. Zero means 1.
	TickScale float64
}

// Runner is the type-erased view of a Loop used by hosts.
type Runner interface {
	Step() []core.Event
	Run(ctx context.Context) error
	Stop()
	Stopped() bool
	Reset()
	Frame() []string
	Interval() time.Duration
	Ticks() uint64
	SetOnEvent(fn func(core.Event))
}

// Loop drives a single variant. Ticks never overlap; Step and Run may be
// called from any goroutine.
type Loop[S any] struct {
	tickMu sync.Mutex // serializes whole ticks
	mu     sync.Mutex // guards the fields below

	initial  func(rng *rand.Rand) S
	update   UpdateFunc[S]
	render   RenderFunc[S]
	onEvent  func(core.Event)
	onFrame  func([]string)
	keys     core.KeyState
	rng      *rand.Rand
	state    S
	frame    []string
	ticks    uint64
	interval time.Duration

	stopped  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a loop and renders the initial state right away.
func New[S any](v Variant[S], opts Options) *Loop[S] {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	keys := opts.Keys
	if keys == nil {
		keys = core.NewControls()
	}

	l := &Loop[S]{
		initial:  v.Initial,
		update:   v.Update,
		render:   v.Render,
		onEvent:  opts.OnEvent,
		onFrame:  opts.OnFrame,
		keys:     keys,
		rng:      rand.New(rand.NewSource(seed)),
		interval: interval(v.TickMs, opts.TickScale),
		done:     make(chan struct{}),
	}
	l.Reset()
	return l
}

func interval(tickMs int, scale float64) time.Duration {
	if tickMs <= 0 {
		tickMs = DefaultTickMs
	}
	if scale <= 0 {
		scale = 1
	}
	return time.Duration(float64(tickMs)*scale) * time.Millisecond
}

// Reset replaces the state with a fresh initial state and renders it without
// waiting for a tick.
func (l *Loop[S]) Reset() {
	l.mu.Lock()
	l.state = l.initial(l.rng)
	l.frame = l.render(l.state)
	frame := l.frame
	onFrame := l.onFrame
	l.mu.Unlock()

	if onFrame != nil {
		onFrame(frame)
	}
}

// Step runs exactly one tick and returns the events it emitted. It is a no-op
// once the loop is stopped.
func (l *Loop[S]) Step() []core.Event {
	l.tickMu.Lock()
	defer l.tickMu.Unlock()

	if l.stopped.Load() {
		return nil
	}

	l.mu.Lock()
	res := l.update(l.state, core.Input{Keys: l.keys, Rand: l.rng})
	l.state = res.State
	l.frame = l.render(res.State)
	l.ticks++
	frame := l.frame
	onEvent, onFrame := l.onEvent, l.onFrame
	l.mu.Unlock()

	// Delivered outside mu so handlers may read Frame or State.
	if onFrame != nil {
		onFrame(frame)
	}
	if onEvent != nil {
		for _, ev := range res.Events {
			onEvent(ev)
		}
	}
	return res.Events
}

// Run ticks at the loop interval until Stop is called or ctx is cancelled.
func (l *Loop[S]) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case <-ticker.C:
			// Stop may race with the ticker; Step re-checks.
			l.Step()
		}
	}
}

// Stop cancels all future ticks. It is safe to call from an event handler.
func (l *Loop[S]) Stop() {
	l.stopped.Store(true)
	l.stopOnce.Do(func() { close(l.done) })
}

// Stopped reports whether Stop was called.
func (l *Loop[S]) Stopped() bool {
	return l.stopped.Load()
}

// Frame returns a copy of the most recently rendered rows.
func (l *Loop[S]) Frame() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.frame))
	copy(out, l.frame)
	return out
}

// State returns the current state.
func (l *Loop[S]) State() S {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Interval returns the tick period.
func (l *Loop[S]) Interval() time.Duration {
	return l.interval
}

// Ticks returns how many ticks have been applied since creation.
func (l *Loop[S]) Ticks() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ticks
}

// SetUpdate swaps the update function; the next tick uses it.
func (l *Loop[S]) SetUpdate(fn UpdateFunc[S]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.update = fn
}

// SetRender swaps the render function; the next tick uses it.
func (l *Loop[S]) SetRender(fn RenderFunc[S]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.render = fn
}

// SetOnEvent swaps the event sink; the next tick uses it.
func (l *Loop[S]) SetOnEvent(fn func(core.Event)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onEvent = fn
}

// SetOnFrame swaps the frame sink.
func (l *Loop[S]) SetOnFrame(fn func([]string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onFrame = fn
}
