package core

import "math/rand"

// Event is a discrete signal a minigame emits during a tick.
type Event int

const (
	// EventPoint rewards the player; the terminal reveals one word per point.
	EventPoint Event = iota
	// EventLifeLost costs the player one life.
	EventLifeLost
)

// String returns the wire name of the event.
func (e Event) String() string {
	switch e {
	case EventPoint:
		return "point"
	case EventLifeLost:
		return "lifeLost"
	default:
		return "unknown"
	}
}

// KeyState is the read side of Controls that minigames poll during a tick.
type KeyState interface {
	// Pressed reports whether key is currently held.
	Pressed(key string) bool
	// Consume reports a fresh press of key at most once per press cycle.
	Consume(key string) bool
}

// Input is everything an update function may read besides its own state.
type Input struct {
	Keys KeyState
	Rand *rand.Rand
}

// AnyPressed reports whether any of keys is held.
func (in Input) AnyPressed(keys ...string) bool {
	for _, k := range keys {
		if in.Keys.Pressed(k) {
			return true
		}
	}
	return false
}

// ConsumeAny consumes the first key of keys that has a pending press.
// Later keys are left untouched once one fires.
func (in Input) ConsumeAny(keys ...string) bool {
	for _, k := range keys {
		if in.Keys.Consume(k) {
			return true
		}
	}
	return false
}

// Result is the outcome of one update: the replacement state and the events
// emitted while producing it, in emission order.
type Result[S any] struct {
	State  S
	Events []Event
}

// Emit appends events to the result.
func (r *Result[S]) Emit(events ...Event) {
	r.Events = append(r.Events, events...)
}

// Count returns how many times e was emitted.
func (r Result[S]) Count(e Event) int {
	n := 0
	for _, ev := range r.Events {
		if ev == e {
			n++
		}
	}
	return n
}
