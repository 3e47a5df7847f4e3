package tui

import (
	"time"

	"github.com/vovakirdan/pbj-arcade/internal/core"
)

// Hold windows for terminals, which report presses and auto-repeats but
// never releases. The first press must outlive the keyboard's repeat delay.
const (
	DefaultInitialHold = 500 * time.Millisecond
	DefaultRepeatHold  = 120 * time.Millisecond
)

type heldKey struct {
	down      bool
	repeating bool
	last      time.Time
}

// HeldKeys synthesizes key-up events for the four movement directions.
// A direction is released when no repeat arrives within its hold window or
// when the opposite direction is pressed.
type HeldKeys struct {
	initial time.Duration
	repeat  time.Duration
	keys    [len(core.Directions)]heldKey
}

// NewHeldKeys creates a tracker. Non-positive windows use the defaults.
func NewHeldKeys(initial, repeat time.Duration) *HeldKeys {
	if initial <= 0 {
		initial = DefaultInitialHold
	}
	if repeat <= 0 {
		repeat = DefaultRepeatHold
	}
	return &HeldKeys{initial: initial, repeat: repeat}
}

// Press records a press or auto-repeat of d and returns the directions it
// released.
func (h *HeldKeys) Press(d core.Direction, now time.Time) []core.Direction {
	var released []core.Direction

	opp := &h.keys[d.Opposite()]
	if opp.down {
		*opp = heldKey{}
		released = append(released, d.Opposite())
	}

	k := &h.keys[d]
	k.repeating = k.down
	k.down = true
	k.last = now
	return released
}

// Expire releases every direction whose hold window has elapsed.
func (h *HeldKeys) Expire(now time.Time) []core.Direction {
	var released []core.Direction
	for _, d := range core.Directions {
		k := &h.keys[d]
		if !k.down {
			continue
		}
		window := h.initial
		if k.repeating {
			window = h.repeat
		}
		if now.Sub(k.last) > window {
			*k = heldKey{}
			released = append(released, d)
		}
	}
	return released
}

// Clear releases everything and returns what was held.
func (h *HeldKeys) Clear() []core.Direction {
	var released []core.Direction
	for _, d := range core.Directions {
		if h.keys[d].down {
			released = append(released, d)
		}
		h.keys[d] = heldKey{}
	}
	return released
}

// Held reports whether d is currently considered down.
func (h *HeldKeys) Held(d core.Direction) bool {
	return h.keys[d].down
}
