package ui

import (
	"sync"
	"time"
)

// RippleDuration is how long an activation ripple stays visible.
const RippleDuration = 600 * time.Millisecond

// ButtonControl is the activation side of a button. A disabled control
// suppresses activation entirely: no handler call and no ripple.
type ButtonControl struct {
	Disabled bool
	OnClick  func()
	// RippleFor overrides RippleDuration when positive.
	RippleFor time.Duration

	mu     sync.Mutex
	gen    uint64
	active bool
	timer  *time.Timer
}

// Activate handles one press. It reports whether the press was accepted.
func (b *ButtonControl) Activate() bool {
	if b.Disabled {
		return false
	}
	b.startRipple()
	if b.OnClick != nil {
		b.OnClick()
	}
	return true
}

// Rippling reports whether a ripple is currently visible.
func (b *ButtonControl) Rippling() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// Stop clears any pending ripple, as on unmount.
func (b *ButtonControl) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen++
	b.active = false
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *ButtonControl) startRipple() {
	d := b.RippleFor
	if d <= 0 {
		d = RippleDuration
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.gen++
	gen := b.gen
	b.active = true
	b.timer = time.AfterFunc(d, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		// a newer press owns the ripple now
		if b.gen != gen {
			return
		}
		b.active = false
		b.timer = nil
	})
}
