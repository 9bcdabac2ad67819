// Package ui models the interactive state of the page chrome: the body scroll
// lock, the viewport scroll position, the header flags and button activation.
// Components receive these values explicitly; nothing here is global.
package ui

import "sync"

// ScrollLock counts holders that need page scrolling suspended. The body is
// locked while at least one holder is outstanding.
type ScrollLock struct {
	mu      sync.Mutex
	holders int
}

// Acquire registers a holder and returns its release function. Calling the
// release function more than once has no further effect.
func (l *ScrollLock) Acquire() (release func()) {
	l.mu.Lock()
	l.holders++
	l.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			l.holders--
			l.mu.Unlock()
		})
	}
}

// Locked reports whether any holder is outstanding.
func (l *ScrollLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holders > 0
}

// Holders returns the number of outstanding holders.
func (l *ScrollLock) Holders() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holders
}
