package ui

// ScrollThreshold is the vertical offset in pixels past which the header
// switches to its compact style.
const ScrollThreshold = 50

// HeaderState holds the two independent header flags. Opening the mobile
// menu holds the scroll lock it was constructed with.
type HeaderState struct {
	Scrolled       bool
	MobileMenuOpen bool

	lock    *ScrollLock
	release func()
}

// NewHeaderState returns closed, unscrolled header state bound to lock. A nil
// lock gets a private one.
func NewHeaderState(lock *ScrollLock) *HeaderState {
	if lock == nil {
		lock = &ScrollLock{}
	}
	return &HeaderState{lock: lock}
}

// SetScrollOffset recomputes Scrolled from the current vertical offset.
func (h *HeaderState) SetScrollOffset(y int) {
	h.Scrolled = y > ScrollThreshold
}

// ToggleMobileMenu flips the menu. Opening acquires the scroll lock and
// closing releases it.
func (h *HeaderState) ToggleMobileMenu() {
	if h.MobileMenuOpen {
		h.closeMenu()
		return
	}
	h.MobileMenuOpen = true
	h.release = h.lock.Acquire()
}

// CloseMobileMenu closes the menu if it is open and releases its lock.
func (h *HeaderState) CloseMobileMenu() {
	if h.MobileMenuOpen {
		h.closeMenu()
	}
}

// Close releases anything the header still holds. Safe to call repeatedly.
func (h *HeaderState) Close() {
	h.CloseMobileMenu()
}

// BodyLocked reports whether the page body should be rendered scroll locked.
func (h *HeaderState) BodyLocked() bool { return h.lock.Locked() }

func (h *HeaderState) closeMenu() {
	h.MobileMenuOpen = false
	if h.release != nil {
		h.release()
		h.release = nil
	}
}
