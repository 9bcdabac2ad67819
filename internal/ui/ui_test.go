package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderScrollThreshold(t *testing.T) {
	h := NewHeaderState(nil)
	cases := []struct {
		y    int
		want bool
	}{
		{0, false},
		{49, false},
		{50, false},
		{51, true},
		{800, true},
		{10, false},
	}
	for _, tc := range cases {
		h.SetScrollOffset(tc.y)
		assert.Equal(t, tc.want, h.Scrolled, "offset %d", tc.y)
	}
}

func TestScrollFlagIndependentOfMenu(t *testing.T) {
	h := NewHeaderState(nil)
	h.SetScrollOffset(120)
	h.ToggleMobileMenu()
	assert.True(t, h.Scrolled)
	assert.True(t, h.MobileMenuOpen)
	h.SetScrollOffset(0)
	assert.True(t, h.MobileMenuOpen)
	h.Close()
}

func TestToggleMobileMenuPairsScrollLock(t *testing.T) {
	lock := &ScrollLock{}
	before := lock.Holders()

	h := NewHeaderState(lock)
	h.ToggleMobileMenu()
	require.True(t, h.MobileMenuOpen)
	assert.True(t, lock.Locked())
	assert.True(t, h.BodyLocked())

	h.ToggleMobileMenu()
	assert.False(t, h.MobileMenuOpen)
	assert.Equal(t, before, lock.Holders())
	assert.False(t, lock.Locked())
}

func TestCloseReleasesOpenMenu(t *testing.T) {
	lock := &ScrollLock{}
	h := NewHeaderState(lock)
	h.ToggleMobileMenu()
	h.Close()
	h.Close()
	assert.False(t, h.MobileMenuOpen)
	assert.Equal(t, 0, lock.Holders())
}

func TestSharedLockStaysHeldByOtherHolder(t *testing.T) {
	lock := &ScrollLock{}
	release := lock.Acquire()
	h := NewHeaderState(lock)
	h.ToggleMobileMenu()
	h.ToggleMobileMenu()
	assert.True(t, lock.Locked())
	release()
	release()
	assert.False(t, lock.Locked())
	assert.Equal(t, 0, lock.Holders())
}

func TestViewportNavigateResetsScroll(t *testing.T) {
	paths := []string{"/", "/products", "/about", "/contact"}
	v := &Viewport{}
	for _, from := range paths {
		for _, to := range paths {
			v.Navigate(from)
			v.ScrollTo(640)
			v.Navigate(to)
			assert.Equal(t, 0, v.ScrollY, "%s -> %s", from, to)
			assert.Equal(t, to, v.Path)
		}
	}
	v.ScrollTo(-5)
	assert.Equal(t, 0, v.ScrollY)
}

func TestDisabledButtonNeverCallsHandler(t *testing.T) {
	calls := 0
	b := &ButtonControl{Disabled: true, OnClick: func() { calls++ }}
	for i := 0; i < 5; i++ {
		assert.False(t, b.Activate())
	}
	assert.Equal(t, 0, calls)
	assert.False(t, b.Rippling())
}

func TestButtonRippleClearsItself(t *testing.T) {
	calls := 0
	b := &ButtonControl{OnClick: func() { calls++ }, RippleFor: 20 * time.Millisecond}
	require.True(t, b.Activate())
	assert.Equal(t, 1, calls)
	assert.True(t, b.Rippling())
	assert.Eventually(t, func() bool { return !b.Rippling() }, time.Second, 5*time.Millisecond)
}

func TestButtonStopClearsRipple(t *testing.T) {
	b := &ButtonControl{}
	b.Activate()
	b.Stop()
	assert.False(t, b.Rippling())
}

func TestDefaultRippleDuration(t *testing.T) {
	assert.Equal(t, 600*time.Millisecond, RippleDuration)
}
