package ui

// Viewport tracks the scroll position of one rendered page.
type Viewport struct {
	Path    string
	ScrollY int
}

// ScrollTo records an explicit scroll position. Negative offsets clamp to 0.
func (v *Viewport) ScrollTo(y int) {
	if y < 0 {
		y = 0
	}
	v.ScrollY = y
}

// Navigate moves to path and resets the scroll position to the top. It
// reports whether the path changed.
func (v *Viewport) Navigate(path string) bool {
	changed := v.Path != path
	v.Path = path
	v.ScrollY = 0
	return changed
}
