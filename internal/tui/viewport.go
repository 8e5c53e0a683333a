package tui

import "github.com/nikbrunner/vs/internal/tui/layout"

// Viewport tracks the visible region of the virtual list content. The offset
// is always clamped to the content, and a scroll change is recorded only when
// the clamped offset actually moves.
type Viewport struct {
	offset        int
	contentHeight int
	viewHeight    int
	pending       bool
	onChange      func(offset int)
}

// NewViewport creates a viewport showing viewHeight lines of contentHeight.
func NewViewport(viewHeight, contentHeight int) *Viewport {
	return &Viewport{viewHeight: viewHeight, contentHeight: contentHeight}
}

// SetContentHeight updates the content height and clamps the offset.
func (v *Viewport) SetContentHeight(height int) {
	v.contentHeight = height
	v.SetOffset(v.offset)
}

// ContentHeight returns the content height.
func (v *Viewport) ContentHeight() int {
	return v.contentHeight
}

// SetViewHeight updates the view height and clamps the offset.
func (v *Viewport) SetViewHeight(height int) {
	v.viewHeight = height
	v.SetOffset(v.offset)
}

// ViewHeight returns the view height.
func (v *Viewport) ViewHeight() int {
	return v.viewHeight
}

// Offset returns the current offset.
func (v *Viewport) Offset() int {
	return v.offset
}

// MaxOffset returns the largest reachable offset.
func (v *Viewport) MaxOffset() int {
	return max(v.contentHeight-v.viewHeight, 0)
}

// SetOnChange sets a callback for offset updates.
func (v *Viewport) SetOnChange(fn func(offset int)) {
	v.onChange = fn
}

// SetOffset moves to offset, clamped. It reports whether the offset changed.
func (v *Viewport) SetOffset(offset int) bool {
	next := layout.ClampOffset(offset, v.contentHeight, v.viewHeight)
	if next == v.offset {
		return false
	}
	v.offset = next
	v.pending = true
	if v.onChange != nil {
		v.onChange(v.offset)
	}
	return true
}

// ScrollBy adjusts the offset.
func (v *Viewport) ScrollBy(dy int) bool {
	return v.SetOffset(v.offset + dy)
}

// PageBy scrolls by whole view heights.
func (v *Viewport) PageBy(pages int) bool {
	return v.ScrollBy(pages * max(v.viewHeight, 1))
}

// ScrollToStart scrolls to the first line.
func (v *Viewport) ScrollToStart() bool {
	return v.SetOffset(0)
}

// ScrollToEnd scrolls to the last page.
func (v *Viewport) ScrollToEnd() bool {
	return v.SetOffset(v.MaxOffset())
}

// SetScrollTop implements scroller.ScrollView. A request the viewport had to
// clamp still notifies, so the window follows the offset actually shown.
func (v *Viewport) SetScrollTop(offset int) bool {
	if v.SetOffset(offset) {
		return true
	}
	if v.offset != offset {
		v.pending = true
		return true
	}
	return false
}

// TakeChange returns the offset of an unreported scroll change and clears it.
func (v *Viewport) TakeChange() (int, bool) {
	if !v.pending {
		return v.offset, false
	}
	v.pending = false
	return v.offset, true
}
