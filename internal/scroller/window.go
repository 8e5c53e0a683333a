package scroller

// Window is the mounted slice of the list together with the padding that
// stands in for everything outside it.
type Window[T any] struct {
	// Index anchors the window; it may lie outside the valid range near the
	// list edges.
	Index               int
	TopPaddingHeight    int
	BottomPaddingHeight int
	Data                []T
}

// ContentHeight returns the scroll height the window produces.
func (w Window[T]) ContentHeight(itemHeight int) int {
	return w.TopPaddingHeight + len(w.Data)*itemHeight + w.BottomPaddingHeight
}

// Empty reports whether the window holds no rows yet.
func (w Window[T]) Empty() bool {
	return len(w.Data) == 0
}

// IndexAt returns the list index rendered at the given offset into the
// content, or false when the offset falls on padding.
func (w Window[T]) IndexAt(offset, itemHeight, minIndex int) (int, bool) {
	if itemHeight <= 0 || offset < w.TopPaddingHeight {
		return 0, false
	}
	row := (offset - w.TopPaddingHeight) / itemHeight
	if row >= len(w.Data) {
		return 0, false
	}
	return max(w.Index, minIndex) + row, true
}

// windowFor computes padding for data fetched at index.
func windowFor[T any](s Settings, g Geometry, index int, data []T) Window[T] {
	top := max((index-s.MinIndex)*s.ItemHeight, 0)
	bottom := max(g.TotalHeight-top-len(data)*s.ItemHeight, 0)
	return Window[T]{
		Index:               index,
		TopPaddingHeight:    top,
		BottomPaddingHeight: bottom,
		Data:                data,
	}
}

// anchorIndex maps a scroll offset onto the first index of the buffered
// window.
func anchorIndex(s Settings, g Geometry, scrollTop int) int {
	return s.MinIndex + floorDiv(scrollTop-g.ToleranceHeight, s.ItemHeight)
}
