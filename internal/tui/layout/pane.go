package layout

// CalculateBodyHeight computes the number of lines available to the list.
// Returns at least MinHeight.
func CalculateBodyHeight(terminalHeight int, cfg ViewportConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateRowWidth computes the width available for row content.
// Returns at least MinWidth.
func CalculateRowWidth(terminalWidth int, cfg ViewportConfig) int {
	width := terminalWidth - cfg.WidthReduction
	if width < cfg.MinWidth {
		return cfg.MinWidth
	}
	return width
}

// FitAmount returns how many rows of itemHeight lines fit in bodyHeight,
// at least one.
func FitAmount(bodyHeight, itemHeight int) int {
	if itemHeight <= 0 {
		return 1
	}
	return max(bodyHeight/itemHeight, 1)
}

// ClampOffset keeps offset inside [0, contentHeight-viewHeight].
func ClampOffset(offset, contentHeight, viewHeight int) int {
	maxOffset := max(contentHeight-viewHeight, 0)
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// CalculateVisibleListItems computes the start and end indices for a scrollable list.
// Returns (start, end) where items[start:end] should be displayed.
func CalculateVisibleListItems(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}

	if selectedIdx >= maxVisible {
		start = selectedIdx - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalItems {
		end = totalItems
	}

	return start, end
}
