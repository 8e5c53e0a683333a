package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/vs/internal/model"
	"github.com/nikbrunner/vs/internal/tui/layout"
)

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// renderView creates the complete list view.
func (a App) renderView() string {
	header := a.renderHeader()
	pane := a.styles.Pane.Render(strings.Join(a.renderBody(), "\n"))
	helpBar := a.renderHelpBar()

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, pane, helpBar),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the title and the active settings.
func (a App) renderHeader() string {
	s := a.controller.Settings()
	info := fmt.Sprintf(" items %d..%d  amount %d  tolerance %d  height %d",
		s.MinIndex, s.MaxIndex, s.Amount, s.Tolerance, s.ItemHeight)
	info, _ = layout.TruncateText(info, max(a.width-6, 0), a.layoutConfig.Text)
	return a.styles.Title.Render("vs") + a.styles.Header.Render(info)
}

// renderBody renders the visible content lines. Each content line is either
// padding standing in for an unmounted row or one line of a mounted row.
func (a App) renderBody() []string {
	s := a.controller.Settings()
	w := a.controller.Window()
	width := layout.CalculateRowWidth(a.width, a.layoutConfig.Viewport)
	gutterWidth := min(a.layoutConfig.Viewport.GutterWidth, width)
	focused, _, hasFocus := a.topItem()

	offset := a.viewport.Offset()
	lines := make([]string, 0, a.viewport.ViewHeight())
	for y := offset; y < offset+a.viewport.ViewHeight(); y++ {
		if y >= a.viewport.ContentHeight() {
			lines = append(lines, strings.Repeat(" ", width))
			continue
		}

		index, ok := w.IndexAt(y, s.ItemHeight, s.MinIndex)
		if !ok {
			lines = append(lines, a.renderPlaceholder(width, gutterWidth))
			continue
		}

		item := w.Data[index-max(w.Index, s.MinIndex)]
		line := (y - w.TopPaddingHeight) % s.ItemHeight
		lines = append(lines, a.renderRowLine(item, index, line, hasFocus && index == focused, width, gutterWidth))
	}
	return lines
}

// renderRowLine renders line n of the row for item.
func (a App) renderRowLine(item model.Item, index, n int, focused bool, width, gutterWidth int) string {
	text := ""
	if rows := a.row(item); n < len(rows) {
		text = rows[n]
	}

	g := strings.Repeat(" ", gutterWidth)
	if n == 0 {
		g = gutter(index, gutterWidth)
	}
	text = layout.FitLine(text, width-gutterWidth, a.layoutConfig.Text)

	if focused {
		return a.styles.RowFocused.Render(g + text)
	}
	if n == 0 {
		return a.styles.Gutter.Render(g) + a.styles.Row.Render(text)
	}
	return a.styles.Gutter.Render(g) + a.styles.Detail.Render(text)
}

// renderPlaceholder renders a padding line.
func (a App) renderPlaceholder(width, gutterWidth int) string {
	dot := strings.Repeat(" ", max(gutterWidth-3, 0)) + "·"
	return a.styles.Placeholder.Render(layout.FitLine(dot, width, a.layoutConfig.Text))
}

// renderHelpBar renders the message line, the scroll status and the hints.
func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: prompt, message or an empty spacer
	switch {
	case a.mode == ModeJump:
		lines = append(lines, a.styles.Prompt.Render(a.jump.Input.View()))
	case a.messageText != "":
		lines = append(lines, a.renderMessageLine())
	default:
		lines = append(lines, "")
	}

	// Line 2: scroll status
	lines = append(lines, a.styles.Status.Render(a.renderStatus()))

	// Line 3: contextual keyboard hints
	lines = append(lines, a.renderHints(a.getContextualHints()))

	return strings.Join(lines, "\n")
}

// renderStatus describes the visible rows, the offset and the mounted window.
func (a App) renderStatus() string {
	s := a.controller.Settings()
	offset := a.viewport.Offset()

	first := s.MinIndex + offset/s.ItemHeight
	last := min(s.MinIndex+(offset+a.viewport.ViewHeight()-1)/s.ItemHeight, s.MaxIndex)
	status := fmt.Sprintf("rows %d-%d of %d  offset %d/%d", first, last, s.Count(), offset, a.viewport.MaxOffset())

	w := a.controller.Window()
	if w.Empty() {
		return status + "  window empty"
	}
	lo := max(w.Index, s.MinIndex)
	return status + fmt.Sprintf("  window %d-%d", lo, lo+len(w.Data)-1)
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
		prefix = ""
	}

	return msgStyle.Render(prefix + a.messageText)
}
