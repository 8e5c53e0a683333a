package tui

import (
	"fmt"
	"strings"

	"github.com/nikbrunner/vs/internal/model"
)

// RowFunc renders one item as the lines of its row. Lines past the item
// height are dropped and missing lines are left blank.
type RowFunc func(item model.Item) []string

// DefaultRow renders the item text, then its tags and creation date on
// the following lines when the row is tall enough.
func DefaultRow(item model.Item) []string {
	lines := []string{item.Text}
	if len(item.Tags) > 0 {
		lines = append(lines, "#"+strings.Join(item.Tags, " #"))
	}
	if !item.CreatedAt.IsZero() {
		lines = append(lines, item.CreatedAt.Format("2006-01-02 15:04"))
	}
	return lines
}

// gutter renders the index column.
func gutter(index, width int) string {
	if width < 2 {
		return ""
	}
	return fmt.Sprintf("%*d  ", width-2, index)
}
