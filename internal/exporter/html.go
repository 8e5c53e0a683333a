package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/vs/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/items-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("items-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the store as an ordered HTML list. The start attribute
// carries the first index so a browser numbers items the way the list does.
func ExportHTML(store *model.Store) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html>\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<title>Items</title>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString("<h1>Items</h1>\n")

	start := model.DefaultFirstIndex
	if lo, _, ok := store.Bounds(); ok {
		start = lo
	}
	fmt.Fprintf(&b, "<ol start=\"%d\">\n", start)

	for _, it := range store.Items {
		writeItem(&b, it)
	}

	// Footer
	b.WriteString("</ol>\n")
	b.WriteString("</body>\n</html>\n")

	return b.String()
}

func writeItem(b *strings.Builder, it model.Item) {
	fmt.Fprintf(b, "    <li data-index=\"%d\" data-created=\"%d\"", it.Index, it.CreatedAt.Unix())
	if len(it.Tags) > 0 {
		fmt.Fprintf(b, " data-tags=\"%s\"", html.EscapeString(strings.Join(it.Tags, ",")))
	}
	fmt.Fprintf(b, ">%s</li>\n", html.EscapeString(it.Text))
}
