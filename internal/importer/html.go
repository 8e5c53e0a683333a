package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/vs/internal/model"
	"golang.org/x/net/html"
)

// ParseHTML reads list items from an HTML document. Every <li> becomes one
// item, in document order; a bare <a> outside any list item does too, so
// browser bookmark exports import as a flat list. Items are returned without
// indices; the store assigns them on merge.
func ParseHTML(r io.Reader) ([]model.Item, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var items []model.Item

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "li", "a":
				text := getTextContent(n)
				if text == "" {
					text = getAttr(n, "href")
				}
				if text == "" {
					// Skip empty entries
					return
				}

				item := model.NewItem(model.NewItemParams{
					Text: text,
					Tags: parseTags(getAttr(n, "data-tags")),
				})
				if ts := createdAt(n); !ts.IsZero() {
					item.CreatedAt = ts
				}
				items = append(items, item)
				return // Don't recurse into nested lists or links
			}
		}

		// Recurse into children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return items, nil
}

// createdAt reads data-created, falling back to the ADD_DATE attribute of
// bookmark exports.
func createdAt(n *html.Node) time.Time {
	for _, key := range []string{"data-created", "add_date"} {
		if v := getAttr(n, key); v != "" {
			if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
				return time.Unix(ts, 0)
			}
		}
	}
	return time.Time{}
}

func parseTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// getTextContent returns the text content of a node. Text nodes are joined
// by a space and runs of whitespace collapse.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
			text.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(text.String()), " ")
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
