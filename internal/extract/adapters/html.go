package adapters

import (
	"strings"

	"golang.org/x/net/html"
)

// HTMLAdapter extracts visible text from HTML certificates, such as the
// pages served by the public EPC register.
type HTMLAdapter struct{}

// NewHTMLAdapter creates a new HTML adapter.
func NewHTMLAdapter() *HTMLAdapter {
	return &HTMLAdapter{}
}

// Name returns the adapter name.
func (a *HTMLAdapter) Name() string {
	return "html"
}

// CanHandle checks if this is an HTML document.
func (a *HTMLAdapter) CanHandle(format string) bool {
	return format == "html"
}

// Text parses the HTML and returns its visible text, skipping script,
// style and other non-content elements.
func (a *HTMLAdapter) Text(data []byte) (string, error) {
	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "svg":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return buf.String(), nil
}
