package extract

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format identifies a recognised certificate document format.
type Format string

const (
	FormatUnknown Format = ""
	FormatHTML    Format = "html"
	FormatText    Format = "text"
)

// SniffFormat inspects the document bytes and, when given, the declared
// content type. Both must resolve to a recognised format: a mismatched or
// unrecognised file is rejected by content, never accepted on the strength
// of its extension or declared type alone.
func SniffFormat(data []byte, declaredType string) (Format, string) {
	sniffed := mimetype.Detect(data)

	var byContent Format
	switch {
	case sniffed.Is("text/html"), sniffed.Is("application/xhtml+xml"):
		byContent = FormatHTML
	case sniffed.Is("text/plain"):
		byContent = FormatText
	default:
		return FormatUnknown, sniffed.String()
	}

	if declaredType != "" {
		if declared := formatForDeclaredType(declaredType); declared == FormatUnknown {
			return FormatUnknown, sniffed.String()
		}
	}

	return byContent, sniffed.String()
}

func formatForDeclaredType(contentType string) Format {
	// Strip any parameters ("text/html; charset=utf-8").
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	switch strings.TrimSpace(strings.ToLower(contentType)) {
	case "text/html", "application/xhtml+xml":
		return FormatHTML
	case "text/plain":
		return FormatText
	default:
		return FormatUnknown
	}
}
