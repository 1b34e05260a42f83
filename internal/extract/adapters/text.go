package adapters

// TextAdapter handles plain-text certificate exports. It is also the
// generic fallback for anything the sniffer accepted but no specific
// adapter claims.
type TextAdapter struct{}

// NewTextAdapter creates a new plain-text adapter.
func NewTextAdapter() *TextAdapter {
	return &TextAdapter{}
}

// Name returns the adapter name.
func (a *TextAdapter) Name() string {
	return "text"
}

// CanHandle checks if this is a plain-text document.
func (a *TextAdapter) CanHandle(format string) bool {
	return format == "text"
}

// Text returns the document bytes unchanged.
func (a *TextAdapter) Text(data []byte) (string, error) {
	return string(data), nil
}
