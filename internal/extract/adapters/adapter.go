package adapters

// Adapter turns one certificate document format into the plain text the
// field strategies scan. Certificate layouts vary by issuing software, so
// each adapter only handles the format it understands.
type Adapter interface {
	// Name returns the adapter name.
	Name() string

	// CanHandle checks if this adapter handles the given format.
	CanHandle(format string) bool

	// Text extracts the scannable plain text from the document bytes.
	Text(data []byte) (string, error)
}

// Registry manages format adapters with a generic fallback.
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

// NewRegistry creates a registry with the built-in adapters registered.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(NewHTMLAdapter())
	r.generic = NewTextAdapter()
	return r
}

// Register registers an adapter.
func (r *Registry) Register(a Adapter) {
	r.adapters = append(r.adapters, a)
}

// Find returns the adapter for the given format, falling back to the
// generic plain-text adapter.
func (r *Registry) Find(format string) Adapter {
	for _, a := range r.adapters {
		if a.CanHandle(format) {
			return a
		}
	}
	return r.generic
}
