package netjsonconfig

// Backend defines the forward conversion all target formats implement:
// a merged NetJSON document in, native configuration text out.
type Backend interface {
	// Name returns the backend identifier (e.g. "openwrt").
	Name() string

	// Validate checks the merged document against the backend schema.
	Validate() error

	// Render converts the merged document into native text.
	Render(opts RenderOptions) (*Result, error)

	// Bundle renders the document and splits it into per-package files.
	Bundle() (*Bundle, error)
}

// Result is the output of a successful render.
type Result struct {
	Text        string
	Diagnostics []Diagnostic
}
