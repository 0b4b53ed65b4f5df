package netjsonconfig

import (
	"fmt"

	"github.com/honeybbq/netjsonuci/pkg/nxerrors"
)

// Diagnostic describes a recoverable problem found while rendering,
// e.g. a custom block that was skipped.
type Diagnostic struct {
	Kind    nxerrors.Kind
	Package string // top-level key the block was found under
	Index   int    // position in the list, -1 when the whole value was skipped
	Message string
	Block   string // offending block as indented JSON
}

func (d Diagnostic) String() string {
	if d.Index < 0 {
		return fmt.Sprintf("%s: %s", d.Package, d.Message)
	}
	return fmt.Sprintf("%s[%d]: %s", d.Package, d.Index, d.Message)
}

// Err converts the diagnostic into a fatal error (strict mode).
func (d Diagnostic) Err() error {
	return nxerrors.New(d.Kind, fmt.Errorf("%s\n%s", d.String(), d.Block))
}
