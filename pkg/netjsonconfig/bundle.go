package netjsonconfig

import (
	"io/fs"
	"path"
	"strings"
	"time"
)

// Package represents a single configuration package.
// For UCI backends, each package corresponds to a file under /etc/config/
// (e.g., "system", "network", "wireless").
type Package struct {
	Name    string // Package name (e.g., "system", "network")
	Content []byte // Configuration content (excluding "package" declaration line for UCI)
}

// Path returns the archive path of the package ("etc/config/<name>").
func (p Package) Path() string {
	return path.Join("etc", "config", p.Name)
}

// File represents an additional file (certificates, scripts, keys, etc.)
// that should be deployed alongside the main configuration.
type File struct {
	Path    string      // Absolute file path where the file should be placed
	Content []byte      // File content (binary-safe)
	Mode    fs.FileMode // Unix file permissions (e.g., 0644, 0600)
}

// Metadata stores information about how and when the configuration was generated.
type Metadata struct {
	Format    string            // Format identifier ("uci")
	Backend   string            // Backend name that generated this bundle
	Generated time.Time         // Timestamp when the bundle was created
	Custom    map[string]string // Extensible metadata for backend-specific information
}

// Bundle represents the complete output of a configuration render operation.
type Bundle struct {
	Packages []Package // Configuration packages
	Files    []File    // Additional files to be deployed
	Metadata Metadata  // Generation metadata
}

// NewBundle creates an empty Bundle with initialized metadata.
// The Generated timestamp is set to the current time.
func NewBundle(format, backend string) *Bundle {
	return &Bundle{
		Packages: make([]Package, 0),
		Files:    make([]File, 0),
		Metadata: Metadata{
			Format:    format,
			Backend:   backend,
			Generated: time.Now(),
			Custom:    make(map[string]string),
		},
	}
}

// SplitPackages splits a concatenated UCI stream on its "package <name>"
// lines. The content of each package starts after the header line and the
// blank line following it.
func SplitPackages(text string) []Package {
	var packages []Package
	var current *Package
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		// drop the blank separator line after the header
		if len(body) > 0 && body[0] == "" {
			body = body[1:]
		}
		content := strings.TrimRight(strings.Join(body, "\n"), "\n")
		if content != "" {
			content += "\n"
		}
		current.Content = []byte(content)
		packages = append(packages, *current)
	}

	for _, line := range strings.Split(text, "\n") {
		if name, ok := strings.CutPrefix(line, "package "); ok {
			flush()
			current = &Package{Name: strings.TrimSpace(name)}
			body = body[:0]
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()
	return packages
}
