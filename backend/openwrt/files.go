package openwrt

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	helpers "github.com/honeybbq/netjsonuci/domain/utils"
	"github.com/honeybbq/netjsonuci/pkg/netjsonconfig"
	"github.com/honeybbq/netjsonuci/pkg/nxerrors"
)

const (
	// DefaultFileMode is used when a file entry has no mode.
	DefaultFileMode = "644"
	// FileSectionDelimiter separates the UCI text from the additional files.
	FileSectionDelimiter = "# ------ files ------ #"
)

type auxFile struct {
	path     string
	mode     string
	contents string
}

func collectFiles(doc map[string]any) []auxFile {
	entries := helpers.GetMaps(doc, "files")
	files := make([]auxFile, 0, len(entries))
	for _, entry := range entries {
		contents, ok := entry["contents"].(string)
		if !ok {
			lines := helpers.GetList(entry, "contents")
			parts := make([]string, 0, len(lines))
			for _, line := range lines {
				s, _ := line.(string)
				parts = append(parts, s)
			}
			contents = strings.Join(parts, "\n")
		}
		mode, ok := helpers.GetScalar(entry, "mode")
		if !ok {
			mode = DefaultFileMode
		}
		files = append(files, auxFile{
			path:     helpers.GetString(entry, "path"),
			mode:     mode,
			contents: contents,
		})
	}
	return files
}

// renderFiles formats the "additional files" section appended to the UCI text.
func renderFiles(doc map[string]any) string {
	files := collectFiles(doc)
	if len(files) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n\n", FileSectionDelimiter)
	for _, f := range files {
		fmt.Fprintf(&b, "# path: %s\n# mode: %s\n\n%s\n\n", f.path, f.mode, f.contents)
	}
	// 每处三个换行缩减为两个，不重叠替换
	return strings.ReplaceAll(b.String(), "\n\n\n", "\n\n")
}

// bundleFiles converts the file entries for a Bundle.
func bundleFiles(doc map[string]any) ([]netjsonconfig.File, error) {
	files := collectFiles(doc)
	out := make([]netjsonconfig.File, 0, len(files))
	for i, f := range files {
		mode, err := strconv.ParseUint(f.mode, 8, 32)
		if err != nil {
			return nil, nxerrors.NewSchemaViolation(nxerrors.Violation{
				Path:   fmt.Sprintf("/files/%d/mode", i),
				Reason: fmt.Sprintf("invalid octal mode %q", f.mode),
			})
		}
		out = append(out, netjsonconfig.File{
			Path:    f.path,
			Content: []byte(f.contents),
			Mode:    fs.FileMode(mode),
		})
	}
	return out, nil
}
