package uci

import (
	"fmt"
	"strings"

	ast "github.com/honeybbq/netjsonuci/pkg/ast/uci"
	"github.com/honeybbq/netjsonuci/pkg/nxerrors"
)

// PlainTextRenderer 将 UCI AST 渲染为纯文本 DSL。
type PlainTextRenderer struct{}

func NewPlainTextRenderer() *PlainTextRenderer {
	return &PlainTextRenderer{}
}

// Serialize 实现 renderer.Serializer。
// Empty packages are skipped; packages are separated by one blank line and
// the output ends with exactly one newline (or is empty).
func (r *PlainTextRenderer) Serialize(doc *ast.Document) (string, error) {
	if doc == nil {
		return "", nxerrors.New(nxerrors.KindRender, fmt.Errorf("uci document is nil"))
	}

	var b strings.Builder
	for _, pkg := range doc.Packages {
		if pkg.Empty() || pkg.Name == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "package %s\n\n", pkg.Name)

		sections := filterSections(pkg.Sections)
		for sectionIndex, section := range sections {
			if sectionIndex > 0 {
				b.WriteString("\n")
			}
			writeSection(&b, section)
		}
	}
	return b.String(), nil
}

func writeSection(b *strings.Builder, section *ast.Section) {
	if section.Name == "" {
		fmt.Fprintf(b, "config %s\n", section.Type)
	} else {
		fmt.Fprintf(b, "config %s '%s'\n", section.Type, escape(section.Name))
	}
	for _, opt := range section.Options {
		if !opt.List {
			fmt.Fprintf(b, "\toption %s '%s'\n", opt.Name, escape(opt.Value()))
			continue
		}
		for _, value := range opt.Values {
			fmt.Fprintf(b, "\tlist %s '%s'\n", opt.Name, escape(value))
		}
	}
}

func filterSections(sections []*ast.Section) []*ast.Section {
	filtered := make([]*ast.Section, 0, len(sections))
	for _, sec := range sections {
		if sec == nil || sec.Type == "" {
			continue
		}
		filtered = append(filtered, sec)
	}
	return filtered
}

func escape(value string) string {
	return strings.ReplaceAll(value, "'", "\\'")
}
