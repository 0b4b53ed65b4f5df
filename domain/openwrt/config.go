package openwrt

import (
	"errors"
	"fmt"

	"github.com/honeybbq/netjsonuci/pkg/ast/uci"
	"github.com/honeybbq/netjsonuci/pkg/netjsonconfig"
	"github.com/honeybbq/netjsonuci/pkg/nxerrors"
)

// Package names of the fixed renderers, in render order.
const (
	PackageSystem   = "system"
	PackageNetwork  = "network"
	PackageWireless = "wireless"
	PackageDefault  = "default"
)

// Output is what one renderer produced.
type Output struct {
	Renderer    string
	Packages    []*uci.Package
	Diagnostics []netjsonconfig.Diagnostic
}

// Empty reports whether the renderer produced no sections at all.
func (o Output) Empty() bool {
	for _, pkg := range o.Packages {
		if !pkg.Empty() {
			return false
		}
	}
	return true
}

// Renderer converts the merged document into one or more UCI packages.
type Renderer struct {
	Package string
	Render  func(doc map[string]any) (Output, error)
}

// part renders the sections of one package subsection (e.g. routes).
type part func(doc map[string]any) ([]*uci.Section, error)

func packageRenderer(name string, parts ...part) Renderer {
	return Renderer{
		Package: name,
		Render: func(doc map[string]any) (Output, error) {
			var sections []*uci.Section
			for _, p := range parts {
				built, err := p(doc)
				if err != nil {
					return Output{}, err
				}
				sections = append(sections, built...)
			}
			out := Output{Renderer: name}
			if len(sections) > 0 {
				out.Packages = []*uci.Package{{Name: name, Sections: sections}}
			}
			return out, nil
		},
	}
}

// PackageNames returns the names of the fixed renderers.
func PackageNames() []string {
	return []string{PackageSystem, PackageNetwork, PackageWireless, PackageDefault}
}

// Renderers returns the renderer table in its fixed order:
// system, network, wireless, then the custom-package passthrough.
// declared lists the top-level keys owned by the schema; together with the
// renderer package names they are never treated as custom packages.
func Renderers(declared []string) []Renderer {
	ignore := make(map[string]struct{}, len(declared)+4)
	for _, key := range declared {
		ignore[key] = struct{}{}
	}
	for _, name := range PackageNames() {
		ignore[name] = struct{}{}
	}
	return []Renderer{
		packageRenderer(PackageSystem, renderSystem, renderNTP, renderLEDs),
		packageRenderer(PackageNetwork, renderGlobals, renderInterfaces, renderRoutes, renderIPRules, renderSwitches),
		packageRenderer(PackageWireless, renderRadios, renderWifiInterfaces),
		customRenderer(ignore),
	}
}

// Config 表示 OpenWrt 领域模型：一个已合并、已校验的 NetJSON 文档。
type Config struct {
	Doc      map[string]any
	Declared []string
}

// FromDocument 构造领域模型。
func FromDocument(doc map[string]any, declared []string) (*Config, error) {
	if doc == nil {
		return nil, nxerrors.NewTypeMismatch("", "null")
	}
	return &Config{Doc: doc, Declared: declared}, nil
}

// Outputs runs every renderer in order. The first fatal error aborts.
func (c *Config) Outputs() ([]Output, error) {
	if c == nil || c.Doc == nil {
		return nil, nxerrors.New(nxerrors.KindInternal, errors.New("config is nil"))
	}
	renderers := Renderers(c.Declared)
	outputs := make([]Output, 0, len(renderers))
	for _, r := range renderers {
		out, err := r.Render(c.Doc)
		if err != nil {
			return nil, fmt.Errorf("%s renderer: %w", r.Package, err)
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// ToAST 转换为 UCI 文档，并返回渲染过程中的诊断信息。
func (c *Config) ToAST() (*uci.Document, []netjsonconfig.Diagnostic, error) {
	outputs, err := c.Outputs()
	if err != nil {
		return nil, nil, err
	}
	doc := &uci.Document{}
	var diags []netjsonconfig.Diagnostic
	for _, out := range outputs {
		doc.Packages = append(doc.Packages, out.Packages...)
		diags = append(diags, out.Diagnostics...)
	}
	return doc, diags, nil
}
