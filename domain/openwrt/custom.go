package openwrt

import (
	"encoding/json"
	"fmt"
	"sort"

	helpers "github.com/honeybbq/netjsonuci/domain/utils"
	"github.com/honeybbq/netjsonuci/pkg/ast/uci"
	"github.com/honeybbq/netjsonuci/pkg/netjsonconfig"
	"github.com/honeybbq/netjsonuci/pkg/nxerrors"
)

// customRenderer turns every undeclared top-level key into a UCI package.
// Each block needs config_name (section type); config_value is the
// optional section name. Malformed blocks are skipped with a diagnostic.
func customRenderer(ignore map[string]struct{}) Renderer {
	return Renderer{
		Package: PackageDefault,
		Render: func(doc map[string]any) (Output, error) {
			out := Output{Renderer: PackageDefault}
			keys := make([]string, 0, len(doc))
			for key := range doc {
				if _, skip := ignore[key]; !skip {
					keys = append(keys, key)
				}
			}
			sort.Strings(keys)

			for _, key := range keys {
				blocks, ok := doc[key].([]any)
				if !ok {
					out.Diagnostics = append(out.Diagnostics, malformed(key, -1, "value is not a list of blocks", doc[key]))
					continue
				}
				pkg := &uci.Package{Name: key}
				for i, item := range blocks {
					block, ok := item.(map[string]any)
					if !ok {
						out.Diagnostics = append(out.Diagnostics, malformed(key, i, "block is not an object", item))
						continue
					}
					configName := helpers.GetString(block, "config_name")
					if configName == "" {
						out.Diagnostics = append(out.Diagnostics, malformed(key, i, "block has no config_name", item))
						continue
					}
					name, _ := helpers.GetScalar(block, "config_value")
					fields := helpers.CopyExcept(block, "config_name", "config_value")
					pkg.Sections = append(pkg.Sections, fields.Section(configName, name))
				}
				if !pkg.Empty() {
					out.Packages = append(out.Packages, pkg)
				}
			}
			return out, nil
		},
	}
}

func malformed(pkg string, index int, msg string, block any) netjsonconfig.Diagnostic {
	data, err := json.MarshalIndent(block, "", "    ")
	if err != nil {
		data = []byte(fmt.Sprint(block))
	}
	return netjsonconfig.Diagnostic{
		Kind:    nxerrors.KindMalformedCustomBlock,
		Package: pkg,
		Index:   index,
		Message: msg,
		Block:   string(data),
	}
}
