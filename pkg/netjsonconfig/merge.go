package netjsonconfig

import (
	"encoding/json"
	"fmt"

	"github.com/honeybbq/netjsonuci/pkg/nxerrors"
)

// ListMerge selects how arrays present in both documents are combined.
type ListMerge int

const (
	// ListConcat appends the overlay array after the base array.
	ListConcat ListMerge = iota
	// ListByIdentifier merges array elements sharing an identifier field
	// (see DefaultIdentifiers) and appends the rest, skipping exact duplicates.
	ListByIdentifier
)

// DefaultIdentifiers defines the field names used to match array elements
// when ListByIdentifier is selected.
var DefaultIdentifiers = []string{"name", "config_value", "id"}

// Merger performs deep merges of NetJSON documents.
// The zero value concatenates lists.
type Merger struct {
	Lists       ListMerge
	Identifiers []string
}

// Merge deep-merges overlay onto base and returns a new mapping.
//
// Merge rules:
//   - Simple values (string, number, bool): overlay wins
//   - Objects: recursively merged
//   - Arrays: concatenated (base first), or matched by identifier
//
// Neither input is modified.
func (m Merger) Merge(base, overlay map[string]any) map[string]any {
	return m.deepMerge(base, overlay)
}

// MergeAll loads every template and the document, folds the templates
// left-to-right and merges the document on top so it always wins.
func (m Merger) MergeAll(templates []any, document any) (map[string]any, error) {
	doc, err := Load(document)
	if err != nil {
		return nil, err
	}
	base := map[string]any{}
	for i, tpl := range templates {
		loaded, err := Load(tpl)
		if err != nil {
			return nil, fmt.Errorf("template[%d]: %w", i, err)
		}
		base = m.deepMerge(base, loaded)
	}
	if len(base) == 0 {
		return doc, nil
	}
	return m.deepMerge(base, doc), nil
}

// Merge deep-merges overlay onto base with list concatenation.
func Merge(base, overlay map[string]any) map[string]any {
	return Merger{}.Merge(base, overlay)
}

// MergeAll is Merger{}.MergeAll.
func MergeAll(templates []any, document any) (map[string]any, error) {
	return Merger{}.MergeAll(templates, document)
}

// MergeJSON merges JSON configurations with later configs overriding
// earlier ones and returns the merged document as JSON.
func (m Merger) MergeJSON(configs ...[]byte) ([]byte, error) {
	if len(configs) == 0 {
		return nil, nxerrors.NewTypeMismatch("", "no documents")
	}
	templates := make([]any, 0, len(configs)-1)
	for _, cfg := range configs[:len(configs)-1] {
		templates = append(templates, cfg)
	}
	merged, err := m.MergeAll(templates, configs[len(configs)-1])
	if err != nil {
		return nil, err
	}
	return json.Marshal(merged)
}

func (m Merger) identifiers() []string {
	if m.Identifiers == nil {
		return DefaultIdentifiers
	}
	return m.Identifiers
}

func (m Merger) deepMerge(base, override map[string]any) map[string]any {
	if base == nil {
		return deepCopy(override)
	}
	if override == nil {
		return deepCopy(base)
	}

	result := deepCopy(base)

	for key, overrideVal := range override {
		baseVal, exists := result[key]

		if !exists {
			result[key] = deepCopyValue(overrideVal)
			continue
		}

		switch overrideVal := overrideVal.(type) {
		case map[string]any:
			if baseMap, ok := baseVal.(map[string]any); ok {
				result[key] = m.deepMerge(baseMap, overrideVal)
			} else {
				result[key] = deepCopyValue(overrideVal)
			}

		case []any:
			if baseSlice, ok := baseVal.([]any); ok {
				result[key] = m.mergeSlices(baseSlice, overrideVal)
			} else {
				result[key] = deepCopyValue(overrideVal)
			}

		default:
			result[key] = deepCopyValue(overrideVal)
		}
	}

	return result
}

func (m Merger) mergeSlices(base, override []any) []any {
	if m.Lists == ListConcat {
		result := make([]any, 0, len(base)+len(override))
		result = append(result, deepCopySlice(base)...)
		return append(result, deepCopySlice(override)...)
	}
	if len(base) == 0 {
		return deepCopySlice(override)
	}
	if len(override) == 0 {
		return deepCopySlice(base)
	}

	identifiers := m.identifiers()

	// 建立 base 数组的索引（按标识符）
	baseIndex := make(map[any]int)
	for i, el := range base {
		if obj, ok := el.(map[string]any); ok {
			if id := extractIdentifier(obj, identifiers); id != nil {
				baseIndex[id] = i
			}
		}
	}

	result := deepCopySlice(base)

	for _, overrideEl := range override {
		if isDuplicate(result, overrideEl) {
			continue
		}

		if obj, ok := overrideEl.(map[string]any); ok {
			if id := extractIdentifier(obj, identifiers); id != nil {
				if idx, found := baseIndex[id]; found {
					if baseMap, ok := result[idx].(map[string]any); ok {
						result[idx] = m.deepMerge(baseMap, obj)
						continue
					}
				}
			}
		}

		result = append(result, deepCopyValue(overrideEl))
	}

	return result
}

// extractIdentifier 从 map 中提取标识符的值。
// 按 identifiers 的顺序查找，返回第一个找到的值。
func extractIdentifier(m map[string]any, identifiers []string) any {
	for _, key := range identifiers {
		if val, ok := m[key]; ok && val != nil && val != "" {
			switch val.(type) {
			case map[string]any, []any:
				continue
			}
			return val
		}
	}
	return nil
}

// isDuplicate checks if an element already exists in a slice (exact match).
func isDuplicate(slice []any, el any) bool {
	elJSON, err := json.Marshal(el)
	if err != nil {
		return false
	}
	for _, item := range slice {
		itemJSON, err := json.Marshal(item)
		if err != nil {
			continue
		}
		if string(elJSON) == string(itemJSON) {
			return true
		}
	}
	return false
}

func deepCopy(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = deepCopyValue(v)
	}
	return result
}

func deepCopySlice(s []any) []any {
	if s == nil {
		return nil
	}
	result := make([]any, len(s))
	for i, v := range s {
		result[i] = deepCopyValue(v)
	}
	return result
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopy(val)
	case []any:
		return deepCopySlice(val)
	default:
		return val
	}
}

// Clone returns a deep copy of a loaded document.
func Clone(doc map[string]any) map[string]any {
	return deepCopy(doc)
}
