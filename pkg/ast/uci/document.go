package uci

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Document 表示完整的 UCI 配置集合。
type Document struct {
	Packages []*Package
}

// Package 对应单个 UCI 包（如 network、wireless）。
type Package struct {
	Name     string
	Sections []*Section
}

// Option is one `option` (scalar) or `list` entry of a section.
type Option struct {
	Name   string
	Values []string
	List   bool
}

// Value returns the scalar value, or the values space-joined for lists.
func (o Option) Value() string {
	if len(o.Values) == 0 {
		return ""
	}
	if !o.List {
		return o.Values[0]
	}
	return strings.Join(o.Values, " ")
}

// Section 是最小 AST 节点。Options are always sorted by name.
// An empty Name renders as an anonymous section.
type Section struct {
	Type    string
	Name    string
	Options []Option
}

// NewSection builds an immutable section from raw values.
// nil and empty-string values are dropped, slices become lists, booleans
// become "1"/"0" and whole numbers lose their decimal part.
func NewSection(typ, name string, values map[string]any) *Section {
	section := &Section{Type: typ, Name: name}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if opt, ok := newOption(key, values[key]); ok {
			section.Options = append(section.Options, opt)
		}
	}
	return section
}

// Get returns the option with the given name.
func (s *Section) Get(name string) (Option, bool) {
	if s == nil {
		return Option{}, false
	}
	i := sort.Search(len(s.Options), func(i int) bool { return s.Options[i].Name >= name })
	if i < len(s.Options) && s.Options[i].Name == name {
		return s.Options[i], true
	}
	return Option{}, false
}

// Has reports whether the option exists.
func (s *Section) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Value returns the option value or "" when unset.
func (s *Section) Value(name string) string {
	opt, _ := s.Get(name)
	return opt.Value()
}

// Keys lists option names in order.
func (s *Section) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.Options))
	for _, opt := range s.Options {
		keys = append(keys, opt.Name)
	}
	return keys
}

// Empty reports whether the package has no sections.
func (p *Package) Empty() bool {
	return p == nil || len(p.Sections) == 0
}

func newOption(name string, raw any) (Option, bool) {
	switch v := raw.(type) {
	case nil:
		return Option{}, false
	case []string:
		return listOption(name, toAnySlice(v))
	case []any:
		return listOption(name, v)
	}
	value, ok := FormatScalar(raw)
	if !ok {
		return Option{}, false
	}
	return Option{Name: name, Values: []string{value}}, true
}

func listOption(name string, items []any) (Option, bool) {
	values := make([]string, 0, len(items))
	for _, item := range items {
		if value, ok := FormatScalar(item); ok {
			values = append(values, value)
		}
	}
	if len(values) == 0 {
		return Option{}, false
	}
	return Option{Name: name, Values: values, List: true}, true
}

func toAnySlice(items []string) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// FormatScalar renders a JSON scalar the way UCI expects it.
func FormatScalar(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case bool:
		if v {
			return "1", true
		}
		return "0", true
	case float64:
		return formatFloat(v), true
	case float32:
		return formatFloat(float64(v)), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case json.Number:
		return v.String(), true
	default:
		// nested objects have no UCI form; keep them readable
		data, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(data), true
	}
}

func formatFloat(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
