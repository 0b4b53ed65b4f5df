package common

import (
	"strings"

	"github.com/honeybbq/netjsonuci/pkg/ast/uci"
)

// Fields collects the option values of one section before it is sealed
// with uci.NewSection.
type Fields map[string]any

// SetString stores a string option if non-empty.
func (f Fields) SetString(key, value string) {
	if value == "" {
		return
	}
	f[key] = value
}

// SetValue stores any non-nil value.
func (f Fields) SetValue(key string, value any) {
	if value == nil {
		return
	}
	f[key] = value
}

// SetBoolValue stores bool value (rendered "1"/"0").
func (f Fields) SetBoolValue(key string, value bool) {
	f[key] = value
}

// Merge copies every entry of values, overwriting existing keys.
func (f Fields) Merge(values map[string]any) {
	for key, value := range values {
		f[key] = value
	}
}

// Section seals the fields into an immutable section.
func (f Fields) Section(typ, name string) *uci.Section {
	return uci.NewSection(typ, name, f)
}

// CopyExcept returns a shallow copy of m without the listed keys.
func CopyExcept(m map[string]any, skip ...string) Fields {
	out := make(Fields, len(m))
	for key, value := range m {
		out[key] = value
	}
	for _, key := range skip {
		delete(out, key)
	}
	return out
}

// GetString returns m[key] when it is a string.
func GetString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// GetScalar formats m[key] (string, number or bool) as text.
func GetScalar(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	return uci.FormatScalar(m[key])
}

// GetNumber returns m[key] as float64 when it is numeric.
func GetNumber(m map[string]any, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// GetBool returns m[key] when it is a bool.
func GetBool(m map[string]any, key string) (value, ok bool) {
	if m == nil {
		return false, false
	}
	value, ok = m[key].(bool)
	return value, ok
}

// GetMap returns m[key] when it is an object.
func GetMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	out, _ := m[key].(map[string]any)
	return out
}

// GetList returns m[key] when it is an array.
func GetList(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	out, _ := m[key].([]any)
	return out
}

// GetMaps returns the object elements of the array stored at m[key].
func GetMaps(m map[string]any, key string) []map[string]any {
	items := GetList(m, key)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// JoinScalars formats every scalar item and joins them with sep.
func JoinScalars(items []any, sep string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := uci.FormatScalar(item); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

// LogicalName converts a physical name into a UCI identifier ("eth0.1" -> "eth0_1").
func LogicalName(value string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(value)
}

// SanitizeIdentifier lowercases value and strips characters UCI section names reject.
func SanitizeIdentifier(value string) string {
	if value == "" {
		return ""
	}
	clean := strings.ToLower(value)
	clean = strings.ReplaceAll(clean, " ", "_")
	clean = strings.ReplaceAll(clean, "-", "_")
	clean = strings.ReplaceAll(clean, ".", "_")
	clean = strings.ReplaceAll(clean, "'", "")
	return clean
}
