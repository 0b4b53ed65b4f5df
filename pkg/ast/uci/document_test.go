package uci

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSectionSortsAndDrops(t *testing.T) {
	section := NewSection("interface", "lan", map[string]any{
		"proto":   "static",
		"ifname":  "eth0",
		"mtu":     float64(1500),
		"auto":    true,
		"enabled": false,
		"empty":   "",
		"missing": nil,
		"dns":     []any{"8.8.8.8", "1.1.1.1"},
		"tags":    []string{"a"},
		"none":    []any{},
	})

	require.Equal(t, []string{"auto", "dns", "enabled", "ifname", "mtu", "proto", "tags"}, section.Keys())
	require.Equal(t, "1", section.Value("auto"))
	require.Equal(t, "0", section.Value("enabled"))
	require.Equal(t, "1500", section.Value("mtu"))
	require.False(t, section.Has("empty"))
	require.False(t, section.Has("missing"))
	require.False(t, section.Has("none"))

	dns, ok := section.Get("dns")
	require.True(t, ok)
	require.True(t, dns.List)
	require.Equal(t, []string{"8.8.8.8", "1.1.1.1"}, dns.Values)
	require.Equal(t, "8.8.8.8 1.1.1.1", dns.Value())
}

func TestSectionNilSafe(t *testing.T) {
	var s *Section
	require.False(t, s.Has("x"))
	require.Nil(t, s.Keys())
	require.Equal(t, "", s.Value("x"))
}

func TestPackageEmpty(t *testing.T) {
	var p *Package
	require.True(t, p.Empty())
	require.True(t, (&Package{Name: "network"}).Empty())
	require.False(t, (&Package{Name: "network", Sections: []*Section{{Type: "globals"}}}).Empty())
}

func TestFormatScalar(t *testing.T) {
	tests := []struct {
		in   any
		want string
		ok   bool
	}{
		{nil, "", false},
		{"", "", false},
		{"x", "x", true},
		{true, "1", true},
		{false, "0", true},
		{float64(6), "6", true},
		{1.5, "1.5", true},
		{int64(-3), "-3", true},
		{json.Number("42"), "42", true},
		{map[string]any{"a": float64(1)}, `{"a":1}`, true},
	}
	for _, tt := range tests {
		got, ok := FormatScalar(tt.in)
		require.Equal(t, tt.ok, ok, "%v", tt.in)
		require.Equal(t, tt.want, got, "%v", tt.in)
	}
}
