package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoinScalars(t *testing.T) {
	tests := []struct {
		name  string
		items []any
		sep   string
		want  string
	}{
		{name: "empty", items: nil, sep: " ", want: ""},
		{name: "strings", items: []any{"8.8.8.8", "1.1.1.1"}, sep: " ", want: "8.8.8.8 1.1.1.1"},
		{name: "mixed scalars", items: []any{"eth0", float64(2), true}, sep: ",", want: "eth0,2,1"},
		{name: "skips nil and empty", items: []any{"a", nil, "", "b"}, sep: " ", want: "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, JoinScalars(tt.items, tt.sep))
		})
	}
}

func TestLogicalName(t *testing.T) {
	tests := map[string]string{
		"eth0":     "eth0",
		"eth0.1":   "eth0_1",
		"wlan-0.2": "wlan_0_2",
		"":         "",
	}
	for in, want := range tests {
		require.Equal(t, want, LogicalName(in), in)
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"WAN":         "wan",
		"USB Led":     "usb_led",
		"wlan0-1.sta": "wlan0_1_sta",
		"it's-a name": "its_a_name",
	}
	for in, want := range tests {
		require.Equal(t, want, SanitizeIdentifier(in), in)
	}
}

func TestGetNumber(t *testing.T) {
	m := map[string]any{
		"float": 6.5,
		"int":   11,
		"int64": int64(36),
		"text":  "13",
	}
	tests := []struct {
		key  string
		want float64
		ok   bool
	}{
		{key: "float", want: 6.5, ok: true},
		{key: "int", want: 11, ok: true},
		{key: "int64", want: 36, ok: true},
		{key: "text", ok: false},
		{key: "missing", ok: false},
	}
	for _, tt := range tests {
		got, ok := GetNumber(m, tt.key)
		require.Equal(t, tt.ok, ok, tt.key)
		require.Equal(t, tt.want, got, tt.key)
	}

	_, ok := GetNumber(nil, "float")
	require.False(t, ok)
}

func TestCopyExcept(t *testing.T) {
	src := map[string]any{"name": "eth0", "mtu": 1500, "type": "ethernet"}
	fields := CopyExcept(src, "name", "type")
	require.Equal(t, Fields{"mtu": 1500}, fields)
	require.Len(t, src, 3)
}
