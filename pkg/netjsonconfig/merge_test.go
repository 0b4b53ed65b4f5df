package netjsonconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

var byName = Merger{Lists: ListByIdentifier}

func TestMerge_SimpleValues(t *testing.T) {
	base := map[string]any{
		"hostname": "default",
		"timezone": "UTC",
	}
	override := map[string]any{
		"hostname": "Router1",
	}

	result := Merge(base, override)

	if result["hostname"] != "Router1" {
		t.Errorf("hostname should be overridden, got %v", result["hostname"])
	}
	if result["timezone"] != "UTC" {
		t.Errorf("timezone should be preserved, got %v", result["timezone"])
	}
	if base["hostname"] != "default" {
		t.Errorf("base must not be modified")
	}
}

func TestMerge_NestedDict(t *testing.T) {
	base := map[string]any{
		"general": map[string]any{
			"hostname": "default",
			"timezone": "UTC",
		},
	}
	override := map[string]any{
		"general": map[string]any{
			"hostname": "Router1",
		},
	}

	result := Merge(base, override)

	general := result["general"].(map[string]any)
	if general["hostname"] != "Router1" {
		t.Errorf("nested hostname should be overridden")
	}
	if general["timezone"] != "UTC" {
		t.Errorf("timezone should be preserved")
	}
}

func TestMerge_ListsConcatenate(t *testing.T) {
	base := map[string]any{
		"dns_servers": []any{"8.8.8.8"},
		"interfaces":  []any{map[string]any{"name": "lan"}},
	}
	override := map[string]any{
		"dns_servers": []any{"1.1.1.1"},
		"interfaces":  []any{map[string]any{"name": "lan", "mtu": 1500}},
	}

	result := Merge(base, override)

	require.Equal(t, []any{"8.8.8.8", "1.1.1.1"}, result["dns_servers"])
	require.Len(t, result["interfaces"], 2)
}

func TestMerge_ScalarReplacesContainer(t *testing.T) {
	result := Merge(
		map[string]any{"ntp": map[string]any{"enabled": true}},
		map[string]any{"ntp": "off"},
	)
	require.Equal(t, "off", result["ntp"])
}

func TestMergeSlices_ByName(t *testing.T) {
	base := []any{
		map[string]any{"name": "radio0", "channel": 0, "country": "00"},
	}
	override := []any{
		map[string]any{"name": "radio0", "channel": 10},
	}

	result := byName.mergeSlices(base, override)

	if len(result) != 1 {
		t.Fatalf("should have 1 element, got %d", len(result))
	}

	radio := result[0].(map[string]any)
	// channel 值应该被覆盖
	if radio["channel"] != 10 {
		t.Errorf("channel should be overridden to 10, got %v (type: %T)", radio["channel"], radio["channel"])
	}
	if radio["country"] != "00" {
		t.Errorf("country should be preserved, got %v", radio["country"])
	}
}

func TestMergeSlices_DifferentNames(t *testing.T) {
	base := []any{
		map[string]any{"name": "wan", "type": "ethernet"},
	}
	override := []any{
		map[string]any{"name": "lan", "type": "bridge"},
	}

	result := byName.mergeSlices(base, override)

	if len(result) != 2 {
		t.Fatalf("should have 2 elements, got %d", len(result))
	}
}

func TestMergeSlices_SkipDuplicates(t *testing.T) {
	base := []any{
		map[string]any{"mode": "0644", "contents": "test"},
	}
	override := []any{
		map[string]any{"mode": "0644", "contents": "test"}, // 完全相同
		map[string]any{"mode": "0644", "contents": "test2"},
	}

	result := byName.mergeSlices(base, override)

	// 应该跳过重复的第一个，保留第二个
	if len(result) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(result))
	}
}

func TestMergeJSON_Complete(t *testing.T) {
	template1 := []byte(`{
		"dns_servers": ["8.8.8.8"],
		"interfaces": [
			{"name": "wan", "type": "ethernet", "mtu": 1500}
		]
	}`)

	template2 := []byte(`{
		"ntp": {"enabled": true, "server": ["pool.ntp.org"]},
		"interfaces": [
			{"name": "lan", "type": "bridge"}
		]
	}`)

	config := []byte(`{
		"general": {"hostname": "Router1"},
		"interfaces": [
			{"name": "wan", "mtu": 1400}
		]
	}`)

	merged, err := byName.MergeJSON(template1, template2, config)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(merged, &result))

	require.NotNil(t, result["dns_servers"])
	require.NotNil(t, result["ntp"])
	require.NotNil(t, result["general"])

	interfaces := result["interfaces"].([]any)
	require.Len(t, interfaces, 2)

	wan := interfaces[0].(map[string]any)
	require.Equal(t, "wan", wan["name"])
	require.Equal(t, "ethernet", wan["type"])
	require.Equal(t, float64(1400), wan["mtu"])
}

func TestMergeJSON_MultipleTemplates(t *testing.T) {
	global := []byte(`{"radios": [{"name": "radio0", "channel": 0, "country": "00"}]}`)
	region := []byte(`{"radios": [{"name": "radio0", "country": "US"}]}`)
	device := []byte(`{"radios": [{"name": "radio0", "channel": 10}]}`)

	merged, err := byName.MergeJSON(global, region, device)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(merged, &result))

	radios := result["radios"].([]any)
	require.Len(t, radios, 1)

	radio := radios[0].(map[string]any)
	// global 的 channel: 0 被 device 覆盖为 10
	require.Equal(t, float64(10), radio["channel"])
	// global 的 country: "00" 被 region 覆盖为 "US"
	require.Equal(t, "US", radio["country"])
}

func TestMergeJSON_NoDocuments(t *testing.T) {
	_, err := Merger{}.MergeJSON()
	require.Error(t, err)
}

func TestMergeAll_LeftBiasedThenDocument(t *testing.T) {
	t1 := map[string]any{"general": map[string]any{"hostname": "t1", "timezone": "UTC"}, "dns_servers": []any{"1.1.1.1"}}
	t2 := map[string]any{"general": map[string]any{"hostname": "t2"}, "dns_servers": []any{"8.8.8.8"}}
	doc := map[string]any{"general": map[string]any{"hostname": "doc"}, "dns_servers": []any{"9.9.9.9"}}

	merged, err := MergeAll([]any{t1, t2}, doc)
	require.NoError(t, err)

	general := merged["general"].(map[string]any)
	require.Equal(t, "doc", general["hostname"])
	require.Equal(t, "UTC", general["timezone"])
	require.Equal(t, []any{"1.1.1.1", "8.8.8.8", "9.9.9.9"}, merged["dns_servers"])

	// merge(merge(t1, t2), doc) gives the same result
	nested := Merge(Merge(t1, t2), doc)
	require.Equal(t, nested, merged)
}

func TestMergeAll_NoTemplates(t *testing.T) {
	merged, err := MergeAll(nil, `{"general": {"hostname": "r1"}}`)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"general": map[string]any{"hostname": "r1"}}, merged)
}

func TestMergeAll_BadTemplate(t *testing.T) {
	_, err := MergeAll([]any{42}, map[string]any{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "template[0]")
}

func TestExtractIdentifier(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]any
		want any
	}{
		{
			name: "has name",
			m:    map[string]any{"name": "wan", "type": "ethernet"},
			want: "wan",
		},
		{
			name: "has config_value",
			m:    map[string]any{"config_value": "test", "type": "something"},
			want: "test",
		},
		{
			name: "has id",
			m:    map[string]any{"id": "123"},
			want: "123",
		},
		{
			name: "no identifier",
			m:    map[string]any{"type": "something"},
			want: nil,
		},
		{
			name: "empty value",
			m:    map[string]any{"name": ""},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractIdentifier(tt.m, DefaultIdentifiers)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
