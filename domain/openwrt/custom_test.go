package openwrt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/honeybbq/netjsonuci/pkg/nxerrors"
)

func TestCustomPackages(t *testing.T) {
	r := customRenderer(map[string]struct{}{"type": {}, "interfaces": {}, "network": {}})
	out, err := r.Render(map[string]any{
		"type":       "DeviceConfiguration",
		"interfaces": []any{},
		"network":    []any{map[string]any{"config_name": "ignored"}},
		"firewall": []any{
			map[string]any{"config_name": "zone", "config_value": "lan", "name": "lan", "network": []any{"lan"}, "input": "ACCEPT"},
			map[string]any{"config_name": "defaults", "syn_flood": true},
			map[string]any{"name": "no type"},
			"not an object",
		},
		"dropbear": []any{
			map[string]any{"config_name": "dropbear", "Port": float64(22)},
		},
		"broken": map[string]any{"config_name": "x"},
	})
	require.NoError(t, err)

	require.Len(t, out.Packages, 2)
	require.Equal(t, "dropbear", out.Packages[0].Name)
	require.Equal(t, "firewall", out.Packages[1].Name)

	firewall := out.Packages[1].Sections
	require.Len(t, firewall, 2)
	require.Equal(t, "zone", firewall[0].Type)
	require.Equal(t, "lan", firewall[0].Name)
	require.Equal(t, []string{"input", "name", "network"}, firewall[0].Keys())
	require.Equal(t, "defaults", firewall[1].Type)
	require.Equal(t, "", firewall[1].Name)
	require.Equal(t, "1", firewall[1].Value("syn_flood"))

	require.Len(t, out.Diagnostics, 3)
	require.Equal(t, "broken", out.Diagnostics[0].Package)
	require.Equal(t, -1, out.Diagnostics[0].Index)
	require.Equal(t, "firewall", out.Diagnostics[1].Package)
	require.Equal(t, 2, out.Diagnostics[1].Index)
	require.Contains(t, out.Diagnostics[1].Block, `"name": "no type"`)
	require.Equal(t, 3, out.Diagnostics[2].Index)
	for _, d := range out.Diagnostics {
		require.Equal(t, nxerrors.KindMalformedCustomBlock, d.Kind)
	}
}

func TestCustomPackageAllBlocksSkipped(t *testing.T) {
	out, err := customRenderer(nil).Render(map[string]any{
		"custom": []any{map[string]any{"foo": "bar"}},
	})
	require.NoError(t, err)
	require.Empty(t, out.Packages)
	require.Len(t, out.Diagnostics, 1)
	require.True(t, out.Empty())
}
