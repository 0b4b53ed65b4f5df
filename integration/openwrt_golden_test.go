package integration

import (
	"testing"

	"github.com/honeybbq/netjsonuci/pkg/netjsonconfig"
)

func TestOpenWrtGolden(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		diagnostics int
	}{
		{name: "system_simple"},
		{name: "network"},
		{name: "wireless"},
		{name: "custom_packages", diagnostics: 1},
		{name: "files"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			backend := newFixtureBackend(t, tc.name)
			result, err := backend.Render(netjsonconfig.DefaultRenderOptions())
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			if len(result.Diagnostics) != tc.diagnostics {
				t.Fatalf("got %d diagnostics, want %d: %v", len(result.Diagnostics), tc.diagnostics, result.Diagnostics)
			}

			want := string(readFixture(t, tc.name+".uci"))
			if !compareConfigs(result.Text, want) {
				t.Fatalf("%s", formatConfigDiff(result.Text, want))
			}
		})
	}
}

func TestOpenWrtBundleMatchesRender(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"system_simple", "network", "wireless", "custom_packages", "files"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			backend := newFixtureBackend(t, name)
			result, err := backend.Render(netjsonconfig.RenderOptions{})
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			bundle, err := backend.Bundle()
			if err != nil {
				t.Fatalf("bundle failed: %v", err)
			}
			got := bundleToText(bundle)
			if got != result.Text {
				t.Fatalf("%s", formatConfigDiff(got, result.Text))
			}
		})
	}
}

func TestOpenWrtRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"network", "wireless", "custom_packages"} {
		first, err := newFixtureBackend(t, name).Render(netjsonconfig.DefaultRenderOptions())
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		second, err := newFixtureBackend(t, name).Render(netjsonconfig.DefaultRenderOptions())
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if first.Text != second.Text {
			t.Fatalf("%s: output differs between runs", name)
		}
	}
}
