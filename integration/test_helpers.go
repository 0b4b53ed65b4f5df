package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	openwrtbackend "github.com/honeybbq/netjsonuci/backend/openwrt"
	"github.com/honeybbq/netjsonuci/pkg/netjsonconfig"
)

// readFixture 读取 testdata/openwrt 下的测试文件
func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "testdata", "openwrt", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// newFixtureBackend 加载 <name>.json 并构造 OpenWrt 后端
func newFixtureBackend(t *testing.T, name string, opts ...openwrtbackend.Option) *openwrtbackend.Backend {
	t.Helper()
	backend, err := openwrtbackend.New(readFixture(t, name+".json"), opts...)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return backend
}

// bundleToText 将 Bundle 还原为 UCI 文本：每个包前补回 package 行
func bundleToText(bundle *netjsonconfig.Bundle) string {
	var b strings.Builder
	for i, pkg := range bundle.Packages {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "package %s\n\n", pkg.Name)
		b.Write(pkg.Content)
	}
	// 保留原样，不修改末尾换行符
	return b.String()
}

// normalizeConfig 标准化配置文本用于比较
// 1. 去除首尾空白
// 2. 统一换行符
func normalizeConfig(text string) string {
	// 去除首尾空白
	text = strings.TrimSpace(text)
	// 统一换行符为 \n
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return text
}

// compareConfigs 智能比较配置内容，忽略不重要的空白差异
func compareConfigs(got, want string) bool {
	return normalizeConfig(got) == normalizeConfig(want)
}

// formatConfigDiff 格式化配置差异信息
func formatConfigDiff(got, want string) string {
	gotNorm := normalizeConfig(got)
	wantNorm := normalizeConfig(want)

	if gotNorm == wantNorm {
		return "configs match (after normalization)"
	}

	gotLines := strings.Split(gotNorm, "\n")
	wantLines := strings.Split(wantNorm, "\n")

	var b strings.Builder
	fmt.Fprintf(&b, "config mismatch (got %d lines, want %d lines)\n", len(gotLines), len(wantLines))
	fmt.Fprintf(&b, "--- got (normalized) ---\n%s\n", gotNorm)
	fmt.Fprintf(&b, "--- want (normalized) ---\n%s\n", wantNorm)

	// 逐行比较找出差异
	maxLines := len(gotLines)
	if len(wantLines) > maxLines {
		maxLines = len(wantLines)
	}

	fmt.Fprintf(&b, "--- line-by-line diff ---\n")
	for i := 0; i < maxLines; i++ {
		var gotLine, wantLine string
		if i < len(gotLines) {
			gotLine = gotLines[i]
		}
		if i < len(wantLines) {
			wantLine = wantLines[i]
		}

		if gotLine != wantLine {
			fmt.Fprintf(&b, "Line %d differs:\n", i+1)
			fmt.Fprintf(&b, "  got:  %q\n", gotLine)
			fmt.Fprintf(&b, "  want: %q\n", wantLine)
		}
	}

	return b.String()
}
