package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/honeybbq/netjsonuci/pkg/netjsonconfig"
)

// writeBundleToFiles 将 bundle 写入文件系统：每个包独立文件到 <baseDir>/etc/config/<name>
func writeBundleToFiles(baseDir, filesDir string, bundle *netjsonconfig.Bundle) error {
	if baseDir == "" {
		baseDir = "."
	}
	for _, pkg := range bundle.Packages {
		target := filepath.Join(baseDir, filepath.FromSlash(pkg.Path()))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create directories for %q: %w", target, err)
		}
		if err := os.WriteFile(target, pkg.Content, 0o644); err != nil {
			return fmt.Errorf("write package file %q: %w", target, err)
		}
	}

	// 写入附加文件
	if len(bundle.Files) > 0 {
		if err := writeBundleFiles(filesDir, bundle.Files); err != nil {
			return err
		}
	}
	return nil
}

// writeBundleFiles 写入附加文件
func writeBundleFiles(dir string, files []netjsonconfig.File) error {
	if dir == "" {
		return fmt.Errorf("additional files produced; specify --files-dir to write them")
	}
	root := filepath.Clean(dir)
	for _, file := range files {
		if file.Path == "" {
			continue
		}
		rel := strings.TrimPrefix(file.Path, "/")
		if rel == "" {
			return fmt.Errorf("invalid additional file path %q", file.Path)
		}
		target := filepath.Join(root, filepath.Clean(rel))
		if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
			return fmt.Errorf("additional file escapes files-dir: %q", file.Path)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create directories for %q: %w", target, err)
		}
		mode := file.Mode
		if mode == 0 {
			mode = 0o644
		}
		if err := os.WriteFile(target, file.Content, mode); err != nil {
			return fmt.Errorf("write additional file %q: %w", target, err)
		}
	}
	return nil
}
