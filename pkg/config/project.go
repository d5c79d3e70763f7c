package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// FindProjectRoot walks up from dir to find go.mod.
func FindProjectRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

// ProjectName returns the last element of the module path declared in
// dir/go.mod, without any major version suffix. It falls back to the
// directory name when dir has no readable go.mod.
func ProjectName(dir string) string {
	base := filepath.Base(dir)
	path, err := modulePath(dir)
	if err != nil {
		return base
	}
	if prefix, _, ok := module.SplitPathVersion(path); ok {
		path = prefix
	}
	parts := strings.Split(path, "/")
	if name := parts[len(parts)-1]; name != "" {
		return name
	}
	return base
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}
