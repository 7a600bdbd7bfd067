package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Discover lists regular files in dir whose extension is in exts, sorted by
// name. Names in exclude are skipped.
func Discover(dir string, exts []string, exclude ...string) ([]Input, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(e)] = true
	}
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	// os.ReadDir returns entries sorted by filename.
	var inputs []Input
	for _, e := range entries {
		if e.IsDir() || skip[e.Name()] {
			continue
		}
		if !allowed[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		inputs = append(inputs, Input{
			Filename: e.Name(),
			Path:     filepath.Join(dir, e.Name()),
		})
	}
	return inputs, nil
}

// ReadTextOr returns the trimmed contents of path, or fallback when the file
// is missing or empty.
func ReadTextOr(path, fallback string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if s := strings.TrimSpace(string(data)); s != "" {
		return s, nil
	}
	return fallback, nil
}
