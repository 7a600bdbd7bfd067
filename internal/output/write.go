package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Encode writes res as indented JSON without HTML escaping.
func Encode(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(res)
}

// WriteFile validates res and writes it to path, creating parent directories.
func WriteFile(path string, res *Result) error {
	if err := Validate(res); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
