// Package chunker groups sentences into fixed-size windows for sub-section
// extraction.
package chunker

import "strings"

// Config controls windowing behavior.
type Config struct {
	WindowSize    int // Sentences per window.
	MaxPerSection int // Windows kept per section after scoring.
}

// DefaultConfig returns the standard window settings.
func DefaultConfig() Config {
	return Config{
		WindowSize:    3,
		MaxPerSection: 3,
	}
}

// normalize fills zero values with defaults.
func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.WindowSize <= 0 {
		c.WindowSize = d.WindowSize
	}
	if c.MaxPerSection <= 0 {
		c.MaxPerSection = d.MaxPerSection
	}
	return c
}

// Windows splits sentences into consecutive groups of cfg.WindowSize. A
// trailing group with the leftover sentences is kept. Input shorter than one
// full window yields nil.
func Windows(sentences []string, cfg Config) [][]string {
	cfg = cfg.normalize()
	if len(sentences) < cfg.WindowSize {
		return nil
	}

	var out [][]string
	for start := 0; start < len(sentences); start += cfg.WindowSize {
		end := start + cfg.WindowSize
		if end > len(sentences) {
			end = len(sentences)
		}
		out = append(out, sentences[start:end])
	}
	return out
}

// Join renders a window as a single space-separated passage.
func Join(window []string) string {
	return strings.Join(window, " ")
}

// Limit returns at most cfg.MaxPerSection leading items.
func Limit[T any](items []T, cfg Config) []T {
	cfg = cfg.normalize()
	if len(items) > cfg.MaxPerSection {
		return items[:cfg.MaxPerSection]
	}
	return items
}
