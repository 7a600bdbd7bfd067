// Package segment splits extracted page text into titled sections.
package segment

import (
	"regexp"
	"strings"
)

// headingPatterns are tried in order; any match makes a line a heading.
// Patterns without a trailing $ match as prefixes.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\.\s+[A-Z]`),                // "1. Introduction"
	regexp.MustCompile(`^\d+\.\d+\s+[A-Z]`),             // "1.1 Background"
	regexp.MustCompile(`^[A-Z][A-Z\s]+$`),               // "METHODOLOGY"
	regexp.MustCompile(`^[A-Z][a-z]+(\s+[A-Z][a-z]+)*$`), // "Title Case Words"
	regexp.MustCompile(`^Chapter\s+\d+`),
	regexp.MustCompile(`^Section\s+\d+`),
}

var (
	numberPrefix  = regexp.MustCompile(`^\d+(\.\d+)*\s+`)
	chapterPrefix = regexp.MustCompile(`(?i)^Chapter\s+\d+:?\s*`)
	sectionPrefix = regexp.MustCompile(`(?i)^Section\s+\d+:?\s*`)
)

// IsHeading reports whether a line looks like a section heading.
func IsHeading(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	for _, re := range headingPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// CleanHeading strips numbering and Chapter/Section prefixes from a heading.
// When nothing is left, the raw heading is returned trimmed.
func CleanHeading(line string) string {
	raw := strings.TrimSpace(line)
	s := numberPrefix.ReplaceAllString(raw, "")
	s = chapterPrefix.ReplaceAllString(s, "")
	s = sectionPrefix.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return raw
	}
	return s
}
