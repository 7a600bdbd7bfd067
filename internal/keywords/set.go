package keywords

import (
	"sort"
	"strings"
)

// Set is a sorted, deduplicated list of lower-cased keywords.
type Set []string

// NewSet lower-cases, deduplicates and sorts terms. Empty terms are dropped.
func NewSet(terms ...string) Set {
	seen := make(map[string]struct{}, len(terms))
	out := make(Set, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Union returns the set of terms present in either s or other.
func (s Set) Union(other Set) Set {
	all := make([]string, 0, len(s)+len(other))
	all = append(all, s...)
	all = append(all, other...)
	return NewSet(all...)
}

// Contains reports whether term is in the set.
func (s Set) Contains(term string) bool {
	i := sort.SearchStrings(s, term)
	return i < len(s) && s[i] == term
}

// CountIn returns how many keywords occur as substrings of text, ignoring case.
func (s Set) CountIn(text string) int {
	lowered := strings.ToLower(text)
	n := 0
	for _, k := range s {
		if strings.Contains(lowered, k) {
			n++
		}
	}
	return n
}

// String joins the keywords with single spaces.
func (s Set) String() string {
	return strings.Join(s, " ")
}

func containsFold(lowered, needle string) bool {
	return strings.Contains(lowered, strings.ToLower(needle))
}
