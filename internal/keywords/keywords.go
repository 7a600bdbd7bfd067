// Package keywords derives persona and job keyword sets from free text using
// fixed rule tables plus stemmed content words.
package keywords

import (
	"strings"

	"github.com/dgallion1/docrank/internal/nlp"
)

// Extractor turns persona and job descriptions into keyword sets.
type Extractor struct {
	tk *nlp.Toolkit
}

// NewExtractor returns an Extractor backed by tk.
func NewExtractor(tk *nlp.Toolkit) *Extractor {
	return &Extractor{tk: tk}
}

// Persona returns role terms, the first matching domain's terms and the
// stemmed content words of the persona text.
func (e *Extractor) Persona(text string) Set {
	lowered := strings.ToLower(text)

	var terms []string
	for _, r := range roleRules {
		if r.matches(lowered) {
			terms = append(terms, r.terms...)
		}
	}
	for _, r := range domainRules {
		if r.matches(lowered) {
			terms = append(terms, r.terms...)
			break
		}
	}
	terms = append(terms, e.tk.ContentStems(lowered)...)

	return NewSet(terms...)
}

// Job returns the terms of the first matching job rule, or the stemmed
// content words of the job text when no rule matches.
func (e *Extractor) Job(text string) Set {
	lowered := strings.ToLower(text)
	for _, r := range jobRules {
		if r.matches(lowered) {
			return NewSet(r.terms...)
		}
	}
	return NewSet(e.tk.ContentStems(lowered)...)
}
