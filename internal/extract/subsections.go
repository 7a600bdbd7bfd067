// Package extract pulls refined sub-section passages out of ranked sections.
package extract

import (
	"sort"

	"github.com/dgallion1/docrank/internal/chunker"
	"github.com/dgallion1/docrank/internal/doctree"
	"github.com/dgallion1/docrank/internal/keywords"
	"github.com/dgallion1/docrank/internal/nlp"
)

// Extractor finds the most keyword-dense sentence windows in a section.
type Extractor struct {
	tk  *nlp.Toolkit
	cfg chunker.Config
}

// NewExtractor returns an Extractor using tk for sentence splitting.
func NewExtractor(tk *nlp.Toolkit, cfg chunker.Config) *Extractor {
	return &Extractor{tk: tk, cfg: cfg}
}

// WindowScore is 0.4 per persona hit plus 0.6 per job hit.
func WindowScore(text string, persona, job keywords.Set) float64 {
	return 0.4*float64(persona.CountIn(text)) + 0.6*float64(job.CountIn(text))
}

// SubSections returns up to cfg.MaxPerSection windows of sec with a positive
// score, best first. Equal scores keep window order.
func (e *Extractor) SubSections(sec doctree.Section, persona, job keywords.Set) []doctree.SubSection {
	windows := chunker.Windows(e.tk.Sentences(sec.Content), e.cfg)
	if len(windows) == 0 {
		return nil
	}

	var subs []doctree.SubSection
	for _, w := range windows {
		text := chunker.Join(w)
		score := WindowScore(text, persona, job)
		if score <= 0 {
			continue
		}
		subs = append(subs, doctree.SubSection{
			Document:       sec.Document,
			RefinedText:    text,
			PageNumber:     sec.Page,
			RelevanceScore: score,
		})
	}

	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].RelevanceScore > subs[j].RelevanceScore
	})
	return chunker.Limit(subs, e.cfg)
}

// ForSections runs SubSections over the first limit sections and returns the
// results aligned with them.
func (e *Extractor) ForSections(sections []doctree.Section, limit int, persona, job keywords.Set) []doctree.Section {
	if limit > len(sections) {
		limit = len(sections)
	}
	out := make([]doctree.Section, len(sections))
	copy(out, sections)
	for i := 0; i < limit; i++ {
		out[i].SubSections = e.SubSections(out[i], persona, job)
	}
	return out
}
