// Package output shapes ranked sections into the analysis result document.
package output

import (
	"time"

	"github.com/dgallion1/docrank/internal/doctree"
)

// TimestampLayout is the local ISO-8601 form used for processing_timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Ellipsis is appended to truncated excerpts.
const Ellipsis = "..."

// Result is the serialized analysis.
type Result struct {
	Metadata           Metadata             `json:"metadata"`
	ExtractedSections  []ExtractedSection   `json:"extracted_sections"`
	SubSectionAnalysis []SubSectionAnalysis `json:"sub_section_analysis"`
}

type Metadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
}

type ExtractedSection struct {
	Document       string `json:"document"`
	PageNumber     int    `json:"page_number"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
}

type SubSectionAnalysis struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// Limits bounds the result size.
type Limits struct {
	TopSections     int // Sections emitted in extracted_sections.
	MaxExcerptChars int // Code points kept in refined_text before the ellipsis.
}

// DefaultLimits returns the standard result bounds.
func DefaultLimits() Limits {
	return Limits{TopSections: 15, MaxExcerptChars: 500}
}

// Assemble builds the result from ranked sections. Sub-sections follow their
// parent's rank order. now supplies the processing timestamp.
func Assemble(ranked []doctree.Section, inputs []string, persona, job string, lim Limits, now time.Time) *Result {
	d := DefaultLimits()
	if lim.TopSections <= 0 {
		lim.TopSections = d.TopSections
	}
	if lim.MaxExcerptChars <= 0 {
		lim.MaxExcerptChars = d.MaxExcerptChars
	}

	res := &Result{
		Metadata: Metadata{
			InputDocuments:      append([]string{}, inputs...),
			Persona:             persona,
			JobToBeDone:         job,
			ProcessingTimestamp: now.Format(TimestampLayout),
		},
		ExtractedSections:  []ExtractedSection{},
		SubSectionAnalysis: []SubSectionAnalysis{},
	}

	top := ranked
	if len(top) > lim.TopSections {
		top = top[:lim.TopSections]
	}
	for _, s := range top {
		res.ExtractedSections = append(res.ExtractedSections, ExtractedSection{
			Document:       s.Document,
			PageNumber:     s.Page,
			SectionTitle:   s.Title,
			ImportanceRank: s.ImportanceRank,
		})
		for _, sub := range s.SubSections {
			res.SubSectionAnalysis = append(res.SubSectionAnalysis, SubSectionAnalysis{
				Document:    sub.Document,
				RefinedText: Truncate(sub.RefinedText, lim.MaxExcerptChars),
				PageNumber:  sub.PageNumber,
			})
		}
	}
	return res
}

// Truncate keeps the first max code points of text and appends Ellipsis when
// anything was cut.
func Truncate(text string, max int) string {
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	return string(r[:max]) + Ellipsis
}
