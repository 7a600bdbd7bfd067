package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docrank/internal/doctree"
)

func TestIsHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"1. Introduction", true},
		{"1.1 Background", true},
		{"METHODOLOGY", true},
		{"Chapter 3: Results", true},
		{"Section 2.1 Analysis", true},
		{"2. LITERATURE REVIEW", true},
		{"Drug Discovery Methods", true},
		{"   Conclusion   ", true},
		{"This is regular text", false},
		{"email@example.com", false},
		{"Figure 1: Sample image", false},
		{"1.1.1 Related Work", false},
		{"Discussion and Conclusions", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHeading(tt.line))
		})
	}
}

func TestCleanHeading(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1. Introduction", "1. Introduction"},
		{"1.1 Background", "Background"},
		{"2 Methods", "Methods"},
		{"Chapter 3: Results", "Results"},
		{"chapter 4 Discussion", "Discussion"},
		{"Section 2 Analysis", "Analysis"},
		{"Chapter 7", "Chapter 7"},
		{"  METHODOLOGY  ", "METHODOLOGY"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanHeading(tt.in))
		})
	}
}

func TestSegment(t *testing.T) {
	doc := &doctree.Document{
		Filename: "paper.pdf",
		Pages: []doctree.Page{
			{Number: 1, Text: "preamble text\nINTRODUCTION\nfirst line\n\nsecond line\nEMPTY HEADING\n"},
			{Number: 2, Text: "1.1 Background\nbackground body\nmore body"},
			{Number: 3, Text: "continued on page three\nCONCLUSION"},
		},
	}

	got := Segment(doc)
	require.Len(t, got, 2)

	assert.Equal(t, "INTRODUCTION", got[0].Title)
	assert.Equal(t, "first line second line", got[0].Content)
	assert.Equal(t, 1, got[0].Page)
	assert.Equal(t, "paper.pdf", got[0].Document)

	assert.Equal(t, "Background", got[1].Title)
	assert.Equal(t, 2, got[1].Page)
	assert.Equal(t, "background body more body continued on page three", got[1].Content)
}

func TestSegment_NoHeadings(t *testing.T) {
	doc := &doctree.Document{
		Filename: "plain.pdf",
		Pages:    []doctree.Page{{Number: 1, Text: "just some lowercase prose.\nand more."}},
	}
	assert.Empty(t, Segment(doc))
}

func TestSegmentAll_KeepsDocumentOrder(t *testing.T) {
	a := &doctree.Document{Filename: "a.pdf", Pages: []doctree.Page{{Number: 1, Text: "INTRO\nalpha"}}}
	b := &doctree.Document{Filename: "b.pdf", Pages: []doctree.Page{{Number: 1, Text: "INTRO\nbeta"}}}

	got := SegmentAll([]*doctree.Document{a, b})
	require.Len(t, got, 2)
	assert.Equal(t, "a.pdf", got[0].Document)
	assert.Equal(t, "b.pdf", got[1].Document)
}
