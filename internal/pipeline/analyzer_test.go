package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docrank/internal/doctree"
	"github.com/dgallion1/docrank/internal/nlp"
	"github.com/dgallion1/docrank/internal/output"
	"github.com/dgallion1/docrank/internal/parser"
	"github.com/dgallion1/docrank/internal/parser/pdftest"
)

// fakeParser splits input on form feeds into pages, or fails when the
// content starts with "FAIL".
type fakeParser struct{}

func (fakeParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(string(data), "FAIL") {
		return nil, errors.New("corrupt document")
	}
	doc := &doctree.Document{Filename: filename}
	for i, p := range strings.Split(string(data), "\f") {
		doc.Pages = append(doc.Pages, doctree.Page{Number: i + 1, Text: p})
	}
	return doc, nil
}

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	tk, err := nlp.New()
	require.NoError(t, err)
	a := NewAnalyzer(tk, nil, Options{}, nil)
	return a.WithParsers(func(string) (parser.Parser, error) { return fakeParser{}, nil })
}

const biologyDoc = "Drug Discovery Methods\n" +
	"We review methodology for molecular drug discovery. Protein targets are screened with compound libraries. " +
	"Results show improved binding. The approach was evaluated against baselines.\f" +
	"Conclusion\n" +
	"We thank our colleagues. Future work remains."

func TestAnalyzer_EndToEnd(t *testing.T) {
	a := newTestAnalyzer(t)
	req := Request{
		Inputs: []Input{
			{Filename: "broken.pdf", Data: []byte("FAIL")},
			{Filename: "bio.pdf", Data: []byte(biologyDoc)},
		},
		Persona: "PhD Researcher in Computational Biology",
		Job:     "Prepare a comprehensive literature review",
	}

	res, sum, err := a.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"broken.pdf", "bio.pdf"}, res.Metadata.InputDocuments)
	assert.Equal(t, req.Persona, res.Metadata.Persona)
	assert.Equal(t, req.Job, res.Metadata.JobToBeDone)

	require.Len(t, res.ExtractedSections, 2)
	assert.Equal(t, "Drug Discovery Methods", res.ExtractedSections[0].SectionTitle)
	assert.Equal(t, 1, res.ExtractedSections[0].PageNumber)
	assert.Equal(t, "Conclusion", res.ExtractedSections[1].SectionTitle)
	assert.Equal(t, 2, res.ExtractedSections[1].PageNumber)
	for i, s := range res.ExtractedSections {
		assert.Equal(t, i+1, s.ImportanceRank)
	}

	require.NotEmpty(t, res.SubSectionAnalysis)
	assert.Equal(t, "bio.pdf", res.SubSectionAnalysis[0].Document)
	assert.NoError(t, output.Validate(res))

	require.Len(t, sum.Documents, 2)
	assert.Error(t, sum.Documents[0].Err)
	assert.Zero(t, sum.Documents[0].Sections)
	assert.Equal(t, 2, sum.Documents[1].Sections)
	assert.NotEmpty(t, sum.RunID)

	snap := a.Stats().Snapshot()
	assert.Equal(t, 2, snap[StageParse].Count)
	assert.Equal(t, 1, snap[StageTotal].Count)
}

func TestAnalyzer_NoSectionsStillProducesResult(t *testing.T) {
	a := newTestAnalyzer(t)
	res, _, err := a.Run(context.Background(), Request{
		Inputs:  []Input{{Filename: "plain.pdf", Data: []byte("only lowercase prose here.")}},
		Persona: "Student",
		Job:     "Study for the exam",
	})
	require.NoError(t, err)
	assert.Empty(t, res.ExtractedSections)
	assert.NotNil(t, res.SubSectionAnalysis)
}

func TestAnalyzer_ReadsFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bio.pdf")
	require.NoError(t, os.WriteFile(path, []byte(biologyDoc), 0o644))

	a := newTestAnalyzer(t)
	res, _, err := a.Run(context.Background(), Request{
		Inputs:  []Input{{Filename: "bio.pdf", Path: path}},
		Persona: "Researcher",
		Job:     "literature review",
	})
	require.NoError(t, err)
	assert.Len(t, res.ExtractedSections, 2)
}

func TestAnalyzer_Cancelled(t *testing.T) {
	a := newTestAnalyzer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := a.Run(ctx, Request{Inputs: []Input{{Filename: "a.pdf", Data: []byte(biologyDoc)}}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.PDF", "notes.txt", "persona.txt", "c.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o755))

	got, err := Discover(dir, []string{".pdf"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a.PDF", got[0].Filename)
	assert.Equal(t, "b.pdf", got[1].Filename)
	assert.Equal(t, filepath.Join(dir, "b.pdf"), got[1].Path)

	got, err = Discover(dir, []string{".txt"}, "persona.txt")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "notes.txt", got[0].Filename)
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), []string{".pdf"})
	assert.Error(t, err)
}

func TestReadTextOr(t *testing.T) {
	dir := t.TempDir()

	got, err := ReadTextOr(filepath.Join(dir, "missing.txt"), "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)

	path := filepath.Join(dir, "persona.txt")
	require.NoError(t, os.WriteFile(path, []byte("  Investment Analyst\n"), 0o644))
	got, err = ReadTextOr(path, "fallback")
	require.NoError(t, err)
	assert.Equal(t, "Investment Analyst", got)

	require.NoError(t, os.WriteFile(path, []byte("   \n"), 0o644))
	got, err = ReadTextOr(path, "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)
}

func TestReadTextOr_UnreadableFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err := ReadTextOr(path, "fallback")
	assert.Error(t, err)
}

func TestWorker_ProcessCompletesJob(t *testing.T) {
	a := newTestAnalyzer(t)
	job := NewJob(Request{
		Inputs:  []Input{{Filename: "bio.pdf", Data: []byte(biologyDoc)}, {Filename: "bad.pdf", Data: []byte("FAIL")}},
		Persona: "Researcher",
		Job:     "literature review",
	})

	NewWorker(a, a.log).Process(context.Background(), job)

	snap := job.Snapshot()
	assert.Equal(t, StatusCompleted, snap.Status)
	require.NotNil(t, snap.Result)
	assert.Len(t, snap.Errors, 1)
	assert.Contains(t, snap.Errors[0], "bad.pdf")
}

type panicParser struct{}

func (panicParser) Parse(io.Reader, string) (*doctree.Document, error) {
	panic("unexpected delimiter")
}

func TestAnalyzer_MalformedPDFDoesNotAbortRun(t *testing.T) {
	tk, err := nlp.New()
	require.NoError(t, err)
	a := NewAnalyzer(tk, nil, Options{}, nil)

	good := pdftest.Build(pdftest.Doc{Pages: []string{pdftest.TextPage(
		"INTRODUCTION",
		"This paper studies proteins.",
		"METHODS",
		"[(We used ge) -20 (ne assays.)]",
	)}})
	negativeCount := pdftest.Build(pdftest.Doc{
		Pages: []string{pdftest.TextPage("Body.")},
		Count: "-1",
	})
	strayDelimiter := pdftest.Build(pdftest.Doc{
		Pages:     []string{pdftest.TextPage("Body.")},
		PageExtra: " )",
	})

	var res *output.Result
	var sum *Summary
	require.NotPanics(t, func() {
		res, sum, err = a.Run(context.Background(), Request{
			Inputs: []Input{
				{Filename: "count.pdf", Data: negativeCount},
				{Filename: "paper.pdf", Data: good},
				{Filename: "delim.pdf", Data: strayDelimiter},
			},
			Persona: "Researcher in biology",
			Job:     "Review protein methods",
		})
	})
	require.NoError(t, err)

	require.Len(t, sum.Documents, 3)
	assert.Error(t, sum.Documents[0].Err)
	assert.NoError(t, sum.Documents[1].Err)
	assert.Equal(t, 2, sum.Documents[1].Sections)
	assert.Error(t, sum.Documents[2].Err)
	assert.Len(t, res.ExtractedSections, 2)
}

func TestAnalyzer_ParserPanicBecomesError(t *testing.T) {
	tk, err := nlp.New()
	require.NoError(t, err)
	a := NewAnalyzer(tk, nil, Options{}, nil).
		WithParsers(func(name string) (parser.Parser, error) {
			if name == "bad.pdf" {
				return panicParser{}, nil
			}
			return fakeParser{}, nil
		})

	_, sum, err := a.Run(context.Background(), Request{
		Inputs: []Input{
			{Filename: "bad.pdf", Data: []byte("x")},
			{Filename: "bio.pdf", Data: []byte(biologyDoc)},
		},
		Persona: "Researcher",
		Job:     "literature review",
	})
	require.NoError(t, err)
	require.Len(t, sum.Documents, 2)
	require.Error(t, sum.Documents[0].Err)
	assert.Contains(t, sum.Documents[0].Err.Error(), "unexpected delimiter")
	assert.Equal(t, 2, sum.Documents[1].Sections)
}
