package parser

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docrank/internal/parser/pdftest"
	"github.com/dgallion1/docrank/internal/segment"
)

func paperPDF() []byte {
	return pdftest.Build(pdftest.Doc{Pages: []string{pdftest.TextPage(
		"INTRODUCTION",
		"This paper studies proteins.",
		"METHODS",
		"[(We used ge) -20 (ne assays.)]",
	)}})
}

func TestPDFParser_LinesFollowTextPosition(t *testing.T) {
	p := &PDFParser{}
	doc, err := p.Parse(bytes.NewReader(paperPDF()), "paper.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}

	want := []string{
		"INTRODUCTION",
		"This paper studies proteins.",
		"METHODS",
		"We used gene assays.",
	}
	got := strings.Split(doc.Pages[0].Text, "\n")
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(got), doc.Pages[0].Text)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	secs := segment.Segment(doc)
	if len(secs) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(secs))
	}
	if secs[0].Title != "INTRODUCTION" || secs[1].Title != "METHODS" {
		t.Errorf("unexpected titles %q, %q", secs[0].Title, secs[1].Title)
	}
	if secs[1].Content != "We used gene assays." {
		t.Errorf("unexpected section content %q", secs[1].Content)
	}
}

func TestPDFParser_MultiplePages(t *testing.T) {
	data := pdftest.Build(pdftest.Doc{Pages: []string{
		pdftest.TextPage("Summary", "First page."),
		"",
		pdftest.TextPage("Third page."),
	}})

	p := &PDFParser{}
	doc, err := p.Parse(bytes.NewReader(data), "three.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 non-empty pages, got %d", len(doc.Pages))
	}
	if doc.Pages[0].Number != 1 || doc.Pages[1].Number != 3 {
		t.Errorf("expected page numbers 1 and 3, got %d and %d", doc.Pages[0].Number, doc.Pages[1].Number)
	}
}

func TestPDFParser_MalformedReturnsError(t *testing.T) {
	cases := map[string][]byte{
		"negative count": pdftest.Build(pdftest.Doc{
			Pages: []string{pdftest.TextPage("Body.")},
			Count: "-1",
		}),
		"stray delimiter": pdftest.Build(pdftest.Doc{
			Pages:     []string{pdftest.TextPage("Body.")},
			PageExtra: " )",
		}),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			p := &PDFParser{}
			doc, err := p.Parse(bytes.NewReader(data), "bad.pdf")
			if err == nil {
				t.Fatalf("expected error, got document with %d pages", len(doc.Pages))
			}
			if !strings.Contains(err.Error(), "extract pdf text") {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

func TestPDFParser_Validate(t *testing.T) {
	p := &PDFParser{Validate: true}
	doc, err := p.Parse(bytes.NewReader(paperPDF()), "paper.pdf")
	if err != nil {
		t.Fatalf("valid pdf rejected: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Errorf("expected 1 page, got %d", len(doc.Pages))
	}

	corrupt := pdftest.Build(pdftest.Doc{
		Pages: []string{pdftest.TextPage("Body.")},
		Root:  "99 0 R",
	})
	if _, err := p.Parse(bytes.NewReader(corrupt), "corrupt.pdf"); err == nil {
		t.Fatal("expected validation error for pdf with missing catalog")
	} else if !strings.Contains(err.Error(), "validate pdf") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestPDFParser_FallbackAfterExtractionFailure(t *testing.T) {
	data := pdftest.Build(pdftest.Doc{
		Pages: []string{pdftest.TextPage("Body.")},
		Count: "-1",
	})

	var called string
	p := &PDFParser{
		FallbackPdftotext: true,
		pdftotext: func(path string) (string, error) {
			called = path
			return "INTRODUCTION\nFirst page.\fMETHODS\nSecond page.", nil
		},
	}
	doc, err := p.Parse(bytes.NewReader(data), "bad.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called == "" {
		t.Fatal("expected pdftotext fallback to run")
	}
	if len(doc.Pages) != 2 || doc.Pages[1].Number != 2 {
		t.Fatalf("expected 2 pages from fallback, got %+v", doc.Pages)
	}

	p.pdftotext = func(string) (string, error) { return "", errors.New("not installed") }
	if _, err := p.Parse(bytes.NewReader(data), "bad.pdf"); err == nil {
		t.Fatal("expected error when fallback also fails")
	}

	p = &PDFParser{
		pdftotext: func(string) (string, error) {
			t.Error("fallback ran while disabled")
			return "", nil
		},
	}
	if _, err := p.Parse(bytes.NewReader(data), "bad.pdf"); err == nil {
		t.Fatal("expected error with fallback disabled")
	}
}

func TestExtractPdftotext(t *testing.T) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		t.Skip("pdftotext not on PATH")
	}

	p := &PDFParser{FallbackPdftotext: true}
	text, err := extractPdftotextBytes(t, p, paperPDF())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"INTRODUCTION", "METHODS", "proteins"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in pdftotext output %q", want, text)
		}
	}
}

// extractPdftotextBytes writes data to a temp file and runs the parser's
// pdftotext runner on it.
func extractPdftotextBytes(t *testing.T, p *PDFParser, data []byte) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	return p.runPdftotext(path)
}
