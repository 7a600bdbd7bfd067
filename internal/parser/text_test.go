package parser

import (
	"strings"
	"testing"
)

func TestTextParser_FormFeedPages(t *testing.T) {
	input := "INTRODUCTION\nFirst page body.\fSecond page body.\f\f4. Results\nFourth page."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Filename != "notes.txt" {
		t.Errorf("expected filename %q, got %q", "notes.txt", doc.Filename)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(doc.Pages))
	}

	wantNumbers := []int{1, 2, 4}
	for i, n := range wantNumbers {
		if doc.Pages[i].Number != n {
			t.Errorf("page[%d]: expected number %d, got %d", i, n, doc.Pages[i].Number)
		}
	}
	if !strings.Contains(doc.Pages[0].Text, "INTRODUCTION\nFirst page body.") {
		t.Errorf("unexpected first page text %q", doc.Pages[0].Text)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 0 {
		t.Errorf("expected 0 pages for empty input, got %d", len(doc.Pages))
	}
}

func TestForFile(t *testing.T) {
	for _, name := range []string{"a.pdf", "A.PDF", "b.txt", "c.md", "d.htm", "e.docx"} {
		if _, err := ForFile(name, Options{}); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
	}
	if _, err := ForFile("data.csv", Options{}); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if !IsSupportedExtension("Report.PDF") {
		t.Error("expected .PDF to be supported")
	}
}

func TestPDFParser_InvalidInput(t *testing.T) {
	p := &PDFParser{}
	if _, err := p.Parse(strings.NewReader("not a pdf"), "broken.pdf"); err == nil {
		t.Fatal("expected error for invalid pdf")
	}

	p = &PDFParser{Validate: true}
	if _, err := p.Parse(strings.NewReader("not a pdf"), "broken.pdf"); err == nil {
		t.Fatal("expected validation error for invalid pdf")
	}
}
