package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsOnOwnLines(t *testing.T) {
	input := `# Title

Intro text
continues here.

## Section A

Section A content.

- item one
- item two
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
	lines := strings.Split(doc.Pages[0].Text, "\n")
	if lines[0] != "Title" {
		t.Errorf("expected first line %q, got %q", "Title", lines[0])
	}
	if lines[1] != "Intro text continues here." {
		t.Errorf("expected joined paragraph, got %q", lines[1])
	}
	if lines[2] != "Section A" {
		t.Errorf("expected heading line %q, got %q", "Section A", lines[2])
	}
	if !strings.Contains(doc.Pages[0].Text, "item one") {
		t.Errorf("expected list text, got %q", doc.Pages[0].Text)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 0 {
		t.Errorf("expected 0 pages, got %d", len(doc.Pages))
	}
}

func TestHTMLParser_SkipsChrome(t *testing.T) {
	input := `<html><head><title>T</title></head><body>
<nav>Menu</nav>
<h2>Drug Discovery Methods</h2>
<p>Compound   screening
results.</p>
<script>var x = 1;</script>
</body></html>`
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
	want := "Drug Discovery Methods\nCompound screening results."
	if doc.Pages[0].Text != want {
		t.Errorf("expected %q, got %q", want, doc.Pages[0].Text)
	}
}
