package parser

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/dgallion1/docrank/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if enabled.
type PDFParser struct {
	FallbackPdftotext bool
	Validate          bool

	// pdftotext runs the external extractor; nil means extractPdftotext.
	pdftotext func(path string) (string, error)
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docrank-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	if p.Validate {
		if err := validatePDF(tmpPath); err != nil {
			return nil, err
		}
	}

	pages, err := extractPDFPages(tmpPath)
	if err != nil && p.FallbackPdftotext {
		var text string
		text, err = p.runPdftotext(tmpPath)
		if err == nil {
			return pagesFromText(filename, text), nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	doc := &doctree.Document{Filename: filename}
	for i, text := range pages {
		if strings.TrimSpace(text) == "" {
			continue
		}
		doc.Pages = append(doc.Pages, doctree.Page{Number: i + 1, Text: text})
	}
	return doc, nil
}

func (p *PDFParser) runPdftotext(path string) (string, error) {
	if p.pdftotext != nil {
		return p.pdftotext(path)
	}
	return extractPdftotext(path)
}

// validatePDF runs pdfcpu's relaxed structural validation.
func validatePDF(path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validate pdf: %v", r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if _, err := api.PageCount(f, conf); err != nil {
		return fmt.Errorf("validate pdf: %w", err)
	}
	return nil
}

// extractPDFPages returns one string per physical page, lines separated by
// newlines so headings stay on their own line. ledongthuc/pdf reports
// malformed objects by panicking; those come back as errors.
func extractPDFPages(path string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	if numPages < 0 || numPages > maxPDFPages {
		return nil, fmt.Errorf("malformed pdf: page count %d", numPages)
	}
	pages = make([]string, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages[i-1] = pageText(page)
	}
	return pages, nil
}

// maxPDFPages bounds the page slice allocated from the declared /Count.
const maxPDFPages = 100000

// pageText rebuilds lines from positioned glyphs. Glyphs sharing a baseline
// form a line; a space is inserted where the horizontal gap between glyphs
// is wider than a kerning adjustment.
func pageText(page pdflib.Page) string {
	lines := glyphLines(page.Content().Text)
	if len(lines) > 0 {
		return strings.Join(lines, "\n")
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

const (
	// baselineTolerance is the share of the font size two glyphs' Y may
	// differ by and still sit on the same line.
	baselineTolerance = 0.5
	// wordGap is the share of the font size a gap must exceed to count as
	// a word break.
	wordGap = 0.15
)

func glyphLines(glyphs []pdflib.Text) []string {
	if len(glyphs) == 0 {
		return nil
	}
	sorted := make([]pdflib.Text, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var rows [][]pdflib.Text
	var rowY float64
	for _, g := range sorted {
		if len(rows) == 0 || math.Abs(g.Y-rowY) > baselineTolerance*glyphSize(g) {
			rows = append(rows, nil)
			rowY = g.Y
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], g)
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		if line := joinGlyphs(row); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func joinGlyphs(row []pdflib.Text) string {
	var b strings.Builder
	pendingSpace := false
	var end float64
	for i, g := range row {
		if strings.TrimSpace(g.S) == "" {
			pendingSpace = true
			continue
		}
		if i > 0 && g.X-end > wordGap*glyphSize(g) {
			pendingSpace = true
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteString(g.S)
		end = g.X + g.W
	}
	return b.String()
}

func glyphSize(g pdflib.Text) float64 {
	if g.FontSize <= 0 {
		return 1
	}
	return g.FontSize
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
