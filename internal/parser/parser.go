// Package parser turns raw document bytes into page-ordered text.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docrank/internal/doctree"
)

// Parser converts raw document bytes into a Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Document, error)
}

// Options tune format-specific behavior.
type Options struct {
	FallbackPdftotext bool // Shell out to pdftotext when the Go reader fails.
	ValidatePDF       bool // Run a structural check with pdfcpu before extraction.
}

// SupportedExtensions lists file extensions this tool can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.FallbackPdftotext, Validate: opts.ValidatePDF}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// pagesFromText splits text on form feeds into numbered pages. Page numbers
// follow physical position, so blank pages still advance the count.
func pagesFromText(filename, text string) *doctree.Document {
	doc := &doctree.Document{Filename: filename}
	for i, page := range strings.Split(text, "\f") {
		if strings.TrimSpace(page) == "" {
			continue
		}
		doc.Pages = append(doc.Pages, doctree.Page{Number: i + 1, Text: page})
	}
	return doc
}

// singlePage wraps block-structured lines as a one-page document.
func singlePage(filename string, lines []string) *doctree.Document {
	doc := &doctree.Document{Filename: filename}
	if len(lines) > 0 {
		doc.Pages = []doctree.Page{{Number: 1, Text: strings.Join(lines, "\n")}}
	}
	return doc
}
