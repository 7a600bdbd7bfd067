// Package pdftest builds small PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Doc describes a generated PDF. Each entry of Pages is a content stream
// drawn with font /F1 (Helvetica, WinAnsi).
type Doc struct {
	Pages []string
	// Count overrides the /Count entry of the page tree when non-empty.
	Count string
	// PageExtra is appended verbatim inside every Page dictionary.
	PageExtra string
	// Root overrides the trailer /Root reference when non-empty.
	Root string
}

// Build renders d with a correct cross-reference table.
func Build(d Doc) []byte {
	count := d.Count
	if count == "" {
		count = fmt.Sprint(len(d.Pages))
	}
	root := d.Root
	if root == "" {
		root = "1 0 R"
	}

	// 1 catalog, 2 page tree, 3 font, then a page and content pair per page.
	kids := make([]string, len(d.Pages))
	for i := range d.Pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %s >>", strings.Join(kids, " "), count),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	for i, content := range d.Pages {
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R%s >>",
				5+2*i, d.PageExtra),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %s >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, root, xref)
	return buf.Bytes()
}

// TextPage returns a content stream that draws lines top-down at 14pt
// leading, starting at (72, 720). A line beginning with '[' is emitted as
// a TJ array, otherwise as a Tj string.
func TextPage(lines ...string) string {
	var b strings.Builder
	b.WriteString("BT /F1 12 Tf 72 720 Td")
	for i, line := range lines {
		if i > 0 {
			b.WriteString(" 0 -14 Td")
		}
		if strings.HasPrefix(line, "[") {
			fmt.Fprintf(&b, " %s TJ", line)
		} else {
			fmt.Fprintf(&b, " (%s) Tj", line)
		}
	}
	b.WriteString(" ET")
	return b.String()
}
