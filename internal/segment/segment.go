package segment

import (
	"strings"

	"github.com/dgallion1/docrank/internal/doctree"
)

// pending is the heading currently collecting body lines.
type pending struct {
	title string
	page  int
	body  []string
}

// Segment walks a document's pages and returns its sections in heading order.
// Text before the first heading is discarded, as are headings with no body.
func Segment(doc *doctree.Document) []doctree.Section {
	var (
		sections []doctree.Section
		cur      *pending
	)

	flush := func() {
		if cur == nil || len(cur.body) == 0 {
			return
		}
		sections = append(sections, doctree.Section{
			Document: doc.Filename,
			Page:     cur.page,
			Title:    CleanHeading(cur.title),
			Content:  strings.Join(cur.body, " "),
		})
	}

	for _, page := range doc.Pages {
		for _, line := range strings.Split(page.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if IsHeading(line) {
				flush()
				cur = &pending{title: line, page: page.Number}
				continue
			}
			if cur != nil {
				cur.body = append(cur.body, line)
			}
		}
	}
	flush()

	return sections
}

// SegmentAll segments each document in order and concatenates the results.
func SegmentAll(docs []*doctree.Document) []doctree.Section {
	var all []doctree.Section
	for _, d := range docs {
		all = append(all, Segment(d)...)
	}
	return all
}
