package doctree

// Document is the extracted text of one input file, page by page.
type Document struct {
	Filename string // Base name as discovered in the input directory
	Pages    []Page // Pages in reading order
	Language string // Detected language (empty if undetermined)
}

// Page is the plain text of a single page.
type Page struct {
	Number int    // 1-based page number
	Text   string // Newline-separated lines
}

// Section is a heading-delimited block of document text.
type Section struct {
	Document       string       // Source filename
	Page           int          // Page the heading appeared on
	Title          string       // Cleaned heading text
	Content        string       // Body lines joined by single spaces
	RelevanceScore float64      // Set by the ranker
	ImportanceRank int          // 1 = most relevant, set by the ranker
	SubSections    []SubSection // Refined excerpts, best first
}

// SubSection is a scored window of consecutive sentences within a section.
type SubSection struct {
	Document       string
	RefinedText    string
	PageNumber     int
	RelevanceScore float64
}
