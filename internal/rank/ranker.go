package rank

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/dgallion1/docrank/internal/doctree"
	"github.com/dgallion1/docrank/internal/keywords"
	"github.com/dgallion1/docrank/internal/nlp"
)

// Ranker assigns relevance scores and importance ranks to sections.
type Ranker struct {
	tk          *nlp.Toolkit
	log         *slog.Logger
	maxFeatures int
}

// NewRanker returns a Ranker. maxFeatures <= 0 uses DefaultMaxFeatures.
func NewRanker(tk *nlp.Toolkit, log *slog.Logger, maxFeatures int) *Ranker {
	if log == nil {
		log = slog.Default()
	}
	return &Ranker{tk: tk, log: log, maxFeatures: maxFeatures}
}

// Rank scores sections and returns them sorted by descending relevance with
// ImportanceRank set to the 1-based position. Equal scores keep input order.
// The input slice is not modified.
func (r *Ranker) Rank(sections []doctree.Section, persona, job keywords.Set, jobText string) []doctree.Section {
	ranked := make([]doctree.Section, len(sections))
	copy(ranked, sections)
	if len(ranked) == 0 {
		return ranked
	}

	hits := make([]Hits, len(ranked))
	for i, s := range ranked {
		hits[i] = CountHits(s.Title, s.Content, persona, job)
	}

	cosines, err := r.similarities(ranked, persona, job, jobText)
	if err != nil {
		r.log.Warn("vector model failed, using keyword scores", "error", err, "sections", len(ranked))
		for i := range ranked {
			ranked[i].RelevanceScore = hits[i].Weighted()
		}
	} else {
		for i := range ranked {
			ranked[i].RelevanceScore = cosines[i] + hits[i].Bonus()
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})
	for i := range ranked {
		ranked[i].ImportanceRank = i + 1
	}
	return ranked
}

func (r *Ranker) similarities(sections []doctree.Section, persona, job keywords.Set, jobText string) ([]float64, error) {
	docs := make([]string, len(sections))
	for i, s := range sections {
		docs[i] = s.Title + " " + s.Content
	}

	v := &Vectorizer{MaxFeatures: r.maxFeatures, StopWord: r.tk.IsVectorStopWord}
	rows, err := v.FitTransform(docs)
	if err != nil {
		return nil, err
	}

	query := v.Transform(strings.Join([]string{persona.String(), job.String(), jobText}, " "))
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = Cosine(query, row)
	}
	return out, nil
}
