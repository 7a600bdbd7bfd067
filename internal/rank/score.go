package rank

import "github.com/dgallion1/docrank/internal/keywords"

// Hits counts keyword occurrences in one section.
type Hits struct {
	Persona int // persona keywords found in title+content
	Job     int // job keywords found in title+content
	Title   int // persona ∪ job keywords found in the title
}

// CountHits tallies keyword hits for a section.
func CountHits(title, content string, persona, job keywords.Set) Hits {
	body := title + " " + content
	return Hits{
		Persona: persona.CountIn(body),
		Job:     job.CountIn(body),
		Title:   persona.Union(job).CountIn(title),
	}
}

// Weighted is 0.3p + 0.4j + 0.5t.
func (h Hits) Weighted() float64 {
	return 0.3*float64(h.Persona) + 0.4*float64(h.Job) + 0.5*float64(h.Title)
}

// Bonus is the keyword contribution added to a cosine score.
func (h Hits) Bonus() float64 {
	return h.Weighted() / 10
}
