// Package nlp bundles the language tooling one analysis run needs: word and
// sentence tokenizers, a stemmer, stop-word tables and a language detector.
// A Toolkit is built once per run and handed to every stage that needs it.
package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/tokenize"
	"github.com/kljensen/snowball/english"
	"github.com/neurosnap/sentences"
	punkt "github.com/neurosnap/sentences/english"
	"github.com/pemistahl/lingua-go"
)

// Toolkit is the per-run language context.
type Toolkit struct {
	words     *tokenize.TreebankWordTokenizer
	sentences *sentences.DefaultSentenceTokenizer
	languages lingua.LanguageDetector

	stopWords   map[string]struct{}
	vectorStops map[string]struct{}
}

// New builds a Toolkit. The Punkt model is loaded from the tokenizer's
// embedded English training data.
func New() (*Toolkit, error) {
	st, err := punkt.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load sentence tokenizer: %w", err)
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(detectableLanguages...).
		WithLowAccuracyMode().
		Build()

	return &Toolkit{
		words:       tokenize.NewTreebankWordTokenizer(),
		sentences:   st,
		languages:   detector,
		stopWords:   toSet(englishStopWords),
		vectorStops: toSet(vectorizerStopWords),
	}, nil
}

// Words splits text into Treebank word tokens.
func (t *Toolkit) Words(text string) []string {
	return t.words.Tokenize(text)
}

// Sentences splits text into sentences, trimmed of surrounding whitespace.
func (t *Toolkit) Sentences(text string) []string {
	var out []string
	for _, s := range t.sentences.Tokenize(text) {
		if trimmed := strings.TrimSpace(s.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Stem reduces an English word to its stem.
func (t *Toolkit) Stem(word string) string {
	return english.Stem(word, true)
}

// IsStopWord reports whether word is in the keyword-extraction stop list.
func (t *Toolkit) IsStopWord(word string) bool {
	_, ok := t.stopWords[word]
	return ok
}

// IsVectorStopWord reports whether word is in the vectorizer stop list.
func (t *Toolkit) IsVectorStopWord(word string) bool {
	_, ok := t.vectorStops[word]
	return ok
}

// ContentStems tokenizes lowered text and returns the stems of tokens that
// are not stop words and are longer than three characters.
func (t *Toolkit) ContentStems(text string) []string {
	var stems []string
	for _, w := range t.Words(strings.ToLower(text)) {
		if t.IsStopWord(w) || len([]rune(w)) <= 3 {
			continue
		}
		stems = append(stems, t.Stem(w))
	}
	return stems
}

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
