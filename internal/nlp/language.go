package nlp

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Languages the detector distinguishes between. Only English is supported by
// the keyword tables and stemmer.
var detectableLanguages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
}

// maxDetectRunes bounds how much text is sampled for detection.
const maxDetectRunes = 4000

// Language returns the lower-case name of the detected language of text, or
// "" when the detector cannot decide.
func (t *Toolkit) Language(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if r := []rune(text); len(r) > maxDetectRunes {
		text = string(r[:maxDetectRunes])
	}
	lang, ok := t.languages.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.String())
}

// IsEnglish reports whether a detected language name is English. An empty
// name counts as English since detection could not rule it out.
func IsEnglish(lang string) bool {
	return lang == "" || lang == "english"
}
