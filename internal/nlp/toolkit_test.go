package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newToolkit(t *testing.T) *Toolkit {
	t.Helper()
	tk, err := New()
	require.NoError(t, err)
	return tk
}

func TestSentences(t *testing.T) {
	tk := newToolkit(t)
	got := tk.Sentences("Protein folding matters. It was measured carefully.  Results improved!")
	assert.Equal(t, []string{"Protein folding matters.", "It was measured carefully.", "Results improved!"}, got)
	assert.Empty(t, tk.Sentences("   "))
}

func TestContentStems(t *testing.T) {
	tk := newToolkit(t)
	got := tk.ContentStems("The researchers are studying proteins")
	assert.Equal(t, []string{"research", "studi", "protein"}, got)
}

func TestStopWordTables(t *testing.T) {
	tk := newToolkit(t)
	assert.True(t, tk.IsStopWord("the"))
	assert.True(t, tk.IsStopWord("wouldn't"))
	assert.False(t, tk.IsStopWord("protein"))

	assert.True(t, tk.IsVectorStopWord("amongst"))
	assert.True(t, tk.IsVectorStopWord("system"))
	assert.False(t, tk.IsVectorStopWord("protein"))
}

func TestLanguage(t *testing.T) {
	tk := newToolkit(t)
	assert.Equal(t, "english", tk.Language("The methodology section describes how protein samples were collected and analysed."))
	assert.Equal(t, "german", tk.Language("Die Methodik beschreibt, wie die Proben gesammelt und untersucht wurden."))
	assert.Equal(t, "", tk.Language("   "))

	assert.True(t, IsEnglish(""))
	assert.True(t, IsEnglish("english"))
	assert.False(t, IsEnglish("german"))
}
