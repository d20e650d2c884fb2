package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFleschReadingEaseEmpty(t *testing.T) {
	assert.Equal(t, float64(0), FleschReadingEase(""))
	assert.Equal(t, float64(0), FleschReadingEase("no sentence terminator here"))
}

func TestFleschReadingEaseBounds(t *testing.T) {
	// Ultra-short monosyllabic sentences push the raw formula above 100.
	assert.Equal(t, float64(100), FleschReadingEase("Go. Go. Go."))

	// Long polysyllabic prose clamps at the low end but never below zero.
	dense := "Institutionalization of incomprehensibly multisyllabic terminological gobbledygook systematically obliterates communicative accessibility considerations."
	score := FleschReadingEase(dense)
	assert.GreaterOrEqual(t, score, float64(0))
	assert.Less(t, score, float64(30))
}

func TestFleschReadingEaseMidRange(t *testing.T) {
	text := "The cat sat on the mat. It was a warm day. The sun was out. We went for a walk in the park."
	score := FleschReadingEase(text)
	assert.Greater(t, score, float64(60))
	assert.LessOrEqual(t, score, float64(100))
}

func TestCountSentences(t *testing.T) {
	assert.Equal(t, 0, countSentences("no terminators"))
	assert.Equal(t, 3, countSentences("One. Two! Three?"))
}

func TestCountSyllables(t *testing.T) {
	cases := map[string]int{
		"cat":        1,
		"table":      2, // "-le" ending keeps its syllable
		"gnome":      1, // silent e dropped
		"beautiful":  3,
		"a":          1,
		"strengths":  1,
		"optimized.": 4, // punctuation trimmed before counting
	}
	for word, want := range cases {
		assert.Equal(t, want, countSyllables(word), "word %q", word)
	}
	assert.Equal(t, 0, countSyllables("..."))
}
