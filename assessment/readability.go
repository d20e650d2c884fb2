package assessment

import (
	"strings"
	"unicode"
)

// FleschReadingEase computes the Flesch Reading Ease score for a text.
// Returns 0 for texts with no sentences or words. Typical web copy lands
// between 30 (dense) and 80 (conversational); 60-75 reads well for both
// people and answer engines.
func FleschReadingEase(text string) float64 {
	sentences := countSentences(text)
	if sentences == 0 {
		return 0
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))

	score := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func countSentences(text string) int {
	count := 0
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			count++
		}
	}
	return count
}

// countSyllables estimates syllables by counting vowel groups, with the
// standard silent "e" adjustment. Heuristic but stable, which is all the
// readability band check needs.
func countSyllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if word == "" {
		return 0
	}

	isVowel := func(r byte) bool {
		return strings.IndexByte("aeiouy", r) >= 0
	}

	count := 0
	prevVowel := false
	for i := 0; i < len(word); i++ {
		v := isVowel(word[i])
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}
