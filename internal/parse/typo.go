package parse

import (
	"strings"

	"github.com/agext/levenshtein"
)

// typoCorrections maps misspellings seen in real dictated messages to the
// intended product word. Checked before the generic edit-distance pass.
var typoCorrections = map[string]string{
	"raspbuspburry": "raspberry",
	"ruspburry":     "raspberry",
	"rasberry":      "raspberry",
	"bred":          "bread",
	"mlik":          "milk",
	"orang":         "orange",
	"cocacola":      "coca cola",
	"shuga":         "sugar",
	"mahewu":        "maheu",
}

// referenceVocabulary is the small word list the generic correction is allowed
// to snap to. Kept to common shop-floor product words so the correction cannot
// invent products.
var referenceVocabulary = []string{
	"raspberry", "orange", "bread", "milk", "sugar", "maheu", "mazoe",
	"juice", "crush", "soap", "rice", "salt", "eggs", "flour", "oil",
	"cooking", "drink", "cola", "maputi", "matches", "candles", "soda",
}

// correctWord fixes a single dictated word: exact typo table first, then the
// closest vocabulary word if its edit distance is small relative to the word
// length (distance <= min(3, len/2)).
func correctWord(word string) string {
	w := strings.ToLower(word)
	if fixed, ok := typoCorrections[w]; ok {
		return fixed
	}
	limit := len(w) / 2
	if limit > 3 {
		limit = 3
	}
	if limit == 0 {
		return word
	}
	best := ""
	bestDist := limit + 1
	for _, ref := range referenceVocabulary {
		if d := levenshtein.Distance(w, ref, nil); d < bestDist {
			bestDist = d
			best = ref
		}
	}
	if best != "" {
		return best
	}
	return word
}

// correctName applies word-level correction across a captured product name.
func correctName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		words[i] = correctWord(w)
	}
	return strings.Join(words, " ")
}
