// Package match resolves dictated product names against the store catalog
// using a set of independent similarity scorers combined by max.
package match

import (
	"regexp"
	"strings"
)

var (
	bracketRe = regexp.MustCompile(`[(\[][^)\]]*[)\]]`)
	// "6 pack", "6-pack", "12 bottles", "2x" style count annotations.
	packCountRe = regexp.MustCompile(`(?i)\b\d+\s*[-x]?\s*(?:pack|packs|bottle|bottles|can|cans)\b`)
	// bare size tokens left after bracket stripping, e.g. "2kg", "500ml"
	sizeTokenRe = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:kg|g|l|ml|litre|litres|liter|liters)\b`)
	wsRe        = regexp.MustCompile(`\s+`)
)

// pluralFold maps plural product words to their singular form. Only words
// that actually show up in catalogs; not a stemmer.
var pluralFold = map[string]string{
	"apples":   "apple",
	"oranges":  "orange",
	"eggs":     "egg",
	"loaves":   "loaf",
	"tomatoes": "tomato",
	"bottles":  "bottle",
	"sweets":   "sweet",
	"candles":  "candle",
	"drinks":   "drink",
	"juices":   "juice",
}

// NormalizeName lowercases a product name and strips the noise that catalog
// listings carry but dictated names never do: bracketed size annotations,
// pack/bottle/can counts and stray size tokens. Plural words fold to
// singular so "2 apples" can hit a catalog "Apple".
func NormalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = bracketRe.ReplaceAllString(s, " ")
	s = packCountRe.ReplaceAllString(s, " ")
	s = sizeTokenRe.ReplaceAllString(s, " ")
	words := strings.Fields(s)
	for i, w := range words {
		if folded, ok := pluralFold[w]; ok {
			words[i] = folded
		}
	}
	return wsRe.ReplaceAllString(strings.TrimSpace(strings.Join(words, " ")), " ")
}
