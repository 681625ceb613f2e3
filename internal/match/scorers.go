package match

import "strings"

// Scorer weights. Each scorer returns a value in [0,1]; the resolver combines
// them by max, so a weight scales how strongly that heuristic can ever speak.
const (
	primaryKeywordWeight      = 1.2
	charJaccardWeight         = 0.8
	wordOverlapBonus          = 0.9
	wordOverlapBonusThreshold = 0.7
	variationScore            = 0.9
	brandScore                = 0.9
)

// minimum shared-substring length before the primary-keyword scorer speaks.
const minKeywordOverlap = 3

// brandNames are brands that appear in both dictated names and catalog
// listings. Shared brand presence alone never decides a match (see
// scoreBrandCoOccurrence).
var brandNames = []string{
	"mazoe", "hullets", "huletts", "olivine", "lobels", "gold leaf",
	"tanganda", "coca cola", "fanta", "sprite", "dairibord", "bakers inn",
}

// variations maps words to known equivalent spellings that plain string
// similarity misses.
var variations = map[string][]string{
	"maheu":     {"mahewu"},
	"coke":      {"coca cola"},
	"cooldrink": {"soda", "soft drink"},
	"chips":     {"crisps"},
	"maize":     {"mealie meal", "mealie"},
}

// scoreContainment: one string fully inside the other scores the ratio of the
// shorter to the longer length.
func scoreContainment(input, candidate string) float64 {
	shorter, longer := input, candidate
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(longer) == 0 || !strings.Contains(longer, shorter) {
		return 0
	}
	return float64(len(shorter)) / float64(len(longer))
}

// scorePrimaryKeyword compares the longest input word against every candidate
// word, scoring the best shared-substring overlap.
func scorePrimaryKeyword(input, candidate string) float64 {
	primary := longestWord(input)
	if len(primary) < minKeywordOverlap {
		return 0
	}
	best := 0.0
	for _, cw := range strings.Fields(candidate) {
		overlap := longestCommonSubstring(primary, cw)
		if overlap < minKeywordOverlap {
			continue
		}
		denom := len(primary)
		if len(cw) > denom {
			denom = len(cw)
		}
		if s := float64(overlap) / float64(denom) * primaryKeywordWeight; s > best {
			best = s
		}
	}
	if best > 1 {
		best = 1
	}
	return best
}

// scoreWordOverlap: fraction of input words present in the candidate, lifted
// to a flat bonus once most of the input is covered.
func scoreWordOverlap(input, candidate string) float64 {
	inputWords := strings.Fields(input)
	if len(inputWords) == 0 {
		return 0
	}
	candidateWords := make(map[string]struct{})
	for _, w := range strings.Fields(candidate) {
		candidateWords[w] = struct{}{}
	}
	shared := 0
	for _, w := range inputWords {
		if _, ok := candidateWords[w]; ok {
			shared++
		}
	}
	ratio := float64(shared) / float64(len(inputWords))
	if ratio >= wordOverlapBonusThreshold {
		return wordOverlapBonus
	}
	return ratio
}

// scoreCharJaccard is the coarse fallback: set similarity over characters.
func scoreCharJaccard(input, candidate string) float64 {
	a := charSet(input)
	b := charSet(candidate)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for c := range a {
		if _, ok := b[c]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union) * charJaccardWeight
}

// scoreVariation checks the known-variation table in both directions.
func scoreVariation(input, candidate string) float64 {
	for _, w := range strings.Fields(input) {
		for _, v := range variations[w] {
			if strings.Contains(candidate, v) {
				return variationScore
			}
		}
	}
	for _, w := range strings.Fields(candidate) {
		for _, v := range variations[w] {
			if strings.Contains(input, v) {
				return variationScore
			}
		}
	}
	return 0
}

// scoreBrandCoOccurrence scores when both names mention the same brand, but
// only if the input has more than one word and some non-brand input word also
// partially matches a catalog word. A lone brand word must not pull in every
// product of that brand.
func scoreBrandCoOccurrence(input, candidate string) float64 {
	var shared string
	for _, brand := range brandNames {
		if strings.Contains(input, brand) && strings.Contains(candidate, brand) {
			shared = brand
			break
		}
	}
	if shared == "" {
		return 0
	}
	inputWords := strings.Fields(input)
	if len(inputWords) < 2 {
		return 0
	}
	for _, w := range inputWords {
		if strings.Contains(shared, w) {
			continue // part of the brand itself
		}
		for _, cw := range strings.Fields(candidate) {
			if longestCommonSubstring(w, cw) >= minKeywordOverlap {
				return brandScore
			}
		}
	}
	return 0
}

func longestWord(s string) string {
	best := ""
	for _, w := range strings.Fields(s) {
		if len(w) > len(best) {
			best = w
		}
	}
	return best
}

func charSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{})
	for _, r := range s {
		if r != ' ' {
			set[r] = struct{}{}
		}
	}
	return set
}

func longestCommonSubstring(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	best := 0
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > best {
					best = cur[j]
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return best
}
