package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/musika/salescore/constants"
	"github.com/musika/salescore/internal/entity"
)

// Result is what one strategy extracted from the whole message.
type Result struct {
	Strategy   string
	Items      []entity.ParsedLineItem
	Confidence float64
}

var (
	// "2 bread @1.50", "2x bread @ 1.50"
	structuredRe = regexp.MustCompile(`(?i)^(\d+)\s*x?\s*([a-z].*?)\s*@\s*\$?(\d+(?:\.\d+)?)$`)
	// "2 bread", "2x bread" (no price)
	simpleRe = regexp.MustCompile(`(?i)^(\d+)\s*x?\s*([a-z][a-z\s'-]*)$`)

	// Name phrases of 1-5 words, optionally priced. The connectors are kept
	// here even though Normalize folds them to "@", so the strategy still
	// works on text that skipped normalization.
	nlQtyNamePriceRe = regexp.MustCompile(`(?i)^(\d+)\s+((?:[a-z'-]+\s*){1,5}?)\s*(?:@|by|for|at)\s*\$?(\d+(?:\.\d+)?)$`)
	nlNamePriceRe    = regexp.MustCompile(`(?i)^((?:[a-z'-]+\s*){1,5}?)\s*(?:@|by|for|at)\s*\$?(\d+(?:\.\d+)?)$`)
	nlQtyNameRe      = regexp.MustCompile(`(?i)^(\d+)\s+((?:[a-z'-]+\s*){1,5})$`)

	fallbackRe = regexp.MustCompile(`(?i)(\d+)\s+([a-z]+(?:\s+[a-z]+)?)`)
)

// unitWords are measure words sellers append to names ("2 maheu bottles").
var unitWords = map[string]struct{}{
	"liter": {}, "liters": {}, "litre": {}, "litres": {},
	"kg": {}, "kgs": {}, "g": {}, "ml": {},
	"bottle": {}, "bottles": {}, "pack": {}, "packs": {},
	"packet": {}, "packets": {}, "piece": {}, "pieces": {},
	"can": {}, "cans": {}, "bar": {}, "bars": {}, "loaves": {},
}

// currencyWords never belong in a product name captured by the fallback.
var currencyWords = map[string]struct{}{
	"dollar": {}, "dollars": {}, "usd": {}, "cent": {}, "cents": {},
	"price": {}, "each": {}, "total": {}, "bucks": {},
}

// productKeywords drives the conversational strategy: names we recognize even
// in messages with no usable structure.
var productKeywords = []string{
	"bread", "milk", "sugar", "maheu", "mazoe", "rice", "salt", "soap",
	"eggs", "flour", "oil", "juice", "drink", "maputi", "matches", "candles",
}

func stripUnitWords(name string) string {
	words := strings.Fields(name)
	for len(words) > 1 {
		last := strings.ToLower(words[len(words)-1])
		if _, ok := unitWords[last]; !ok {
			break
		}
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// parseStructured matches "<qty> [x] <name> @ <price>" per segment.
// Confidence is the fraction of segments that matched.
func parseStructured(text string) Result {
	segs := splitSegments(text)
	var items []entity.ParsedLineItem
	for _, seg := range segs {
		m := structuredRe.FindStringSubmatch(seg)
		if m == nil {
			continue
		}
		qty, _ := strconv.Atoi(m[1])
		price, err := decimal.NewFromString(m[3])
		if err != nil {
			continue
		}
		item, err := entity.NewParsedLineItem(strings.TrimSpace(m[2]), qty, &price, constants.PriceSourceProvided, seg)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return Result{Strategy: "structured", Items: items, Confidence: segmentConfidence(len(items), len(segs))}
}

// parseSimple matches "<qty> [x] <name>" with no price; prices come from the
// catalog later.
func parseSimple(text string) Result {
	segs := splitSegments(text)
	var items []entity.ParsedLineItem
	for _, seg := range segs {
		m := simpleRe.FindStringSubmatch(seg)
		if m == nil {
			continue
		}
		qty, _ := strconv.Atoi(m[1])
		item, err := entity.NewParsedLineItem(strings.TrimSpace(m[2]), qty, nil, constants.PriceSourceDatabase, seg)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return Result{Strategy: "simple", Items: items, Confidence: segmentConfidence(len(items), len(segs))}
}

// parseNaturalLanguage handles looser phrasings: multi-word names, connector
// words before the price, implicit quantity 1, unit words after the name and
// dictation typos. Confidence is fixed at 0.7 when anything was found.
func parseNaturalLanguage(text string) Result {
	segs := splitSegments(text)
	var items []entity.ParsedLineItem
	for _, seg := range segs {
		var (
			qty     int
			name    string
			price   *decimal.Decimal
			matched bool
		)
		if m := nlQtyNamePriceRe.FindStringSubmatch(seg); m != nil {
			qty, _ = strconv.Atoi(m[1])
			name = m[2]
			if p, err := decimal.NewFromString(m[3]); err == nil {
				price = &p
				matched = true
			}
		} else if m := nlNamePriceRe.FindStringSubmatch(seg); m != nil {
			qty = 1
			name = m[1]
			if p, err := decimal.NewFromString(m[2]); err == nil {
				price = &p
				matched = true
			}
		} else if m := nlQtyNameRe.FindStringSubmatch(seg); m != nil {
			qty, _ = strconv.Atoi(m[1])
			name = m[2]
			matched = true
		}
		if !matched {
			continue
		}
		name = correctName(stripUnitWords(strings.TrimSpace(name)))
		source := constants.PriceSourceDatabase
		if price != nil {
			source = constants.PriceSourceProvided
		}
		item, err := entity.NewParsedLineItem(name, qty, price, source, seg)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	conf := 0.0
	if len(items) > 0 {
		conf = 0.7
	}
	return Result{Strategy: "natural_language", Items: items, Confidence: conf}
}

// parseConversational scans for known product keywords, pairing each with a
// preceding quantity when present, else assuming one unit. Confidence is a
// fixed 0.5 when anything was found.
func parseConversational(text string) Result {
	words := strings.Fields(strings.ToLower(text))
	var items []entity.ParsedLineItem
	for i, raw := range words {
		w := strings.Trim(raw, ",.;!?")
		if !isProductKeyword(w) {
			continue
		}
		qty := 1
		if i > 0 {
			prev := strings.Trim(words[i-1], ",.;!?")
			if n, err := strconv.Atoi(prev); err == nil && n > 0 {
				qty = n
			}
		}
		item, err := entity.NewParsedLineItem(w, qty, nil, constants.PriceSourceDatabase, w)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	conf := 0.0
	if len(items) > 0 {
		conf = 0.5
	}
	return Result{Strategy: "conversational", Items: items, Confidence: conf}
}

// parseFallback is the last resort: any "<number> <word(s)>" pair, discarding
// currency-looking words. Only consulted when every other strategy came back
// empty.
func parseFallback(text string) Result {
	var items []entity.ParsedLineItem
	for _, m := range fallbackRe.FindAllStringSubmatch(text, -1) {
		qty, _ := strconv.Atoi(m[1])
		var kept []string
		for _, w := range strings.Fields(m[2]) {
			if _, currency := currencyWords[strings.ToLower(w)]; !currency {
				kept = append(kept, w)
			}
		}
		if len(kept) == 0 {
			continue
		}
		item, err := entity.NewParsedLineItem(strings.Join(kept, " "), qty, nil, constants.PriceSourceDatabase, m[0])
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	conf := 0.0
	if len(items) > 0 {
		conf = 0.3
	}
	return Result{Strategy: "fallback", Items: items, Confidence: conf}
}

func isProductKeyword(w string) bool {
	for _, kw := range productKeywords {
		if w == kw {
			return true
		}
	}
	return false
}

func segmentConfidence(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}
