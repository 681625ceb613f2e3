package match

import (
	"log/slog"
	"sort"

	"github.com/musika/salescore/internal/entity"
)

// DefaultThreshold is the score a candidate must exceed to count as a match.
const DefaultThreshold = 0.3

// Resolver maps dictated item names to catalog products.
type Resolver struct {
	threshold float64
	logger    *slog.Logger
}

func NewResolver(threshold float64, logger *slog.Logger) *Resolver {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Resolver{threshold: threshold, logger: logger}
}

// score combines all heuristics by taking the maximum. Exact equality
// short-circuits everything else.
func score(input, candidate string) float64 {
	if input == candidate && input != "" {
		return 1
	}
	best := 0.0
	for _, s := range []float64{
		scoreContainment(input, candidate),
		scorePrimaryKeyword(input, candidate),
		scoreWordOverlap(input, candidate),
		scoreCharJaccard(input, candidate),
		scoreVariation(input, candidate),
		scoreBrandCoOccurrence(input, candidate),
	} {
		if s > best {
			best = s
		}
	}
	return best
}

// Resolve returns the best-matching product and its score, or nil when no
// candidate scores above the threshold. Ties keep the first product in
// catalog order.
func (r *Resolver) Resolve(name string, products []entity.Product) (*entity.Product, float64) {
	input := NormalizeName(name)
	var best *entity.Product
	bestScore := 0.0
	for i := range products {
		s := score(input, NormalizeName(products[i].Name))
		if s > bestScore {
			bestScore = s
			best = &products[i]
		}
		if bestScore == 1 {
			break
		}
	}
	if best == nil || bestScore <= r.threshold {
		r.logger.Debug("no catalog match", "name", name, "best_score", bestScore)
		return nil, bestScore
	}
	r.logger.Debug("resolved product", "name", name, "product", best.Name, "score", bestScore)
	return best, bestScore
}

// Suggest returns up to limit catalog names ranked by similarity to the
// dictated name, for "did you mean" messages.
func (r *Resolver) Suggest(name string, products []entity.Product, limit int) []string {
	input := NormalizeName(name)
	type scored struct {
		name  string
		score float64
	}
	ranked := make([]scored, 0, len(products))
	for i := range products {
		s := score(input, NormalizeName(products[i].Name))
		if s > 0 {
			ranked = append(ranked, scored{name: products[i].Name, score: s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	names := make([]string, len(ranked))
	for i, s := range ranked {
		names[i] = s.name
	}
	return names
}
