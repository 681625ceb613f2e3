package parse

import (
	"log/slog"

	"github.com/musika/salescore/internal/common"
)

// earlyExitConfidence stops the strategy sweep once a result is this good.
const earlyExitConfidence = 0.8

type strategy struct {
	name string
	run  func(string) Result
}

// Parser runs the ordered strategies over a normalized message and keeps the
// best-confidence non-empty result.
type Parser struct {
	strategies []strategy
	fallback   strategy
	logger     *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	return &Parser{
		strategies: []strategy{
			{name: "structured", run: parseStructured},
			{name: "simple", run: parseSimple},
			{name: "natural_language", run: parseNaturalLanguage},
			{name: "conversational", run: parseConversational},
		},
		fallback: strategy{name: "fallback", run: parseFallback},
		logger:   logger,
	}
}

// Parse normalizes the message and evaluates strategies in order, keeping the
// best non-empty result seen and stopping early once one clears the
// early-exit threshold. When every strategy (including the fallback) comes
// back empty it returns ErrParseFailure.
func (p *Parser) Parse(message string) (Result, error) {
	normalized := Normalize(message)

	var best Result
	for _, s := range p.strategies {
		res := s.run(normalized)
		if len(res.Items) == 0 {
			continue
		}
		if res.Confidence > best.Confidence {
			best = res
		}
		if best.Confidence > earlyExitConfidence {
			break
		}
	}
	if len(best.Items) == 0 {
		best = p.fallback.run(normalized)
	}
	if len(best.Items) == 0 {
		p.logger.Warn("no strategy parsed any items", "message", message)
		return Result{}, common.ErrParseFailure
	}
	p.logger.Debug("parsed sale message",
		"strategy", best.Strategy,
		"confidence", best.Confidence,
		"items", len(best.Items))
	return best, nil
}

// FormatHints are the canned reformatting suggestions returned alongside a
// parse failure.
func FormatHints() []string {
	return []string{
		"Try: 2 bread, 1 milk",
		"Try with prices: 2 bread @1.50, 1 milk @0.80",
		"Quantities first, one item per comma: 3x sugar, 2 soap",
	}
}
