// Package parse turns a free-form dictated sale message into line items using
// a fixed list of competing strategies with confidence scoring.
package parse

import (
	"regexp"
	"strings"
)

var (
	// Leading verbs sellers dictate before the items ("sold 2 bread ...").
	leadingVerbRe = regexp.MustCompile(`(?i)^\s*(?:i\s+|we\s+|customer\s+)?(?:sold|sell|sale of|bought|buy|purchased?)\s+`)
	// Natural connectors between a name and its price fold into the canonical
	// price separator: "bread for 1.50" -> "bread @ 1.50".
	connectorRe = regexp.MustCompile(`(?i)\b(?:by|for|at)\s+\$?(\d+(?:\.\d+)?)`)
	// Trailing "each": "bread 1.50 each" -> "bread @ 1.50".
	eachRe    = regexp.MustCompile(`(?i)\$?(\d+(?:\.\d+)?)\s+each\b`)
	andRe     = regexp.MustCompile(`(?i)\s+and\s+`)
	spaceRe   = regexp.MustCompile(`\s+`)
	segmentRe = regexp.MustCompile(`[,;]`)
)

// Normalize rewrites a raw utterance into canonical form. It is a pure
// function; input that matches nothing comes back unchanged apart from
// whitespace collapsing.
func Normalize(message string) string {
	s := strings.ReplaceAll(message, "\n", ", ")
	s = leadingVerbRe.ReplaceAllString(strings.TrimSpace(s), "")
	s = andRe.ReplaceAllString(s, ", ")
	s = eachRe.ReplaceAllString(s, "@ $1")
	s = connectorRe.ReplaceAllString(s, "@ $1")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// splitSegments breaks a normalized message into per-item segments.
func splitSegments(text string) []string {
	raw := segmentRe.Split(text, -1)
	segs := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
