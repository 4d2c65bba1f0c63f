package http

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// generateRequestID creates a unique request identifier for log correlation.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "req_unknown"
	}
	return "req_" + hex.EncodeToString(bytes)
}

// sanitizeInput strips control characters from user-provided text before it
// is stored or rendered.
func sanitizeInput(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r == '\n' || r == '\t' || r >= 32 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// scoreClass maps a hole's score against par to the CSS class coloring the
// cell: green under par, red over, with a stronger shade past 5 strokes.
func scoreClass(score, par int) string {
	switch {
	case score < par:
		return "score-under-par"
	case score > par && score > 5:
		return "score-over-par score-high"
	case score > par:
		return "score-over-par"
	default:
		return "score-par"
	}
}
