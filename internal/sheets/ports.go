// Package sheets defines the outbound port for archiving rounds.
package sheets

import (
	"context"

	"fairway/internal/core"
)

// RoundArchiver appends a finished round to an external archive and
// returns a reference to where it landed.
type RoundArchiver interface {
	AppendRound(ctx context.Context, sc core.Scorecard) (rowRef string, err error)
}
