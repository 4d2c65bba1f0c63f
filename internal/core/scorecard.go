package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// HolesPerRound is the number of holes on a full scorecard.
	HolesPerRound = 18

	// FrontNineEnd is the last hole of the front nine ("out").
	FrontNineEnd = 9

	// DefaultStroke substitutes for missing or non-numeric par/score input
	// at the data-entry boundary.
	DefaultStroke = 4
)

type (
	// Date is a calendar date; the time component is always midnight UTC.
	Date struct {
		time.Time
	}

	// Hole records par and strokes taken for one hole of a round.
	Hole struct {
		Number int
		Par    int
		Score  int
	}

	// Scorecard is one recorded round of golf. ID is assigned by the
	// scorecard API and is empty on drafts that have not been created yet.
	Scorecard struct {
		ID         string
		CourseName string
		DatePlayed Date
		Weather    string
		Notes      string
		Holes      []Hole
	}
)

var (
	ErrEmptyCourseName = errors.New("empty course name")
	ErrFutureDate      = errors.New("date played is in the future")
	ErrZeroDate        = errors.New("date played cannot be zero")
	ErrHoleNumber      = errors.New("hole number out of range")
	ErrDuplicateHole   = errors.New("duplicate hole number")
	ErrInvalidPar      = errors.New("par must be positive")
	ErrInvalidScore    = errors.New("score must be positive")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// String renders the wire format (YYYY-MM-DD).
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Display renders the human form used on cards, e.g. "Mar 1, 2025".
func (d Date) Display() string {
	return d.Format("Jan 2, 2006")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// ParseStroke converts par/score form input to a stroke count. Missing or
// non-numeric input is coerced to DefaultStroke rather than rejected; this
// mirrors the lenient data-entry behavior the dashboard has always had.
func ParseStroke(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return DefaultStroke
	}
	return n
}

func (h Hole) Validate() error {
	if h.Number < 1 || h.Number > HolesPerRound {
		return fmt.Errorf("hole %d: %w", h.Number, ErrHoleNumber)
	}
	if h.Par <= 0 {
		return fmt.Errorf("hole %d: %w", h.Number, ErrInvalidPar)
	}
	if h.Score <= 0 {
		return fmt.Errorf("hole %d: %w", h.Number, ErrInvalidScore)
	}
	return nil
}

// Validate checks a scorecard for structural problems. A partial hole list
// is allowed (totals then undercount); duplicate hole numbers are not.
func (sc Scorecard) Validate() error {
	if strings.TrimSpace(sc.CourseName) == "" {
		return ErrEmptyCourseName
	}
	if err := sc.DatePlayed.Validate(); err != nil {
		return err
	}
	if sc.DatePlayed.After(time.Now()) {
		return ErrFutureDate
	}
	seen := make(map[int]bool, len(sc.Holes))
	for _, h := range sc.Holes {
		if err := h.Validate(); err != nil {
			return err
		}
		if seen[h.Number] {
			return fmt.Errorf("hole %d: %w", h.Number, ErrDuplicateHole)
		}
		seen[h.Number] = true
	}
	return nil
}

// Clone returns a deep copy. Stores hand out clones so that callers can
// never mutate the authoritative list through a shared holes slice.
func (sc Scorecard) Clone() Scorecard {
	out := sc
	if sc.Holes != nil {
		out.Holes = make([]Hole, len(sc.Holes))
		copy(out.Holes, sc.Holes)
	}
	return out
}

// DefaultPar returns the typical par for a hole on the create form:
// par 3 on holes 3, 6, 12 and 16, par 5 on 5, 7, 13 and 18, par 4 otherwise.
func DefaultPar(number int) int {
	switch number {
	case 3, 6, 12, 16:
		return 3
	case 5, 7, 13, 18:
		return 5
	default:
		return 4
	}
}
