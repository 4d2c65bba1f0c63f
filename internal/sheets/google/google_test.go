package google

import (
	"fmt"
	"testing"
	"time"
)

func TestYearPrefixedName(t *testing.T) {
	year := time.Now().Year()
	tests := []struct {
		in   string
		want string
	}{
		{"Rounds", fmt.Sprintf("%d Rounds", year)},
		{"  Rounds  ", fmt.Sprintf("%d Rounds", year)},
		{"2025 Rounds", "2025 Rounds"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := yearPrefixedName(tt.in, year); got != tt.want {
			t.Errorf("yearPrefixedName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
