package amqp

import (
	"testing"
	"time"
)

func TestNewRoundEvent(t *testing.T) {
	ev := NewRoundEvent("abc-123", OpCreated, "Pebble Beach")

	if ev.ScorecardID != "abc-123" {
		t.Errorf("ScorecardID = %v, want abc-123", ev.ScorecardID)
	}
	if ev.Op != OpCreated {
		t.Errorf("Op = %v, want %v", ev.Op, OpCreated)
	}
	if ev.CourseName != "Pebble Beach" {
		t.Errorf("CourseName = %v, want Pebble Beach", ev.CourseName)
	}
	if ev.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(ev.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestRoundEvent_JSON(t *testing.T) {
	timestamp := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ev := &RoundEvent{
		ScorecardID: "abc-123",
		Op:          OpUpdated,
		CourseName:  "Augusta National",
		Timestamp:   timestamp,
	}

	jsonBytes, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := RoundEventFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("RoundEventFromJSON() error = %v", err)
	}

	if parsed.ScorecardID != ev.ScorecardID {
		t.Errorf("Parsed ScorecardID = %v, want %v", parsed.ScorecardID, ev.ScorecardID)
	}
	if parsed.Op != ev.Op {
		t.Errorf("Parsed Op = %v, want %v", parsed.Op, ev.Op)
	}
	if !parsed.Timestamp.Equal(ev.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, ev.Timestamp)
	}
}

func TestRoundEvent_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"scorecard_id": 42, "op": "created"}`)

	if _, err := RoundEventFromJSON(invalidJSON); err == nil {
		t.Error("RoundEventFromJSON() should fail with invalid JSON")
	}
}
