package amqp

import (
	"encoding/json"
	"time"
)

// Round event operations.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

// RoundEvent is a lightweight notification that a scorecard changed.
// Consumers fetch the full record from storage; the event carries only
// what is needed for routing and logging.
type RoundEvent struct {
	ScorecardID string    `json:"scorecard_id"`
	Op          string    `json:"op"`
	CourseName  string    `json:"course_name"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewRoundEvent creates an event stamped with the current time.
func NewRoundEvent(scorecardID, op, courseName string) *RoundEvent {
	return &RoundEvent{
		ScorecardID: scorecardID,
		Op:          op,
		CourseName:  courseName,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *RoundEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RoundEventFromJSON creates an event from JSON bytes.
func RoundEventFromJSON(data []byte) (*RoundEvent, error) {
	var ev RoundEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
