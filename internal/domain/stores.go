package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BeliefSnapshot is the confirmed-innocent set computed after one update.
type BeliefSnapshot struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"session_id"`
	Day        int       `json:"day"`
	Confirmed  []Player  `json:"confirmed"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Decision records one resolved action.
type Decision struct {
	ID         uuid.UUID  `json:"id"`
	SessionID  uuid.UUID  `json:"session_id"`
	Day        int        `json:"day"`
	Action     ActionKind `json:"action"`
	Target     Player     `json:"target"`
	Tier       Tier       `json:"tier"`
	Changed    bool       `json:"changed"`
	RecordedAt time.Time  `json:"recorded_at"`
}

// DiagnosticsStore persists snapshots and decisions for offline analysis.
// It is never required for belief computation.
type DiagnosticsStore interface {
	CreateSnapshot(ctx context.Context, s *BeliefSnapshot) error
	CreateDecision(ctx context.Context, d *Decision) error
	ListSnapshots(ctx context.Context, sessionID uuid.UUID) ([]BeliefSnapshot, error)
}
