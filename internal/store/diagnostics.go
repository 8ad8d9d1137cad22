package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Harshitk-cp/wolfmind/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DiagnosticsStore struct {
	db *pgxpool.Pool
}

func NewDiagnosticsStore(db *pgxpool.Pool) *DiagnosticsStore {
	return &DiagnosticsStore{db: db}
}

func (s *DiagnosticsStore) CreateSnapshot(ctx context.Context, b *domain.BeliefSnapshot) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO belief_snapshots (id, session_id, day, confirmed, recorded_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.SessionID, b.Day, toInt32s(b.Confirmed), b.RecordedAt,
	)
	return wrapWriteErr("insert belief snapshot", err)
}

func (s *DiagnosticsStore) CreateDecision(ctx context.Context, d *domain.Decision) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO decisions (id, session_id, day, action, target, tier, changed, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		d.ID, d.SessionID, d.Day, string(d.Action), int32(d.Target), int32(d.Tier), d.Changed, d.RecordedAt,
	)
	return wrapWriteErr("insert decision", err)
}

// ListSnapshots returns a session's snapshots oldest first. Sessions are
// reaped from memory long before their diagnostics, so an unknown session
// simply has none.
func (s *DiagnosticsStore) ListSnapshots(ctx context.Context, sessionID uuid.UUID) ([]domain.BeliefSnapshot, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, session_id, day, confirmed, recorded_at
		 FROM belief_snapshots WHERE session_id = $1
		 ORDER BY recorded_at`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.BeliefSnapshot
	for rows.Next() {
		var b domain.BeliefSnapshot
		var confirmed []int32
		var recordedAt time.Time
		if err := rows.Scan(&b.ID, &b.SessionID, &b.Day, &confirmed, &recordedAt); err != nil {
			return nil, err
		}
		b.Confirmed = fromInt32s(confirmed)
		b.RecordedAt = recordedAt
		results = append(results, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func wrapWriteErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func toInt32s(ps []domain.Player) []int32 {
	out := make([]int32, len(ps))
	for i, p := range ps {
		out[i] = int32(p)
	}
	return out
}

func fromInt32s(xs []int32) []domain.Player {
	out := make([]domain.Player, len(xs))
	for i, x := range xs {
		out[i] = domain.Player(x)
	}
	return out
}
