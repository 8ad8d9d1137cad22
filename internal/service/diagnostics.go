package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Harshitk-cp/wolfmind/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultDiagnosticsBuffer = 256
	diagnosticsWriteTimeout  = 5 * time.Second
)

var ErrDiagnosticsDisabled = errors.New("diagnostics persistence is disabled")

// Observer receives what an agent derived and decided. Implementations must
// return immediately and must not fail.
type Observer interface {
	ObserveBeliefs(s domain.BeliefSnapshot)
	ObserveDecision(d domain.Decision)
}

type nopObserver struct{}

func (nopObserver) ObserveBeliefs(domain.BeliefSnapshot) {}
func (nopObserver) ObserveDecision(domain.Decision)      {}

type diagnosticRecord struct {
	snapshot *domain.BeliefSnapshot
	decision *domain.Decision
}

// Recorder writes observations to a DiagnosticsStore from a background
// worker. Records that do not fit in the buffer are dropped. Store errors are
// logged and swallowed. Without a store, records are only logged.
type Recorder struct {
	store  domain.DiagnosticsStore
	logger *zap.Logger

	queue   chan diagnosticRecord
	stopCh  chan struct{}
	wg      sync.WaitGroup
	dropped atomic.Int64
	written atomic.Int64
}

func NewRecorder(store domain.DiagnosticsStore, bufferSize int, logger *zap.Logger) *Recorder {
	if bufferSize <= 0 {
		bufferSize = DefaultDiagnosticsBuffer
	}
	return &Recorder{
		store:  store,
		logger: logger,
		queue:  make(chan diagnosticRecord, bufferSize),
		stopCh: make(chan struct{}),
	}
}

// Start runs the writer in a background goroutine.
func (r *Recorder) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.logger.Info("diagnostics recorder started", zap.Bool("persistent", r.store != nil))

		for {
			select {
			case rec := <-r.queue:
				r.write(rec)
			case <-r.stopCh:
				r.drain()
				r.logger.Info("diagnostics recorder stopped",
					zap.Int64("written", r.written.Load()),
					zap.Int64("dropped", r.dropped.Load()))
				return
			}
		}
	}()
}

// Stop flushes queued records and waits for the writer to exit.
func (r *Recorder) Stop() {
	close(r.stopCh)
	r.wg.Wait()
}

func (r *Recorder) drain() {
	for {
		select {
		case rec := <-r.queue:
			r.write(rec)
		default:
			return
		}
	}
}

// ForSession returns an Observer that stamps records with sessionID.
func (r *Recorder) ForSession(sessionID uuid.UUID) Observer {
	return &sessionObserver{recorder: r, sessionID: sessionID}
}

// Snapshots lists the persisted snapshots of a session, which may already
// have been reaped.
func (r *Recorder) Snapshots(ctx context.Context, sessionID uuid.UUID) ([]domain.BeliefSnapshot, error) {
	if r.store == nil {
		return nil, ErrDiagnosticsDisabled
	}
	snaps, err := r.store.ListSnapshots(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snaps, nil
}

func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

func (r *Recorder) Written() int64 {
	return r.written.Load()
}

func (r *Recorder) enqueue(rec diagnosticRecord) {
	select {
	case r.queue <- rec:
	default:
		r.dropped.Add(1)
		r.logger.Warn("diagnostics buffer full, dropping record")
	}
}

func (r *Recorder) write(rec diagnosticRecord) {
	if r.store == nil {
		switch {
		case rec.snapshot != nil:
			r.logger.Debug("confirmed innocent",
				zap.String("session_id", rec.snapshot.SessionID.String()),
				zap.Int("day", rec.snapshot.Day),
				zap.Any("confirmed", rec.snapshot.Confirmed))
		case rec.decision != nil:
			r.logger.Debug("decision",
				zap.String("session_id", rec.decision.SessionID.String()),
				zap.String("action", string(rec.decision.Action)),
				zap.Stringer("target", rec.decision.Target),
				zap.Stringer("tier", rec.decision.Tier),
				zap.Bool("changed", rec.decision.Changed))
		}
		r.written.Add(1)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), diagnosticsWriteTimeout)
	defer cancel()

	var err error
	switch {
	case rec.snapshot != nil:
		err = r.store.CreateSnapshot(ctx, rec.snapshot)
	case rec.decision != nil:
		err = r.store.CreateDecision(ctx, rec.decision)
	}
	if err != nil {
		r.logger.Warn("failed to persist diagnostics", zap.Error(err))
		return
	}
	r.written.Add(1)
}

type sessionObserver struct {
	recorder  *Recorder
	sessionID uuid.UUID
}

func (o *sessionObserver) ObserveBeliefs(s domain.BeliefSnapshot) {
	s.SessionID = o.sessionID
	if s.RecordedAt.IsZero() {
		s.RecordedAt = time.Now()
	}
	s.Confirmed = append([]domain.Player(nil), s.Confirmed...)
	o.recorder.enqueue(diagnosticRecord{snapshot: &s})
}

func (o *sessionObserver) ObserveDecision(d domain.Decision) {
	d.SessionID = o.sessionID
	if d.RecordedAt.IsZero() {
		d.RecordedAt = time.Now()
	}
	o.recorder.enqueue(diagnosticRecord{decision: &d})
}
