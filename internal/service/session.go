package service

import (
	"sync"
	"time"

	"github.com/Harshitk-cp/wolfmind/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultSessionIdleTimeout  = 30 * time.Minute
	DefaultSessionReapInterval = time.Minute
)

// SessionInfo describes a hosted agent.
type SessionInfo struct {
	ID           uuid.UUID   `json:"id"`
	Role         domain.Role `json:"role"`
	Initialized  bool        `json:"initialized"`
	CreatedAt    time.Time   `json:"created_at"`
	LastActiveAt time.Time   `json:"last_active_at"`
}

type session struct {
	mu     sync.Mutex
	info   SessionInfo
	player Player
}

// SessionService hosts one agent per game session. Calls for the same session
// are serialized; the agent itself is never used concurrently.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	newRand  func() Rand
	recorder *Recorder
	logger   *zap.Logger
	now      func() time.Time

	idleTimeout time.Duration
	interval    time.Duration
	stopCh      chan struct{}
	wg          sync.WaitGroup
}

func NewSessionService(newRand func() Rand, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessions:    make(map[uuid.UUID]*session),
		newRand:     newRand,
		logger:      logger,
		now:         time.Now,
		idleTimeout: DefaultSessionIdleTimeout,
		interval:    DefaultSessionReapInterval,
		stopCh:      make(chan struct{}),
	}
}

// SetRecorder routes agent observations to r.
func (s *SessionService) SetRecorder(r *Recorder) {
	s.recorder = r
}

func (s *SessionService) SetIdleTimeout(d time.Duration) {
	s.idleTimeout = d
}

func (s *SessionService) SetInterval(d time.Duration) {
	s.interval = d
}

// Start reaps idle sessions on a periodic schedule in a background goroutine.
func (s *SessionService) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Info("session reaper started",
			zap.Duration("interval", s.interval),
			zap.Duration("idle_timeout", s.idleTimeout))

		for {
			select {
			case <-ticker.C:
				if n := s.ReapIdle(); n > 0 {
					s.logger.Info("reaped idle sessions", zap.Int("count", n))
				}
			case <-s.stopCh:
				s.logger.Info("session reaper stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the reaper.
func (s *SessionService) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

// ReapIdle removes sessions that have not been used within the idle timeout.
func (s *SessionService) ReapIdle() int {
	cutoff := s.now().Add(-s.idleTimeout)

	s.mu.Lock()
	defer s.mu.Unlock()

	reaped := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.info.LastActiveAt.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			reaped++
		}
	}
	return reaped
}

// Create starts hosting a new agent playing role.
func (s *SessionService) Create(role domain.Role) (*SessionInfo, error) {
	player, err := NewPlayer(role, s.newRand(), s.logger)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sess := &session{
		info: SessionInfo{
			ID:           uuid.New(),
			Role:         role,
			CreatedAt:    now,
			LastActiveAt: now,
		},
		player: player,
	}
	if s.recorder != nil {
		if o, ok := player.(interface{ SetObserver(Observer) }); ok {
			o.SetObserver(s.recorder.ForSession(sess.info.ID))
		}
	}

	s.mu.Lock()
	s.sessions[sess.info.ID] = sess
	s.mu.Unlock()

	s.logger.Info("session created",
		zap.String("session_id", sess.info.ID.String()),
		zap.String("role", string(role)))

	info := sess.info
	return &info, nil
}

func (s *SessionService) Get(id uuid.UUID) (*SessionInfo, error) {
	var info SessionInfo
	err := s.with(id, false, func(sess *session) error {
		info = sess.info
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *SessionService) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionService) Initialize(id uuid.UUID, info *domain.GameInfo, setting domain.GameSetting) error {
	return s.with(id, false, func(sess *session) error {
		sess.player.Initialize(info, setting)
		sess.info.Initialized = true
		return nil
	})
}

func (s *SessionService) DayStart(id uuid.UUID) error {
	return s.with(id, true, func(sess *session) error {
		sess.player.DayStart()
		return nil
	})
}

func (s *SessionService) Update(id uuid.UUID, info *domain.GameInfo) error {
	return s.with(id, true, func(sess *session) error {
		sess.player.Update(info)
		return nil
	})
}

func (s *SessionService) Talk(id uuid.UUID) (domain.Utterance, error) {
	var u domain.Utterance
	err := s.with(id, true, func(sess *session) error {
		u = sess.player.Talk()
		return nil
	})
	return u, err
}

func (s *SessionService) Vote(id uuid.UUID) (domain.Player, error) {
	var p domain.Player
	err := s.with(id, true, func(sess *session) error {
		p = sess.player.Vote()
		return nil
	})
	return p, err
}

// Guard fails with ErrActionNotSupported when the session's role cannot guard.
func (s *SessionService) Guard(id uuid.UUID) (domain.Player, error) {
	var p domain.Player
	err := s.with(id, true, func(sess *session) error {
		g, ok := sess.player.(Guarder)
		if !ok {
			return ErrActionNotSupported
		}
		p = g.Guard()
		return nil
	})
	return p, err
}

func (s *SessionService) Beliefs(id uuid.UUID) (BeliefView, error) {
	var view BeliefView
	err := s.with(id, false, func(sess *session) error {
		view = sess.player.Beliefs()
		return nil
	})
	return view, err
}

func (s *SessionService) Finish(id uuid.UUID) error {
	return s.with(id, true, func(sess *session) error {
		sess.player.Finish()
		return nil
	})
}

// with runs fn while holding the session's lock. When started is true the
// session must have been initialized.
func (s *SessionService) with(id uuid.UUID, started bool, fn func(sess *session) error) error {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if started && !sess.info.Initialized {
		return ErrSessionNotStarted
	}
	sess.info.LastActiveAt = s.now()
	return fn(sess)
}
