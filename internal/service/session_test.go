package service

import (
	"sync"
	"testing"
	"time"

	"github.com/Harshitk-cp/wolfmind/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func newTestSessions() *SessionService {
	return NewSessionService(func() Rand { return firstRand{} }, zap.NewNop())
}

func TestSessionService_Lifecycle(t *testing.T) {
	svc := newTestSessions()

	info, err := svc.Create(domain.RoleVillager)
	require.NoError(t, err)
	assert.False(t, info.Initialized)
	assert.Equal(t, 1, svc.Count())

	_, err = svc.Talk(info.ID)
	assert.ErrorIs(t, err, ErrSessionNotStarted)

	game := say(newGame(1, 5), claim(3, domain.RoleSeer), divined(3, 1, wolf))
	require.NoError(t, svc.Initialize(info.ID, game, domain.GameSetting{PlayerNum: 5}))
	require.NoError(t, svc.DayStart(info.ID))
	require.NoError(t, svc.Update(info.ID, game))

	u, err := svc.Talk(info.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteDeclaration(3), u)

	target, err := svc.Vote(info.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Player(3), target)

	view, err := svc.Beliefs(info.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Player(3), view.Committed[domain.ActionVote])

	got, err := svc.Get(info.ID)
	require.NoError(t, err)
	assert.True(t, got.Initialized)

	require.NoError(t, svc.Finish(info.ID))
	require.NoError(t, svc.Delete(info.ID))
	assert.Equal(t, 0, svc.Count())
	assert.ErrorIs(t, svc.Delete(info.ID), ErrSessionNotFound)
}

func TestSessionService_UnknownRole(t *testing.T) {
	svc := newTestSessions()
	_, err := svc.Create("FREEMASON")
	assert.ErrorIs(t, err, ErrUnknownRole)
	assert.Equal(t, 0, svc.Count())
}

func TestSessionService_Guard(t *testing.T) {
	svc := newTestSessions()
	game := newGame(1, 4)

	villager, err := svc.Create(domain.RoleSeer)
	require.NoError(t, err)
	require.NoError(t, svc.Initialize(villager.ID, game, domain.GameSetting{}))
	_, err = svc.Guard(villager.ID)
	assert.ErrorIs(t, err, ErrActionNotSupported)

	guard, err := svc.Create(domain.RoleBodyguard)
	require.NoError(t, err)
	_, err = svc.Guard(guard.ID)
	assert.ErrorIs(t, err, ErrSessionNotStarted)

	require.NoError(t, svc.Initialize(guard.ID, game, domain.GameSetting{}))
	target, err := svc.Guard(guard.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Player(2), target)
}

func TestSessionService_NotFound(t *testing.T) {
	svc := newTestSessions()
	id := uuid.New()

	_, err := svc.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.Initialize(id, newGame(1, 3), domain.GameSetting{}), ErrSessionNotFound)
	_, err = svc.Vote(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Beliefs(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_ReapIdle(t *testing.T) {
	svc := newTestSessions()
	svc.SetIdleTimeout(10 * time.Minute)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	svc.now = func() time.Time { return now }

	stale, err := svc.Create(domain.RoleVillager)
	require.NoError(t, err)

	now = base.Add(8 * time.Minute)
	fresh, err := svc.Create(domain.RoleVillager)
	require.NoError(t, err)

	now = base.Add(12 * time.Minute)
	assert.Equal(t, 1, svc.ReapIdle())

	_, err = svc.Get(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Get(fresh.ID)
	assert.NoError(t, err, "access refreshes the idle clock")

	now = base.Add(21 * time.Minute)
	assert.Equal(t, 0, svc.ReapIdle())
	now = base.Add(23 * time.Minute)
	assert.Equal(t, 1, svc.ReapIdle())
}

func TestSessionService_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := newTestSessions()
	svc.SetInterval(5 * time.Millisecond)
	svc.SetIdleTimeout(time.Nanosecond)

	_, err := svc.Create(domain.RoleVillager)
	require.NoError(t, err)

	svc.Start()
	assert.Eventually(t, func() bool { return svc.Count() == 0 }, time.Second, 5*time.Millisecond)
	svc.Stop()
}

func TestSessionService_RecorderObservesSessions(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := newTestSessions()
	rec := NewRecorder(nil, 16, zap.NewNop())
	svc.SetRecorder(rec)
	rec.Start()

	info, err := svc.Create(domain.RoleBodyguard)
	require.NoError(t, err)
	game := newGame(1, 4)
	require.NoError(t, svc.Initialize(info.ID, game, domain.GameSetting{}))
	require.NoError(t, svc.Update(info.ID, game))
	_, err = svc.Guard(info.ID)
	require.NoError(t, err)

	rec.Stop()
	assert.Equal(t, int64(2), rec.Written())
}

func TestSessionService_ConcurrentSessions(t *testing.T) {
	svc := NewSessionService(func() Rand { return seeded(7) }, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			info, err := svc.Create(domain.RoleVillager)
			if !assert.NoError(t, err) {
				return
			}
			game := newGame(1, 6)
			assert.NoError(t, svc.Initialize(info.ID, game, domain.GameSetting{}))
			for day := 0; day < 3; day++ {
				assert.NoError(t, svc.DayStart(info.ID))
				assert.NoError(t, svc.Update(info.ID, game))
				_, err := svc.Talk(info.ID)
				assert.NoError(t, err)
				p, err := svc.Vote(info.ID)
				assert.NoError(t, err)
				assert.NotEqual(t, domain.Player(1), p)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, svc.Count())
}
