package service

import (
	"math/rand"

	"github.com/Harshitk-cp/wolfmind/internal/domain"
	"go.uber.org/zap"
)

// firstRand always picks the first candidate.
type firstRand struct{}

func (firstRand) Intn(int) int { return 0 }

// lastRand always picks the last candidate.
type lastRand struct{}

func (lastRand) Intn(n int) int { return n - 1 }

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// newGame builds a snapshot with players 1..n, all alive except dead.
func newGame(me domain.Player, n int, dead ...domain.Player) *domain.GameInfo {
	info := &domain.GameInfo{
		Day:       1,
		Me:        me,
		StatusMap: make(map[domain.Player]domain.Status, n),
	}
	for i := 1; i <= n; i++ {
		p := domain.Player(i)
		info.AgentList = append(info.AgentList, p)
		info.StatusMap[p] = domain.StatusAlive
	}
	for _, p := range dead {
		info.StatusMap[p] = domain.StatusDead
	}
	return info
}

// say appends talks to the snapshot's talk list and returns it.
func say(info *domain.GameInfo, talks ...domain.Talk) *domain.GameInfo {
	for _, t := range talks {
		t.Idx = len(info.TalkList)
		t.Day = info.Day
		info.TalkList = append(info.TalkList, t)
	}
	return info
}

func claim(p domain.Player, role domain.Role) domain.Talk {
	return domain.Talk{Agent: p, Content: domain.ComingOut{Role: role}}
}

func divined(reporter, target domain.Player, result domain.Species) domain.Talk {
	return domain.Talk{Agent: reporter, Content: domain.Divined{Target: target, Result: result}}
}

func identified(reporter, target domain.Player, result domain.Species) domain.Talk {
	return domain.Talk{Agent: reporter, Content: domain.Identified{Target: target, Result: result}}
}

func other(p domain.Player) domain.Talk {
	return domain.Talk{Agent: p, Content: domain.Other{Raw: "ESTIMATE"}}
}

// beliefsFrom feeds talks straight into a fresh store.
func beliefsFrom(info *domain.GameInfo) *BeliefStore {
	b := NewBeliefStore()
	NewSequencer(b).Scan(info)
	return b
}

func newTestVillager(rng Rand) *Villager {
	return NewVillager(rng, zap.NewNop())
}

func kill(info *domain.GameInfo, ps ...domain.Player) {
	for _, p := range ps {
		info.StatusMap[p] = domain.StatusDead
	}
}
