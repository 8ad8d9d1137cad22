package service

import (
	"github.com/Harshitk-cp/wolfmind/internal/domain"
)

// Rand is the uniform random source used for tie-breaks. *math/rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
}

// TargetTracker remembers the committed target for one action kind.
type TargetTracker struct {
	committed domain.Player
}

// Committed returns the current commitment, or PlayerNone.
func (t *TargetTracker) Committed() domain.Player {
	return t.committed
}

// Resolve keeps the committed target while it is alive and still a candidate,
// otherwise commits a uniform draw from candidates. It reports whether the
// commitment changed. With no candidates the commitment is left as is and
// PlayerNone is returned.
func (t *TargetTracker) Resolve(candidates []domain.Player, alive func(domain.Player) bool, rng Rand) (domain.Player, bool) {
	if len(candidates) == 0 {
		return domain.PlayerNone, false
	}
	if t.committed != domain.PlayerNone && alive(t.committed) && contains(candidates, t.committed) {
		return t.committed, false
	}
	t.committed = candidates[rng.Intn(len(candidates))]
	return t.committed, true
}

// Reset returns the tracker to the unset state. Only a new game does this.
func (t *TargetTracker) Reset() {
	t.committed = domain.PlayerNone
}

func contains(ps []domain.Player, p domain.Player) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
