package service

import (
	"github.com/Harshitk-cp/wolfmind/internal/domain"
)

// BeliefStore holds what the agent has learned from other players' talk during
// one game. It is owned by a single agent and used sequentially.
type BeliefStore struct {
	claims          map[domain.Player]domain.Role
	divinations     []domain.Judge
	identifications []domain.Judge
}

func NewBeliefStore() *BeliefStore {
	return &BeliefStore{claims: make(map[domain.Player]domain.Role)}
}

// RecordClaim stores p's claimed role. A later claim replaces the earlier one:
// the store keeps only the player's latest coming-out.
func (b *BeliefStore) RecordClaim(p domain.Player, role domain.Role) {
	b.claims[p] = role
}

func (b *BeliefStore) RecordDivination(j domain.Judge) {
	b.divinations = append(b.divinations, j)
}

func (b *BeliefStore) RecordIdentification(j domain.Judge) {
	b.identifications = append(b.identifications, j)
}

func (b *BeliefStore) ClaimOf(p domain.Player) (domain.Role, bool) {
	r, ok := b.claims[p]
	return r, ok
}

// ClaimsOfRole returns the players whose current claim is role, ordered by identity.
func (b *BeliefStore) ClaimsOfRole(role domain.Role) []domain.Player {
	var out []domain.Player
	for p, r := range b.claims {
		if r == role {
			out = append(out, p)
		}
	}
	return domain.SortPlayers(out)
}

// Claims returns a copy of the claim map.
func (b *BeliefStore) Claims() map[domain.Player]domain.Role {
	out := make(map[domain.Player]domain.Role, len(b.claims))
	for p, r := range b.claims {
		out[p] = r
	}
	return out
}

// DivinationsBy returns p's divination reports in arrival order.
func (b *BeliefStore) DivinationsBy(p domain.Player) []domain.Judge {
	var out []domain.Judge
	for _, j := range b.divinations {
		if j.Reporter == p {
			out = append(out, j)
		}
	}
	return out
}

func (b *BeliefStore) Divinations() []domain.Judge {
	return append([]domain.Judge(nil), b.divinations...)
}

func (b *BeliefStore) Identifications() []domain.Judge {
	return append([]domain.Judge(nil), b.identifications...)
}

// Reset drops everything. Called when a new game starts.
func (b *BeliefStore) Reset() {
	b.claims = make(map[domain.Player]domain.Role)
	b.divinations = nil
	b.identifications = nil
}
