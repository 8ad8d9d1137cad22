package service

import (
	"github.com/Harshitk-cp/wolfmind/internal/domain"
)

// ConfirmedInnocent derives the players the agent may treat as innocent from
// the current claims and divination reports.
//
// A divination target is confirmed when every current seer claimant has
// reported it HUMAN. A lone seer claimant is trusted by default, and so is a
// lone medium claimant. Contradictory claimants are never adjudicated: with two
// or more mediums neither is trusted, with two or more seers only unanimous
// targets count.
//
// The result is recomputed from scratch on every call, ordered by identity.
func ConfirmedInnocent(b *BeliefStore) []domain.Player {
	confirmed := make(map[domain.Player]struct{})

	seers := b.ClaimsOfRole(domain.RoleInvestigator)
	if len(seers) > 0 {
		isSeer := make(map[domain.Player]bool, len(seers))
		for _, s := range seers {
			isSeer[s] = true
		}

		// target -> distinct seer claimants that reported it HUMAN
		humanBy := make(map[domain.Player]map[domain.Player]struct{})
		for _, j := range b.divinations {
			if !isSeer[j.Reporter] || j.Result != domain.SpeciesHuman {
				continue
			}
			if humanBy[j.Target] == nil {
				humanBy[j.Target] = make(map[domain.Player]struct{})
			}
			humanBy[j.Target][j.Reporter] = struct{}{}
		}
		for target, reporters := range humanBy {
			if len(reporters) == len(seers) {
				confirmed[target] = struct{}{}
			}
		}

		if len(seers) == 1 {
			confirmed[seers[0]] = struct{}{}
		}
	}

	if mediums := b.ClaimsOfRole(domain.RolePostMortemInvestigator); len(mediums) == 1 {
		confirmed[mediums[0]] = struct{}{}
	}

	out := make([]domain.Player, 0, len(confirmed))
	for p := range confirmed {
		out = append(out, p)
	}
	return domain.SortPlayers(out)
}
