package service

import (
	"github.com/Harshitk-cp/wolfmind/internal/domain"
)

// Selection is the first non-empty tier of a cascade.
type Selection struct {
	Tier       domain.Tier
	Candidates []domain.Player
}

func (s Selection) Empty() bool {
	return len(s.Candidates) == 0
}

// FakeInvestigators returns the reporters that divined the agent itself as a
// werewolf. The agent knows its own species, so these reports are lies.
func FakeInvestigators(b *BeliefStore, me domain.Player) []domain.Player {
	var out []domain.Player
	for _, j := range b.divinations {
		if j.Target == me && j.Result == domain.SpeciesWerewolf {
			out = append(out, j.Reporter)
		}
	}
	return dedupe(out)
}

// VoteSelection picks the vote tier:
//  1. alive players divined WEREWOLF by a reporter that is not a fake investigator
//  2. the alive fake investigators
//  3. every other alive player
func VoteSelection(b *BeliefStore, info *domain.GameInfo) Selection {
	fakes := playerSet(FakeInvestigators(b, info.Me))

	var reportedWolves []domain.Player
	for _, j := range b.divinations {
		if !fakes[j.Reporter] && j.Result == domain.SpeciesWerewolf {
			reportedWolves = append(reportedWolves, j.Target)
		}
	}

	return firstNonEmpty(
		aliveOthers(info, reportedWolves),
		aliveOthers(info, keys(fakes)),
		aliveOthers(info, info.AgentList),
	)
}

// GuardSelection picks the guard tier:
//  1. alive players divined HUMAN by a reporter that is not a fake investigator
//  2. alive medium claimants
//  3. every other alive player
func GuardSelection(b *BeliefStore, info *domain.GameInfo) Selection {
	fakes := playerSet(FakeInvestigators(b, info.Me))

	var reportedHumans []domain.Player
	for _, j := range b.divinations {
		if !fakes[j.Reporter] && j.Result == domain.SpeciesHuman {
			reportedHumans = append(reportedHumans, j.Target)
		}
	}

	return firstNonEmpty(
		aliveOthers(info, reportedHumans),
		aliveOthers(info, b.ClaimsOfRole(domain.RolePostMortemInvestigator)),
		aliveOthers(info, info.AgentList),
	)
}

func firstNonEmpty(tiers ...[]domain.Player) Selection {
	for i, candidates := range tiers {
		if len(candidates) > 0 {
			return Selection{Tier: domain.Tier(i + 1), Candidates: candidates}
		}
	}
	return Selection{Tier: domain.TierNone}
}

// aliveOthers filters ps down to alive players other than the agent,
// deduplicated and ordered by identity.
func aliveOthers(info *domain.GameInfo, ps []domain.Player) []domain.Player {
	var out []domain.Player
	for _, p := range dedupe(ps) {
		if p != info.Me && info.IsAlive(p) {
			out = append(out, p)
		}
	}
	return out
}

func dedupe(ps []domain.Player) []domain.Player {
	return keys(playerSet(ps))
}

func playerSet(ps []domain.Player) map[domain.Player]bool {
	set := make(map[domain.Player]bool, len(ps))
	for _, p := range ps {
		set[p] = true
	}
	return set
}

func keys(set map[domain.Player]bool) []domain.Player {
	out := make([]domain.Player, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return domain.SortPlayers(out)
}
