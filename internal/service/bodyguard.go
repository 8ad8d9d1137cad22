package service

import (
	"github.com/Harshitk-cp/wolfmind/internal/domain"
	"go.uber.org/zap"
)

// Bodyguard is a villager that also guards one player each night.
type Bodyguard struct {
	*Villager
	guard TargetTracker
}

func NewBodyguard(rng Rand, logger *zap.Logger) *Bodyguard {
	return &Bodyguard{Villager: NewVillager(rng, logger)}
}

func (g *Bodyguard) Initialize(info *domain.GameInfo, setting domain.GameSetting) {
	g.Villager.Initialize(info, setting)
	g.guard.Reset()
}

// Guard protects someone a trustworthy seer divined as human, else a medium
// claimant, else anyone alive. With nobody else alive it guards itself.
func (g *Bodyguard) Guard() domain.Player {
	sel := GuardSelection(g.beliefs, g.info)
	target, _ := g.resolve(domain.ActionGuard, &g.guard, sel)
	if target == domain.PlayerNone {
		return g.info.Me
	}
	return target
}

func (g *Bodyguard) Beliefs() BeliefView {
	view := g.Villager.Beliefs()
	view.Committed[domain.ActionGuard] = g.guard.Committed()
	return view
}
