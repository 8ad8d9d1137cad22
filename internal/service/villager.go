package service

import (
	"github.com/Harshitk-cp/wolfmind/internal/domain"
	"go.uber.org/zap"
)

// Villager votes for players exposed by trustworthy seers, falling back to
// seers that lied about the agent, then to anyone alive.
type Villager struct {
	info    *domain.GameInfo
	setting domain.GameSetting

	beliefs   *BeliefStore
	sequencer *Sequencer
	confirmed []domain.Player

	vote     TargetTracker
	declared bool

	rng      Rand
	observer Observer
	logger   *zap.Logger
}

func NewVillager(rng Rand, logger *zap.Logger) *Villager {
	beliefs := NewBeliefStore()
	return &Villager{
		info:      &domain.GameInfo{},
		beliefs:   beliefs,
		sequencer: NewSequencer(beliefs),
		rng:       rng,
		observer:  nopObserver{},
		logger:    logger,
	}
}

// SetObserver wires a diagnostics observer. A nil observer disables diagnostics.
func (v *Villager) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	v.observer = o
}

func (v *Villager) Me() domain.Player {
	return v.info.Me
}

// Initialize starts a new game. Nothing from the previous game survives.
func (v *Villager) Initialize(info *domain.GameInfo, setting domain.GameSetting) {
	if info == nil {
		info = &domain.GameInfo{}
	}
	v.info = info
	v.setting = setting
	v.beliefs.Reset()
	v.sequencer.Rewind()
	v.confirmed = nil
	v.vote.Reset()
	v.declared = false

	v.logger.Debug("game initialized",
		zap.Stringer("me", info.Me),
		zap.Int("players", len(info.AgentList)))
}

// DayStart rewinds the talk cursor for the new day's talk list. The vote
// commitment survives; only the fact that it was declared is forgotten.
func (v *Villager) DayStart() {
	v.sequencer.Rewind()
	v.declared = false
}

// Update analyses talks that arrived since the last update and recomputes
// the confirmed-innocent set.
func (v *Villager) Update(info *domain.GameInfo) {
	if info == nil {
		return
	}
	v.info = info
	applied := v.sequencer.Scan(info)
	v.confirmed = ConfirmedInnocent(v.beliefs)

	if applied > 0 {
		v.logger.Debug("beliefs updated",
			zap.Int("day", info.Day),
			zap.Int("applied", applied),
			zap.Int("confirmed", len(v.confirmed)))
	}
	v.observer.ObserveBeliefs(domain.BeliefSnapshot{Day: info.Day, Confirmed: v.confirmed})
}

// Talk declares the vote target when it is new, or not yet declared today.
func (v *Villager) Talk() domain.Utterance {
	target, changed := v.resolveVote()
	if target == domain.PlayerNone {
		return domain.UtteranceSkip
	}
	if changed || !v.declared {
		v.declared = true
		return domain.VoteDeclaration(target)
	}
	return domain.UtteranceSkip
}

// Vote returns the committed vote target, or the agent itself when nobody else
// is alive.
func (v *Villager) Vote() domain.Player {
	target, _ := v.resolveVote()
	if target == domain.PlayerNone {
		return v.info.Me
	}
	return target
}

func (v *Villager) Finish() {
	v.logger.Debug("game finished",
		zap.Stringer("me", v.info.Me),
		zap.Int("day", v.info.Day),
		zap.Int("claims", len(v.beliefs.claims)),
		zap.Int("divinations", len(v.beliefs.divinations)))
}

// ConfirmedInnocent returns the set computed at the last update.
func (v *Villager) ConfirmedInnocent() []domain.Player {
	return append([]domain.Player(nil), v.confirmed...)
}

func (v *Villager) Beliefs() BeliefView {
	return BeliefView{
		Me:              v.info.Me,
		Day:             v.info.Day,
		Claims:          v.beliefs.Claims(),
		Divinations:     v.beliefs.Divinations(),
		Identifications: v.beliefs.Identifications(),
		Confirmed:       v.ConfirmedInnocent(),
		Committed:       map[domain.ActionKind]domain.Player{domain.ActionVote: v.vote.Committed()},
		TalkHead:        v.sequencer.Head(),
	}
}

func (v *Villager) resolveVote() (domain.Player, bool) {
	sel := VoteSelection(v.beliefs, v.info)
	return v.resolve(domain.ActionVote, &v.vote, sel)
}

func (v *Villager) resolve(action domain.ActionKind, t *TargetTracker, sel Selection) (domain.Player, bool) {
	target, changed := t.Resolve(sel.Candidates, v.info.IsAlive, v.rng)
	if changed {
		v.logger.Debug("target committed",
			zap.String("action", string(action)),
			zap.Stringer("target", target),
			zap.Stringer("tier", sel.Tier),
			zap.Int("candidates", len(sel.Candidates)))
	}
	v.observer.ObserveDecision(domain.Decision{
		Day:     v.info.Day,
		Action:  action,
		Target:  target,
		Tier:    sel.Tier,
		Changed: changed,
	})
	return target, changed
}
