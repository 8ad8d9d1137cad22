package service

import (
	"errors"
	"fmt"

	"github.com/Harshitk-cp/wolfmind/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrUnknownRole        = errors.New("unknown role")
	ErrActionNotSupported = errors.New("action not supported for this role")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionNotStarted  = errors.New("session has not been initialized")
)

// Player is the per-phase protocol every role implements.
type Player interface {
	Initialize(info *domain.GameInfo, setting domain.GameSetting)
	DayStart()
	Update(info *domain.GameInfo)
	Talk() domain.Utterance
	Vote() domain.Player
	Finish()
	Beliefs() BeliefView
}

// Guarder is implemented by roles that protect a player at night.
type Guarder interface {
	Guard() domain.Player
}

// BeliefView is a read-only copy of an agent's state for inspection.
type BeliefView struct {
	Me              domain.Player                       `json:"me"`
	Day             int                                 `json:"day"`
	Claims          map[domain.Player]domain.Role       `json:"claims"`
	Divinations     []domain.Judge                      `json:"divinations"`
	Identifications []domain.Judge                      `json:"identifications"`
	Confirmed       []domain.Player                     `json:"confirmed"`
	Committed       map[domain.ActionKind]domain.Player `json:"committed"`
	TalkHead        int                                 `json:"talk_head"`
}

// NewPlayer builds the agent for role. Roles whose special actions are not
// implemented here play as villagers.
func NewPlayer(role domain.Role, rng Rand, logger *zap.Logger) (Player, error) {
	switch role {
	case domain.RoleBodyguard:
		return NewBodyguard(rng, logger), nil
	case domain.RoleVillager, domain.RoleSeer, domain.RoleMedium, domain.RolePossessed, domain.RoleWerewolf:
		return NewVillager(rng, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
}
