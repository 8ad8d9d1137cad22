package domain

// Judge is an investigation report: Reporter announced on Day that Target is Result.
type Judge struct {
	Reporter Player  `json:"reporter"`
	Day      int     `json:"day"`
	Target   Player  `json:"target"`
	Result   Species `json:"result"`
}

// GameInfo is the runtime's snapshot of the game as seen by one agent.
type GameInfo struct {
	Day       int
	Me        Player
	AgentList []Player
	StatusMap map[Player]Status
	TalkList  []Talk
}

// IsAlive reports whether p is alive in this snapshot. Unknown players are dead.
func (g *GameInfo) IsAlive(p Player) bool {
	if g == nil {
		return false
	}
	return g.StatusMap[p] == StatusAlive
}

// GameSetting carries the runtime's fixed game parameters.
type GameSetting struct {
	PlayerNum   int
	RoleNumMap  map[Role]int
	MaxTalk     int
	MaxTalkTurn int
}

// ActionKind names an action whose target is committed across ticks.
type ActionKind string

const (
	ActionVote  ActionKind = "vote"
	ActionGuard ActionKind = "guard"
	ActionTalk  ActionKind = "talk"
)

// Tier identifies which cascade level produced a candidate set. TierNone means
// every level was empty.
type Tier int

const (
	TierNone Tier = iota
	TierEvidence
	TierRole
	TierCatchAll
)

func (t Tier) String() string {
	switch t {
	case TierEvidence:
		return "evidence"
	case TierRole:
		return "role"
	case TierCatchAll:
		return "catch_all"
	default:
		return "none"
	}
}
