package handlers

import (
	"github.com/Harshitk-cp/wolfmind/internal/domain"
)

// Wire shapes sent by the game runtime. Statements arrive already parsed;
// anything the engine does not track decodes to domain.Other.

type talkRequest struct {
	Idx    int            `json:"idx"`
	Day    int            `json:"day"`
	Turn   int            `json:"turn"`
	Agent  domain.Player  `json:"agent"`
	Topic  domain.Topic   `json:"topic"`
	Role   domain.Role    `json:"role,omitempty"`
	Target domain.Player  `json:"target,omitempty"`
	Result domain.Species `json:"result,omitempty"`
}

type gameInfoRequest struct {
	Day       int                             `json:"day"`
	Agent     domain.Player                   `json:"agent"`
	AgentList []domain.Player                 `json:"agent_list"`
	StatusMap map[domain.Player]domain.Status `json:"status_map"`
	TalkList  []talkRequest                   `json:"talk_list"`
}

type gameSettingRequest struct {
	PlayerNum   int                 `json:"player_num"`
	RoleNumMap  map[domain.Role]int `json:"role_num_map"`
	MaxTalk     int                 `json:"max_talk"`
	MaxTalkTurn int                 `json:"max_talk_turn"`
}

func (g *gameInfoRequest) toDomain() *domain.GameInfo {
	info := &domain.GameInfo{
		Day:       g.Day,
		Me:        g.Agent,
		AgentList: g.AgentList,
		StatusMap: g.StatusMap,
		TalkList:  make([]domain.Talk, 0, len(g.TalkList)),
	}
	if info.StatusMap == nil {
		info.StatusMap = map[domain.Player]domain.Status{}
	}
	if len(info.AgentList) == 0 {
		for p := range info.StatusMap {
			info.AgentList = append(info.AgentList, p)
		}
		domain.SortPlayers(info.AgentList)
	}
	for _, t := range g.TalkList {
		info.TalkList = append(info.TalkList, domain.Talk{
			Idx:     t.Idx,
			Day:     t.Day,
			Turn:    t.Turn,
			Agent:   t.Agent,
			Content: domain.NewContent(t.Topic, t.Role, t.Target, t.Result),
		})
	}
	return info
}

func (s *gameSettingRequest) toDomain() domain.GameSetting {
	return domain.GameSetting{
		PlayerNum:   s.PlayerNum,
		RoleNumMap:  s.RoleNumMap,
		MaxTalk:     s.MaxTalk,
		MaxTalkTurn: s.MaxTalkTurn,
	}
}

type utteranceResponse struct {
	Topic  domain.Topic  `json:"topic"`
	Target domain.Player `json:"target,omitempty"`
	Text   string        `json:"text"`
}

type targetResponse struct {
	Target domain.Player `json:"target"`
	Agent  string        `json:"agent"`
}

func newTargetResponse(p domain.Player) targetResponse {
	return targetResponse{Target: p, Agent: p.String()}
}
