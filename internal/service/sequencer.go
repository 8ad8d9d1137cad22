package service

import (
	"github.com/Harshitk-cp/wolfmind/internal/domain"
)

// Sequencer feeds the day's talk list into a BeliefStore. It keeps a cursor so
// that each talk is applied exactly once.
type Sequencer struct {
	beliefs *BeliefStore
	head    int
}

func NewSequencer(b *BeliefStore) *Sequencer {
	return &Sequencer{beliefs: b}
}

// Head is the index of the next talk to analyse.
func (s *Sequencer) Head() int {
	return s.head
}

// Scan applies the talks the sequencer has not seen yet and returns how many
// of them changed the belief store. The agent's own talks are skipped.
func (s *Sequencer) Scan(info *domain.GameInfo) int {
	// The runtime replaced the talk list without a day start.
	if s.head > len(info.TalkList) {
		s.head = 0
	}

	applied := 0
	for _, tk := range info.TalkList[s.head:] {
		if tk.Agent == info.Me {
			continue
		}
		switch c := tk.Content.(type) {
		case domain.ComingOut:
			s.beliefs.RecordClaim(tk.Agent, c.Role)
		case domain.Divined:
			s.beliefs.RecordDivination(domain.Judge{Reporter: tk.Agent, Day: info.Day, Target: c.Target, Result: c.Result})
		case domain.Identified:
			s.beliefs.RecordIdentification(domain.Judge{Reporter: tk.Agent, Day: info.Day, Target: c.Target, Result: c.Result})
		default:
			continue
		}
		applied++
	}
	s.head = len(info.TalkList)
	return applied
}

// Rewind moves the cursor back to the start. The runtime starts a fresh talk
// list every day.
func (s *Sequencer) Rewind() {
	s.head = 0
}
