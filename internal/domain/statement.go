package domain

import "fmt"

// Topic names the kind of a structured statement on the wire.
type Topic string

const (
	TopicComingOut  Topic = "COMINGOUT"
	TopicDivined    Topic = "DIVINED"
	TopicIdentified Topic = "IDENTIFIED"
	TopicVote       Topic = "VOTE"
	TopicSkip       Topic = "Skip"
)

// Content is the parsed body of a talk. It is a closed set of variants:
// ComingOut, Divined, Identified and Other.
type Content interface {
	Topic() Topic
	isContent()
}

// ComingOut is a role claim by the speaker.
type ComingOut struct {
	Role Role
}

// Divined is an investigation result announced by a claimed seer.
type Divined struct {
	Target Player
	Result Species
}

// Identified is a post-mortem result announced by a claimed medium.
type Identified struct {
	Target Player
	Result Species
}

// Other covers every statement the belief engine does not track.
type Other struct {
	Raw Topic
}

func (ComingOut) Topic() Topic  { return TopicComingOut }
func (Divined) Topic() Topic    { return TopicDivined }
func (Identified) Topic() Topic { return TopicIdentified }
func (o Other) Topic() Topic    { return o.Raw }

func (ComingOut) isContent()  {}
func (Divined) isContent()    {}
func (Identified) isContent() {}
func (Other) isContent()      {}

// Talk is one public statement in the day's talk list.
type Talk struct {
	Idx     int
	Day     int
	Turn    int
	Agent   Player
	Content Content
}

// NewContent builds the variant for a wire topic. Topics the engine does not
// recognise, or recognised topics with unusable fields, become Other.
func NewContent(topic Topic, role Role, target Player, result Species) Content {
	switch topic {
	case TopicComingOut:
		if ValidRole(string(role)) {
			return ComingOut{Role: role}
		}
	case TopicDivined:
		if target != PlayerNone && ValidSpecies(string(result)) {
			return Divined{Target: target, Result: result}
		}
	case TopicIdentified:
		if target != PlayerNone && ValidSpecies(string(result)) {
			return Identified{Target: target, Result: result}
		}
	}
	return Other{Raw: topic}
}

// Utterance is what the agent says during the talk phase.
type Utterance struct {
	Topic  Topic
	Target Player
}

// UtteranceSkip means the agent has nothing new to say.
var UtteranceSkip = Utterance{Topic: TopicSkip}

// VoteDeclaration announces the player the agent intends to vote for.
func VoteDeclaration(target Player) Utterance {
	return Utterance{Topic: TopicVote, Target: target}
}

func (u Utterance) IsSkip() bool {
	return u.Topic == TopicSkip
}

func (u Utterance) String() string {
	if u.IsSkip() {
		return string(TopicSkip)
	}
	return fmt.Sprintf("%s %s", u.Topic, u.Target)
}
