package models

import "errors"

type Status string

const (
	StatusResearching  Status = "researching"
	StatusResearched   Status = "researched"
	StatusApplied      Status = "applied"
	StatusOutreachSent Status = "outreach_sent"
	StatusResponded    Status = "responded"
	StatusInterviewing Status = "interviewing"
	StatusOffered      Status = "offered"
	StatusHired        Status = "hired"
	StatusRejected     Status = "rejected"
	StatusDisqualified Status = "disqualified"
)

var statusRank = map[Status]int{
	StatusResearching:  0,
	StatusResearched:   1,
	StatusApplied:      2,
	StatusOutreachSent: 3,
	StatusResponded:    4,
	StatusInterviewing: 5,
	StatusOffered:      6,
	StatusHired:        7,
}

var transitions = map[Status][]Status{
	StatusResearching:  {StatusResearched, StatusDisqualified},
	StatusResearched:   {StatusApplied},
	StatusApplied:      {StatusOutreachSent, StatusRejected},
	StatusOutreachSent: {StatusResponded, StatusRejected},
	StatusResponded:    {StatusInterviewing},
	StatusInterviewing: {StatusOffered, StatusRejected},
	StatusOffered:      {StatusHired, StatusRejected},
}

func ToStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusResearching, StatusResearched, StatusApplied, StatusOutreachSent,
		StatusResponded, StatusInterviewing, StatusOffered, StatusHired,
		StatusRejected, StatusDisqualified:
		return Status(s), nil
	default:
		return "", errors.New("invalid pipeline status")
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusHired || s == StatusRejected || s == StatusDisqualified
}

// Rank returns the position of a status on the forward progression.
// Terminal side-branches have no rank.
func (s Status) Rank() (int, bool) {
	r, ok := statusRank[s]
	return r, ok
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AtLeast reports whether s has progressed to want or beyond.
func (s Status) AtLeast(want Status) bool {
	sr, ok1 := statusRank[s]
	wr, ok2 := statusRank[want]
	return ok1 && ok2 && sr >= wr
}
