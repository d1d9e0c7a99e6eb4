package models

import (
	"strings"
	"time"
)

// All timestamps are stored as RFC 3339 strings so that records written by older
// versions of the pipeline stay readable and string comparison orders them.
const TimeFormat = time.RFC3339

type EmailAttempt struct {
	SendDate         string `json:"send_date"`
	TemplateUsed     string `json:"template_used"`
	ResponseReceived bool   `json:"response_received"`
	FollowUpSent     bool   `json:"follow_up_sent"`
}

// MarkResponded flips the response flag. Repeated calls are no-ops; the flag
// never goes back to false.
func (e *EmailAttempt) MarkResponded() bool {
	if e.ResponseReceived {
		return false
	}
	e.ResponseReceived = true
	return true
}

func (e *EmailAttempt) MarkFollowedUp() bool {
	if e.FollowUpSent {
		return false
	}
	e.FollowUpSent = true
	return true
}

type InterviewOutcome string

const (
	OutcomePending   InterviewOutcome = "pending"
	OutcomeAdvanced  InterviewOutcome = "advanced"
	OutcomeRejected  InterviewOutcome = "rejected"
	OutcomeWithdrawn InterviewOutcome = "withdrawn"
)

type InterviewEvent struct {
	Date        string           `json:"date"`
	Stage       string           `json:"stage"`
	Interviewer string           `json:"interviewer"`
	Outcome     InterviewOutcome `json:"outcome"`
}

// Resolve moves the outcome from pending to a terminal value. An already
// resolved interview can't be resolved again.
func (i *InterviewEvent) Resolve(outcome InterviewOutcome) bool {
	if i.Outcome != "" && i.Outcome != OutcomePending {
		return false
	}
	if outcome == OutcomePending {
		return false
	}
	i.Outcome = outcome
	return true
}

type PriorityBreakdown struct {
	RoleAppeal      int `json:"role_appeal"`
	CompanyFit      int `json:"company_fit"`
	GrowthPotential int `json:"growth_potential"`
	Likelihood      int `json:"likelihood"`
}

type CompanyRecord struct {
	Name                 string            `json:"name"`
	RoleTitle            string            `json:"role_title,omitempty"`
	Status               Status            `json:"status"`
	PriorityScore        int               `json:"priority_score"`
	PriorityBreakdown    PriorityBreakdown `json:"priority_breakdown"`
	ResearchDate         string            `json:"research_date,omitempty"`
	ResearchCompleted    bool              `json:"research_completed"`
	ApplicationGenerated bool              `json:"application_generated"`
	ApplicationDate      string            `json:"application_date,omitempty"`
	EmailsSent           []EmailAttempt    `json:"emails_sent,omitempty"`
	Interviews           []InterviewEvent  `json:"interviews,omitempty"`
	OfferReceived        bool              `json:"offer_received"`
}

// NormalizeKey turns a company name into its storage key.
func NormalizeKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func (c *CompanyRecord) HasReceivedResponse() bool {
	for _, e := range c.EmailsSent {
		if e.ResponseReceived {
			return true
		}
	}
	return false
}

// LastActivity is the most recent of the research date, email send dates and
// interview dates. RFC 3339 strings compare lexicographically, so no parsing
// is needed.
func (c *CompanyRecord) LastActivity() string {
	last := c.ResearchDate
	for _, e := range c.EmailsSent {
		if e.SendDate > last {
			last = e.SendDate
		}
	}
	for _, i := range c.Interviews {
		if i.Date > last {
			last = i.Date
		}
	}
	return last
}

func (c *CompanyRecord) allInterviewsAdvanced() bool {
	if len(c.Interviews) == 0 {
		return false
	}
	for _, i := range c.Interviews {
		if i.Outcome != OutcomeAdvanced {
			return false
		}
	}
	return true
}

func (c *CompanyRecord) anyInterviewRejected() bool {
	for _, i := range c.Interviews {
		if i.Outcome == OutcomeRejected {
			return true
		}
	}
	return false
}

// DeriveStatus computes the status implied by the record's fields. The stored
// status is never trusted on its own: whenever the two disagree the
// field-derived value wins.
func (c *CompanyRecord) DeriveStatus() Status {
	switch {
	case c.OfferReceived || c.allInterviewsAdvanced():
		return StatusOffered
	case c.anyInterviewRejected():
		return StatusRejected
	case len(c.Interviews) > 0:
		return StatusInterviewing
	case c.HasReceivedResponse():
		return StatusResponded
	case len(c.EmailsSent) > 0:
		return StatusOutreachSent
	case c.ApplicationGenerated:
		return StatusApplied
	case c.ResearchCompleted:
		return StatusResearched
	default:
		return StatusResearching
	}
}

// Normalize reconciles the stored status with the field-derived one and
// reports whether a correction was applied. Terminal statuses record external
// decisions (offer accepted/declined, disqualification) that fields alone
// can't reproduce, so they are kept as stored.
func (c *CompanyRecord) Normalize() bool {
	if c.Status.IsTerminal() {
		return false
	}
	derived := c.DeriveStatus()
	if c.Status == derived {
		return false
	}
	c.Status = derived
	return true
}

// ParseTime parses a stored timestamp. The bool result is false for empty or
// malformed strings; callers degrade per-event instead of failing the run.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
