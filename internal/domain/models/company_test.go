package models

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func Test_NormalizeKey(t *testing.T) {
	assert.Equal(t, "acme_corp", NormalizeKey("Acme Corp"))
	assert.Equal(t, "acme_corp", NormalizeKey("  acme corp "))
	assert.Equal(t, "stripe", NormalizeKey("Stripe"))
}

func Test_EmailAttempt_MarkResponded_ShouldBeIdempotent(t *testing.T) {
	email := EmailAttempt{SendDate: "2026-01-05T10:00:00Z"}

	assert.True(t, email.MarkResponded())
	assert.False(t, email.MarkResponded())
	assert.True(t, email.ResponseReceived)
}

func Test_InterviewEvent_Resolve_WhenAlreadyResolved_ShouldRefuse(t *testing.T) {
	interview := InterviewEvent{Outcome: OutcomePending}

	assert.True(t, interview.Resolve(OutcomeAdvanced))
	assert.False(t, interview.Resolve(OutcomeRejected))
	assert.Equal(t, OutcomeAdvanced, interview.Outcome)
}

func Test_InterviewEvent_Resolve_WhenResolvingToPending_ShouldRefuse(t *testing.T) {
	interview := InterviewEvent{Outcome: OutcomePending}

	assert.False(t, interview.Resolve(OutcomePending))
	assert.Equal(t, OutcomePending, interview.Outcome)
}

func Test_LastActivity_ShouldPickLatestTimestamp(t *testing.T) {
	company := CompanyRecord{
		ResearchDate: "2026-01-01T09:00:00Z",
		EmailsSent: []EmailAttempt{
			{SendDate: "2026-01-03T09:00:00Z"},
			{SendDate: "2026-01-02T09:00:00Z"},
		},
		Interviews: []InterviewEvent{
			{Date: "2026-01-10T14:00:00Z"},
		},
	}

	assert.Equal(t, "2026-01-10T14:00:00Z", company.LastActivity())
}

func Test_LastActivity_WhenNoEvents_ShouldBeEmpty(t *testing.T) {
	company := CompanyRecord{}
	assert.Equal(t, "", company.LastActivity())
}

func Test_ParseTime(t *testing.T) {
	parsed, ok := ParseTime("2026-01-05T10:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC), parsed)

	parsed, ok = ParseTime("2026-01-05")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), parsed)

	_, ok = ParseTime("")
	assert.False(t, ok)

	_, ok = ParseTime("next tuesday")
	assert.False(t, ok)
}
