package models

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_ToStatus_WhenUnknownValue_ShouldFail(t *testing.T) {
	_, err := ToStatus("email_sent")
	assert.Error(t, err)

	status, err := ToStatus("outreach_sent")
	assert.NoError(t, err)
	assert.Equal(t, StatusOutreachSent, status)
}

func Test_Status_TransitionTable(t *testing.T) {
	assert.True(t, StatusResearching.CanTransitionTo(StatusResearched))
	assert.True(t, StatusResearching.CanTransitionTo(StatusDisqualified))
	assert.True(t, StatusApplied.CanTransitionTo(StatusRejected))
	assert.True(t, StatusOffered.CanTransitionTo(StatusHired))

	assert.False(t, StatusResearching.CanTransitionTo(StatusApplied))
	assert.False(t, StatusHired.CanTransitionTo(StatusResearching))
	assert.False(t, StatusDisqualified.CanTransitionTo(StatusResearched))
}

func Test_Status_AtLeast(t *testing.T) {
	assert.True(t, StatusInterviewing.AtLeast(StatusApplied))
	assert.True(t, StatusApplied.AtLeast(StatusApplied))
	assert.False(t, StatusResearched.AtLeast(StatusApplied))
	assert.False(t, StatusRejected.AtLeast(StatusApplied)) // side-branch has no rank
}

func Test_DeriveStatus_FollowsFieldLadder(t *testing.T) {
	company := &CompanyRecord{}
	assert.Equal(t, StatusResearching, company.DeriveStatus())

	company.ResearchCompleted = true
	assert.Equal(t, StatusResearched, company.DeriveStatus())

	company.ApplicationGenerated = true
	assert.Equal(t, StatusApplied, company.DeriveStatus())

	company.EmailsSent = []EmailAttempt{{SendDate: "2026-01-05T10:00:00Z"}}
	assert.Equal(t, StatusOutreachSent, company.DeriveStatus())

	company.EmailsSent[0].ResponseReceived = true
	assert.Equal(t, StatusResponded, company.DeriveStatus())

	company.Interviews = []InterviewEvent{{Date: "2026-01-10T10:00:00Z", Outcome: OutcomePending}}
	assert.Equal(t, StatusInterviewing, company.DeriveStatus())

	company.Interviews[0].Outcome = OutcomeAdvanced
	assert.Equal(t, StatusOffered, company.DeriveStatus())
}

func Test_DeriveStatus_WhenInterviewRejected_ShouldBeRejected(t *testing.T) {
	company := &CompanyRecord{
		ResearchCompleted:    true,
		ApplicationGenerated: true,
		Interviews: []InterviewEvent{
			{Outcome: OutcomeAdvanced},
			{Outcome: OutcomeRejected},
		},
	}
	assert.Equal(t, StatusRejected, company.DeriveStatus())
}

func Test_Normalize_WhenStatusAheadOfFields_ShouldCorrectBack(t *testing.T) {
	company := &CompanyRecord{
		Status:            StatusApplied,
		ResearchCompleted: true,
		// application_generated is false, so the stored status lies
	}

	corrected := company.Normalize()

	assert.True(t, corrected)
	assert.Equal(t, StatusResearched, company.Status)
}

func Test_Normalize_WhenTerminal_ShouldKeepStoredStatus(t *testing.T) {
	company := &CompanyRecord{
		Status:            StatusDisqualified,
		ResearchCompleted: false,
	}

	corrected := company.Normalize()

	assert.False(t, corrected)
	assert.Equal(t, StatusDisqualified, company.Status)
}

func Test_Normalize_WhenConsistent_ShouldNotReport(t *testing.T) {
	company := &CompanyRecord{
		Status:               StatusApplied,
		ResearchCompleted:    true,
		ApplicationGenerated: true,
	}

	assert.False(t, company.Normalize())
	assert.Equal(t, StatusApplied, company.Status)
}
