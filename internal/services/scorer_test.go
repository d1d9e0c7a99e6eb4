package services

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func newTestScorer() *RelevanceScorer {
	return NewRelevanceScorer(1.0, 2.0)
}

func Test_Score_WhenEmptyQuery_ShouldBeZero(t *testing.T) {
	scorer := newTestScorer()

	assert.Equal(t, 0.0, scorer.Score("led growth experiments", RelevanceQuery{}))
	assert.Equal(t, 0.0, scorer.Score("", RelevanceQuery{Groups: []KeywordGroup{
		{Keywords: []string{"growth"}},
	}}))
}

func Test_Score_ShouldAddGroupWeightPerMatchedKeyword(t *testing.T) {
	scorer := newTestScorer()
	query := RelevanceQuery{Groups: []KeywordGroup{
		{Name: "skills", Keywords: []string{"sql", "analytics"}, Weight: 1.0},
		{Name: "tools", Keywords: []string{"looker"}, Weight: 0.5},
	}}

	score := scorer.Score("Built Analytics dashboards in SQL and Looker", query)

	assert.Equal(t, 2.5, score)
}

func Test_Score_WhenGroupWeightUnset_ShouldUseGenericWeight(t *testing.T) {
	scorer := NewRelevanceScorer(3.0, 2.0)
	query := RelevanceQuery{Groups: []KeywordGroup{
		{Name: "skills", Keywords: []string{"sql"}},
	}}

	assert.Equal(t, 3.0, scorer.Score("knows sql", query))
}

func Test_ScoreCaseStory_WhenResultsQuantified_ShouldOutrankVagueTwin(t *testing.T) {
	scorer := newTestScorer()
	query := RelevanceQuery{Groups: []KeywordGroup{
		{Name: "skills", Keywords: []string{"conversion"}, Weight: 1.0},
	}}

	quantified := CaseStory{
		Title:   "Checkout revamp",
		Results: "conversion improved 8.4 percent",
	}
	vague := CaseStory{
		Title:   "Checkout revamp",
		Results: "conversion improved noticeably",
	}

	quantifiedScore := scorer.ScoreCaseStory(quantified, query, "Growth PM")
	vagueScore := scorer.ScoreCaseStory(vague, query, "Growth PM")

	assert.Greater(t, quantifiedScore, vagueScore)
	assert.Equal(t, quantifiedOutcomeBonus, quantifiedScore-vagueScore)
}

func Test_ScoreCaseStory_ShouldWeighRoleKeywordsHigher(t *testing.T) {
	scorer := newTestScorer()

	story := CaseStory{Action: "rebuilt the signup funnel", Results: "reduced drop-off"}

	growthScore := scorer.ScoreCaseStory(story, RelevanceQuery{}, "Growth Manager")
	defaultScore := scorer.ScoreCaseStory(story, RelevanceQuery{}, "Program Lead")

	assert.Equal(t, 2.0, growthScore) // "funnel" at role weight
	assert.Equal(t, 0.0, defaultScore)
}

func Test_ScoreCaseStory_ShouldNotMatchTitleText(t *testing.T) {
	scorer := newTestScorer()
	query := RelevanceQuery{Groups: []KeywordGroup{
		{Name: "skills", Keywords: []string{"conversion"}, Weight: 1.0},
	}}

	titleOnly := CaseStory{Title: "Conversion turnaround", Results: "things improved"}
	bodyMatch := CaseStory{Title: "Checkout", Results: "conversion improved"}

	assert.Equal(t, 0.0, scorer.ScoreCaseStory(titleOnly, query, "Program Lead"))
	assert.Equal(t, 1.0, scorer.ScoreCaseStory(bodyMatch, query, "Program Lead"))
}

func Test_RankCaseStories_ShouldBeDeterministicAndLimited(t *testing.T) {
	scorer := newTestScorer()
	query := RelevanceQuery{Groups: []KeywordGroup{
		{Name: "skills", Keywords: []string{"conversion", "retention"}, Weight: 1.0},
	}}

	stories := []CaseStory{
		{Title: "No overlap at all"},
		{Title: "Retention push", Results: "retention up 12 points"},
		{Title: "Conversion fix", Results: "conversion recovered"},
	}

	first := scorer.RankCaseStories(stories, query, "Growth PM", 2)
	second := scorer.RankCaseStories(stories, query, "Growth PM", 2)

	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
	assert.Equal(t, "Retention push", first[0].Title)
	assert.Equal(t, "Conversion fix", first[1].Title)
}

func Test_RankCaseStories_WhenTied_ShouldKeepInputOrder(t *testing.T) {
	scorer := newTestScorer()

	stories := []CaseStory{
		{Title: "First"},
		{Title: "Second"},
		{Title: "Third"},
	}

	ranked := scorer.RankCaseStories(stories, RelevanceQuery{}, "", 0)

	assert.Equal(t, []string{"First", "Second", "Third"},
		[]string{ranked[0].Title, ranked[1].Title, ranked[2].Title})
}

func Test_MatchQuestionToStory_ShouldPickThematicOverlap(t *testing.T) {
	scorer := newTestScorer()

	stories := []CaseStory{
		{Title: "Team leadership", Situation: "grew the team", Action: "management coaching"},
		{Title: "Data win", Action: "set up data analytics and testing", Results: "metrics doubled"},
	}

	best := scorer.MatchQuestionToStory("Tell me about a time you used data to change a decision", stories, "PM")

	assert.NotNil(t, best)
	assert.Equal(t, "Data win", best.Title)
}

func Test_MatchQuestionToStory_WhenGrowthRole_ShouldFavorConversionStories(t *testing.T) {
	scorer := newTestScorer()

	stories := []CaseStory{
		{Title: "Ops cleanup", Action: "streamlined process"},
		{Title: "Signup funnel", Results: "lifted conversion"},
	}

	best := scorer.MatchQuestionToStory("How do you approach growth experiments?", stories, "Senior Growth PM")

	assert.NotNil(t, best)
	assert.Equal(t, "Signup funnel", best.Title)
}

func Test_MatchQuestionToStory_WhenNothingMatches_ShouldReturnNil(t *testing.T) {
	scorer := newTestScorer()

	stories := []CaseStory{{Title: "Unrelated"}}

	assert.Nil(t, scorer.MatchQuestionToStory("What is your favorite color?", stories, "PM"))
}
