package services

import (
	"sort"
	"strings"
	"unicode"
)

// quantifiedOutcomeBonus rewards case stories whose result text carries a
// number; measured outcomes beat vague ones in every selection.
const quantifiedOutcomeBonus = 1.5

type KeywordGroup struct {
	Name     string
	Keywords []string
	Weight   float64
}

// RelevanceQuery is a transient set of weighted keyword groups built per
// invocation. It is never persisted.
type RelevanceQuery struct {
	Groups []KeywordGroup
}

// CaseStory is a STAR-structured achievement the scorer matches against job
// descriptions and interview questions. The text fields are opaque strings
// supplied by the content layer.
type CaseStory struct {
	Title              string
	Situation          string
	Task               string
	Action             string
	Results            string
	QuantifiedOutcomes []string
	Complexity         string
}

// text is the matchable body of a story. The title is a display label and
// stays out of scoring.
func (s CaseStory) text() string {
	return strings.ToLower(strings.Join([]string{s.Situation, s.Task, s.Action, s.Results}, " "))
}

type RelevanceScorer struct {
	genericWeight float64
	roleWeight    float64
}

// NewRelevanceScorer builds a scorer with the configured weight table.
// Role-derived keyword groups score with roleWeight, everything else with the
// group's own weight (genericWeight when a group doesn't set one).
func NewRelevanceScorer(genericWeight, roleWeight float64) *RelevanceScorer {
	return &RelevanceScorer{genericWeight: genericWeight, roleWeight: roleWeight}
}

// Score adds a group's weight once per keyword found as a case-insensitive
// substring of the item text. Empty queries and empty items score zero.
func (s *RelevanceScorer) Score(itemText string, query RelevanceQuery) float64 {
	if itemText == "" {
		return 0
	}

	lower := strings.ToLower(itemText)
	score := 0.0
	for _, group := range query.Groups {
		weight := group.Weight
		if weight == 0 {
			weight = s.genericWeight
		}
		for _, keyword := range group.Keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				score += weight
			}
		}
	}
	return score
}

// ScoreCaseStory scores a story against the query plus the role-derived
// keyword group, then applies the quantified-outcome bonus when the results
// text contains at least one digit.
func (s *RelevanceScorer) ScoreCaseStory(story CaseStory, query RelevanceQuery, roleTitle string) float64 {
	score := s.Score(story.text(), query)
	score += s.Score(story.text(), RelevanceQuery{Groups: []KeywordGroup{{
		Name:     "role_specific",
		Keywords: RoleKeywords(roleTitle),
		Weight:   s.roleWeight,
	}}})

	if strings.ContainsFunc(story.Results, unicode.IsDigit) {
		score += quantifiedOutcomeBonus
	}
	return score
}

// RankCaseStories returns up to limit stories ordered by descending relevance.
// Ties keep the original insertion order, so repeated calls over the same
// candidates produce the same ranking.
func (s *RelevanceScorer) RankCaseStories(stories []CaseStory, query RelevanceQuery, roleTitle string, limit int) []CaseStory {
	type scored struct {
		story CaseStory
		score float64
	}

	ranked := make([]scored, 0, len(stories))
	for _, story := range stories {
		ranked = append(ranked, scored{story: story, score: s.ScoreCaseStory(story, query, roleTitle)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}

	stories = make([]CaseStory, len(ranked))
	for i, r := range ranked {
		stories[i] = r.story
	}
	return stories
}

// questionKeywords maps behavioral question themes to the terms that signal
// them in both the question and a story.
var questionKeywords = map[string][]string{
	"difficult decision":          {"decision", "choice", "prioritization"},
	"influence without authority": {"influence", "stakeholder", "alignment"},
	"pivot":                       {"pivot", "change", "adaptation"},
	"disagreement":                {"disagreement", "conflict", "stakeholder"},
	"failed project":              {"failure", "challenge", "problem"},
	"growth":                      {"growth", "scale", "acquisition", "conversion"},
	"prioritization":              {"prioritize", "roadmap", "feature"},
	"data":                        {"data", "analytics", "metrics", "testing"},
	"team leadership":             {"leadership", "management", "team"},
}

// MatchQuestionToStory picks the story best suited to answer an interview
// question. Returns nil when nothing scores above zero.
func (s *RelevanceScorer) MatchQuestionToStory(question string, stories []CaseStory, roleTitle string) *CaseStory {
	questionLower := strings.ToLower(question)
	roleLower := strings.ToLower(roleTitle)

	var best *CaseStory
	bestScore := 0

	for idx := range stories {
		story := &stories[idx]
		storyText := story.text()

		score := 0
		for _, keywords := range questionKeywords {
			for _, keyword := range keywords {
				if strings.Contains(questionLower, keyword) && strings.Contains(storyText, keyword) {
					score++
				}
			}
		}

		if len(story.QuantifiedOutcomes) > 0 {
			score++
		}

		if strings.Contains(roleLower, "growth") && strings.Contains(storyText, "conversion") {
			score += 2
		} else if seniorRole(roleLower) && story.Complexity == "high" {
			score++
		}

		if score > bestScore {
			bestScore = score
			best = story
		}
	}

	return best
}

func seniorRole(roleLower string) bool {
	return strings.Contains(roleLower, "senior") || strings.Contains(roleLower, "principal")
}

// RoleKeywords returns the keyword set specific to a role type.
func RoleKeywords(roleTitle string) []string {
	roleLower := strings.ToLower(roleTitle)

	switch {
	case strings.Contains(roleLower, "growth"):
		return []string{"acquisition", "conversion", "retention", "engagement", "funnel", "a/b test"}
	case strings.Contains(roleLower, "product"):
		return []string{"roadmap", "feature", "user story", "sprint", "stakeholder", "metrics"}
	case strings.Contains(roleLower, "strategy"):
		return []string{"strategic", "planning", "analysis", "framework", "competitive"}
	default:
		return []string{"management", "leadership", "execution", "results", "improvement"}
	}
}
