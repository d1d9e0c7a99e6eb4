package services

// JobDescriptionQuery builds the standard keyword groups used to score job
// descriptions and select case stories. All groups carry the generic weight;
// callers append the role-derived group separately.
func (s *RelevanceScorer) JobDescriptionQuery() RelevanceQuery {
	return RelevanceQuery{Groups: []KeywordGroup{
		{
			Name:   "technical_skills",
			Weight: s.genericWeight,
			Keywords: []string{
				"product management", "product strategy", "roadmapping", "user stories",
				"agile", "scrum", "kanban", "sprint planning", "backlog management",
				"okrs", "kpis", "metrics", "analytics", "a/b testing", "experimentation",
				"sql", "python", "data analysis", "statistical analysis",
				"user research", "usability testing", "personas", "user journeys",
				"wireframing", "prototyping", "design thinking", "ux design",
				"apis", "rest", "graphql", "databases", "cloud", "machine learning",
				"artificial intelligence", "automation",
				"growth hacking", "conversion optimization", "funnel analysis",
				"cohort analysis", "retention", "churn", "ltv", "cac",
			},
		},
		{
			Name:   "soft_skills",
			Weight: s.genericWeight,
			Keywords: []string{
				"leadership", "communication", "collaboration", "teamwork",
				"problem solving", "analytical thinking", "strategic thinking",
				"project management", "stakeholder management", "influence",
				"mentoring", "coaching", "facilitation", "presentation skills",
			},
		},
		{
			Name:   "experience",
			Weight: s.genericWeight,
			Keywords: []string{
				"years experience", "senior level", "lead", "director", "manager",
				"b2b", "b2c", "saas", "enterprise", "startup", "scale-up",
				"consumer", "mobile", "web", "platform", "marketplace",
				"fintech", "healthtech", "edtech", "e-commerce",
			},
		},
		{
			Name:   "tools_platforms",
			Weight: s.genericWeight,
			Keywords: []string{
				"jira", "asana", "trello", "notion", "confluence",
				"figma", "sketch", "amplitude", "mixpanel", "google analytics",
				"salesforce", "hubspot", "intercom", "zendesk",
				"slack", "tableau", "github",
			},
		},
	}}
}
