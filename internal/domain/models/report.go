package models

import "time"

// Window is a closed time interval; events on either boundary count.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// WeekOf returns the Monday-to-Sunday window containing t.
func WeekOf(t time.Time) Window {
	weekday := int(t.Weekday()+6) % 7 // Monday = 0
	start := t.AddDate(0, 0, -weekday)
	return Window{Start: start, End: start.AddDate(0, 0, 6)}
}

type PipelineSummary struct {
	TotalCompanies      int
	StatusBreakdown     map[Status]int
	PriorityBreakdown   map[string]int
	CompletionRate      float64
	ActiveOpportunities int
}

type CompanyStatusLine struct {
	CompanyName       string
	Status            Status
	PriorityScore     int
	ResearchDate      string
	LastActivity      string
	DaysSinceActivity int
	NextAction        string
	EmailsSent        int
	Interviews        int
	ResponseReceived  bool
}

type EmailMetrics struct {
	TotalSent           int
	ResponsesReceived   int
	ResponseRate        float64
	TargetResponseRate  float64
	PerformanceVsTarget float64
}

type ApplicationMetrics struct {
	TotalApplications       int
	InterviewsScheduled     int
	InterviewConversionRate float64
	TargetConversionRate    float64
	PerformanceVsTarget     float64
}

type OfferMetrics struct {
	OffersReceived      int
	OfferConversionRate float64
}

type TemplateStats struct {
	EmailsSent   int
	Responses    int
	ResponseRate float64
}

type EmailPerformance struct {
	TemplateOrder    []string
	Templates        map[string]*TemplateStats
	BestTemplate     string
	TotalCampaigns   int
	PendingResponses int
}

type InterviewTracking struct {
	Scheduled       int
	StageBreakdown  map[string]int
	OutcomeCounts   map[InterviewOutcome]int
	Upcoming        []CompanyInterview
	PendingFeedback int
	SuccessRate     float64
}

type CompanyInterview struct {
	Company     string
	Date        string
	Stage       string
	Interviewer string
	Outcome     InterviewOutcome
}

type WeeklyProgress struct {
	Window                Window
	CompaniesResearched   int
	ApplicationsSubmitted int
	EmailsSent            int
	ResponsesReceived     int
	InterviewsScheduled   int
	TargetApplications    int
	ProgressVsTarget      float64
	OnTrack               bool
}

type Recommendation struct {
	Category    string
	Priority    ActionPriority
	Title       string
	Description string
	Actions     []string
}

// MetricsReport is the aggregator's full read-side output.
type MetricsReport struct {
	GeneratedAt       time.Time
	Summary           PipelineSummary
	CompanyStatus     []CompanyStatusLine
	Email             EmailMetrics
	Applications      ApplicationMetrics
	Offers            OfferMetrics
	EmailPerformance  EmailPerformance
	InterviewTracking InterviewTracking
	Weekly            WeeklyProgress
	Recommendations   []Recommendation
}
