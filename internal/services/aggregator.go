package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/szoloth/jobpilot/internal/config"
	"github.com/szoloth/jobpilot/internal/domain/models"
	"github.com/szoloth/jobpilot/internal/logger"
)

// Priority bands used in the pipeline summary.
const (
	highPriorityBand   = 35
	mediumPriorityBand = 28
)

const pendingResponseWindowDays = 14
const upcomingInterviewDays = 14

// MetricsAggregator computes rates, time-windowed counts and recommendations
// from the pipeline. Pure read side; every ratio returns 0 on a zero
// denominator instead of failing.
type MetricsAggregator struct {
	targets config.TargetsConfig
}

func NewMetricsAggregator(targets config.TargetsConfig) *MetricsAggregator {
	return &MetricsAggregator{targets: targets}
}

func (a *MetricsAggregator) Aggregate(pipeline *models.Pipeline, now time.Time) *models.MetricsReport {

	report := &models.MetricsReport{
		GeneratedAt:       now,
		Summary:           a.summarize(pipeline),
		CompanyStatus:     a.companyStatus(pipeline, now),
		EmailPerformance:  a.emailPerformance(pipeline, now),
		InterviewTracking: a.interviewTracking(pipeline, now),
		Weekly:            a.weeklyProgress(pipeline, models.WeekOf(now)),
	}

	a.successMetrics(pipeline, report)
	report.Recommendations = a.recommend(report)

	return report
}

func (a *MetricsAggregator) summarize(pipeline *models.Pipeline) models.PipelineSummary {

	summary := models.PipelineSummary{
		StatusBreakdown:   map[models.Status]int{},
		PriorityBreakdown: map[string]int{},
	}

	completedStages := 0
	for _, key := range pipeline.CompanyKeys() {
		company := pipeline.Companies[key]
		summary.TotalCompanies++
		summary.StatusBreakdown[company.Status]++

		switch {
		case company.PriorityScore >= highPriorityBand:
			summary.PriorityBreakdown["high"]++
		case company.PriorityScore >= mediumPriorityBand:
			summary.PriorityBreakdown["medium"]++
		default:
			summary.PriorityBreakdown["low"]++
		}

		completedStages += completedStageCount(company.Status)
	}

	summary.ActiveOpportunities = summary.StatusBreakdown[models.StatusResearched] +
		summary.StatusBreakdown[models.StatusApplied] +
		summary.StatusBreakdown[models.StatusInterviewing]

	if summary.TotalCompanies > 0 {
		summary.CompletionRate = float64(completedStages) / float64(summary.TotalCompanies*5)
	}
	return summary
}

// completedStageCount counts how many of the five pipeline stages (research,
// application, interview, offer, hire) a status implies are done.
func completedStageCount(status models.Status) int {
	if status == models.StatusHired {
		return 5
	}
	count := 0
	for _, stage := range []models.Status{models.StatusResearched, models.StatusApplied,
		models.StatusInterviewing, models.StatusOffered} {
		if status.AtLeast(stage) {
			count++
		}
	}
	return count
}

func (a *MetricsAggregator) companyStatus(pipeline *models.Pipeline, now time.Time) []models.CompanyStatusLine {

	lines := lo.Map(pipeline.CompanyKeys(), func(key string, _ int) models.CompanyStatusLine {
		company := pipeline.Companies[key]
		return models.CompanyStatusLine{
			CompanyName:       company.Name,
			Status:            company.Status,
			PriorityScore:     company.PriorityScore,
			ResearchDate:      company.ResearchDate,
			LastActivity:      company.LastActivity(),
			DaysSinceActivity: DaysSinceActivity(company, now),
			NextAction:        nextActionLabel(company.Status),
			EmailsSent:        len(company.EmailsSent),
			Interviews:        len(company.Interviews),
			ResponseReceived:  company.HasReceivedResponse(),
		}
	})

	// Highest priority first; within a score, the most recently active
	// company leads.
	sortLinesStable(lines)
	return lines
}

func nextActionLabel(status models.Status) string {
	switch status {
	case models.StatusResearching:
		return "Complete company research"
	case models.StatusResearched:
		return "Generate application package"
	case models.StatusApplied:
		return "Send cold email campaign"
	case models.StatusOutreachSent:
		return "Monitor for responses"
	case models.StatusResponded:
		return "Schedule interview"
	case models.StatusInterviewing:
		return "Follow up on interview outcome"
	case models.StatusOffered:
		return "Negotiate and decide"
	case models.StatusHired:
		return "Complete - Success!"
	case models.StatusRejected:
		return "Archive and learn from feedback"
	case models.StatusDisqualified:
		return "Archived below qualification threshold"
	default:
		return "Determine status and next steps"
	}
}

func (a *MetricsAggregator) successMetrics(pipeline *models.Pipeline, report *models.MetricsReport) {

	totalEmails, responses := 0, 0
	applications, interviewsScheduled, offers := 0, 0, 0

	for _, key := range pipeline.CompanyKeys() {
		company := pipeline.Companies[key]

		totalEmails += len(company.EmailsSent)
		if company.HasReceivedResponse() {
			responses++
		}
		if len(company.Interviews) > 0 {
			interviewsScheduled++
		}
		if company.Status.AtLeast(models.StatusApplied) || company.ApplicationGenerated {
			applications++
		}
		if company.OfferReceived {
			offers++
		}
	}

	report.Email = models.EmailMetrics{
		TotalSent:          totalEmails,
		ResponsesReceived:  responses,
		ResponseRate:       ratio(responses, totalEmails),
		TargetResponseRate: a.targets.ResponseRate,
	}
	if a.targets.ResponseRate > 0 {
		report.Email.PerformanceVsTarget = report.Email.ResponseRate / a.targets.ResponseRate
	}

	report.Applications = models.ApplicationMetrics{
		TotalApplications:       applications,
		InterviewsScheduled:     interviewsScheduled,
		InterviewConversionRate: ratio(interviewsScheduled, applications),
		TargetConversionRate:    a.targets.InterviewConversion,
	}
	if a.targets.InterviewConversion > 0 {
		report.Applications.PerformanceVsTarget = report.Applications.InterviewConversionRate / a.targets.InterviewConversion
	}

	report.Offers = models.OfferMetrics{
		OffersReceived:      offers,
		OfferConversionRate: ratio(offers, interviewsScheduled),
	}
}

func (a *MetricsAggregator) emailPerformance(pipeline *models.Pipeline, now time.Time) models.EmailPerformance {

	performance := models.EmailPerformance{
		Templates: map[string]*models.TemplateStats{},
	}

	for _, key := range pipeline.CompanyKeys() {
		for _, email := range pipeline.Companies[key].EmailsSent {
			template := email.TemplateUsed
			if template == "" {
				template = "unknown"
			}

			stats, ok := performance.Templates[template]
			if !ok {
				stats = &models.TemplateStats{}
				performance.Templates[template] = stats
				performance.TemplateOrder = append(performance.TemplateOrder, template)
			}
			stats.EmailsSent++
			if email.ResponseReceived {
				stats.Responses++
			}

			performance.TotalCampaigns++
			if !email.ResponseReceived {
				// Emails with unparsable send dates stay out of the windowed
				// count.
				if sendTime, ok := models.ParseTime(email.SendDate); ok {
					if daysBetween(sendTime, now) <= pendingResponseWindowDays {
						performance.PendingResponses++
					}
				} else if email.SendDate != "" {
					log.WithField(logger.ErrorTypeField, logger.ErrorTypeTimestamp).
						Warnf("unparsable timestamp %q for %v", email.SendDate, key)
				}
			}
		}
	}

	best, bestRate := "", -1.0
	for _, template := range performance.TemplateOrder {
		stats := performance.Templates[template]
		stats.ResponseRate = ratio(stats.Responses, stats.EmailsSent)
		// Strict comparison keeps the first-encountered template on ties.
		if stats.ResponseRate > bestRate {
			best, bestRate = template, stats.ResponseRate
		}
	}
	performance.BestTemplate = best

	return performance
}

func (a *MetricsAggregator) interviewTracking(pipeline *models.Pipeline, now time.Time) models.InterviewTracking {

	tracking := models.InterviewTracking{
		StageBreakdown: map[string]int{},
		OutcomeCounts:  map[models.InterviewOutcome]int{},
	}

	advanced := 0
	for _, key := range pipeline.CompanyKeys() {
		company := pipeline.Companies[key]
		for _, interview := range company.Interviews {
			tracking.Scheduled++

			stage := interview.Stage
			if stage == "" {
				stage = "unknown"
			}
			tracking.StageBreakdown[stage]++
			tracking.OutcomeCounts[interview.Outcome]++

			if interview.Outcome == models.OutcomePending {
				tracking.PendingFeedback++
			}
			if interview.Outcome == models.OutcomeAdvanced {
				advanced++
			}

			if interviewTime, ok := models.ParseTime(interview.Date); ok {
				daysUntil := int(interviewTime.Sub(now).Hours() / 24)
				if daysUntil >= 0 && daysUntil <= upcomingInterviewDays {
					tracking.Upcoming = append(tracking.Upcoming, models.CompanyInterview{
						Company:     company.Name,
						Date:        interview.Date,
						Stage:       interview.Stage,
						Interviewer: interview.Interviewer,
						Outcome:     interview.Outcome,
					})
				}
			}
		}
	}

	tracking.SuccessRate = ratio(advanced, tracking.Scheduled)
	return tracking
}

func (a *MetricsAggregator) weeklyProgress(pipeline *models.Pipeline, window models.Window) models.WeeklyProgress {

	progress := models.WeeklyProgress{
		Window:             window,
		TargetApplications: a.targets.ApplicationsPerWeek,
	}

	for _, key := range pipeline.CompanyKeys() {
		company := pipeline.Companies[key]

		if inWindow(company.ResearchDate, window, key) {
			progress.CompaniesResearched++
		}
		if company.ApplicationGenerated && inWindow(company.ApplicationDate, window, key) {
			progress.ApplicationsSubmitted++
		}

		for _, email := range company.EmailsSent {
			if inWindow(email.SendDate, window, key) {
				progress.EmailsSent++
				if email.ResponseReceived {
					progress.ResponsesReceived++
				}
			}
		}

		for _, interview := range company.Interviews {
			if inWindow(interview.Date, window, key) {
				progress.InterviewsScheduled++
			}
		}
	}

	progress.ProgressVsTarget = ratio(progress.ApplicationsSubmitted, progress.TargetApplications)
	progress.OnTrack = progress.ProgressVsTarget >= 0.8
	return progress
}

func (a *MetricsAggregator) recommend(report *models.MetricsReport) []models.Recommendation {

	var recommendations []models.Recommendation

	if report.Email.ResponseRate < report.Email.TargetResponseRate*0.8 {
		recommendations = append(recommendations, models.Recommendation{
			Category: "email_optimization",
			Priority: models.PriorityHigh,
			Title:    "Improve Email Response Rate",
			Description: fmt.Sprintf("Current response rate (%.1f%%) is below target (%.1f%%)",
				report.Email.ResponseRate*100, report.Email.TargetResponseRate*100),
			Actions: []string{
				"Review email templates for clarity and personalization",
				"Keep emails under 200 words with a clear ask",
				"Focus on 1st/2nd degree connections",
				"Improve company research depth for better personalization",
			},
		})
	}

	if !report.Weekly.OnTrack {
		recommendations = append(recommendations, models.Recommendation{
			Category: "volume_optimization",
			Priority: models.PriorityMedium,
			Title:    "Increase Application Volume",
			Description: fmt.Sprintf("Behind target applications per week (%v vs %v)",
				report.Weekly.ApplicationsSubmitted, report.Weekly.TargetApplications),
			Actions: []string{
				"Research 2-3 additional companies this week",
				"Focus on companies with higher priority scores",
				"Reduce time per application",
			},
		})
	}

	if researched := report.Summary.StatusBreakdown[models.StatusResearched]; researched > 3 {
		recommendations = append(recommendations, models.Recommendation{
			Category:    "pipeline_efficiency",
			Priority:    models.PriorityMedium,
			Title:       "Convert Research to Applications",
			Description: fmt.Sprintf("%v companies researched but not yet applied to", researched),
			Actions: []string{
				"Generate application packages for researched companies",
				"Prioritize companies with scores of 32 and above",
			},
		})
	}

	if report.EmailPerformance.BestTemplate != "" {
		recommendations = append(recommendations, models.Recommendation{
			Category:    "template_optimization",
			Priority:    models.PriorityLow,
			Title:       "Optimize Email Templates",
			Description: fmt.Sprintf("%q template performing best", report.EmailPerformance.BestTemplate),
			Actions: []string{
				fmt.Sprintf("Use %q template for similar company types", report.EmailPerformance.BestTemplate),
				"A/B test variations of high-performing templates",
			},
		})
	}

	return recommendations
}

func ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

// inWindow reports whether a stored timestamp falls inside the closed
// interval. Unparsable timestamps are excluded from windowed counts.
func inWindow(timestamp string, window models.Window, companyKey string) bool {
	t, ok := models.ParseTime(timestamp)
	if !ok {
		if timestamp != "" {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeTimestamp).
				Warnf("unparsable timestamp %q for %v", timestamp, companyKey)
		}
		return false
	}
	return window.Contains(t)
}

func sortLinesStable(lines []models.CompanyStatusLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].PriorityScore != lines[j].PriorityScore {
			return lines[i].PriorityScore > lines[j].PriorityScore
		}
		return lines[i].DaysSinceActivity < lines[j].DaysSinceActivity
	})
}
