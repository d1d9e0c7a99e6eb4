package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/szoloth/jobpilot/internal/domain/models"
	"github.com/szoloth/jobpilot/internal/metrics"
)

// DashboardRenderer turns the aggregator and deriver outputs into the
// markdown pipeline dashboard. The render is a one-way export; nothing ever
// parses it back.
type DashboardRenderer struct {
	aggregator *MetricsAggregator
	deriver    *ActionDeriver
}

func NewDashboardRenderer(aggregator *MetricsAggregator, deriver *ActionDeriver) *DashboardRenderer {
	return &DashboardRenderer{aggregator: aggregator, deriver: deriver}
}

// Render generates the full dashboard for the given pipeline state.
func (r *DashboardRenderer) Render(pipeline *models.Pipeline, now time.Time) string {
	start := time.Now()
	defer func() {
		metrics.DashboardDuration.Observe(time.Since(start).Seconds())
	}()

	report := r.aggregator.Aggregate(pipeline, now)
	actions := r.deriver.Derive(pipeline, now)

	var b strings.Builder

	b.WriteString("# Job Search Pipeline Dashboard\n\n")
	fmt.Fprintf(&b, "**Generated:** %v\n\n", report.GeneratedAt.Format(models.TimeFormat))

	r.renderSummary(&b, report.Summary)
	r.renderCompanyStatus(&b, report.CompanyStatus)
	r.renderSuccessMetrics(&b, report)
	r.renderEmailPerformance(&b, report.EmailPerformance)
	r.renderInterviewTracking(&b, report.InterviewTracking)
	r.renderNextActions(&b, actions)
	r.renderWeeklyProgress(&b, report.Weekly)
	r.renderRecommendations(&b, report.Recommendations)

	b.WriteString("---\n\n*Dashboard auto-generated by the pipeline tracker*\n")
	return b.String()
}

func (r *DashboardRenderer) renderSummary(b *strings.Builder, summary models.PipelineSummary) {
	b.WriteString("## Pipeline Summary\n\n")
	fmt.Fprintf(b, "**Total Companies:** %v  \n", summary.TotalCompanies)
	fmt.Fprintf(b, "**Active Opportunities:** %v  \n", summary.ActiveOpportunities)
	fmt.Fprintf(b, "**Completion Rate:** %.1f%%\n\n", summary.CompletionRate*100)

	b.WriteString("### Status Breakdown\n")
	if len(summary.StatusBreakdown) == 0 {
		b.WriteString("- None\n")
	}
	for _, status := range []models.Status{
		models.StatusResearching, models.StatusResearched, models.StatusApplied,
		models.StatusOutreachSent, models.StatusResponded, models.StatusInterviewing,
		models.StatusOffered, models.StatusHired, models.StatusRejected, models.StatusDisqualified,
	} {
		if count := summary.StatusBreakdown[status]; count > 0 {
			fmt.Fprintf(b, "- **%v:** %v\n", status, count)
		}
	}

	b.WriteString("\n### Priority Breakdown\n")
	for _, band := range []string{"high", "medium", "low"} {
		if count := summary.PriorityBreakdown[band]; count > 0 {
			fmt.Fprintf(b, "- **%v:** %v\n", band, count)
		}
	}
	b.WriteString("\n")
}

func (r *DashboardRenderer) renderCompanyStatus(b *strings.Builder, companies []models.CompanyStatusLine) {
	b.WriteString("## Company Status\n\n")
	if len(companies) == 0 {
		b.WriteString("No companies in pipeline\n\n")
		return
	}

	b.WriteString("| Company | Status | Priority | Days Since Activity | Next Action |\n")
	b.WriteString("|---------|--------|----------|---------------------|-------------|\n")

	shown := companies
	if len(shown) > 15 {
		shown = shown[:15]
	}
	for _, company := range shown {
		fmt.Fprintf(b, "| %v | %v | %v/40 | %v | %v |\n",
			company.CompanyName, company.Status, company.PriorityScore,
			company.DaysSinceActivity, company.NextAction)
	}
	if len(companies) > 15 {
		fmt.Fprintf(b, "\n*Showing top 15 of %v companies*\n", len(companies))
	}
	b.WriteString("\n")
}

func (r *DashboardRenderer) renderSuccessMetrics(b *strings.Builder, report *models.MetricsReport) {
	b.WriteString("## Success Metrics\n\n")
	b.WriteString("### Email Campaign Performance\n")
	fmt.Fprintf(b, "- **Emails Sent:** %v\n", report.Email.TotalSent)
	fmt.Fprintf(b, "- **Response Rate:** %.1f%% (Target: %.1f%%)\n",
		report.Email.ResponseRate*100, report.Email.TargetResponseRate*100)
	fmt.Fprintf(b, "- **Performance vs Target:** %.1fx\n\n", report.Email.PerformanceVsTarget)

	b.WriteString("### Application Conversion\n")
	fmt.Fprintf(b, "- **Applications Submitted:** %v\n", report.Applications.TotalApplications)
	fmt.Fprintf(b, "- **Interviews Scheduled:** %v\n", report.Applications.InterviewsScheduled)
	fmt.Fprintf(b, "- **Interview Conversion:** %.1f%% (Target: %.1f%%)\n",
		report.Applications.InterviewConversionRate*100, report.Applications.TargetConversionRate*100)
	fmt.Fprintf(b, "- **Offers Received:** %v (%.1f%% of interviews)\n\n",
		report.Offers.OffersReceived, report.Offers.OfferConversionRate*100)
}

func (r *DashboardRenderer) renderEmailPerformance(b *strings.Builder, performance models.EmailPerformance) {
	b.WriteString("## Email Performance\n\n")
	fmt.Fprintf(b, "**Total Campaigns:** %v  \n", performance.TotalCampaigns)
	fmt.Fprintf(b, "**Pending Responses:** %v  \n", performance.PendingResponses)
	if performance.BestTemplate != "" {
		fmt.Fprintf(b, "**Best Template:** %v  \n", performance.BestTemplate)
	}
	b.WriteString("\n")

	if len(performance.TemplateOrder) > 0 {
		b.WriteString("### Template Performance\n")
		for _, template := range performance.TemplateOrder {
			stats := performance.Templates[template]
			fmt.Fprintf(b, "- **%v:** %.1f%% (%v/%v)\n",
				template, stats.ResponseRate*100, stats.Responses, stats.EmailsSent)
		}
		b.WriteString("\n")
	}
}

func (r *DashboardRenderer) renderInterviewTracking(b *strings.Builder, tracking models.InterviewTracking) {
	b.WriteString("## Interview Tracking\n\n")
	fmt.Fprintf(b, "**Scheduled Interviews:** %v  \n", tracking.Scheduled)
	fmt.Fprintf(b, "**Success Rate:** %.1f%%  \n", tracking.SuccessRate*100)
	fmt.Fprintf(b, "**Pending Feedback:** %v  \n\n", tracking.PendingFeedback)

	if len(tracking.Upcoming) > 0 {
		b.WriteString("### Upcoming Interviews\n")
		for _, interview := range tracking.Upcoming {
			fmt.Fprintf(b, "- **%v:** %v - %v\n", interview.Company, interview.Date, interview.Stage)
		}
		b.WriteString("\n")
	}
}

func (r *DashboardRenderer) renderNextActions(b *strings.Builder, actions []models.ActionItem) {
	b.WriteString("## Next Actions\n\n")
	if len(actions) == 0 {
		b.WriteString("No immediate actions required\n\n")
		return
	}

	for _, action := range actions {
		fmt.Fprintf(b, "- [%v] **%v** - %v  \n", action.Priority, action.Action, action.Company)
		fmt.Fprintf(b, "  %v (due %v)\n", action.Details, action.DueDate)
	}
	b.WriteString("\n")
}

func (r *DashboardRenderer) renderWeeklyProgress(b *strings.Builder, weekly models.WeeklyProgress) {
	b.WriteString("## Weekly Progress\n\n")
	status := "behind target"
	if weekly.OnTrack {
		status = "on track"
	}
	fmt.Fprintf(b, "**Week Progress:** %.0f%% of target (%v)\n\n", weekly.ProgressVsTarget*100, status)
	fmt.Fprintf(b, "- **Companies Researched:** %v\n", weekly.CompaniesResearched)
	fmt.Fprintf(b, "- **Applications Submitted:** %v\n", weekly.ApplicationsSubmitted)
	fmt.Fprintf(b, "- **Emails Sent:** %v\n", weekly.EmailsSent)
	fmt.Fprintf(b, "- **Responses Received:** %v\n", weekly.ResponsesReceived)
	fmt.Fprintf(b, "- **Interviews Scheduled:** %v\n", weekly.InterviewsScheduled)
	fmt.Fprintf(b, "\n**Target Applications/Week:** %v\n\n", weekly.TargetApplications)
}

func (r *DashboardRenderer) renderRecommendations(b *strings.Builder, recommendations []models.Recommendation) {
	b.WriteString("## Recommendations\n\n")
	if len(recommendations) == 0 {
		b.WriteString("No specific recommendations at this time\n\n")
		return
	}

	for _, rec := range recommendations {
		fmt.Fprintf(b, "- [%v] **%v**  \n", rec.Priority, rec.Title)
		fmt.Fprintf(b, "  %v\n", rec.Description)
		for _, action := range rec.Actions {
			fmt.Fprintf(b, "  - %v\n", action)
		}
	}
	b.WriteString("\n")
}
