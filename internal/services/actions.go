package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/szoloth/jobpilot/internal/domain/models"
	"github.com/szoloth/jobpilot/internal/logger"
)

// maxActions caps the derived list for display.
const maxActions = 20

const applicationDueDays = 2

// ActionDeriver computes the prioritized next-action list from the current
// pipeline. It is a pure read-side consumer; nothing here mutates the store.
type ActionDeriver struct {
	followUpDays int
}

func NewActionDeriver(followUpDays int) (*ActionDeriver, error) {
	if followUpDays <= 0 {
		return nil, errors.New("follow-up days must be greater than zero")
	}
	return &ActionDeriver{followUpDays: followUpDays}, nil
}

// Derive evaluates every company independently, concatenates the results and
// sorts by priority (high first), then by due date with the freshest
// obligation first. The sort is stable, so companies keep their iteration
// order on full ties.
func (d *ActionDeriver) Derive(pipeline *models.Pipeline, now time.Time) []models.ActionItem {

	var actions []models.ActionItem

	for _, key := range pipeline.CompanyKeys() {
		actions = append(actions, d.deriveForCompany(pipeline.Companies[key], now)...)
	}

	sort.SliceStable(actions, func(i, j int) bool {
		if actions[i].Priority.Order() != actions[j].Priority.Order() {
			return actions[i].Priority.Order() > actions[j].Priority.Order()
		}
		return actions[i].DueDate > actions[j].DueDate
	})

	if len(actions) > maxActions {
		actions = actions[:maxActions]
	}
	return actions
}

func (d *ActionDeriver) deriveForCompany(company *models.CompanyRecord, now time.Time) []models.ActionItem {

	var actions []models.ActionItem

	if company.Status.IsTerminal() {
		return nil
	}

	if company.Status == models.StatusResearched && !company.ApplicationGenerated {
		actions = append(actions, models.ActionItem{
			Priority: models.PriorityHigh,
			Action:   "Generate application package",
			Company:  company.Name,
			DueDate:  dueDate(company.ResearchDate, applicationDueDays, now),
			Details:  "Research completed, ready for application generation",
		})
	}

	for _, email := range company.EmailsSent {
		if email.ResponseReceived || email.FollowUpSent || email.SendDate == "" {
			continue
		}

		sendTime, ok := models.ParseTime(email.SendDate)
		if !ok {
			// Unparsable send dates count as zero elapsed time, so no
			// follow-up ever comes due for them.
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeTimestamp).
				Warnf("unparsable send date %q for %v", email.SendDate, company.Name)
			continue
		}

		daysSince := daysBetween(sendTime, now)
		if daysSince >= d.followUpDays {
			actions = append(actions, models.ActionItem{
				Priority: models.PriorityMedium,
				Action:   "Send follow-up email",
				Company:  company.Name,
				DueDate:  email.SendDate,
				Details:  fmt.Sprintf("Original email sent %v days ago", daysSince),
			})
		}
	}

	for _, interview := range company.Interviews {
		if interview.Outcome != models.OutcomePending || interview.Date == "" {
			continue
		}
		stage := interview.Stage
		if stage == "" {
			stage = "Interview"
		}
		interviewer := interview.Interviewer
		if interviewer == "" {
			interviewer = "TBD"
		}
		actions = append(actions, models.ActionItem{
			Priority: models.PriorityHigh,
			Action:   "Follow up on interview outcome",
			Company:  company.Name,
			DueDate:  interview.Date,
			Details:  fmt.Sprintf("%v with %v", stage, interviewer),
		})
	}

	return actions
}

// DaysSinceActivity reports full days since the company's most recent
// recorded event, zero when nothing parses.
func DaysSinceActivity(company *models.CompanyRecord, now time.Time) int {
	last, ok := models.ParseTime(company.LastActivity())
	if !ok {
		return 0
	}
	return daysBetween(last, now)
}

func daysBetween(from, to time.Time) int {
	days := int(to.Sub(from).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func dueDate(base string, days int, now time.Time) string {
	baseTime, ok := models.ParseTime(base)
	if !ok {
		baseTime = now
	}
	return baseTime.AddDate(0, 0, days).Format(models.TimeFormat)
}
