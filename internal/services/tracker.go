package services

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/szoloth/jobpilot/internal/domain/models"
	"github.com/szoloth/jobpilot/internal/events"
	"github.com/szoloth/jobpilot/internal/metrics"
)

// ErrDisqualified is returned by workflow calls against a company that failed
// the qualification gate. Re-running research with force refresh is the only
// way back in.
var ErrDisqualified = errors.New("company is disqualified")

type pipelineRepository interface {
	Load(ctx context.Context) (*models.Pipeline, error)
	Upsert(ctx context.Context, key string, apply func(*models.CompanyRecord)) (*models.CompanyRecord, error)
}

// Tracker drives the per-company status lifecycle. Every mutation goes
// through the repository's upsert, which re-derives status from fields, so
// transitions stay monotonic without trusting what was stored.
type Tracker struct {
	pipelines        pipelineRepository
	bus              EventBus.Bus
	minPriorityScore int
	now              func() time.Time
}

func NewTracker(bus EventBus.Bus, pipelines pipelineRepository, minPriorityScore int) (*Tracker, error) {

	if minPriorityScore < 0 || minPriorityScore > 40 {
		return nil, errors.New("minimum priority score must be within 0-40")
	}

	return &Tracker{
		pipelines:        pipelines,
		bus:              bus,
		minPriorityScore: minPriorityScore,
		now:              time.Now,
	}, nil
}

// RecordResearch registers a research pass for a company. The qualification
// gate runs first: a total below the threshold disqualifies the company and
// skips everything downstream. forceRefresh re-qualifies a company from
// scratch and is the only sanctioned backward move.
func (t *Tracker) RecordResearch(ctx context.Context, companyName, roleTitle string,
	scores models.QualificationScores, forceRefresh bool) (*models.CompanyRecord, error) {

	if err := scores.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid qualification scores")
	}

	key := models.NormalizeKey(companyName)

	pipeline, err := t.pipelines.Load(ctx)
	if err != nil {
		return nil, err
	}

	if existing, ok := pipeline.Companies[key]; ok && !forceRefresh {
		if existing.ResearchCompleted {
			log.Infof("company %v already researched, use force refresh to update", companyName)
			return existing, nil
		}
		if existing.Status == models.StatusDisqualified {
			return existing, ErrDisqualified
		}
	}

	return t.transition(ctx, key, func(c *models.CompanyRecord) {
		if forceRefresh {
			*c = models.CompanyRecord{Status: models.StatusResearching}
		}
		c.Name = companyName
		c.RoleTitle = roleTitle
		c.ResearchDate = t.now().Format(models.TimeFormat)
		c.PriorityScore = scores.Total()
		c.PriorityBreakdown = scores.Breakdown()

		if c.PriorityScore < t.minPriorityScore {
			c.Status = models.StatusDisqualified
			log.Infof("company %v scored %v/40, below threshold of %v",
				companyName, c.PriorityScore, t.minPriorityScore)
			return
		}
		c.ResearchCompleted = true
	})
}

// RecordApplication marks the application package as generated, moving the
// company from researched to applied.
func (t *Tracker) RecordApplication(ctx context.Context, companyName string) (*models.CompanyRecord, error) {
	if _, err := t.guardActive(ctx, companyName); err != nil {
		return nil, err
	}

	return t.transition(ctx, models.NormalizeKey(companyName), func(c *models.CompanyRecord) {
		c.ApplicationGenerated = true
		if c.ApplicationDate == "" {
			c.ApplicationDate = t.now().Format(models.TimeFormat)
		}
	})
}

// RecordEmail appends an outreach attempt. The attempt is immutable once
// recorded except for its response and follow-up flags.
func (t *Tracker) RecordEmail(ctx context.Context, companyName string, attempt models.EmailAttempt) (*models.CompanyRecord, error) {
	if _, err := t.guardActive(ctx, companyName); err != nil {
		return nil, err
	}

	if attempt.SendDate == "" {
		attempt.SendDate = t.now().Format(models.TimeFormat)
	}

	return t.transition(ctx, models.NormalizeKey(companyName), func(c *models.CompanyRecord) {
		c.EmailsSent = append(c.EmailsSent, attempt)
	})
}

// RecordResponse sets the response flag of the given email attempt. The set
// is idempotent; the flag never reverts.
func (t *Tracker) RecordResponse(ctx context.Context, companyName string, emailIndex int) (*models.CompanyRecord, error) {
	return t.markEmail(ctx, companyName, emailIndex, (*models.EmailAttempt).MarkResponded)
}

// RecordFollowUp sets the follow-up flag of the given email attempt.
func (t *Tracker) RecordFollowUp(ctx context.Context, companyName string, emailIndex int) (*models.CompanyRecord, error) {
	return t.markEmail(ctx, companyName, emailIndex, (*models.EmailAttempt).MarkFollowedUp)
}

func (t *Tracker) markEmail(ctx context.Context, companyName string, emailIndex int,
	mark func(*models.EmailAttempt) bool) (*models.CompanyRecord, error) {

	company, err := t.guardActive(ctx, companyName)
	if err != nil {
		return nil, err
	}
	if emailIndex < 0 || emailIndex >= len(company.EmailsSent) {
		return nil, fmt.Errorf("no email attempt at index %v", emailIndex)
	}

	return t.transition(ctx, models.NormalizeKey(companyName), func(c *models.CompanyRecord) {
		mark(&c.EmailsSent[emailIndex])
	})
}

// RecordInterview appends an interview event with a pending outcome.
func (t *Tracker) RecordInterview(ctx context.Context, companyName string, interview models.InterviewEvent) (*models.CompanyRecord, error) {
	if _, err := t.guardActive(ctx, companyName); err != nil {
		return nil, err
	}

	if interview.Outcome == "" {
		interview.Outcome = models.OutcomePending
	}
	if interview.Date == "" {
		interview.Date = t.now().Format(models.TimeFormat)
	}

	return t.transition(ctx, models.NormalizeKey(companyName), func(c *models.CompanyRecord) {
		c.Interviews = append(c.Interviews, interview)
	})
}

// RecordInterviewOutcome resolves a pending interview. An already resolved
// interview is left untouched.
func (t *Tracker) RecordInterviewOutcome(ctx context.Context, companyName string, interviewIndex int,
	outcome models.InterviewOutcome) (*models.CompanyRecord, error) {

	company, err := t.guardActive(ctx, companyName)
	if err != nil {
		return nil, err
	}
	if interviewIndex < 0 || interviewIndex >= len(company.Interviews) {
		return nil, fmt.Errorf("no interview at index %v", interviewIndex)
	}

	return t.transition(ctx, models.NormalizeKey(companyName), func(c *models.CompanyRecord) {
		if !c.Interviews[interviewIndex].Resolve(outcome) {
			log.Warnf("interview %v of %v is already resolved", interviewIndex, companyName)
		}
	})
}

// RecordOfferDecision records the external accept/decline decision on an
// offer. Only the resulting terminal state is stored.
func (t *Tracker) RecordOfferDecision(ctx context.Context, companyName string, accepted bool) (*models.CompanyRecord, error) {
	key := models.NormalizeKey(companyName)

	pipeline, err := t.pipelines.Load(ctx)
	if err != nil {
		return nil, err
	}

	company, ok := pipeline.Companies[key]
	if !ok {
		return nil, fmt.Errorf("unknown company: %v", companyName)
	}

	next := models.StatusHired
	if !accepted {
		next = models.StatusRejected
	}
	if !company.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("cannot transition %v from %v to %v", companyName, company.Status, next)
	}

	return t.transition(ctx, key, func(c *models.CompanyRecord) {
		c.OfferReceived = true
		c.Status = next
	})
}

// guardActive rejects workflow calls against unknown or disqualified
// companies. Only research creates a record; downstream operations never do.
func (t *Tracker) guardActive(ctx context.Context, companyName string) (*models.CompanyRecord, error) {
	pipeline, err := t.pipelines.Load(ctx)
	if err != nil {
		return nil, err
	}

	company, ok := pipeline.Companies[models.NormalizeKey(companyName)]
	if !ok {
		return nil, fmt.Errorf("unknown company: %v", companyName)
	}
	if company.Status == models.StatusDisqualified {
		return nil, ErrDisqualified
	}
	return company, nil
}

func (t *Tracker) transition(ctx context.Context, key string, apply func(*models.CompanyRecord)) (*models.CompanyRecord, error) {

	var from models.Status
	record, err := t.pipelines.Upsert(ctx, key, func(c *models.CompanyRecord) {
		from = c.Status
		apply(c)
	})
	if err != nil {
		return nil, err
	}

	if record.Status != from {
		metrics.StatusTransitionsCounter.WithLabelValues(string(from), string(record.Status)).Inc()
		t.bus.Publish(events.StatusChangedTopic, events.StatusChanged{
			CompanyKey:  key,
			CompanyName: record.Name,
			From:        from,
			To:          record.Status,
		})
		log.Infof("company %v moved from %v to %v", key, from, record.Status)
	}
	return record, nil
}
