package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/szoloth/jobpilot/internal/config"
	"github.com/szoloth/jobpilot/internal/domain/models"
	"github.com/szoloth/jobpilot/internal/events"
	"github.com/szoloth/jobpilot/internal/logger"
	"github.com/szoloth/jobpilot/internal/metrics"
	"github.com/szoloth/jobpilot/internal/repositories"
	"github.com/szoloth/jobpilot/internal/services"
)

const dashboardFile = "Pipeline_Dashboard.md"

const metricsAddr = ":8080"

func newBackend(cfg config.StoreConfig) (repositories.Backend, func(), error) {
	if cfg.Backend == config.BackendSqlite {
		backend, err := repositories.NewSqliteBackend(cfg.ConnectionString)
		if err != nil {
			return nil, nil, err
		}
		return backend, func() { _ = backend.Close() }, nil
	}
	return repositories.NewFileBackend(cfg.FilePath), func() {}, nil
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	backend, closeBackend, err := newBackend(cfg.Store)
	if err != nil {
		log.Fatalf("can't create store backend: %v", err)
	}
	defer closeBackend()

	pipelines := repositories.NewPipelinesRepository(backend)

	bus := EventBus.New()
	err = bus.Subscribe(events.StatusChangedTopic, func(event events.StatusChanged) {
		log.Infof("%v: %v -> %v", event.CompanyName, event.From, event.To)
	})
	if err != nil {
		log.Fatalf("can't subscribe to status changes: %v", err)
	}

	tracker, err := services.NewTracker(bus, pipelines, cfg.Engine.MinPriorityScore)
	if err != nil {
		log.Fatalf("can't create tracker: %v", err)
	}

	if err = run(ctx, cfg, tracker, pipelines, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, tracker *services.Tracker,
	pipelines *repositories.Pipelines, args []string) error {

	command := "track"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "track":
		return generateDashboard(ctx, cfg, pipelines)
	case "serve":
		return runServe(ctx, cfg, pipelines)
	case "research":
		return runResearch(ctx, tracker, args)
	case "apply":
		if len(args) < 1 {
			return fmt.Errorf("usage: apply <company>")
		}
		_, err := tracker.RecordApplication(ctx, args[0])
		return err
	case "email":
		if len(args) < 2 {
			return fmt.Errorf("usage: email <company> <template>")
		}
		_, err := tracker.RecordEmail(ctx, args[0], models.EmailAttempt{TemplateUsed: args[1]})
		return err
	case "respond":
		return runEmailFlag(ctx, tracker.RecordResponse, args)
	case "follow-up":
		return runEmailFlag(ctx, tracker.RecordFollowUp, args)
	case "interview":
		if len(args) < 3 {
			return fmt.Errorf("usage: interview <company> <stage> <interviewer>")
		}
		_, err := tracker.RecordInterview(ctx, args[0], models.InterviewEvent{
			Stage:       args[1],
			Interviewer: args[2],
		})
		return err
	case "outcome":
		if len(args) < 3 {
			return fmt.Errorf("usage: outcome <company> <index> <pending|advanced|rejected|withdrawn>")
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid interview index: %v", args[1])
		}
		_, err = tracker.RecordInterviewOutcome(ctx, args[0], index, models.InterviewOutcome(args[2]))
		return err
	case "offer":
		if len(args) < 2 {
			return fmt.Errorf("usage: offer <company> <accept|decline>")
		}
		_, err := tracker.RecordOfferDecision(ctx, args[0], args[1] == "accept")
		return err
	default:
		return fmt.Errorf("unknown command: %v", command)
	}
}

func runResearch(ctx context.Context, tracker *services.Tracker, args []string) error {
	if len(args) < 6 {
		return fmt.Errorf("usage: research <company> <role> <role_appeal> <company_fit> <growth_potential> <likelihood> [force]")
	}

	values := make([]int, 4)
	for i, arg := range args[2:6] {
		value, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid score: %v", arg)
		}
		values[i] = value
	}

	force := len(args) > 6 && args[6] == "force"
	_, err := tracker.RecordResearch(ctx, args[0], args[1], models.QualificationScores{
		RoleAppeal:      values[0],
		CompanyFit:      values[1],
		GrowthPotential: values[2],
		Likelihood:      values[3],
	}, force)
	return err
}

func runEmailFlag(ctx context.Context,
	record func(context.Context, string, int) (*models.CompanyRecord, error), args []string) error {

	if len(args) < 2 {
		return fmt.Errorf("usage: <command> <company> <email_index>")
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid email index: %v", args[1])
	}
	_, err = record(ctx, args[0], index)
	return err
}

// runServe keeps the engine up, exposes prometheus metrics and refreshes the
// dashboard every hour until interrupted.
func runServe(ctx context.Context, cfg *config.Config, pipelines *repositories.Pipelines) error {

	metrics.StartMetricsServer(metricsAddr)

	scheduler := cron.New()
	_, err := scheduler.AddFunc("0 * * * *", func() {
		if err := generateDashboard(ctx, cfg, pipelines); err != nil {
			log.Errorf("scheduled dashboard generation failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	if err = generateDashboard(ctx, cfg, pipelines); err != nil {
		return err
	}

	scheduler.Start()
	defer scheduler.Stop()

	log.Infof("serving metrics on %v, refreshing dashboard hourly", metricsAddr)
	<-ctx.Done()
	return nil
}

func generateDashboard(ctx context.Context, cfg *config.Config, pipelines *repositories.Pipelines) error {

	deriver, err := services.NewActionDeriver(cfg.Engine.FollowUpDays)
	if err != nil {
		return err
	}

	aggregator := services.NewMetricsAggregator(cfg.Targets)
	renderer := services.NewDashboardRenderer(aggregator, deriver)

	pipeline, err := pipelines.Load(ctx)
	if err != nil {
		// Falling back to an empty pipeline here would silently discard
		// existing data; only a store that never existed bootstraps empty.
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStore).
			Errorf("can't load pipeline: %v", err)
		return err
	}

	dashboard := renderer.Render(pipeline, time.Now())
	if err = os.WriteFile(dashboardFile, []byte(dashboard), 0644); err != nil {
		return err
	}

	log.Infof("dashboard saved to %v, companies tracked: %v", dashboardFile, len(pipeline.Companies))
	return nil
}
