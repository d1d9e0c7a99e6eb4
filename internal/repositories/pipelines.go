package repositories

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/szoloth/jobpilot/internal/domain/models"
	"github.com/szoloth/jobpilot/internal/logger"
	"github.com/szoloth/jobpilot/internal/metrics"
)

// ErrCorruptStore indicates the persisted document exists but is not
// well-formed JSON. The caller decides whether to reinitialize or abort;
// the repository never discards existing data on its own.
var ErrCorruptStore = stderrors.New("pipeline store is corrupt")

type Pipelines struct {
	backend Backend
}

func NewPipelinesRepository(backend Backend) *Pipelines {
	return &Pipelines{backend: backend}
}

// Load reads the full pipeline. A store that has never been written yields a
// fresh empty pipeline; a malformed one yields ErrCorruptStore.
func (repo *Pipelines) Load(ctx context.Context) (*models.Pipeline, error) {
	data, err := repo.backend.Read(ctx)
	if err != nil {
		if stderrors.Is(err, ErrNotExists) {
			return models.NewPipeline(), nil
		}
		return nil, err
	}

	pipeline := models.NewPipeline()
	if err = json.Unmarshal(data, pipeline); err != nil {
		return nil, errors.Wrap(ErrCorruptStore, err.Error())
	}
	if pipeline.Companies == nil {
		pipeline.Companies = map[string]*models.CompanyRecord{}
	}
	return pipeline, nil
}

// Save overwrites the whole document. The next value is fully marshaled
// before the backend is touched, so there is no partial-write window.
func (repo *Pipelines) Save(ctx context.Context, pipeline *models.Pipeline) error {
	data, err := json.MarshalIndent(pipeline, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal pipeline")
	}
	return repo.backend.Write(ctx, data)
}

// Upsert is the only sanctioned mutation path: it loads the current pipeline,
// applies the mutation to the named company (creating the record when absent),
// re-derives the record's status from its fields, recomputes stats and saves.
func (repo *Pipelines) Upsert(ctx context.Context, key string, apply func(*models.CompanyRecord)) (*models.CompanyRecord, error) {
	pipeline, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	company, exists := pipeline.Companies[key]
	if !exists {
		company = &models.CompanyRecord{
			Name:   key,
			Status: models.StatusResearching,
		}
		pipeline.Companies[key] = company
	}

	apply(company)

	if corrected := company.Normalize(); corrected {
		metrics.IntegrityWarningsCounter.Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeIntegrity).
			Warnf("status of %v disagreed with its fields, corrected to %v", key, company.Status)
	}

	pipeline.RecomputeStats()

	if err = repo.Save(ctx, pipeline); err != nil {
		return nil, err
	}
	metrics.UpsertsCounter.Inc()
	return company, nil
}
