package repositories

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/szoloth/jobpilot/internal/domain/models"
	"os"
	"path/filepath"
	"testing"
)

func newFileRepository(t *testing.T) *Pipelines {
	path := filepath.Join(t.TempDir(), "pipeline.json")
	return NewPipelinesRepository(NewFileBackend(path))
}

func Test_Load_WhenStoreNeverWritten_ShouldReturnEmptyPipeline(t *testing.T) {
	repo := newFileRepository(t)

	pipeline, err := repo.Load(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, pipeline.Companies)
}

func Test_Load_WhenStoreIsCorrupt_ShouldFailWithoutDiscardingData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.json")
	err := os.WriteFile(path, []byte("{not json"), 0644)
	assert.NoError(t, err)

	repo := NewPipelinesRepository(NewFileBackend(path))
	_, err = repo.Load(context.Background())

	assert.ErrorIs(t, err, ErrCorruptStore)

	data, readErr := os.ReadFile(path)
	assert.NoError(t, readErr)
	assert.Equal(t, "{not json", string(data))
}

func Test_SaveLoad_ShouldRoundTrip(t *testing.T) {
	repo := newFileRepository(t)
	ctx := context.Background()

	pipeline := models.NewPipeline()
	pipeline.Companies["acme"] = &models.CompanyRecord{
		Name:              "acme",
		Status:            models.StatusResearched,
		PriorityScore:     31,
		ResearchDate:      "2026-01-05T10:00:00Z",
		ResearchCompleted: true,
	}
	pipeline.RecomputeStats()

	assert.NoError(t, repo.Save(ctx, pipeline))

	loaded, err := repo.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, pipeline, loaded)
}

func Test_Upsert_WhenCompanyAbsent_ShouldCreateRecord(t *testing.T) {
	repo := newFileRepository(t)

	company, err := repo.Upsert(context.Background(), "acme", func(c *models.CompanyRecord) {
		c.PriorityScore = 30
	})

	assert.NoError(t, err)
	assert.Equal(t, "acme", company.Name)
	assert.Equal(t, models.StatusResearching, company.Status)
	assert.Equal(t, 30, company.PriorityScore)

	loaded, err := repo.Load(context.Background())
	assert.NoError(t, err)
	assert.Contains(t, loaded.Companies, "acme")
}

func Test_Upsert_ShouldRederiveStatusAndStats(t *testing.T) {
	repo := newFileRepository(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "acme", func(c *models.CompanyRecord) {
		c.ResearchCompleted = true
		c.ResearchDate = "2026-01-05T10:00:00Z"
		// leave the stale stored status in place, the upsert corrects it
	})
	assert.NoError(t, err)

	loaded, err := repo.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusResearched, loaded.Companies["acme"].Status)
	assert.Equal(t, 1, loaded.Stats.TotalResearched)
}

func Test_Upsert_WhenAppliedTwice_ShouldStayConsistent(t *testing.T) {
	repo := newFileRepository(t)
	ctx := context.Background()

	markResearched := func(c *models.CompanyRecord) {
		c.ResearchCompleted = true
	}
	_, err := repo.Upsert(ctx, "acme", markResearched)
	assert.NoError(t, err)
	_, err = repo.Upsert(ctx, "acme", markResearched)
	assert.NoError(t, err)

	loaded, err := repo.Load(ctx)
	assert.NoError(t, err)
	assert.Len(t, loaded.Companies, 1)
	assert.Equal(t, 1, loaded.Stats.TotalResearched)
}

func Test_SqliteBackend_ShouldRoundTrip(t *testing.T) {
	backend, err := NewSqliteBackend(filepath.Join(t.TempDir(), "pipeline.db"))
	assert.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	_, err = backend.Read(ctx)
	assert.ErrorIs(t, err, ErrNotExists)

	assert.NoError(t, backend.Write(ctx, []byte(`{"companies":{}}`)))

	data, err := backend.Read(ctx)
	assert.NoError(t, err)
	assert.Equal(t, `{"companies":{}}`, string(data))

	// overwrite keeps a single document
	assert.NoError(t, backend.Write(ctx, []byte(`{"companies":{"acme":{}}}`)))
	data, err = backend.Read(ctx)
	assert.NoError(t, err)
	assert.Equal(t, `{"companies":{"acme":{}}}`, string(data))
}
