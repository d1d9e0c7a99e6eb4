package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/szoloth/jobpilot/internal/domain/models"
)

func newTestRenderer(t *testing.T) *DashboardRenderer {
	return NewDashboardRenderer(newTestAggregator(), newTestDeriver(t))
}

func Test_Render_WhenPipelineEmpty_ShouldStillProduceAllSections(t *testing.T) {
	renderer := newTestRenderer(t)

	dashboard := renderer.Render(models.NewPipeline(), aggregatorNow)

	assert.Contains(t, dashboard, "# Job Search Pipeline Dashboard")
	assert.Contains(t, dashboard, "## Pipeline Summary")
	assert.Contains(t, dashboard, "No companies in pipeline")
	assert.Contains(t, dashboard, "## Success Metrics")
	assert.Contains(t, dashboard, "## Interview Tracking")
	assert.Contains(t, dashboard, "No immediate actions required")
	assert.Contains(t, dashboard, "## Weekly Progress")
}

func Test_Render_ShouldIncludeCompanyRowsAndActions(t *testing.T) {
	renderer := newTestRenderer(t)
	pipeline := models.NewPipeline()
	pipeline.Companies["acme"] = &models.CompanyRecord{
		Name:              "Acme",
		Status:            models.StatusResearched,
		PriorityScore:     32,
		ResearchDate:      "2026-01-14T10:00:00Z",
		ResearchCompleted: true,
	}
	pipeline.RecomputeStats()

	dashboard := renderer.Render(pipeline, aggregatorNow)

	assert.Contains(t, dashboard, "| Acme | researched | 32/40 |")
	assert.Contains(t, dashboard, "[high] **Generate application package** - Acme")
	assert.Contains(t, dashboard, "**Total Companies:** 1")
}
