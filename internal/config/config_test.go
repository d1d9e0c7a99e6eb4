package config

import (
	"github.com/stretchr/testify/assert"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func Test_LoadConfig_ShouldApplyDefaults(t *testing.T) {
	path := writeConfigFile(t, `
store:
  file_path: ./data/pipeline.json
`)

	config, err := loadConfig(path)

	assert.NoError(t, err)
	assert.Equal(t, BackendFile, config.Store.Backend)
	assert.Equal(t, 28, config.Engine.MinPriorityScore)
	assert.Equal(t, 7, config.Engine.FollowUpDays)
	assert.Equal(t, 7, config.Engine.ResearchCacheDays)
	assert.Equal(t, 1.0, config.Engine.GenericKeywordWeight)
	assert.Equal(t, 2.0, config.Engine.RoleKeywordWeight)
	assert.Equal(t, 0.4, config.Targets.ResponseRate)
	assert.Equal(t, 5, config.Targets.ApplicationsPerWeek)
}

func Test_LoadConfig_ShouldOverrideDefaultsFromFile(t *testing.T) {
	path := writeConfigFile(t, `
store:
  backend: sqlite
  connection_string: ./data/pipeline.db
engine:
  min_priority_score: 32
targets:
  applications_per_week: 8
`)

	config, err := loadConfig(path)

	assert.NoError(t, err)
	assert.Equal(t, BackendSqlite, config.Store.Backend)
	assert.Equal(t, "./data/pipeline.db", config.Store.ConnectionString)
	assert.Equal(t, 32, config.Engine.MinPriorityScore)
	assert.Equal(t, 8, config.Targets.ApplicationsPerWeek)
}

func Test_LoadConfig_WhenSqliteWithoutConnectionString_ShouldFail(t *testing.T) {
	path := writeConfigFile(t, `
store:
  backend: sqlite
`)

	_, err := loadConfig(path)

	assert.Error(t, err)
}

func Test_LoadConfig_WhenThresholdOutOfRange_ShouldFail(t *testing.T) {
	path := writeConfigFile(t, `
store:
  file_path: ./data/pipeline.json
engine:
  min_priority_score: 50
`)

	_, err := loadConfig(path)

	assert.Error(t, err)
}
