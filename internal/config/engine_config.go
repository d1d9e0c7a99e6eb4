package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EngineConfig tunes the pipeline engine: the qualification gate, the
// follow-up window and the scorer's weight table. The generic/role weight
// split is deliberately configurable instead of being fixed per call site.
type EngineConfig struct {
	MinPriorityScore     int     `mapstructure:"min_priority_score" validate:"min=0,max=40"`
	FollowUpDays         int     `mapstructure:"follow_up_days" validate:"gt=0"`
	ResearchCacheDays    int     `mapstructure:"research_cache_days" validate:"gt=0"`
	GenericKeywordWeight float64 `mapstructure:"generic_keyword_weight" validate:"gt=0"`
	RoleKeywordWeight    float64 `mapstructure:"role_keyword_weight" validate:"gt=0"`
}

func (config EngineConfig) validate() error {
	return validator.New().Struct(config)
}

func (config EngineConfig) bindEnvironmentVariables() error {

	if err := viper.BindEnv("engine.min_priority_score", "MIN_PRIORITY_SCORE"); err != nil {
		return err
	}

	return viper.BindEnv("engine.research_cache_days", "RESEARCH_CACHE_DAYS")
}
