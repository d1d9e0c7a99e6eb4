package config

import "github.com/go-playground/validator/v10"

// TargetsConfig holds the success-metric targets the aggregator measures
// against.
type TargetsConfig struct {
	ResponseRate        float64 `mapstructure:"response_rate" validate:"gt=0,lte=1"`
	InterviewConversion float64 `mapstructure:"interview_conversion" validate:"gt=0,lte=1"`
	ApplicationsPerWeek int     `mapstructure:"applications_per_week" validate:"gt=0"`
}

func (config TargetsConfig) validate() error {
	return validator.New().Struct(config)
}
