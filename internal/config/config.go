package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger"`
	Store   StoreConfig   `mapstructure:"store"`
	Targets TargetsConfig `mapstructure:"targets"`
	Engine  EngineConfig  `mapstructure:"engine"`
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	if value, ok := os.LookupEnv("CONFIG_PATH"); ok {
		configFile = value
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	viper.SetConfigFile(file)
	viper.AutomaticEnv()

	setDefaults()

	err := bindEnvironmentVariables()
	if err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("store.backend", "file")
	viper.SetDefault("store.file_path", "./data/application_pipeline.json")
	viper.SetDefault("logger.log_level", "INFO")
	viper.SetDefault("logger.output_file", "./logs/jobpilot.log")
	viper.SetDefault("targets.response_rate", 0.4)
	viper.SetDefault("targets.interview_conversion", 0.7)
	viper.SetDefault("targets.applications_per_week", 5)
	viper.SetDefault("engine.min_priority_score", 28)
	viper.SetDefault("engine.follow_up_days", 7)
	viper.SetDefault("engine.research_cache_days", 7)
	viper.SetDefault("engine.generic_keyword_weight", 1.0)
	viper.SetDefault("engine.role_keyword_weight", 2.0)
}

func bindEnvironmentVariables() error {
	var errs []error

	store, logger, engine := StoreConfig{}, LoggerConfig{}, EngineConfig{}

	if err := store.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("StoreConfig: %w", err))
	}

	if err := logger.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := engine.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("EngineConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.Store.validate(); err != nil {
		errs = append(errs, fmt.Errorf("StoreConfig: %w", err))
	}

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := config.Targets.validate(); err != nil {
		errs = append(errs, fmt.Errorf("TargetsConfig: %w", err))
	}

	if err := config.Engine.validate(); err != nil {
		errs = append(errs, fmt.Errorf("EngineConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
