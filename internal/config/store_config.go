package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type storeBackend string

const (
	BackendFile   storeBackend = "file"
	BackendSqlite storeBackend = "sqlite"
)

type StoreConfig struct {
	Backend          storeBackend `mapstructure:"backend"`
	FilePath         string       `mapstructure:"file_path"`
	ConnectionString string       `mapstructure:"connection_string"`
}

func (config StoreConfig) validate() error {
	switch config.Backend {
	case BackendFile:
		if config.FilePath == "" {
			return fmt.Errorf("missing variable: store file path")
		}
	case BackendSqlite:
		if config.ConnectionString == "" {
			return fmt.Errorf("missing variable: store connection string")
		}
	default:
		return fmt.Errorf("unknown store backend: %v", config.Backend)
	}
	return nil
}

func (config StoreConfig) bindEnvironmentVariables() error {

	if err := viper.BindEnv("store.backend", "STORE_BACKEND"); err != nil {
		return err
	}

	if err := viper.BindEnv("store.file_path", "STORE_FILE_PATH"); err != nil {
		return err
	}

	return viper.BindEnv("store.connection_string", "STORE_CONNECTION_STRING")
}
