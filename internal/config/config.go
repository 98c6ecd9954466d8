package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Configuration is the backend server configuration, read from the
// environment.
type Configuration struct {
	Server struct {
		Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
		Port string `envconfig:"SERVER_PORT" default:"8080"`
	}
	Database struct {
		Address      string `envconfig:"MONGO_ADDRESS" default:"mongodb://localhost:27017"`
		DatabaseName string `envconfig:"MONGO_DATABASE" default:"doublestrike"`
		Collection   string `envconfig:"MONGO_COLLECTION" default:"puzzles"`
	}
}

// PregenConfiguration configures the batch pre-generation binary.
type PregenConfiguration struct {
	Database struct {
		Address      string `envconfig:"MONGO_ADDRESS" default:"mongodb://localhost:27017"`
		DatabaseName string `envconfig:"MONGO_DATABASE" default:"doublestrike"`
		Collection   string `envconfig:"MONGO_COLLECTION" default:"puzzles"`
	}
	Batch struct {
		MinPieces    int    `envconfig:"PREGEN_MIN_PIECES" default:"3"`
		MaxPieces    int    `envconfig:"PREGEN_MAX_PIECES" default:"12"`
		CountPerSize int    `envconfig:"PREGEN_COUNT_PER_SIZE" default:"25"`
		WeightsPath  string `envconfig:"PREGEN_WEIGHTS_PATH"`
	}
}

func InitConfig() (*Configuration, error) {
	cfg := &Configuration{}
	err := envconfig.Process("", cfg)
	return cfg, err
}

func InitPregenConfig() (*PregenConfiguration, error) {
	cfg := &PregenConfiguration{}
	err := envconfig.Process("", cfg)
	return cfg, err
}
