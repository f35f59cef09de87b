package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	BackendBaseURL        string
	BackendRequestTimeout time.Duration
	FrontendURL           string
	Hostname              string
	ServerHost            string
	ServerPort            int
}

const environmentENV = "ENVIRONMENT"

func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		BackendBaseURL:        "http://localhost:8000",
		BackendRequestTimeout: 30 * time.Second,
		Hostname:              hostname,
		ServerPort:            3100,
	}

	switch os.Getenv(environmentENV) {
	case "development", "":
		loadDevelopmentConfig(cfg)
	case "test":
		loadTestConfig(cfg)
	case "production":
		loadProductionConfig(cfg)
	}

	return cfg, nil
}
