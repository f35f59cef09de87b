package config

import (
	"os"
	"strconv"
)

func loadDevelopmentConfig(cfg *Config) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err == nil {
		cfg.ServerPort = port
	}

	if backend := os.Getenv("BACKEND_API_URL"); backend != "" {
		cfg.BackendBaseURL = backend
	}

	cfg.FrontendURL = "http://localhost:3000"
	cfg.ServerHost = "127.0.0.1"
}
