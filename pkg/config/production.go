package config

import (
	"os"
	"strconv"
)

func loadProductionConfig(cfg *Config) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err == nil {
		cfg.ServerPort = port
	}

	if backend := os.Getenv("BACKEND_API_URL"); backend != "" {
		cfg.BackendBaseURL = backend
	}

	cfg.FrontendURL = os.Getenv("FRONTEND_URL")
	cfg.ServerHost = "0.0.0.0"
}
