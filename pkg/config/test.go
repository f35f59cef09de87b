package config

func loadTestConfig(cfg *Config) {
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = 0
}
