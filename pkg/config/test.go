package config

func loadTestConfig(cfg *Config) {
	cfg.DatabaseFilePath = "file::memory:?cache=shared"
	cfg.ServerHost = "127.0.0.1"
	// Random port so parallel test runs don't collide.
	cfg.ServerPort = 0
}
