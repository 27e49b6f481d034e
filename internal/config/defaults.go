package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:      ProviderOpenAI,
		Model:         "gpt-4-turbo",
		DBPath:        "data/availagent.db",
		MaxIterations: 8,
		AnswerTimeout: 120,
		Server: ServerConfig{
			Port:     8321,
			AllowAll: false,
		},
	}
}
