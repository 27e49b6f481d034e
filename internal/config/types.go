package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level availagent configuration, corresponding to .availagent.yml.
type Config struct {
	Provider      ProviderType `yaml:"provider" koanf:"provider"`
	Model         string       `yaml:"model" koanf:"model"`
	DBPath        string       `yaml:"db_path" koanf:"db_path"`
	MaxIterations int          `yaml:"max_iterations" koanf:"max_iterations"`
	AnswerTimeout int          `yaml:"answer_timeout_seconds" koanf:"answer_timeout_seconds"`
	Server        ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
