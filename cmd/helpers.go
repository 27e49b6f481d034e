package cmd

import (
	"fmt"
	"time"

	"github.com/availops/availagent/internal/agent"
	"github.com/availops/availagent/internal/config"
	"github.com/availops/availagent/internal/llm"
	"github.com/availops/availagent/internal/store"
	"github.com/availops/availagent/internal/tools"
)

// loadConfig loads and validates the configuration file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openStore opens the warehouse configured in db_path.
func openStore(cfg *config.Config) (*store.Store, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening warehouse %s: %w", cfg.DBPath, err)
	}
	return st, nil
}

// buildLoop wires the LLM provider and tool catalog into an agent loop.
func buildLoop(cfg *config.Config, st *store.Store) (*agent.Loop, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("creating %s provider: %w", cfg.Provider, err)
	}

	catalog := tools.NewCatalog(st)

	return agent.New(provider, catalog, agent.Options{
		Model:         cfg.Model,
		MaxIterations: cfg.MaxIterations,
		Timeout:       time.Duration(cfg.AnswerTimeout) * time.Second,
		Verbose:       verbose,
	}), nil
}
