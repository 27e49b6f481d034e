package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/availops/availagent/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed [fixture.yml]",
	Short: "Create the warehouse schema and load data",
	Long: `Creates the SQLite warehouse at the configured db_path and loads a
fixture: services, per-day promises and downtime events. Without an argument
a small built-in sample dataset is loaded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	fixture := store.SampleFixture()
	source := "built-in sample"
	if len(args) == 1 {
		if fixture, err = store.LoadFixture(args[0]); err != nil {
			return err
		}
		source = args[0]
	}

	if err := st.Seed(context.Background(), fixture); err != nil {
		return fmt.Errorf("seeding from %s: %w", source, err)
	}

	fmt.Printf("Seeded %d services, %d promise blocks, %d downtime events from %s into %s\n",
		len(fixture.Services), len(fixture.Promises), len(fixture.Downtimes), source, cfg.DBPath)
	return nil
}
