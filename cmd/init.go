package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/availops/availagent/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			return fmt.Errorf("%s already exists; remove it first to reinitialize", cfgFile)
		}

		cfg := config.DefaultConfig()
		if err := cfg.Save(cfgFile); err != nil {
			return err
		}

		fmt.Printf("Wrote %s\n", cfgFile)
		if envVar := config.APIKeyEnvVar(cfg.Provider); envVar != "" {
			fmt.Printf("Set %s before running `availagent ask`.\n", envVar)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
