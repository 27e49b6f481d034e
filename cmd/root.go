package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "availagent",
	Short: "Natural-language agent for service availability questions",
	Long: `Availagent answers questions about service uptime. It keeps a local
warehouse of services, per-day SLA promises and downtime events, computes
realized availability with overlap-aware downtime merging, and drives an
LLM tool loop so you can ask in plain language.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".availagent.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
