package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/availops/availagent/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts an HTTP server exposing the warehouse lookups
(/api/services, /api/services/{id}/promise|downtime|availability) and the
agent (POST /api/ask).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		var asker server.Asker
		loop, err := buildLoop(cfg, st)
		if err != nil {
			// The lookups still work without an LLM key; /api/ask reports 503.
			fmt.Fprintf(os.Stderr, "Warning: agent disabled: %v\n", err)
		} else {
			asker = loop
		}

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAll,
		}, st, asker)

		return srv.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
