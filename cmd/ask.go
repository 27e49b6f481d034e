package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/availops/availagent/internal/agent"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question about service availability",
	Long: `Runs the tool loop once for a single natural-language question, e.g.:

  availagent ask "What was the availability of the Payments API in December 2024?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	loop, err := buildLoop(cfg, st)
	if err != nil {
		return err
	}

	answer, err := loop.Ask(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, agent.ErrLoopLimit) {
			return fmt.Errorf("the agent could not finish within %d tool iterations; try a narrower question: %w",
				cfg.MaxIterations, err)
		}
		return err
	}

	fmt.Println(answer)
	return nil
}
