package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/availops/availagent/internal/report"
	"github.com/availops/availagent/internal/sla"
)

var reportCmd = &cobra.Command{
	Use:   "report [service-id]",
	Short: "Generate an availability report for a service",
	Long: `Computes availability for a service over a date range and prints a
markdown report. With --html the report is rendered as a standalone HTML
page. This path does not involve the LLM; output is fully deterministic.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("from", "", "start date YYYY-MM-DD (required)")
	reportCmd.Flags().String("to", "", "end date YYYY-MM-DD (required)")
	reportCmd.Flags().String("html", "", "write an HTML report to the given file")
	reportCmd.MarkFlagRequired("from")
	reportCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	serviceID := args[0]
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	htmlPath, _ := cmd.Flags().GetString("html")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	svc, err := st.GetService(ctx, serviceID)
	if err != nil {
		return err
	}

	result, err := sla.NewCalculator(st).Compute(ctx, serviceID, from, to)
	if err != nil {
		return err
	}

	markdown := report.Markdown(svc, result)

	if htmlPath != "" {
		page, err := report.HTML(markdown, fmt.Sprintf("Availability Report: %s", svc.Name))
		if err != nil {
			return err
		}
		if err := os.WriteFile(htmlPath, []byte(page), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", htmlPath, err)
		}
		fmt.Printf("Wrote HTML report to %s\n", htmlPath)
		return nil
	}

	fmt.Print(markdown)
	return nil
}
