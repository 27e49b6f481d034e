package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/availops/availagent/internal/progress"
	"github.com/availops/availagent/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import [events.csv]",
	Short: "Bulk-import downtime events from a CSV file",
	Long: `Imports downtime events from a CSV file with a header row and the
columns: service_id, started_at, ended_at, minutes, reason, category.
Timestamps are RFC 3339; minutes may be empty, in which case the timestamp
span is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	if len(records) < 2 {
		return fmt.Errorf("%s contains no data rows", args[0])
	}
	rows := records[1:] // skip header

	ctx := context.Background()
	reporter := progress.NewReporter()
	reporter.Start(len(rows))

	imported := 0
	for i, row := range rows {
		ev, err := parseEventRow(row)
		if err != nil {
			reporter.Finish()
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := st.InsertDowntime(ctx, *ev); err != nil {
			reporter.Finish()
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		imported++
		reporter.Update(imported, fmt.Sprintf("imported %s", ev.ServiceID))
	}
	reporter.Finish()

	fmt.Printf("Imported %d downtime events into %s\n", imported, cfg.DBPath)
	return nil
}

func parseEventRow(row []string) (*store.DowntimeEvent, error) {
	if len(row) < 6 {
		return nil, fmt.Errorf("expected 6 columns, got %d", len(row))
	}

	started, err := time.Parse(time.RFC3339, row[1])
	if err != nil {
		return nil, fmt.Errorf("bad started_at %q: %w", row[1], err)
	}
	ended, err := time.Parse(time.RFC3339, row[2])
	if err != nil {
		return nil, fmt.Errorf("bad ended_at %q: %w", row[2], err)
	}
	if !ended.After(started) {
		return nil, fmt.Errorf("ended_at %s is not after started_at %s", row[2], row[1])
	}

	minutes := int(ended.Sub(started).Minutes())
	if row[3] != "" {
		if minutes, err = strconv.Atoi(row[3]); err != nil {
			return nil, fmt.Errorf("bad minutes %q: %w", row[3], err)
		}
	}

	category := row[5]
	if category == "" {
		category = "incident"
	}

	return &store.DowntimeEvent{
		ID:        uuid.NewString(),
		ServiceID: row[0],
		StartedAt: started,
		EndedAt:   ended,
		Minutes:   minutes,
		Reason:    row[4],
		Category:  category,
	}, nil
}
