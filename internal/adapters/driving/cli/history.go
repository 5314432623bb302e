package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nerset/internal/core/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent serialize and annotate runs",
	Args:  usageArgs(cobra.NoArgs),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs (0 for all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output runs as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	svc, err := getTrainset()
	if err != nil {
		return err
	}

	runs, err := svc.History(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if historyJSON {
		data, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal runs: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	cmd.Printf("%-8s  %-19s  %-9s  %-9s  %5s  %8s  %s\n",
		"ID", "STARTED", "COMMAND", "STATUS", "DOCS", "ENTITIES", "FILES")
	for i := range runs {
		r := runs[i]
		cmd.Printf("%-8s  %-19s  %-9s  %-9s  %5d  %8d  %s -> %s\n",
			shortID(r.ID), r.StartedAt.Local().Format(time.DateTime), r.Command, r.Status,
			r.Docs, r.Entities, r.Source, r.Destination)
		if r.Status == domain.RunFailed && r.Error != "" {
			cmd.Printf("          %s\n", r.Error)
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
