package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driving"
)

var serializeOverride bool

var serializeCmd = &cobra.Command{
	Use:   "serialize <file2serialize> <destination>",
	Short: "Convert a JSON-lines annotation file into a training container",
	Long: `Reads one annotation record per line, each with the text, its tokens and
labelled character spans, and writes the documents to a binary training
container.

The destination is never replaced unless --override is given.`,
	Args: usageArgs(cobra.ExactArgs(2)),
	RunE: runSerialize,
}

func init() {
	serializeCmd.Flags().BoolVarP(&serializeOverride, "override", "o", false, "replace an existing destination")
	rootCmd.AddCommand(serializeCmd)
}

func runSerialize(cmd *cobra.Command, args []string) error {
	svc, err := getTrainset()
	if err != nil {
		return err
	}

	req := driving.SerializeRequest{
		Source:      args[0],
		Destination: args[1],
		Override:    serializeOverride,
	}
	summary, err := svc.Serialize(cmd.Context(), req)
	if err != nil {
		return describeSourceError(err, req.Source)
	}

	cmd.Printf("Serialized %s to %s\n", formatSummary(summary), req.Destination)
	printLabels(cmd, summary)
	return nil
}

// describeSourceError names the missing input file.
func describeSourceError(err error, source string) error {
	if errors.Is(err, domain.ErrSourceNotFound) {
		return fmt.Errorf("source file %q does not exist", source)
	}
	return err
}

func formatSummary(summary *domain.RunSummary) string {
	if summary == nil {
		return "0 docs"
	}
	docs := "docs"
	if summary.Docs == 1 {
		docs = "doc"
	}
	return fmt.Sprintf("%d %s (%d entities)", summary.Docs, docs, summary.Entities)
}

func printLabels(cmd *cobra.Command, summary *domain.RunSummary) {
	if summary == nil || len(summary.Labels) == 0 {
		return
	}
	labels := make([]string, 0, len(summary.Labels))
	for label := range summary.Labels {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		cmd.Printf("  %-10s %d\n", label, summary.Labels[label])
	}
}
