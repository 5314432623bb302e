package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/nerset/internal/core/ports/driving"
)

var (
	annotateSamples    string
	annotateOut        string
	annotateOverride   bool
	annotateJSONL      string
	annotatePlain      bool
	annotateSheet      string
	annotateSkipHeader bool
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Label raw samples interactively and write a training container",
	Long: `Shows each raw sample and asks for its Type, Price, Material and Boardgame.
Leave a value empty when the sample does not mention it. Every value must
appear verbatim in the sample.

Samples are read from plain text (one per line), .xlsx, .csv, .tsv or
.jsonl files. A form is used on a terminal; --plain asks line by line.

Controls (form):
  Enter        - Next field / submit on the last one
  Tab, ↓       - Next field
  Shift+Tab, ↑ - Previous field
  Esc, Ctrl+C  - Abort without writing anything`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringVar(&annotateSamples, "samples", "", "raw sample file (default paths.samples)")
	annotateCmd.Flags().StringVar(&annotateOut, "out", "", "container to write (default paths.trainset)")
	annotateCmd.Flags().BoolVarP(&annotateOverride, "override", "o", false, "replace existing output files")
	annotateCmd.Flags().StringVar(&annotateJSONL, "jsonl", "", "also write the annotations as JSON lines")
	annotateCmd.Flags().BoolVar(&annotatePlain, "plain", false, "ask line by line instead of showing a form")
	annotateCmd.Flags().StringVar(&annotateSheet, "sheet", "", "spreadsheet sheet to read (default first sheet)")
	annotateCmd.Flags().BoolVar(&annotateSkipHeader, "skip-header", false, "skip the first row of spreadsheet and delimited files")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, _ []string) error {
	settingsSvc, err := getSettings()
	if err != nil {
		return err
	}
	settings, err := settingsSvc.Get()
	if err != nil {
		return err
	}
	svc, err := getTrainset()
	if err != nil {
		return err
	}

	req := driving.AnnotateRequest{
		Samples:     firstNonEmpty(annotateSamples, settings.Paths.Samples),
		Destination: firstNonEmpty(annotateOut, settings.Paths.Trainset),
		Override:    annotateOverride,
		JSONL:       annotateJSONL,
	}
	summary, err := svc.Annotate(cmd.Context(), req)
	if err != nil {
		return describeSourceError(err, req.Samples)
	}

	cmd.Printf("Annotated %s, wrote %s\n", formatSummary(summary), req.Destination)
	if req.JSONL != "" {
		cmd.Printf("Wrote records to %s\n", req.JSONL)
	}
	printLabels(cmd, summary)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
