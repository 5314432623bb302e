package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nerset/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/nerset/internal/core/domain"
)

var inspectJSONL bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <container>",
	Short: "Show the documents stored in a training container",
	Long: `Decodes a training container and prints every document with its
entities highlighted. With --jsonl the documents are written as JSON-lines
records that 'nerset serialize' accepts.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSONL, "jsonl", false, "print documents as JSON-lines records")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	svc, err := getTrainset()
	if err != nil {
		return err
	}

	docs, err := svc.Inspect(cmd.Context(), args[0])
	if err != nil {
		return describeSourceError(err, args[0])
	}

	if inspectJSONL {
		return outputInspectJSONL(cmd, docs)
	}
	return outputInspectText(cmd, docs)
}

func outputInspectJSONL(cmd *cobra.Command, docs []*domain.Doc) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	for i, doc := range docs {
		if err := enc.Encode(doc.Record()); err != nil {
			return fmt.Errorf("encoding doc %d: %w", i+1, err)
		}
	}
	return nil
}

func outputInspectText(cmd *cobra.Command, docs []*domain.Doc) error {
	st := styles.DefaultStyles()
	summary := domain.SummariseDocs(docs)
	for i, doc := range docs {
		cmd.Printf("%s %s\n", st.Title.Render(fmt.Sprintf("#%d", i+1)), st.Highlight(doc))
	}
	cmd.Println()
	cmd.Println(st.Muted.Render(formatSummary(&summary)))
	return nil
}
