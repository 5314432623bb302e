package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nerset/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml.

Environment variables (NERSET_SAMPLES, NERSET_TRAINSET, NERSET_TOKENIZER,
NERSET_TOKENIZER_FILE, NERSET_SPAN_MATCHING, NERSET_METRICS_TEXTFILE) and a
.env file in the working directory take precedence over the file.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  usageArgs(cobra.NoArgs),
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting and save it to config.toml.

Keys:
  paths.samples     default raw sample file for annotate
  paths.trainset    default container written by annotate
  tokenizer.kind    rule | pretrained
  tokenizer.file    tokenizer.json used by the pretrained tokenizer
  spans.matching    first | non_overlapping
  history.enabled   true | false
  history.dir       run history directory (default <config-dir>/data)
  metrics.textfile  Prometheus textfile written after each run`,
	Args: usageArgs(cobra.ExactArgs(2)),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  usageArgs(cobra.NoArgs),
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := getSettings()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	for _, key := range svc.Keys() {
		value := settingValue(settings, key)
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %-17s %s\n", key, value)
	}
	cmd.Println()

	if err := svc.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'nerset config set <key> <value>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := getSettings()
	if err != nil {
		return err
	}

	if err := svc.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	svc, err := getSettings()
	if err != nil {
		return err
	}
	cmd.Println(svc.Path())
	return nil
}

// settingValue returns the effective value of a settings key.
func settingValue(s *domain.AppSettings, key string) string {
	switch key {
	case "paths.samples":
		return s.Paths.Samples
	case "paths.trainset":
		return s.Paths.Trainset
	case "tokenizer.kind":
		return s.Tokenizer.Kind.String()
	case "tokenizer.file":
		return s.Tokenizer.File
	case "spans.matching":
		return s.Spans.Matching.String()
	case "history.enabled":
		return strconv.FormatBool(s.History.Enabled)
	case "history.dir":
		return s.History.Dir
	case "metrics.textfile":
		return s.Metrics.Textfile
	default:
		return ""
	}
}
