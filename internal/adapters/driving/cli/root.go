// Package cli implements the nerset command line.
//
// Commands are package-level cobra commands registered on rootCmd from init.
// Services are built lazily through a Wiring once flags are parsed, so
// --config-dir and command flags reach the composition root.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nerset/internal/core/ports/driving"
	"github.com/custodia-labs/nerset/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

// Options are flag values the composition root needs to build services.
type Options struct {
	// ConfigDir overrides ~/.nerset.
	ConfigDir string

	// Plain forces the line prompter even on a terminal.
	Plain bool

	// Sheet selects the spreadsheet sheet for samples.
	Sheet string

	// SkipHeader drops the first row of spreadsheet and delimited samples.
	SkipHeader bool
}

// Wiring builds services on first use.
type Wiring struct {
	Settings func(opts Options) (driving.SettingsService, error)
	Trainset func(opts Options, settings driving.SettingsService) (driving.TrainsetService, error)
}

var (
	wiring          Wiring
	settingsService driving.SettingsService
	trainsetService driving.TrainsetService
)

var errNoCommand = errors.New("no command given")

var rootCmd = &cobra.Command{
	Use:   "nerset",
	Short: "Build NER training sets from annotated product descriptions",
	Long: `nerset turns hand-annotated product descriptions into a binary
training container for a named-entity recogniser.

Labels: TYPE, PRICE, MATERIAL, BOARDGAME.

Use 'nerset serialize' for pre-annotated JSON-lines files and
'nerset annotate' to label raw samples interactively.`,
	Args:          usageArgs(cobra.NoArgs),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.PrintErr(cmd.UsageString())
		return errNoCommand
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.nerset)")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		cmd.PrintErr(cmd.UsageString())
		return err
	})
}

// SetWiring installs the service builders used by commands.
func SetWiring(w Wiring) {
	wiring = w
	settingsService = nil
	trainsetService = nil
}

// SetServices installs ready-made services, bypassing any wiring.
func SetServices(settings driving.SettingsService, trainset driving.TrainsetService) {
	wiring = Wiring{}
	settingsService = settings
	trainsetService = trainset
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with a context that commands pass to services.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func options() Options {
	return Options{
		ConfigDir:  configDir,
		Plain:      annotatePlain,
		Sheet:      annotateSheet,
		SkipHeader: annotateSkipHeader,
	}
}

func getSettings() (driving.SettingsService, error) {
	if settingsService == nil && wiring.Settings != nil {
		svc, err := wiring.Settings(options())
		if err != nil {
			return nil, err
		}
		settingsService = svc
	}
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	return settingsService, nil
}

func getTrainset() (driving.TrainsetService, error) {
	if trainsetService == nil && wiring.Trainset != nil {
		settings, err := getSettings()
		if err != nil {
			return nil, err
		}
		svc, err := wiring.Trainset(options(), settings)
		if err != nil {
			return nil, err
		}
		trainsetService = svc
	}
	if trainsetService == nil {
		return nil, errors.New("trainset service not configured")
	}
	return trainsetService, nil
}

// usageArgs prints usage to stderr when positional arguments are wrong.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			cmd.PrintErr(cmd.UsageString())
			return err
		}
		return nil
	}
}
