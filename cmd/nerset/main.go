// Command nerset builds NER training containers from annotated product
// descriptions.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/custodia-labs/nerset/internal/adapters/driven/artifact"
	"github.com/custodia-labs/nerset/internal/adapters/driven/config/file"
	"github.com/custodia-labs/nerset/internal/adapters/driven/docbin"
	"github.com/custodia-labs/nerset/internal/adapters/driven/jsonl"
	"github.com/custodia-labs/nerset/internal/adapters/driven/metrics"
	"github.com/custodia-labs/nerset/internal/adapters/driven/samples"
	"github.com/custodia-labs/nerset/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/nerset/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/nerset/internal/adapters/driven/tokenizer/pretrained"
	"github.com/custodia-labs/nerset/internal/adapters/driven/tokenizer/rule"
	"github.com/custodia-labs/nerset/internal/adapters/driving/cli"
	"github.com/custodia-labs/nerset/internal/adapters/driving/prompt"
	"github.com/custodia-labs/nerset/internal/adapters/driving/tui"
	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driven"
	"github.com/custodia-labs/nerset/internal/core/ports/driving"
	"github.com/custodia-labs/nerset/internal/core/services"
	"github.com/custodia-labs/nerset/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A .env file is optional.
	_ = godotenv.Load()

	a := newApp(os.Stdin, os.Stdout)
	defer a.Close()
	cli.SetWiring(cli.Wiring{Settings: a.settings, Trainset: a.trainset})

	if err := cli.Execute(); err != nil {
		logger.Error("%v", err)
		return 1
	}
	return 0
}

// app is the composition root. It owns resources that outlive a command.
type app struct {
	stdin      io.Reader
	stdout     io.Writer
	isTerminal func() bool

	configDir string
	store     *sqlite.Store
}

func newApp(stdin *os.File, stdout io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		isTerminal: func() bool {
			return term.IsTerminal(int(stdin.Fd()))
		},
	}
}

// settings opens the config file in opts.ConfigDir or ~/.nerset.
func (a *app) settings(opts cli.Options) (driving.SettingsService, error) {
	dir := opts.ConfigDir
	if dir == "" {
		var err error
		if dir, err = file.DefaultDir(); err != nil {
			return nil, err
		}
	}
	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	a.configDir = dir
	logger.Debug("Config file: %s", store.Path())
	return services.NewSettingsService(store), nil
}

// trainset builds the conversion service from the effective settings.
func (a *app) trainset(opts cli.Options, settingsSvc driving.SettingsService) (driving.TrainsetService, error) {
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tokenizer, err := newTokenizer(settings.Tokenizer)
	if err != nil {
		return nil, err
	}
	runs, err := a.runStore(settings.History)
	if err != nil {
		return nil, err
	}

	return services.NewTrainsetService(services.TrainsetConfig{
		Tokenizer: tokenizer,
		Codec:     docbin.New(),
		Samples:   samples.New(samples.WithSheet(opts.Sheet), samples.WithHeader(opts.SkipHeader)),
		Records:   jsonl.New(),
		Artifacts: artifact.New(),
		Prompter:  a.prompter(opts.Plain),
		Runs:      runs,
		Metrics:   metrics.New(settings.Metrics.Textfile),
		Matching:  settings.Spans.Matching,
	}), nil
}

func newTokenizer(cfg domain.TokenizerSettings) (driven.Tokenizer, error) {
	switch cfg.Kind {
	case domain.TokenizerPretrained:
		logger.Debug("Loading tokenizer from %s", cfg.File)
		return pretrained.New(cfg.File)
	case domain.TokenizerRule:
		return rule.New(), nil
	default:
		return nil, fmt.Errorf("%w: tokenizer %q", domain.ErrUnsupportedFormat, cfg.Kind)
	}
}

// runStore opens the history database, or keeps history in memory when disabled.
func (a *app) runStore(cfg domain.HistorySettings) (driven.RunStore, error) {
	if !cfg.Enabled {
		return memory.NewRunStore(), nil
	}
	dir := cfg.Dir
	if dir == "" {
		dir = filepath.Join(a.configDir, "data")
	}
	store, err := sqlite.NewStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening run history: %w", err)
	}
	a.store = store
	logger.Debug("Run history: %s", store.Path())
	return store.RunStore(), nil
}

// prompter picks the form on a terminal and the line prompter otherwise.
func (a *app) prompter(plain bool) driven.Prompter {
	if plain || !a.isTerminal() {
		return prompt.NewLine(a.stdin, a.stdout)
	}
	return tui.NewPrompter()
}

// Close releases the history database.
func (a *app) Close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		logger.Warn("Closing run history: %v", err)
	}
	a.store = nil
}
