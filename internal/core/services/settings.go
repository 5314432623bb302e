package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driven"
	"github.com/custodia-labs/nerset/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySamples         = "paths.samples"
	keyTrainset        = "paths.trainset"
	keyTokenizerKind   = "tokenizer.kind"
	keyTokenizerFile   = "tokenizer.file"
	keySpanMatching    = "spans.matching"
	keyHistoryEnabled  = "history.enabled"
	keyHistoryDir      = "history.dir"
	keyMetricsTextfile = "metrics.textfile"
)

// Environment variables overriding the config file.
var envKeys = map[string]string{
	keySamples:         "NERSET_SAMPLES",
	keyTrainset:        "NERSET_TRAINSET",
	keyTokenizerKind:   "NERSET_TOKENIZER",
	keyTokenizerFile:   "NERSET_TOKENIZER_FILE",
	keySpanMatching:    "NERSET_SPAN_MATCHING",
	keyMetricsTextfile: "NERSET_METRICS_TEXTFILE",
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service reading the process environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Paths: domain.PathSettings{
			Samples:  s.getString(keySamples, defaults.Paths.Samples),
			Trainset: s.getString(keyTrainset, defaults.Paths.Trainset),
		},
		Tokenizer: domain.TokenizerSettings{
			Kind: s.getTokenizerKind(defaults.Tokenizer.Kind),
			File: s.getString(keyTokenizerFile, defaults.Tokenizer.File),
		},
		Spans: domain.SpanSettings{
			Matching: s.getMatchingMode(defaults.Spans.Matching),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, defaults.History.Enabled),
			Dir:     s.getString(keyHistoryDir, defaults.History.Dir),
		},
		Metrics: domain.MetricsSettings{
			Textfile: s.getString(keyMetricsTextfile, defaults.Metrics.Textfile),
		},
	}

	return settings, nil
}

// Set validates and persists a single setting.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case keySamples, keyTrainset, keyTokenizerFile, keyHistoryDir, keyMetricsTextfile:
		return s.configStore.Set(key, value)

	case keyTokenizerKind:
		if !domain.TokenizerKind(value).IsValid() {
			return fmt.Errorf("%w: tokenizer %q (want %s or %s)",
				domain.ErrInvalidInput, value, domain.TokenizerRule, domain.TokenizerPretrained)
		}
		return s.configStore.Set(key, value)

	case keySpanMatching:
		if !domain.MatchingMode(value).IsValid() {
			return fmt.Errorf("%w: span matching %q (want %s or %s)",
				domain.ErrInvalidInput, value, domain.MatchFirst, domain.MatchNonOverlapping)
		}
		return s.configStore.Set(key, value)

	case keyHistoryEnabled:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, enabled)

	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Keys returns every settable key in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		keySamples,
		keyTrainset,
		keyTokenizerKind,
		keyTokenizerFile,
		keySpanMatching,
		keyHistoryEnabled,
		keyHistoryDir,
		keyMetricsTextfile,
	}
}

// Validate checks the effective settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns the config file location.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// raw returns the environment override or the stored string value.
func (s *SettingsService) raw(key string) string {
	if env, ok := envKeys[key]; ok && s.lookupEnv != nil {
		if val, ok := s.lookupEnv(env); ok && val != "" {
			return val
		}
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.raw(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getTokenizerKind returns the configured kind verbatim so Validate can
// reject unknown values.
func (s *SettingsService) getTokenizerKind(defaultVal domain.TokenizerKind) domain.TokenizerKind {
	return domain.TokenizerKind(s.getString(keyTokenizerKind, string(defaultVal)))
}

func (s *SettingsService) getMatchingMode(defaultVal domain.MatchingMode) domain.MatchingMode {
	return domain.MatchingMode(s.getString(keySpanMatching, string(defaultVal)))
}
