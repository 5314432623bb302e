package driving

import "github.com/custodia-labs/nerset/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	// Values from the environment take precedence over the config file.
	Get() (*domain.AppSettings, error)

	// Set validates and persists a single setting by key.
	Set(key, value string) error

	// Keys returns every settable key in display order.
	Keys() []string

	// Validate checks the effective settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Path returns the config file location.
	Path() string
}
