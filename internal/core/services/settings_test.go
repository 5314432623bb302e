package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nerset/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/nerset/internal/core/domain"
)

// newTestSettings returns a service with an empty environment.
func newTestSettings(seed map[string]any, env map[string]string) *SettingsService {
	svc := NewSettingsService(memory.NewConfigStore(seed))
	svc.lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	return svc
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	svc := newTestSettings(nil, nil)

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	svc := newTestSettings(map[string]any{
		"paths.samples":    "in.txt",
		"paths.trainset":   "out.spacy",
		"tokenizer.kind":   "pretrained",
		"tokenizer.file":   "tokenizer.json",
		"spans.matching":   "non_overlapping",
		"history.enabled":  false,
		"history.dir":      "/tmp/h",
		"metrics.textfile": "/tmp/m.prom",
	}, nil)

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, "in.txt", settings.Paths.Samples)
	assert.Equal(t, "out.spacy", settings.Paths.Trainset)
	assert.Equal(t, domain.TokenizerPretrained, settings.Tokenizer.Kind)
	assert.Equal(t, "tokenizer.json", settings.Tokenizer.File)
	assert.Equal(t, domain.MatchNonOverlapping, settings.Spans.Matching)
	assert.False(t, settings.History.Enabled)
	assert.Equal(t, "/tmp/h", settings.History.Dir)
	assert.Equal(t, "/tmp/m.prom", settings.Metrics.Textfile)
}

func TestSettingsService_InvalidValuesFailValidation(t *testing.T) {
	tests := []struct {
		name string
		seed map[string]any
		env  map[string]string
		want string
	}{
		{
			name: "stored tokenizer",
			seed: map[string]any{"tokenizer.kind": "bpe"},
			want: `tokenizer "bpe"`,
		},
		{
			name: "stored matching",
			seed: map[string]any{"spans.matching": "last"},
			want: `span matching "last"`,
		},
		{
			name: "env tokenizer",
			env:  map[string]string{"NERSET_TOKENIZER": "wordpiece"},
			want: `tokenizer "wordpiece"`,
		},
		{
			name: "env matching",
			seed: map[string]any{"spans.matching": "first"},
			env:  map[string]string{"NERSET_SPAN_MATCHING": "greedy"},
			want: `span matching "greedy"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestSettings(tt.seed, tt.env)

			settings, err := svc.Get()
			require.NoError(t, err)
			assert.Error(t, settings.Validate())

			err = svc.Validate()
			assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSettingsService_Get_EnvironmentOverridesFile(t *testing.T) {
	svc := newTestSettings(
		map[string]any{"paths.samples": "file.txt", "tokenizer.kind": "rule"},
		map[string]string{
			"NERSET_SAMPLES":          "env.txt",
			"NERSET_TOKENIZER":        "pretrained",
			"NERSET_TOKENIZER_FILE":   "tk.json",
			"NERSET_TRAINSET":         "",
			"NERSET_METRICS_TEXTFILE": "m.prom",
		},
	)

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, "env.txt", settings.Paths.Samples)
	assert.Equal(t, domain.TokenizerPretrained, settings.Tokenizer.Kind)
	assert.Equal(t, "tk.json", settings.Tokenizer.File)
	assert.Equal(t, "data/train.spacy", settings.Paths.Trainset)
	assert.Equal(t, "m.prom", settings.Metrics.Textfile)
}

func TestSettingsService_Set(t *testing.T) {
	svc := newTestSettings(nil, nil)

	require.NoError(t, svc.Set("paths.trainset", "x.spacy"))
	require.NoError(t, svc.Set("tokenizer.kind", "pretrained"))
	require.NoError(t, svc.Set("spans.matching", "non_overlapping"))
	require.NoError(t, svc.Set("history.enabled", "false"))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "x.spacy", settings.Paths.Trainset)
	assert.Equal(t, domain.TokenizerPretrained, settings.Tokenizer.Kind)
	assert.Equal(t, domain.MatchNonOverlapping, settings.Spans.Matching)
	assert.False(t, settings.History.Enabled)
}

func TestSettingsService_Set_Rejects(t *testing.T) {
	svc := newTestSettings(nil, nil)

	tests := []struct {
		key   string
		value string
	}{
		{"tokenizer.kind", "bpe"},
		{"spans.matching", "last"},
		{"history.enabled", "sometimes"},
		{"search.mode", "hybrid"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := svc.Set(tt.key, tt.value)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	keys := newTestSettings(nil, nil).Keys()

	assert.Len(t, keys, 8)
	assert.Equal(t, "paths.samples", keys[0])
	assert.Contains(t, keys, "metrics.textfile")
}

func TestSettingsService_Validate(t *testing.T) {
	svc := newTestSettings(map[string]any{"tokenizer.kind": "pretrained"}, nil)
	assert.ErrorIs(t, svc.Validate(), domain.ErrInvalidInput)

	require.NoError(t, svc.Set("tokenizer.file", "tokenizer.json"))
	assert.NoError(t, svc.Validate())
}

func TestSettingsService_DefaultsAndPath(t *testing.T) {
	svc := newTestSettings(nil, nil)

	assert.Equal(t, domain.DefaultAppSettings(), svc.GetDefaults())
	assert.Equal(t, ":memory:", svc.Path())
}
