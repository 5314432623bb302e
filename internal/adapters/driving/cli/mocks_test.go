package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/custodia-labs/nerset/internal/adapters/driven/artifact"
	"github.com/custodia-labs/nerset/internal/adapters/driven/docbin"
	"github.com/custodia-labs/nerset/internal/adapters/driven/jsonl"
	"github.com/custodia-labs/nerset/internal/adapters/driven/samples"
	"github.com/custodia-labs/nerset/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/nerset/internal/adapters/driven/tokenizer/rule"
	"github.com/custodia-labs/nerset/internal/adapters/driving/prompt"
	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driving"
	"github.com/custodia-labs/nerset/internal/core/services"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// mockTrainset records requests and returns canned results.
type mockTrainset struct {
	serializeReq *driving.SerializeRequest
	annotateReq  *driving.AnnotateRequest
	inspectPath  string
	historyLimit int

	summary *domain.RunSummary
	docs    []*domain.Doc
	runs    []domain.Run
	err     error
}

func (m *mockTrainset) Serialize(_ context.Context, req driving.SerializeRequest) (*domain.RunSummary, error) {
	m.serializeReq = &req
	return m.summary, m.err
}

func (m *mockTrainset) Annotate(_ context.Context, req driving.AnnotateRequest) (*domain.RunSummary, error) {
	m.annotateReq = &req
	return m.summary, m.err
}

func (m *mockTrainset) Inspect(_ context.Context, path string) ([]*domain.Doc, error) {
	m.inspectPath = path
	return m.docs, m.err
}

func (m *mockTrainset) History(_ context.Context, limit int) ([]domain.Run, error) {
	m.historyLimit = limit
	return m.runs, m.err
}

// newSettings returns a settings service over an in-memory config.
func newSettings(seed map[string]any) driving.SettingsService {
	return services.NewSettingsService(memory.NewConfigStore(seed))
}

// realTrainset wires the service to file adapters and scripted answers.
func realTrainset(answers string) driving.TrainsetService {
	return services.NewTrainsetService(services.TrainsetConfig{
		Tokenizer: rule.New(),
		Codec:     docbin.New(),
		Samples:   samples.New(),
		Records:   jsonl.New(),
		Artifacts: artifact.New(),
		Prompter:  prompt.NewLine(strings.NewReader(answers), io.Discard),
		Runs:      memory.NewRunStore(),
		Matching:  domain.MatchFirst,
	})
}

// resetFlags restores every flag variable to its default.
func resetFlags() {
	verbose = false
	configDir = ""
	serializeOverride = false
	annotateSamples = ""
	annotateOut = ""
	annotateOverride = false
	annotateJSONL = ""
	annotatePlain = false
	annotateSheet = ""
	annotateSkipHeader = false
	inspectJSONL = false
	historyLimit = 20
	historyJSON = false
}

// run executes rootCmd and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	if args == nil {
		args = []string{}
	}

	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// useServices installs services for one test.
func useServices(t *testing.T, settings driving.SettingsService, trainset driving.TrainsetService) {
	t.Helper()
	SetServices(settings, trainset)
	t.Cleanup(func() { SetServices(nil, nil) })
}
