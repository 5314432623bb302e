package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nerset/internal/core/domain"
)

const orcRecord = `{"text":"Orc in PLA","tokens":[{"text":"Orc"},{"text":"in"},{"text":"PLA"}],` +
	`"spans":[{"start":0,"end":3,"label":"TYPE"},{"start":7,"end":10,"label":"MATERIAL"}]}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSerializeCmd_Use(t *testing.T) {
	assert.Equal(t, "serialize <file2serialize> <destination>", serializeCmd.Use)
}

func TestSerializeCmd_HasOverrideFlag(t *testing.T) {
	flag := serializeCmd.Flags().Lookup("override")
	require.NotNil(t, flag)
	assert.Equal(t, "o", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestSerializeCmd_WrongArgumentCount(t *testing.T) {
	useServices(t, newSettings(nil), &mockTrainset{})

	for _, args := range [][]string{
		{"serialize"},
		{"serialize", "only.jsonl"},
		{"serialize", "a", "b", "c"},
	} {
		_, errOut, err := run(t, args...)
		assert.Error(t, err, "%v", args)
		assert.Contains(t, errOut, "Usage:")
		assert.Contains(t, errOut, "serialize <file2serialize> <destination>")
	}
}

func TestSerializeCmd_PassesRequest(t *testing.T) {
	trainset := &mockTrainset{summary: &domain.RunSummary{
		Docs: 2, Entities: 3, Labels: map[string]int{"TYPE": 2, "PRICE": 1},
	}}
	useServices(t, newSettings(nil), trainset)

	out, _, err := run(t, "serialize", "in.jsonl", "out.spacy", "-o")

	require.NoError(t, err)
	require.NotNil(t, trainset.serializeReq)
	assert.Equal(t, "in.jsonl", trainset.serializeReq.Source)
	assert.Equal(t, "out.spacy", trainset.serializeReq.Destination)
	assert.True(t, trainset.serializeReq.Override)
	assert.Contains(t, out, "Serialized 2 docs (3 entities) to out.spacy")
	assert.Contains(t, out, "PRICE")
}

func TestSerializeCmd_MissingSourceMessage(t *testing.T) {
	trainset := &mockTrainset{err: fmt.Errorf("%w: nope.jsonl", domain.ErrSourceNotFound)}
	useServices(t, newSettings(nil), trainset)

	_, _, err := run(t, "serialize", "nope.jsonl", "out.spacy")

	require.Error(t, err)
	assert.Equal(t, `source file "nope.jsonl" does not exist`, err.Error())
}

func TestSerializeCmd_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "annotations.jsonl", orcRecord+"\n")
	dst := filepath.Join(dir, "out", "train.spacy")
	useServices(t, newSettings(nil), realTrainset(""))

	out, _, err := run(t, "serialize", src, dst)

	require.NoError(t, err)
	assert.Contains(t, out, "Serialized 1 doc (2 entities)")
	assert.FileExists(t, dst)
}

func TestSerializeCmd_EndToEnd_MissingSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "missing.jsonl")
	dst := filepath.Join(dir, "train.spacy")
	useServices(t, newSettings(nil), realTrainset(""))

	_, _, err := run(t, "serialize", src, dst)

	require.Error(t, err)
	assert.Equal(t, fmt.Sprintf("source file %q does not exist", src), err.Error())
	assert.NoFileExists(t, dst)
}

func TestSerializeCmd_EndToEnd_ExistingDestination(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "annotations.jsonl", orcRecord+"\n")
	dst := writeFile(t, dir, "train.spacy", "keep me")
	useServices(t, newSettings(nil), realTrainset(""))

	_, _, err := run(t, "serialize", src, dst)

	assert.ErrorIs(t, err, domain.ErrDestinationExists)
	data, readErr := os.ReadFile(dst)
	require.NoError(t, readErr)
	assert.Equal(t, "keep me", string(data))

	_, _, err = run(t, "serialize", src, dst, "--override")

	require.NoError(t, err)
	data, readErr = os.ReadFile(dst)
	require.NoError(t, readErr)
	assert.NotEqual(t, "keep me", string(data))
}

func TestSerializeCmd_EndToEnd_MisalignedSpan(t *testing.T) {
	dir := t.TempDir()
	record := `{"text":"Orc in PLA","tokens":[{"text":"Orc"},{"text":"in"},{"text":"PLA"}],` +
		`"spans":[{"start":0,"end":2,"label":"TYPE"}]}`
	src := writeFile(t, dir, "annotations.jsonl", record+"\n")
	dst := filepath.Join(dir, "train.spacy")
	useServices(t, newSettings(nil), realTrainset(""))

	_, _, err := run(t, "serialize", src, dst)

	assert.ErrorIs(t, err, domain.ErrMisalignedSpan)
	assert.NoFileExists(t, dst)
}
