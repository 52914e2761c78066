package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/cognit"
	"github.com/poiesic/cognit/core"
	"github.com/poiesic/cognit/parser/mock"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"cognit"}, args...))
	return out.String(), err
}

func seedDatabase(t *testing.T, edges ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hg")
	db, err := cognit.NewDatabase(path, cognit.WithParser(mock.NewMockParser()))
	require.NoError(t, err)

	ctx := context.Background()
	for _, e := range edges {
		require.NoError(t, db.Hypergraph().Add(ctx, core.MustParseEdge(e), true, false))
	}
	require.NoError(t, db.Close())
	return path
}

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG"} {
		_, err := runApp(t, "--log-level", level, "checkpoints", "--help")
		assert.NoError(t, err, level)
	}

	_, err := runApp(t, "--log-level", "verbose", "checkpoints")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestRequiredFlags(t *testing.T) {
	tests := []struct {
		args []string
		flag string
	}{
		{[]string{"txt_parser"}, "infile"},
		{[]string{"subtypes"}, "edge"},
		{[]string{"supertypes"}, "edge"},
		{[]string{"system"}, "file"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.flag)
		})
	}
}

func TestLLMFlagDefaults(t *testing.T) {
	app := newApp()
	cmd := app.Command("txt_parser")
	require.NotNil(t, cmd)

	values := map[string]string{}
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.StringFlag); ok {
			values[f.Name] = f.Value
		}
	}
	assert.Equal(t, "http://localhost:11434/v1", values["llm-host"])
	assert.NotEmpty(t, values["llm-model"])
	assert.Empty(t, values["sequence"], "sequence has no default")
}

func TestMissingHypergraph(t *testing.T) {
	t.Setenv("COGNIT_HG", "")
	_, err := runApp(t, "checkpoints")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--hg")
}

func TestTxtParserWithoutSequence(t *testing.T) {
	path := seedDatabase(t)
	infile := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(infile, []byte("Cats are animals.\n"), 0644))

	_, err := runApp(t, "--hg", path, "txt_parser", "--infile", infile, "--no-progress")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sequence required")
}

func TestOntologyAndTypeQueries(t *testing.T) {
	path := seedDatabase(t, "(plays/Pd.so alice/Cp.s (+/B.am tennis/Cc.s player/Cc.s))")

	out, err := runApp(t, "--hg", path, "ontology", "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "agent: ontology")
	assert.Contains(t, out, "derived facts: 1")

	out, err = runApp(t, "--hg", path, "subtypes", "--edge", "player/Cc.s")
	require.NoError(t, err)
	assert.Equal(t, "(+/B.am tennis/Cc.s player/Cc.s)\n", out)

	out, err = runApp(t, "--hg", path, "supertypes", "--edge", "(+/B.am tennis/Cc.s player/Cc.s)")
	require.NoError(t, err)
	assert.Equal(t, "player/Cc.s\n", out)

	out, err = runApp(t, "--hg", path, "checkpoints")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ontology\t"), out)
	assert.Contains(t, out, "operations=1")
}

func TestTypeQueryInvalidEdge(t *testing.T) {
	path := seedDatabase(t)
	_, err := runApp(t, "--hg", path, "subtypes", "--edge", "(unbalanced")
	assert.ErrorIs(t, err, core.ErrInvalidEdge)
}
