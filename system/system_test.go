package system

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/cognit/core"
	"github.com/poiesic/cognit/ingestion"
	"github.com/poiesic/cognit/ontology"
	"github.com/poiesic/cognit/parser"
	"github.com/poiesic/cognit/parser/mock"
)

func TestSystem_Run(t *testing.T) {
	hg, checkpoints := newTestStore(t)
	ctx := context.Background()

	infile := filepath.Join(t.TempDir(), "news.txt")
	require.NoError(t, os.WriteFile(infile, []byte("Tennis players train.\n\nRed cars race.\n"), 0644))

	p := mock.NewMockParser().
		WithResult("Tennis players train.", &parser.Result{
			Parses: []parser.Parse{{
				Resolved: core.MustParseEdge("(train/Pd.s (+/B.am tennis/Cc.s player/Cc.p))"),
			}},
		}).
		WithResult("Red cars race.", &parser.Result{
			Parses: []parser.Parse{{
				Resolved: core.MustParseEdge("(race/Pd.s (red/Ma car/Cc.p))"),
			}},
		})

	off := false
	cfg := DefaultConfig()
	cfg.Agents = []AgentConfig{
		{Name: "taxonomy", Type: AgentTypeOntology, Progress: &off, DependsOn: []string{"reader"}},
		{Name: "reader", Type: AgentTypeTxtParser, Infile: infile, Sequence: "news", Progress: &off},
	}

	sys, err := New(cfg, hg, p, WithCheckpoints(checkpoints))
	require.NoError(t, err)

	reports, err := sys.Run(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "reader", reports[0].Agent)
	assert.Equal(t, "taxonomy", reports[1].Agent)
	assert.Equal(t, 2, reports[1].Operations)

	parents, err := ontology.Supertypes(ctx, hg, core.MustParseEdge("(+/B.am tennis/Cc.s player/Cc.p)"))
	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.Equal(t, "player/Cc.p", parents[0].String())

	children, err := ontology.Subtypes(ctx, hg, core.Atom("car/Cc.p"))
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "(red/Ma car/Cc.p)", children[0].String())

	list, err := checkpoints.ListCheckpoints(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSystem_RunWithoutParser(t *testing.T) {
	hg, _ := newTestStore(t)

	off := false
	cfg := DefaultConfig()
	cfg.Agents = []AgentConfig{
		{Name: "reader", Type: AgentTypeTxtParser, Infile: "unused.txt", Sequence: "news", Progress: &off},
	}

	sys, err := New(cfg, hg, nil)
	require.NoError(t, err)

	_, err = sys.Run(context.Background())
	assert.ErrorIs(t, err, ingestion.ErrParserRequired)
}

func TestSystem_InvalidConfig(t *testing.T) {
	hg, _ := newTestStore(t)
	cfg := DefaultConfig()
	cfg.Agents = []AgentConfig{{Name: "x", Type: "nope"}}

	_, err := New(cfg, hg, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, ErrUnknownAgentType)
}

func TestSystem_NewAgent(t *testing.T) {
	hg, _ := newTestStore(t)
	sys, err := New(DefaultConfig(), hg, mock.NewMockParser())
	require.NoError(t, err)

	a, err := sys.NewAgent(AgentConfig{Name: "taxonomy", Type: AgentTypeOntology})
	require.NoError(t, err)
	assert.IsType(t, &ontology.Agent{}, a)

	off := false
	a, err = sys.NewAgent(AgentConfig{Name: "reader", Type: AgentTypeTxtParser, Primary: &off})
	require.NoError(t, err)
	assert.IsType(t, secondary{}, a)
	assert.Equal(t, "reader", a.Name())

	_, err = sys.NewAgent(AgentConfig{Name: "x", Type: "nope"})
	assert.ErrorIs(t, err, ErrUnknownAgentType)
}
