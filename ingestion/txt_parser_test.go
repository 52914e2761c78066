package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/cognit/agent"
	"github.com/poiesic/cognit/core"
	"github.com/poiesic/cognit/parser"
	"github.com/poiesic/cognit/parser/mock"
)

type countingProgress struct {
	total    int
	advanced int
	finished bool
}

func (c *countingProgress) Start(total int) { c.total = total }
func (c *countingProgress) Advance()        { c.advanced++ }
func (c *countingProgress) Finish()         { c.finished = true }

func edge(s string) core.Edge {
	return core.MustParseEdge(s)
}

func collect(t *testing.T, a agent.Agent) []core.Operation {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, a.Startup(ctx))

	var ops []core.Operation
	for op, err := range a.Produce(ctx) {
		require.NoError(t, err)
		ops = append(ops, op)
	}
	return ops
}

func newTestParser(input string, p parser.Parser, opts ...agent.Option) *TxtParser {
	opts = append([]agent.Option{agent.WithoutProgress()}, opts...)
	return NewTxtParser("txt", Config{
		Input:    strings.NewReader(input),
		Parser:   p,
		Sequence: "story",
	}, opts...)
}

func TestTxtParser_Startup(t *testing.T) {
	p := mock.NewMockParser()
	ctx := context.Background()

	tests := []struct {
		name   string
		config Config
		want   error
	}{
		{"missing parser", Config{Input: strings.NewReader(""), Sequence: "s"}, ErrParserRequired},
		{"missing input", Config{Parser: p, Sequence: "s"}, ErrInputRequired},
		{"missing sequence", Config{Input: strings.NewReader(""), Parser: p}, ErrSequenceRequired},
		{"blank sequence", Config{Input: strings.NewReader(""), Parser: p, Sequence: "   "}, ErrSequenceRequired},
		{"sequence with parenthesis", Config{Input: strings.NewReader(""), Parser: p, Sequence: "news)"}, core.ErrInvalidSequence},
		{"sequence with group", Config{Input: strings.NewReader(""), Parser: p, Sequence: "news(2024)"}, core.ErrInvalidSequence},
		{"missing file", Config{Path: filepath.Join(t.TempDir(), "nope.txt"), Parser: p, Sequence: "s"}, agent.ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := &countingProgress{}
			a := NewTxtParser("txt", tt.config, agent.WithProgress(progress))

			err := a.Startup(ctx)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, agent.ErrConfiguration)

			for _, err := range a.Produce(ctx) {
				assert.ErrorIs(t, err, agent.ErrNotStarted)
			}
			assert.Equal(t, 0, progress.total)
			assert.Equal(t, 0, p.CallCount(), "parser must not be invoked")
		})
	}
}

func TestTxtParser_BlankLines(t *testing.T) {
	progress := &countingProgress{}
	p := mock.NewMockParser()
	a := newTestParser("Cats are animals.\n\nDogs bark.\n", p, agent.WithProgress(progress))

	ops := collect(t, a)

	assert.Equal(t, []string{"Cats are animals.", "Dogs bark."}, p.Calls())
	assert.Equal(t, 2, progress.total)
	assert.Equal(t, 2, progress.advanced)
	assert.True(t, progress.finished)
	require.Len(t, ops, 2)
	assert.Equal(t, 2, a.EdgesFound())
}

func TestTxtParser_OperationOrder(t *testing.T) {
	p := mock.NewMockParser().
		WithResult("first", &parser.Result{
			Parses: []parser.Parse{
				{Resolved: edge("(is/Pd.sc a/Cc.s b/Cc.s)"), Text: "A is b.", Extra: []core.Edge{edge("x/Cc.s"), edge("y/Cc.s")}},
				{Resolved: edge("(is/Pd.sc c/Cc.s d/Cc.s)")},
			},
			Inferred: []core.Edge{edge("(is/Pd.sc a/Cc.s d/Cc.s)")},
		}).
		WithResult("second", &parser.Result{
			Parses: []parser.Parse{
				{Resolved: edge("(is/Pd.sc e/Cc.s f/Cc.s)"), Text: "E is f."},
			},
		})

	ops := collect(t, newTestParser("first\n\n\nsecond\n", p))

	require.Len(t, ops, 6)

	type view struct {
		edge     string
		sequence string
		position int
		hasPos   bool
		count    bool
	}
	var got []view
	for _, op := range ops {
		pos, ok := op.Position()
		got = append(got, view{op.Edge().String(), op.Sequence(), pos, ok, op.Count()})
	}

	assert.Equal(t, []view{
		{"(is/Pd.sc a/Cc.s b/Cc.s)", "story", 0, true, false},
		{"x/Cc.s", "", 0, false, false},
		{"y/Cc.s", "", 0, false, false},
		{"(is/Pd.sc c/Cc.s d/Cc.s)", "story", 1, true, false},
		{"(is/Pd.sc a/Cc.s d/Cc.s)", "", 0, false, true},
		{"(is/Pd.sc e/Cc.s f/Cc.s)", "story", 2, true, false},
	}, got)

	assert.Equal(t, map[string]string{AttrText: "A is b.", AttrParagraph: "first"}, ops[0].Attributes())
	assert.Equal(t, "first", ops[3].Attributes()[AttrText], "missing source text falls back to the paragraph")
	assert.Nil(t, ops[1].Attributes())
}

func TestTxtParser_UnresolvedParseDropsAuxiliaries(t *testing.T) {
	progress := &countingProgress{}
	p := mock.NewMockParser().WithResult("orphan", &parser.Result{
		Parses: []parser.Parse{
			{Extra: []core.Edge{edge("x/Cc.s"), edge("y/Cc.s")}},
		},
	})
	a := newTestParser("orphan\nDogs bark.\n", p, agent.WithProgress(progress))

	ops := collect(t, a)

	require.Len(t, ops, 1)
	pos, ok := ops[0].Position()
	assert.True(t, ok)
	assert.Equal(t, 0, pos, "skipped parses must not consume positions")
	assert.Equal(t, 1, a.EdgesFound())
	assert.Equal(t, 2, progress.advanced, "progress advances for paragraphs without output")
}

func TestTxtParser_CounterMatchesSequenceOps(t *testing.T) {
	p := mock.NewMockParser()
	p.ParseFunc = func(_ context.Context, text string) (*parser.Result, error) {
		return &parser.Result{
			Parses: []parser.Parse{
				{Resolved: core.Atom(text + "/Cc.s"), Extra: []core.Edge{core.Atom("aux/Cc.s")}},
				{},
				{Resolved: core.Atom(text + "_2/Cc.s")},
			},
			Inferred: []core.Edge{core.Atom("inferred/Cc.s")},
		}, nil
	}
	a := newTestParser("a\nb\n\nc\n", p)

	ops := collect(t, a)

	sequenced := 0
	for i, op := range ops {
		if !op.HasSequence() {
			_, ok := op.Position()
			assert.False(t, ok, "untagged operation %d must not carry a position", i)
			continue
		}
		pos, _ := op.Position()
		assert.Equal(t, sequenced, pos)
		sequenced++
	}
	assert.Equal(t, 6, sequenced)
	assert.Equal(t, sequenced, a.EdgesFound())
	assert.True(t, strings.HasPrefix(a.Summarize(), "edges found: 6\n\n"))
	assert.Equal(t, agent.Stats{Operations: len(ops), Units: 3}, a.Stats())
}

func TestTxtParser_EmptyInput(t *testing.T) {
	progress := &countingProgress{}
	a := newTestParser("\n   \n", mock.NewMockParser(), agent.WithProgress(progress))

	ops := collect(t, a)

	assert.Empty(t, ops)
	assert.Equal(t, 0, a.EdgesFound())
	assert.Equal(t, 0, progress.advanced)
	assert.True(t, progress.finished)
}

func TestTxtParser_ParserError(t *testing.T) {
	boom := errors.New("parser down")
	p := mock.NewMockParser()
	p.ParseFunc = func(context.Context, string) (*parser.Result, error) {
		return nil, boom
	}
	a := newTestParser("one\ntwo\n", p)
	ctx := context.Background()
	require.NoError(t, a.Startup(ctx))

	var errs []error
	for _, err := range a.Produce(ctx) {
		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], boom)
	assert.Equal(t, 1, p.CallCount(), "production stops at the first failure")
}

func TestTxtParser_EarlyStop(t *testing.T) {
	p := mock.NewMockParser()
	a := newTestParser("one two three\nfour five six\n", p)
	ctx := context.Background()
	require.NoError(t, a.Startup(ctx))

	for range a.Produce(ctx) {
		break
	}

	assert.Equal(t, 1, p.CallCount(), "no work happens past the last pull")
	assert.Equal(t, 1, a.EdgesFound())
	assert.Equal(t, 1, a.Stats().Operations)
	assert.True(t, strings.HasPrefix(a.Summarize(), "edges found: 1\n"))
}

func TestTxtParser_TrimsSequence(t *testing.T) {
	a := NewTxtParser("txt", Config{
		Input:    strings.NewReader("cats are animals\n"),
		Parser:   mock.NewMockParser(),
		Sequence: "  news  ",
	}, agent.WithoutProgress())

	ops := collect(t, a)
	require.Len(t, ops, 1)
	assert.Equal(t, "news", ops[0].Sequence())
}

func TestTxtParser_Cancelled(t *testing.T) {
	a := newTestParser("one\ntwo\n", mock.NewMockParser())
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, a.Startup(ctx))
	cancel()

	var errs []error
	for _, err := range a.Produce(ctx) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.Canceled)
}

func TestTxtParser_ProduceTwice(t *testing.T) {
	a := newTestParser("one\n", mock.NewMockParser())
	collect(t, a)

	for _, err := range a.Produce(context.Background()) {
		assert.ErrorIs(t, err, agent.ErrAlreadyProduced)
	}
}

func TestTxtParser_Path(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("Cats are animals.\n\nDogs bark.\n"), 0o644))

	a := NewTxtParser("txt", Config{
		Path:     path,
		Parser:   mock.NewMockParser(),
		Sequence: "story",
	}, agent.WithoutProgress())

	ops := collect(t, a)
	require.Len(t, ops, 2)
	assert.Equal(t, "(are/Pd.so cats/Cc.s animals/Cc.s)", ops[0].Edge().String())
	assert.Equal(t, "(bark/Pd.s dogs/Cc.s)", ops[1].Edge().String())
}
