package ingestion

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/poiesic/cognit/agent"
	"github.com/poiesic/cognit/core"
	"github.com/poiesic/cognit/parser"
)

// Attribute keys set on sequence operations.
const (
	AttrText      = "text"
	AttrParagraph = "paragraph"
)

// Config holds the dependencies of a TxtParser.
type Config struct {
	// Input is the text source. If nil, Path is opened instead.
	Input io.Reader

	// Path is a text file read when Input is nil.
	Path string

	// Parser turns paragraphs into edges.
	Parser parser.Parser

	// Sequence names the sequence the resolved edges are recorded in.
	Sequence string
}

// TxtParser is an agent producing operations from a text source.
type TxtParser struct {
	agent.Base
	config     Config
	edgesFound int
}

var _ agent.Agent = (*TxtParser)(nil)

// NewTxtParser creates a text producer.
func NewTxtParser(name string, config Config, opts ...agent.Option) *TxtParser {
	return &TxtParser{
		Base:   agent.NewBase(name, opts...),
		config: config,
	}
}

// Startup checks that a parser, an input and a sequence name are
// configured.
func (t *TxtParser) Startup(ctx context.Context) error {
	if t.config.Parser == nil {
		return ErrParserRequired
	}
	if t.config.Input == nil && t.config.Path == "" {
		return ErrInputRequired
	}
	t.config.Sequence = strings.TrimSpace(t.config.Sequence)
	if t.config.Sequence == "" {
		return ErrSequenceRequired
	}
	if err := core.ValidateSequenceName(t.config.Sequence); err != nil {
		return fmt.Errorf("%w: %w", agent.ErrConfiguration, err)
	}
	if t.config.Input == nil {
		if _, err := os.Stat(t.config.Path); err != nil {
			return fmt.Errorf("%w: %w", agent.ErrConfiguration, err)
		}
	}
	t.MarkStarted()
	t.Logger().Debug("txt_parser started", "sequence", t.config.Sequence, "path", t.config.Path)
	return nil
}

// Produce yields the operations for every paragraph of the input.
func (t *TxtParser) Produce(ctx context.Context) iter.Seq2[core.Operation, error] {
	if err := t.Begin(); err != nil {
		return agent.Failed(err)
	}

	return func(yield func(core.Operation, error) bool) {
		paragraphs, err := t.readInput()
		if err != nil {
			yield(core.Operation{}, err)
			return
		}

		t.StartProgress(len(paragraphs))
		defer t.FinishProgress()

		position := 0
		for i, paragraph := range paragraphs {
			if err := ctx.Err(); err != nil {
				yield(core.Operation{}, err)
				return
			}

			result, err := t.config.Parser.Parse(ctx, paragraph)
			if err != nil {
				yield(core.Operation{}, fmt.Errorf("paragraph %d: %w", i+1, err))
				return
			}
			if result == nil {
				result = &parser.Result{}
			}

			for _, parse := range result.Parses {
				if !parse.HasResolved() {
					if len(parse.Extra) > 0 {
						t.Logger().Debug("dropping auxiliary edges of unresolved parse",
							"paragraph", i+1, "edges", len(parse.Extra))
					}
					continue
				}

				text := parse.Text
				if text == "" {
					text = paragraph
				}
				op, err := core.NewOperation(parse.Resolved,
					core.WithSequence(t.config.Sequence, position),
					core.WithAttributes(map[string]string{
						AttrText:      text,
						AttrParagraph: paragraph,
					}))
				if err != nil {
					yield(core.Operation{}, err)
					return
				}
				t.edgesFound++
				if !t.Emit(yield, op) {
					return
				}
				position++

				for _, extra := range parse.Extra {
					op, err := core.NewOperation(extra)
					if !t.emit(yield, op, err) {
						return
					}
				}
			}

			for _, inferred := range result.Inferred {
				op, err := core.NewOperation(inferred, core.WithCount())
				if !t.emit(yield, op, err) {
					return
				}
			}

			t.Advance()
		}

		t.Logger().Info("txt_parser finished", "paragraphs", len(paragraphs), "edges_found", t.edgesFound)
	}
}

// emit yields op, or err when the operation could not be built.
// It returns false when production must stop.
func (t *TxtParser) emit(yield func(core.Operation, error) bool, op core.Operation, err error) bool {
	if err != nil {
		yield(core.Operation{}, err)
		return false
	}
	return t.Emit(yield, op)
}

func (t *TxtParser) readInput() ([]string, error) {
	if t.config.Input != nil {
		return ReadParagraphs(t.config.Input)
	}
	f, err := os.Open(t.config.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadParagraphs(f)
}

// EdgesFound returns the number of sequence operations yielded.
func (t *TxtParser) EdgesFound() int {
	return t.edgesFound
}

// Summarize reports the edges found followed by the generic counters.
func (t *TxtParser) Summarize() string {
	return fmt.Sprintf("edges found: %d\n\n%s", t.edgesFound, t.Base.Summarize())
}
