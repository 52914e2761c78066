package parser

import (
	"context"

	"github.com/poiesic/cognit/core"
)

// Parser turns paragraph text into edges.
// Implementations must be thread-safe for concurrent use.
type Parser interface {
	// Parse analyzes one paragraph. Parses and inferred edges are
	// returned in a stable order.
	Parse(ctx context.Context, text string) (*Result, error)
}

// Parse is one sentence-level reading of a paragraph.
type Parse struct {
	// Resolved is the main edge after coreference resolution.
	// The zero Edge means the parse produced no edge.
	Resolved core.Edge

	// Text is the source text of this parse.
	Text string

	// Extra holds auxiliary edges attached to Resolved.
	Extra []core.Edge
}

// HasResolved reports whether the parse produced a main edge.
func (p Parse) HasResolved() bool {
	return !p.Resolved.IsZero()
}

// Result is the parser output for one paragraph.
type Result struct {
	Parses   []Parse
	Inferred []core.Edge
}
