package storage

import (
	"context"
	"iter"

	"github.com/poiesic/cognit/core"
)

// Hypergraph stores edges together with their provenance, counts and
// attributes. Implementations must be thread-safe and support
// concurrent access.
type Hypergraph interface {
	// All iterates over every stored edge in a stable order.
	// Iteration reflects the store as of the call; edges added while
	// iterating are not visited.
	All(ctx context.Context) iter.Seq2[core.Edge, error]

	// Match returns the stored edges matching pattern, where the
	// wildcard atom matches any element. Results follow the same order
	// as All.
	Match(ctx context.Context, pattern core.Edge) ([]core.Edge, error)

	// Add inserts an edge or confirms an existing one.
	// An existing non-primary edge is upgraded when primary is true;
	// a primary edge is never downgraded. If count is true the edge's
	// Count is incremented.
	Add(ctx context.Context, edge core.Edge, primary, count bool) error

	// AddToSequence adds edge as primary and records it at position pos
	// of the named sequence.
	AddToSequence(ctx context.Context, name string, pos int, edge core.Edge) error

	// SetAttributes merges attrs into the edge's attributes.
	// Returns ErrNotFound if the edge doesn't exist.
	SetAttributes(ctx context.Context, edge core.Edge, attrs map[string]string) error

	// Get retrieves the stored record of an edge.
	// Returns ErrNotFound if the edge doesn't exist.
	Get(ctx context.Context, edge core.Edge) (*core.EdgeRecord, error)

	// Exists reports whether the edge is stored.
	Exists(ctx context.Context, edge core.Edge) (bool, error)

	// EdgeCount returns the number of stored edges.
	EdgeCount(ctx context.Context) (int, error)

	// Close releases resources held by the hypergraph.
	Close() error
}

// CheckpointRepository persists the outcome of agent runs.
type CheckpointRepository interface {
	// SaveCheckpoint stores the checkpoint for checkpoint.Agent,
	// replacing any previous one. Sets UpdatedAt.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint of an agent.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, agent string) (*core.Checkpoint, error)

	// ListCheckpoints returns all checkpoints ordered by agent name.
	ListCheckpoints(ctx context.Context) ([]*core.Checkpoint, error)
}
