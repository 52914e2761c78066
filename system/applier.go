package system

import (
	"context"
	"fmt"

	"github.com/poiesic/cognit/core"
	"github.com/poiesic/cognit/storage"
)

// Applier writes operations to a hypergraph.
type Applier struct {
	hg storage.Hypergraph
}

// NewApplier creates an applier writing to hg.
func NewApplier(hg storage.Hypergraph) *Applier {
	return &Applier{hg: hg}
}

// Apply performs op.
//
// A sequence operation records its edge at the given position of the
// sequence, which also adds the edge as primary. Any other operation adds
// its edge as primary unless it is derived. The count flag increments the
// edge count and attributes are merged into the stored ones.
func (a *Applier) Apply(ctx context.Context, op core.Operation) error {
	edge := op.Edge()
	if edge.IsZero() {
		return core.ErrMissingEdge
	}

	if pos, ok := op.Position(); ok {
		if err := a.hg.AddToSequence(ctx, op.Sequence(), pos, edge); err != nil {
			return fmt.Errorf("add %s to sequence %s: %w", edge, op.Sequence(), err)
		}
		if op.Count() {
			if err := a.hg.Add(ctx, edge, true, true); err != nil {
				return fmt.Errorf("count %s: %w", edge, err)
			}
		}
	} else {
		if err := a.hg.Add(ctx, edge, !op.Derived(), op.Count()); err != nil {
			return fmt.Errorf("add %s: %w", edge, err)
		}
	}

	if attrs := op.Attributes(); len(attrs) > 0 {
		if err := a.hg.SetAttributes(ctx, edge, attrs); err != nil {
			return fmt.Errorf("set attributes of %s: %w", edge, err)
		}
	}
	return nil
}
