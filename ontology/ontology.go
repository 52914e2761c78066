package ontology

import (
	"context"

	"github.com/poiesic/cognit/agent"
	"github.com/poiesic/cognit/core"
	"github.com/poiesic/cognit/storage"
)

// Generate derives taxonomy facts for every edge of hg and adds them as
// non-primary edges. It returns the number of facts added.
func Generate(ctx context.Context, hg storage.Hypergraph, opts ...agent.Option) (int, error) {
	a := NewAgent("ontology", hg, opts...)
	if err := a.Startup(ctx); err != nil {
		return 0, err
	}

	count := 0
	for op, err := range a.Produce(ctx) {
		if err != nil {
			return count, err
		}
		if err := hg.Add(ctx, op.Edge(), false, op.Count()); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Subtypes returns the direct children of concept: every C with
// (type_of/P/. C concept) in hg.
func Subtypes(ctx context.Context, hg storage.Hypergraph, concept core.Edge) ([]core.Edge, error) {
	facts, err := hg.Match(ctx, core.TypeOfPattern{Parent: concept}.Edge())
	if err != nil {
		return nil, err
	}
	return project(facts, 1), nil
}

// Supertypes returns the direct parents of concept: every P with
// (type_of/P/. concept P) in hg.
func Supertypes(ctx context.Context, hg storage.Hypergraph, concept core.Edge) ([]core.Edge, error) {
	facts, err := hg.Match(ctx, core.TypeOfPattern{Child: concept}.Edge())
	if err != nil {
		return nil, err
	}
	return project(facts, 2), nil
}

func project(facts []core.Edge, i int) []core.Edge {
	out := make([]core.Edge, 0, len(facts))
	for _, fact := range facts {
		out = append(out, fact.At(i))
	}
	return out
}
