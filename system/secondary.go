package system

import (
	"context"
	"iter"

	"github.com/poiesic/cognit/agent"
	"github.com/poiesic/cognit/core"
)

// secondary marks the untagged operations of the wrapped agent as
// derived. Sequence operations keep their edges primary.
type secondary struct {
	agent.Agent
}

// Secondary wraps a so that its auxiliary and inferred edges are applied
// as non-primary.
func Secondary(a agent.Agent) agent.Agent {
	return secondary{a}
}

func (s secondary) Produce(ctx context.Context) iter.Seq2[core.Operation, error] {
	return func(yield func(core.Operation, error) bool) {
		for op, err := range s.Agent.Produce(ctx) {
			if err != nil {
				yield(core.Operation{}, err)
				return
			}
			if !op.HasSequence() {
				if op, err = op.With(core.AsDerived()); err != nil {
					yield(core.Operation{}, err)
					return
				}
			}
			if !yield(op, nil) {
				return
			}
		}
	}
}
