package ontology

import (
	"context"
	"fmt"
	"iter"

	"github.com/poiesic/cognit/agent"
	"github.com/poiesic/cognit/core"
	"github.com/poiesic/cognit/storage"
)

// Agent yields a derived type_of operation for every edge of the
// hypergraph with a single parent.
type Agent struct {
	agent.Base
	hg         storage.Hypergraph
	classifier Classifier
	derived    int
	skipped    int
	ambiguous  int
}

var _ agent.Agent = (*Agent)(nil)

// NewAgent creates an ontology agent reading hg.
func NewAgent(name string, hg storage.Hypergraph, opts ...agent.Option) *Agent {
	return &Agent{
		Base:       agent.NewBase(name, opts...),
		hg:         hg,
		classifier: StructuralClassifier{},
	}
}

// UseClassifier replaces the structural classifier.
func (a *Agent) UseClassifier(c Classifier) *Agent {
	a.classifier = c
	return a
}

// Startup checks that a hypergraph is configured.
func (a *Agent) Startup(ctx context.Context) error {
	if a.hg == nil {
		return ErrHypergraphRequired
	}
	if a.classifier == nil {
		a.classifier = StructuralClassifier{}
	}
	a.MarkStarted()
	return nil
}

// Produce classifies every edge of the hypergraph in enumeration order.
// The store is only read.
func (a *Agent) Produce(ctx context.Context) iter.Seq2[core.Operation, error] {
	if err := a.Begin(); err != nil {
		return agent.Failed(err)
	}

	return func(yield func(core.Operation, error) bool) {
		total, err := a.hg.EdgeCount(ctx)
		if err != nil {
			yield(core.Operation{}, err)
			return
		}

		a.StartProgress(total)
		defer a.FinishProgress()

		for edge, err := range a.hg.All(ctx) {
			if err != nil {
				yield(core.Operation{}, err)
				return
			}

			parent, outcome := a.classifier.Parent(edge)
			switch outcome {
			case Found:
				op, err := core.NewOperation(core.TypeOf(edge, parent), core.AsDerived())
				if err != nil {
					yield(core.Operation{}, err)
					return
				}
				a.derived++
				if !a.Emit(yield, op) {
					return
				}
			case Ambiguous:
				a.ambiguous++
			default:
				a.skipped++
			}
			a.Advance()
		}

		a.Logger().Info("ontology pass finished",
			"derived", a.derived, "skipped", a.skipped, "ambiguous", a.ambiguous)
	}
}

// Derived returns the number of derived facts yielded.
func (a *Agent) Derived() int {
	return a.derived
}

// Summarize reports the derivation counters followed by the generic ones.
func (a *Agent) Summarize() string {
	return fmt.Sprintf("derived facts: %d\nskipped: %d\nambiguous: %d\n\n%s",
		a.derived, a.skipped, a.ambiguous, a.Base.Summarize())
}
