package ontology

import "github.com/poiesic/cognit/core"

// Outcome is the result of classifying one edge.
type Outcome int

const (
	// Skipped edges are not concepts or have a connector that names no parent.
	Skipped Outcome = iota
	// Ambiguous edges are builder edges with zero or several main concepts.
	Ambiguous
	// Found edges have exactly one parent.
	Found
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Ambiguous:
		return "ambiguous"
	case Found:
		return "found"
	}
	return "unknown"
}

// Classifier finds the taxonomy parent of an edge.
type Classifier interface {
	// Parent returns the parent of edge when the outcome is Found, and
	// the zero Edge otherwise.
	Parent(edge core.Edge) (core.Edge, Outcome)
}

// StructuralClassifier derives parents from edge types alone.
type StructuralClassifier struct{}

var _ Classifier = StructuralClassifier{}

// Parent implements Classifier.
func (StructuralClassifier) Parent(edge core.Edge) (core.Edge, Outcome) {
	if edge.IsAtom() || !isConcept(edge) {
		return core.Edge{}, Skipped
	}

	ct := edge.ConnectorType()
	if ct == "" {
		return core.Edge{}, Skipped
	}
	switch ct[0] {
	case core.TypeBuilder:
		mcs := edge.MainConcepts()
		if len(mcs) != 1 {
			return core.Edge{}, Ambiguous
		}
		return mcs[0], Found
	case core.TypeModifier:
		if edge.Len() == 2 {
			return edge.At(1), Found
		}
	}
	return core.Edge{}, Skipped
}

func isConcept(edge core.Edge) bool {
	t := edge.Type()
	return t != "" && t[0] == core.TypeConcept
}
