package core

import (
	"fmt"
	"strings"
)

// Wildcard matches any edge when it appears in a pattern.
var Wildcard = Atom("*")

// Predicates used for edges the system itself derives.
var (
	TypeOfPredicate   = Atom("type_of/P/.")
	SequencePredicate = Atom("seq/P/.")
)

// SequenceAtom returns the atom that names a sequence inside
// (seq/P/. name pos edge). Surrounding whitespace is dropped and inner
// runs of whitespace become "_".
func SequenceAtom(name string) (Edge, error) {
	label := strings.Join(strings.Fields(name), "_")
	if label == "" {
		return Edge{}, fmt.Errorf("%w: empty name", ErrInvalidSequence)
	}
	if strings.ContainsAny(label, atomReserved) || label == Wildcard.atom {
		return Edge{}, fmt.Errorf("%w: %q", ErrInvalidSequence, name)
	}
	return Atom(label), nil
}

// ValidateSequenceName reports whether name can be stored as a sequence.
func ValidateSequenceName(name string) error {
	_, err := SequenceAtom(name)
	return err
}

// IsWildcard reports whether e is the wildcard atom.
func (e Edge) IsWildcard() bool {
	return e.IsAtom() && e.atom == Wildcard.atom
}

// Matches reports whether e matches pattern. The wildcard matches any
// edge; non-atomic patterns match element-wise and require equal length.
func (e Edge) Matches(pattern Edge) bool {
	if pattern.IsWildcard() {
		return true
	}
	if pattern.IsAtom() || e.IsAtom() {
		return e.Equal(pattern)
	}
	if len(e.elems) != len(pattern.elems) {
		return false
	}
	for i := range pattern.elems {
		if !e.elems[i].Matches(pattern.elems[i]) {
			return false
		}
	}
	return true
}

// TypeOf builds the taxonomy fact (type_of/P/. child parent).
func TypeOf(child, parent Edge) Edge {
	return NewEdge(TypeOfPredicate, child, parent)
}

// TypeOfPattern builds a query over taxonomy facts. A zero Child or
// Parent is left open as a wildcard.
type TypeOfPattern struct {
	Child  Edge
	Parent Edge
}

// Edge returns the pattern as an edge usable with Matches.
func (p TypeOfPattern) Edge() Edge {
	child, parent := p.Child, p.Parent
	if child.IsZero() {
		child = Wildcard
	}
	if parent.IsZero() {
		parent = Wildcard
	}
	return TypeOf(child, parent)
}
