package core

import "strings"

// Type codes of the first character of an edge type.
const (
	TypeConcept     = 'C'
	TypePredicate   = 'P'
	TypeModifier    = 'M'
	TypeBuilder     = 'B'
	TypeTrigger     = 'T'
	TypeConjunction = 'J'
	TypeRelation    = 'R'
	TypeSpecifier   = 'S'
)

// Type returns the structural type of the edge.
//
// Atoms carry their type in the role part ("Cp" for "cat/Cp.s"); an atom
// without a role is a concept. Non-atomic edges derive their type from
// the connector:
//   - predicate (P) builds a relation (R)
//   - modifier (M) and conjunction (J) take the type of the first argument
//   - builder (B) builds a concept (C)
//   - trigger (T) builds a specifier (S)
//
// Any other connector yields "", which no caller treats as a concept.
func (e Edge) Type() string {
	if e.IsZero() {
		return ""
	}
	if e.IsAtom() {
		t, _, _ := strings.Cut(e.role(), ".")
		if t == "" {
			return string(TypeConcept)
		}
		return t
	}

	ct := e.ConnectorType()
	if ct == "" {
		return ""
	}
	switch ct[0] {
	case TypePredicate:
		return string(TypeRelation) + ct[1:]
	case TypeBuilder:
		return string(TypeConcept) + ct[1:]
	case TypeTrigger:
		return string(TypeSpecifier) + ct[1:]
	case TypeModifier, TypeConjunction:
		if len(e.elems) < 2 {
			return ""
		}
		return e.elems[1].Type()
	}
	return ""
}

// ConnectorType returns the type of the connector, or "" for atoms.
func (e Edge) ConnectorType() string {
	if len(e.elems) == 0 {
		return ""
	}
	return e.elems[0].Type()
}

// Argroles returns the argument role string of the edge.
// For atoms it is the part after the first '.' of the role ("so" for
// "is/Pd.so"). A modifier-connected edge inherits the argroles of the
// edge it modifies.
func (e Edge) Argroles() string {
	if e.IsAtom() {
		_, roles, _ := strings.Cut(e.role(), ".")
		return roles
	}
	ct := e.ConnectorType()
	if ct != "" && ct[0] == TypeModifier && len(e.elems) > 1 {
		return e.elems[1].Argroles()
	}
	return ""
}

// MainConcepts returns the head concepts of a builder-connected edge:
// the arguments whose connector argrole is 'm'. Returns nil for any
// other edge.
func (e Edge) MainConcepts() []Edge {
	ct := e.ConnectorType()
	if ct == "" || ct[0] != TypeBuilder {
		return nil
	}
	var mcs []Edge
	for pos, role := range e.elems[0].Argroles() {
		if role == 'm' && pos+1 < len(e.elems) {
			mcs = append(mcs, e.elems[pos+1])
		}
	}
	return mcs
}
