// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
)

// atomReserved holds the characters the text notation uses as delimiters.
const atomReserved = "() \t\n\r"

// Edge is a hyperedge: either an atom or an ordered list of edges.
// The first element of a non-atomic edge is its connector.
//
// Edges are immutable values. The zero Edge is empty and is not a valid
// relation.
type Edge struct {
	atom  string
	elems []Edge
}

// Atom creates an atomic edge from its text form, e.g. "cat/Cp.s".
func Atom(s string) Edge {
	return Edge{atom: s}
}

// NewEdge creates a non-atomic edge from its elements.
// The elements are copied so later changes to the slice do not leak in.
func NewEdge(elems ...Edge) Edge {
	if len(elems) == 0 {
		return Edge{}
	}
	return Edge{elems: append([]Edge(nil), elems...)}
}

// ParseEdge parses the parenthesized text notation, e.g.
// "(is/Pd.so cat/Cp.s animal/Cc.p)".
func ParseEdge(s string) (Edge, error) {
	tokens := tokenize(s)
	if len(tokens) == 0 {
		return Edge{}, fmt.Errorf("%w: empty string", ErrInvalidEdge)
	}
	edge, next, err := parseTokens(tokens, 0)
	if err != nil {
		return Edge{}, fmt.Errorf("%w: %q: %w", ErrInvalidEdge, s, err)
	}
	if next != len(tokens) {
		return Edge{}, fmt.Errorf("%w: %q: trailing input", ErrInvalidEdge, s)
	}
	return edge, nil
}

// MustParseEdge is like ParseEdge but panics on error. Intended for
// constants and tests.
func MustParseEdge(s string) Edge {
	e, err := ParseEdge(s)
	if err != nil {
		panic(err)
	}
	return e
}

func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '(' || r == ')':
			flush()
			tokens = append(tokens, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func parseTokens(tokens []string, pos int) (Edge, int, error) {
	if pos >= len(tokens) {
		return Edge{}, pos, fmt.Errorf("unexpected end of input")
	}
	switch tokens[pos] {
	case ")":
		return Edge{}, pos, fmt.Errorf("unbalanced ')'")
	case "(":
		pos++
		var elems []Edge
		for {
			if pos >= len(tokens) {
				return Edge{}, pos, fmt.Errorf("missing ')'")
			}
			if tokens[pos] == ")" {
				pos++
				break
			}
			child, next, err := parseTokens(tokens, pos)
			if err != nil {
				return Edge{}, next, err
			}
			elems = append(elems, child)
			pos = next
		}
		if len(elems) == 0 {
			return Edge{}, pos, fmt.Errorf("empty edge")
		}
		return Edge{elems: elems}, pos, nil
	default:
		return Atom(tokens[pos]), pos + 1, nil
	}
}

// IsZero reports whether e is the empty edge.
func (e Edge) IsZero() bool {
	return e.atom == "" && len(e.elems) == 0
}

// Validate reports whether e is non-empty and reads back unchanged from
// its String form. Atoms must not contain parentheses or whitespace.
func (e Edge) Validate() error {
	if e.IsZero() {
		return fmt.Errorf("%w: empty edge", ErrInvalidEdge)
	}
	if e.IsAtom() {
		if strings.ContainsAny(e.atom, atomReserved) {
			return fmt.Errorf("%w: atom %q contains reserved characters", ErrInvalidEdge, e.atom)
		}
		return nil
	}
	for _, el := range e.elems {
		if err := el.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsAtom reports whether e is an atom.
func (e Edge) IsAtom() bool {
	return len(e.elems) == 0 && e.atom != ""
}

// Len returns the number of elements of a non-atomic edge, or 0 for atoms.
func (e Edge) Len() int {
	return len(e.elems)
}

// At returns the i-th element. Panics if i is out of range.
func (e Edge) At(i int) Edge {
	return e.elems[i]
}

// Elements returns a copy of the edge's elements.
func (e Edge) Elements() []Edge {
	return append([]Edge(nil), e.elems...)
}

// Connector returns the first element, or the zero Edge for atoms.
func (e Edge) Connector() Edge {
	if len(e.elems) == 0 {
		return Edge{}
	}
	return e.elems[0]
}

// Equal reports whether two edges are structurally identical.
func (e Edge) Equal(other Edge) bool {
	if e.atom != other.atom || len(e.elems) != len(other.elems) {
		return false
	}
	for i := range e.elems {
		if !e.elems[i].Equal(other.elems[i]) {
			return false
		}
	}
	return true
}

// String returns the text notation of the edge.
func (e Edge) String() string {
	if len(e.elems) == 0 {
		return e.atom
	}
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e Edge) write(b *strings.Builder) {
	if len(e.elems) == 0 {
		b.WriteString(e.atom)
		return
	}
	b.WriteByte('(')
	for i, el := range e.elems {
		if i > 0 {
			b.WriteByte(' ')
		}
		el.write(b)
	}
	b.WriteByte(')')
}

// Label returns the human-readable part of an atom ("cat" for
// "cat/Cp.s"). Empty for non-atoms.
func (e Edge) Label() string {
	if !e.IsAtom() {
		return ""
	}
	label, _, _ := strings.Cut(e.atom, "/")
	return label
}

// role returns the role part of an atom ("Cp.s" for "cat/Cp.s/en").
func (e Edge) role() string {
	parts := strings.SplitN(e.atom, "/", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
