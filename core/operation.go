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

import "maps"

// Operation is a request to insert an edge into the hypergraph.
//
// Operations are produced by agents and applied by whoever consumes
// them; producing an operation has no effect on the store. An Operation
// is immutable once built.
type Operation struct {
	edge        Edge
	sequence    string
	position    int
	hasPosition bool
	attributes  map[string]string
	count       bool
	derived     bool
}

// OperationOption configures an Operation under construction.
type OperationOption func(*Operation)

// WithSequence places the edge at position pos of the named sequence.
func WithSequence(name string, pos int) OperationOption {
	return func(op *Operation) {
		op.sequence = name
		op.position = pos
		op.hasPosition = true
	}
}

// WithAttributes attaches string attributes to the edge.
// The map is copied.
func WithAttributes(attrs map[string]string) OperationOption {
	return func(op *Operation) {
		if len(attrs) == 0 {
			return
		}
		op.attributes = maps.Clone(attrs)
	}
}

// WithCount asks the consumer to increment the edge's occurrence count.
func WithCount() OperationOption {
	return func(op *Operation) {
		op.count = true
	}
}

// AsDerived marks the edge as inferred rather than asserted, so the
// consumer inserts it as non-primary.
func AsDerived() OperationOption {
	return func(op *Operation) {
		op.derived = true
	}
}

// NewOperation builds an Operation for edge. It fails with
// ErrMissingEdge when edge is the zero Edge.
func NewOperation(edge Edge, opts ...OperationOption) (Operation, error) {
	op := Operation{edge: edge}
	for _, opt := range opts {
		opt(&op)
	}
	if err := ValidateOperation(&op); err != nil {
		return Operation{}, err
	}
	return op, nil
}

// Edge returns the edge to insert.
func (op Operation) Edge() Edge {
	return op.edge
}

// Sequence returns the target sequence name, or "" if none.
func (op Operation) Sequence() string {
	return op.sequence
}

// Position returns the sequence position and whether one was set.
func (op Operation) Position() (int, bool) {
	return op.position, op.hasPosition
}

// HasSequence reports whether the operation targets a sequence.
func (op Operation) HasSequence() bool {
	return op.sequence != ""
}

// Attributes returns a copy of the attributes, or nil if none were set.
func (op Operation) Attributes() map[string]string {
	return maps.Clone(op.attributes)
}

// Count reports whether the consumer should increment the edge count.
func (op Operation) Count() bool {
	return op.count
}

// Derived reports whether the edge was inferred (non-primary).
func (op Operation) Derived() bool {
	return op.derived
}

// With returns a copy of op with opts applied. The copy is validated
// like a new operation.
func (op Operation) With(opts ...OperationOption) (Operation, error) {
	clone := op
	clone.attributes = maps.Clone(op.attributes)
	for _, opt := range opts {
		opt(&clone)
	}
	if err := ValidateOperation(&clone); err != nil {
		return Operation{}, err
	}
	return clone, nil
}
