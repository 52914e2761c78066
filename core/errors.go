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

import "errors"

// Domain validation errors
var (
	// ErrInvalidEdge indicates an edge string could not be parsed.
	ErrInvalidEdge = errors.New("invalid edge")

	// ErrMissingEdge indicates an operation was built without an edge.
	ErrMissingEdge = errors.New("operation requires an edge")

	// ErrInvalidOperation indicates an Operation failed validation.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrNegativePosition indicates a sequence position below zero.
	ErrNegativePosition = errors.New("sequence position cannot be negative")

	// ErrPositionWithoutSequence indicates a position was set on an operation
	// that does not target a sequence.
	ErrPositionWithoutSequence = errors.New("position requires a sequence name")

	// ErrInvalidSequence indicates a sequence name that cannot be stored
	// as a single atom.
	ErrInvalidSequence = errors.New("invalid sequence name")

	// ErrInvalidCheckpoint indicates a Checkpoint failed validation.
	ErrInvalidCheckpoint = errors.New("invalid checkpoint")

	// ErrEmptyAgentName indicates the checkpoint Agent field is empty.
	ErrEmptyAgentName = errors.New("agent name cannot be empty")
)
