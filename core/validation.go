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
)

// ValidateOperation validates an Operation according to domain rules.
//
// Validation rules:
//   - Edge must be present
//   - Position, when set, must be >= 0 and come with a sequence name
//   - Sequence name, when set, must form a single atom
//
// NOT validated:
//   - Edge well-formedness beyond presence (the store's concern)
//   - Attribute keys and values
func ValidateOperation(op *Operation) error {
	if op == nil {
		return fmt.Errorf("%w: operation is nil", ErrInvalidOperation)
	}

	if op.edge.IsZero() {
		return fmt.Errorf("%w: %w", ErrInvalidOperation, ErrMissingEdge)
	}

	if op.sequence != "" {
		if err := ValidateSequenceName(op.sequence); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidOperation, err)
		}
	}

	if op.hasPosition {
		if op.sequence == "" {
			return fmt.Errorf("%w: %w", ErrInvalidOperation, ErrPositionWithoutSequence)
		}
		if op.position < 0 {
			return fmt.Errorf("%w: %w: %d", ErrInvalidOperation, ErrNegativePosition, op.position)
		}
	}

	return nil
}

// ValidateCheckpoint validates a Checkpoint according to domain rules.
//
// Validation rules:
//   - Agent must not be empty
//   - Operations must not be negative
//   - Position must be >= -1 (-1 means no sequence position was recorded)
func ValidateCheckpoint(checkpoint *Checkpoint) error {
	if checkpoint == nil {
		return fmt.Errorf("%w: checkpoint is nil", ErrInvalidCheckpoint)
	}

	if checkpoint.Agent == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCheckpoint, ErrEmptyAgentName)
	}

	if checkpoint.Operations < 0 || checkpoint.Position < -1 {
		return fmt.Errorf("%w: negative counters", ErrInvalidCheckpoint)
	}

	return nil
}
