package system

import "errors"

var (
	// ErrInvalidConfig is returned when a system file is invalid.
	ErrInvalidConfig = errors.New("invalid system config")

	// ErrUnknownAgentType is returned for an agent type with no constructor.
	ErrUnknownAgentType = errors.New("unknown agent type")

	// ErrHypergraphRequired is returned when no hypergraph is supplied.
	ErrHypergraphRequired = errors.New("hypergraph required")
)
