package agent

import "errors"

var (
	// ErrConfiguration is returned by Startup when a required dependency
	// or setting is missing. Agent-specific errors wrap it.
	ErrConfiguration = errors.New("agent configuration error")

	// ErrNotStarted is yielded by Produce when Startup has not succeeded.
	ErrNotStarted = errors.New("agent not started")

	// ErrAlreadyProduced is yielded by a second call to Produce on the same
	// agent. Agents consume their inputs and cannot be replayed.
	ErrAlreadyProduced = errors.New("agent already produced its operations")
)
