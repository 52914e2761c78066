package ingestion

import (
	"fmt"

	"github.com/poiesic/cognit/agent"
)

var (
	// ErrParserRequired is returned by Startup when no parser is configured.
	ErrParserRequired = fmt.Errorf("%w: parser required", agent.ErrConfiguration)

	// ErrInputRequired is returned by Startup when no input source is configured.
	ErrInputRequired = fmt.Errorf("%w: input required", agent.ErrConfiguration)

	// ErrSequenceRequired is returned by Startup when no sequence name is configured.
	ErrSequenceRequired = fmt.Errorf("%w: sequence required", agent.ErrConfiguration)
)
