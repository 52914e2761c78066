package ontology

import (
	"fmt"

	"github.com/poiesic/cognit/agent"
)

// ErrHypergraphRequired is returned by Startup when no hypergraph is configured.
var ErrHypergraphRequired = fmt.Errorf("%w: hypergraph required", agent.ErrConfiguration)
