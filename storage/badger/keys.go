package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/cognit/core"
)

// Key prefixes for different data types
const (
	edgeRecordPrefix    = "edge:"
	edgeConnectorPrefix = "edgx:"
	checkpointPrefix    = "chkpt:"

	connectorKeySep byte = 0
)

// makeEdgeKey generates a key for an edge record by ID.
func makeEdgeKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s%d", edgeRecordPrefix, id))
}

// makePartialConnectorKey generates a prefix key for connector lookups.
// Format: prefix connector 0x00
func makePartialConnectorKey(connector string) []byte {
	buf := make([]byte, 0, len(edgeConnectorPrefix)+len(connector)+1)
	buf = append(buf, edgeConnectorPrefix...)
	buf = append(buf, connector...)
	return append(buf, connectorKeySep)
}

// makeConnectorKey generates a composite key for the connector index.
// Format: prefix connector 0x00 edgeID
func makeConnectorKey(connector string, id core.ID) []byte {
	prefix := makePartialConnectorKey(connector)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeCheckpointKey generates a key for agent checkpoints.
func makeCheckpointKey(agent string) []byte {
	return []byte(checkpointPrefix + agent)
}
