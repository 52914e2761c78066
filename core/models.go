package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Edges are identified by a content hash of their text notation.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// EdgeID returns the content ID of an edge.
func EdgeID(e Edge) ID {
	return IDFromContent(e.String())
}

// EdgeRecord is the stored form of an edge together with its metadata.
type EdgeRecord struct {
	Id         ID
	Edge       string            // Text notation of the edge
	Primary    bool              // Asserted by an authoritative source rather than derived
	Count      int               // Occurrence count, incremented by counting operations
	Attributes map[string]string // Free-form attributes (e.g. "text")
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Parsed returns the record's edge.
func (r *EdgeRecord) Parsed() (Edge, error) {
	return ParseEdge(r.Edge)
}

// Checkpoint records the outcome of the last completed run of an agent.
type Checkpoint struct {
	Agent      string
	Sequence   string // Sequence written by the run, if any
	Operations int    // Operations applied by the run
	Position   int    // Last sequence position applied, -1 if none
	UpdatedAt  time.Time
}
