// Package ingestion turns text into hypergraph operations.
//
// TxtParser reads a text source one paragraph per non-blank line, hands
// each paragraph to a parser.Parser and yields operations in a fixed
// order:
//   - one sequence operation per parse with a resolved edge, tagged with
//     the next position of the configured sequence and the source text
//   - the parse's auxiliary edges, untagged
//   - after the paragraph's parses, its inferred edges with the count
//     flag set
//
// Positions start at 0 and increase by one per sequence operation for the
// whole run. Auxiliary edges of a parse without a resolved edge are
// dropped. The agent never writes to the store; the consumer applies the
// operations it pulls.
package ingestion
