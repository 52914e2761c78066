// Package ontology derives taxonomy facts from the edges of a hypergraph.
//
// For every concept edge in the store the Classifier looks for a single
// parent concept:
//   - a builder edge such as (+/B.ma tennis/Cc.s player/Cc.s) has the
//     parent player/Cc.s when it has exactly one main concept, and is
//     ambiguous otherwise
//   - a two-element modifier edge such as (red/Ma car/Cc.s) has its
//     argument as parent
//
// Each parent found becomes the derived fact (type_of/P/. edge parent).
// The Agent yields these facts as derived operations; Generate applies
// them directly. Subtypes and Supertypes read the facts back.
package ontology
