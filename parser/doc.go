// Package parser defines the natural-language parser consumed by the text
// producer.
//
// A Parser turns one paragraph into a Result: an ordered list of parses,
// each with an optional resolved edge, the text it was parsed from and
// auxiliary edges that only make sense next to the resolved one, plus the
// edges inferred from the paragraph as a whole.
//
// Implementations live in subpackages:
//
//   - mock: deterministic parser for tests
//   - openai: LLM-backed parser for OpenAI-compatible chat APIs
package parser
