package openai

import "fmt"

const parseResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "parses": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "text":  {"type": "string"},
          "edge":  {"type": "string"},
          "extra": {"type": "array", "items": {"type": "string"}}
        },
        "required": ["text", "edge"],
        "additionalProperties": false
      }
    },
    "inferred": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["parses"],
  "additionalProperties": false
}`

const parsePromptTemplate = `Translate the given paragraph into semantic hyperedges and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Hyperedge notation:
- An atom is label/Role, e.g. cat/Cc.s. Labels are lowercase, words joined with underscores.
- Role types: C concept, P predicate, M modifier, B builder, T trigger, J conjunction.
- Predicates and builders carry argument roles after a dot: is/Pd.sc, +/B.ma, of/Br.ma.
- A non-atomic edge is a parenthesized list whose first element is the connector:
  (is/Pd.sc cat/Cc.s (+/B.ma domestic/Ma animal/Cc.s))

Rules:
- Produce one parse per sentence, in order. "text" is the sentence exactly as written.
- "edge" is the sentence's main edge with pronouns replaced by what they refer to. Use "" if the
  sentence has no meaningful edge.
- "extra" lists edges that only make sense together with the main edge, such as definitions of
  concepts introduced in it.
- "inferred" lists facts implied by the paragraph as a whole that no single sentence states.
- Parentheses must balance. Do not hallucinate facts.

Example:
Input: "Cats are animals. They purr."
Output:
{
  "parses": [
    {"text":"Cats are animals.","edge":"(are/Pd.sc cats/Cc.p animals/Cc.p)","extra":[]},
    {"text":"They purr.","edge":"(purr/Pd.s cats/Cc.p)","extra":[]}
  ],
  "inferred": ["(are/Pd.sc purring/Cc.s (+/B.ma animal/Cc.s sound/Cc.s))"]
}`

// buildSystemPrompt creates the system prompt with the response schema embedded.
func buildSystemPrompt() string {
	return fmt.Sprintf(parsePromptTemplate, parseResponseSchema)
}
