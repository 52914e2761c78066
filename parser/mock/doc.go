// Package mock provides a test double for parser.Parser.
//
// The mock allows tests to run without an LLM and gives deterministic
// output.
//
// # Usage in Tests
//
//	// Default behavior: one parse per paragraph built from its words
//	p := mock.NewMockParser()
//
//	// Canned results for known paragraphs
//	p := mock.NewMockParser().
//	    WithResult("Cats are animals.", &parser.Result{...})
//
//	// Custom behavior injection
//	p.ParseFunc = func(ctx context.Context, text string) (*parser.Result, error) {
//	    return nil, errors.New("boom")
//	}
//
// # Default Behavior
//
// A paragraph's words are lowercased and stripped of punctuation.
// Three or more words give (w2/Pd.so w1/Cc.s w3/Cc.s), two words give
// (w2/Pd.s w1/Cc.s), one word gives the atom w1/Cc.s and no words give
// an empty result.
package mock
