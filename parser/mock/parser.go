package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/cognit/core"
	"github.com/poiesic/cognit/parser"
)

// MockParser is a test double for parser.Parser.
type MockParser struct {
	// ParseFunc is called by Parse if set.
	// If nil, canned results are used, then the default word-based parse.
	ParseFunc func(ctx context.Context, text string) (*parser.Result, error)

	mu        sync.Mutex
	results   map[string]*parser.Result
	calls     []string
	callCount int
}

var _ parser.Parser = (*MockParser)(nil)

// NewMockParser creates a mock parser with default behavior.
func NewMockParser() *MockParser {
	return &MockParser{results: make(map[string]*parser.Result)}
}

// WithResult returns result whenever text is parsed.
func (m *MockParser) WithResult(text string, result *parser.Result) *MockParser {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[text] = result
	return m
}

// Parse returns the configured result for text.
func (m *MockParser) Parse(ctx context.Context, text string) (*parser.Result, error) {
	m.mu.Lock()
	m.callCount++
	m.calls = append(m.calls, text)
	fn := m.ParseFunc
	result, ok := m.results[text]
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, text)
	}
	if ok {
		return result, nil
	}
	return defaultParse(text), nil
}

// CallCount returns the number of times Parse was called.
func (m *MockParser) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Calls returns the paragraphs passed to Parse, in call order.
func (m *MockParser) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Reset clears recorded calls, canned results and custom functions.
func (m *MockParser) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.calls = nil
	m.results = make(map[string]*parser.Result)
	m.ParseFunc = nil
}

func defaultParse(text string) *parser.Result {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?;:\"'()[]{}")
		w = strings.NewReplacer("(", "", ")", "").Replace(w)
		if w != "" {
			words = append(words, w)
		}
	}

	var edge core.Edge
	switch {
	case len(words) == 0:
		return &parser.Result{}
	case len(words) == 1:
		edge = concept(words[0])
	case len(words) == 2:
		edge = core.NewEdge(core.Atom(words[1]+"/Pd.s"), concept(words[0]))
	default:
		edge = core.NewEdge(core.Atom(words[1]+"/Pd.so"), concept(words[0]), concept(words[2]))
	}

	return &parser.Result{
		Parses: []parser.Parse{{Resolved: edge, Text: text}},
	}
}

func concept(word string) core.Edge {
	return core.Atom(word + "/Cc.s")
}
