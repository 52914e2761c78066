package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/cognit/core"
)

func TestStructuralClassifier_Parent(t *testing.T) {
	tests := []struct {
		name    string
		edge    string
		parent  string
		outcome Outcome
	}{
		{"builder with one main concept", "(+/B.am tennis/Cc.s player/Cc.s)", "player/Cc.s", Found},
		{"builder with two main concepts", "(+/B.mm salt/Cc.s pepper/Cc.s)", "", Ambiguous},
		{"builder without main concept", "(+/B.aa salt/Cc.s pepper/Cc.s)", "", Ambiguous},
		{"builder without argroles", "(of/Br capital/Cc.s france/Cp.s)", "", Ambiguous},
		{"modifier with one argument", "(red/Ma car/Cc.s)", "car/Cc.s", Found},
		{"modifier with nested argument", "(big/Ma (+/B.am race/Cc.s car/Cc.s))", "(+/B.am race/Cc.s car/Cc.s)", Found},
		{"modifier with two arguments", "(red/Ma car/Cc.s bike/Cc.s)", "", Skipped},
		{"relation", "(is/Pd.so cat/Cc.s animal/Cc.p)", "", Skipped},
		{"modified relation", "(not/Ma (is/Pd.so cat/Cc.s dog/Cc.s))", "", Skipped},
		{"atom", "cat/Cc.s", "", Skipped},
		{"unclassifiable connector", "(x/Z a/Cc.s)", "", Skipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent, outcome := StructuralClassifier{}.Parent(core.MustParseEdge(tt.edge))
			assert.Equal(t, tt.outcome, outcome)
			if tt.parent == "" {
				assert.True(t, parent.IsZero())
			} else {
				assert.Equal(t, tt.parent, parent.String())
			}
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "skipped", Skipped.String())
	assert.Equal(t, "ambiguous", Ambiguous.String())
	assert.Equal(t, "found", Found.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
