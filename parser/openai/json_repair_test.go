package openai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"valid", `{"edge": "a/C"}`, `{"edge": "a/C"}`},
		{"missing quote after brace", `{edge": "a/C"}`, `{"edge": "a/C"}`},
		{"missing quote after comma", `{"text": "x", edge": "a/C"}`, `{"text": "x", "edge": "a/C"}`},
		{"trailing comma in array", `{"extra": ["a/C", "b/C",]}`, `{"extra": ["a/C", "b/C"]}`},
		{"trailing comma in object", "{\"edge\": \"a/C\",\n}", "{\"edge\": \"a/C\"\n}"},
		{"commas inside strings", `{"text": "a, b,]"}`, `{"text": "a, b,]"}`},
		{"escaped quote", `{"text": "say \"hi\", ok"}`, `{"text": "say \"hi\", ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repairJSON(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, json.Valid([]byte(got)), "repaired JSON should be valid: %s", got)
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("```{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences(`  {"a":1} `))
}
