package bigm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableLabels(t *testing.T) {
	for v, label := range map[Variable]string{
		{Decision, 1}:    "x1",
		{Slack, 2}:       "S2",
		{Surplus, 1}:     "E1",
		{Artificial, 12}: "A12",
	} {
		assert.Equal(t, label, v.String())

		parsed, err := ParseVariable(label)
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}
}

func TestParseVariableMalformed(t *testing.T) {
	for _, label := range []string{"", "y1", "S", "S0", "Sx", "A-1", "Z", "RHS"} {
		_, err := ParseVariable(label)
		assert.Error(t, err, label)
	}
}

func TestVariableJSON(t *testing.T) {
	out, err := json.Marshal([]Variable{{Decision, 1}, {Artificial, 3}})
	require.NoError(t, err)
	assert.JSONEq(t, `["x1","A3"]`, string(out))

	var back []Variable
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, []Variable{{Decision, 1}, {Artificial, 3}}, back)
}
