package signals

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kgBody(score float64) []byte {
	return []byte(fmt.Sprintf(`{
		"itemListElement": [
			{
				"resultScore": %g,
				"result": {
					"name": "Acme Corp",
					"@type": ["Organization", "Thing"],
					"description": "Software company"
				}
			}
		]
	}`, score))
}

func TestParseKnowledgeGraphAboveThreshold(t *testing.T) {
	result := ParseKnowledgeGraph(kgBody(kgMinResultScore))

	require.NotNil(t, result)
	assert.True(t, result.Found)
	assert.Equal(t, "Acme Corp", result.Name)
	assert.Equal(t, "Organization", result.Type)
	assert.Equal(t, "Software company", result.Description)
}

func TestParseKnowledgeGraphBelowThreshold(t *testing.T) {
	result := ParseKnowledgeGraph(kgBody(kgMinResultScore - 1))

	require.NotNil(t, result)
	assert.False(t, result.Found)
	assert.Empty(t, result.Name)
}

func TestParseKnowledgeGraphNoResults(t *testing.T) {
	result := ParseKnowledgeGraph([]byte(`{"itemListElement": []}`))

	require.NotNil(t, result)
	assert.False(t, result.Found)
}

func TestParseKnowledgeGraphMalformed(t *testing.T) {
	assert.Nil(t, ParseKnowledgeGraph([]byte(`{"itemListElement": [`)))
}
