package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type document struct {
	Paths map[string]map[string]struct {
		Parameters []struct {
			Name string `json:"name"`
			In   string `json:"in"`
		} `json:"parameters"`
		Responses map[string]any `json:"responses"`
	} `json:"paths"`
	Definitions map[string]struct {
		Properties map[string]map[string]any `json:"properties"`
	} `json:"definitions"`
}

func readDocument(t *testing.T) document {
	t.Helper()
	var doc document
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))
	return doc
}

func TestDocResponses(t *testing.T) {
	doc := readDocument(t)

	links := doc.Paths["/api/integrity/links"]["get"]
	assert.Contains(t, links.Responses, "409")
	assert.Contains(t, links.Responses, "403")

	all := doc.Paths["/api/integrity"]["get"]
	assert.NotContains(t, all.Responses, "500")
}

func TestDocBodyParameters(t *testing.T) {
	doc := readDocument(t)

	for path, ops := range doc.Paths {
		for method, op := range ops {
			for _, p := range op.Parameters {
				if p.In == "body" {
					assert.Contains(t, []string{"movie", "artist", "links"}, p.Name, "%s %s", method, path)
				}
			}
		}
	}
}

func TestDocPriceBounds(t *testing.T) {
	doc := readDocument(t)

	price := doc.Definitions["models.MovieDto"].Properties["price"]
	require.NotNil(t, price)
	assert.Equal(t, 0.0, price["minimum"])
	assert.Equal(t, 999.99, price["maximum"])
}
