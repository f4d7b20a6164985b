package rxn4chemistry

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListModels(t *testing.T) {
	client, _ := newTestClient(t, jsonHandler(http.StatusOK, `{
		"payload": {
			"models": {
				"REACTION": [{"name": "2020-08-10", "internal": "dropped"}],
				"RETROSYNTHESIS": [{"name": "2019-09-12"}, {"name": "2020-07-01"}],
				"PARAGRAPH2ACTIONS": [{"name": "sota"}],
				"SMILES2ACTIONS": [{"name": "sota"}],
				"SOMETHING_UNKNOWN": [{"name": "ignored"}]
			}
		}
	}`))

	models, err := client.ListModels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string][]Model{
		ModelReactionPrediction: {{Name: "2020-08-10"}},
		ModelRetrosynthesis:     {{Name: "2019-09-12"}, {Name: "2020-07-01"}},
		ModelParagraphToActions: {{Name: "sota"}},
		ModelSequenceToActions:  {{Name: "sota"}},
	}, models, "unknown model families are dropped, extra fields ignored")
}

func TestListModels_EmptyPayload(t *testing.T) {
	client, _ := newTestClient(t, jsonHandler(http.StatusOK, `{"payload": {}}`))

	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	assert.Empty(t, models)
}
