package rxn4chemistry

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParagraphToActions(t *testing.T) {
	sequence := `<ol><li>MAKESOLUTION with 7-(difluoromethylsulfonyl)-4-fluoro-indan-1-one (110 mg, 0.42 mmol) and methanol (4 mL); ADD SLN</li><li>ADD sodium borohydride (24 mg, 0.62 mmol)</li><li>STIR for 1 hour at ambient temperature.</li></ol>`

	var gotBody map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rxn/api/api/v1/paragraph-actions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		response := map[string]any{"payload": map[string]string{"actionSequence": sequence}}
		json.NewEncoder(w).Encode(response)
	}))

	paragraph := "To a stirred solution of the ketone in methanol was added sodium borohydride."
	result, err := client.ParagraphToActions(context.Background(), paragraph)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"paragraph": paragraph}, gotBody)
	assert.Equal(t, []string{
		"MAKESOLUTION with 7-(difluoromethylsulfonyl)-4-fluoro-indan-1-one (110 mg, 0.42 mmol) and methanol (4 mL)",
		"ADD SLN",
		"ADD sodium borohydride (24 mg, 0.62 mmol)",
		"STIR for 1 hour at ambient temperature",
	}, result.Actions)
}

func TestActionsFromHTML(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     []string
	}{
		{
			name:     "single item",
			fragment: "<ul><li>ADD water</li></ul>",
			want:     []string{"ADD water"},
		},
		{
			name:     "semicolon splits compound items",
			fragment: "<ol><li>STIR; FILTER</li></ol>",
			want:     []string{"STIR", "FILTER"},
		},
		{
			name:     "trailing dot padding trimmed",
			fragment: "<li>DRY over sodium sulfate. </li>",
			want:     []string{"DRY over sodium sulfate"},
		},
		{
			name:     "nested markup inside items",
			fragment: "<li>ADD <b>NaBH4</b> slowly</li>",
			want:     []string{"ADD NaBH4 slowly"},
		},
		{
			name:     "empty fragment",
			fragment: "",
			want:     nil,
		},
		{
			name:     "empty items dropped",
			fragment: "<li> . </li><li>WASH</li>",
			want:     []string{"WASH"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := actionsFromHTML(tt.fragment)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
