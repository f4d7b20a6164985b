package rxn4chemistry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Model names used by the client, mapped from the upstream model types.
const (
	ModelParagraphToActions = "paragraph-to-actions"
	ModelSequenceToActions  = "sequence-to-actions"
	ModelReactionPrediction = "reaction-prediction-model"
	ModelRetrosynthesis     = "retrosynthesis-prediction-model"
)

// modelNames maps the upstream model type identifiers to the client-facing
// names; unknown types are dropped.
var modelNames = map[string]string{
	"PARAGRAPH2ACTIONS": ModelParagraphToActions,
	"SMILES2ACTIONS":    ModelSequenceToActions,
	"REACTION":          ModelReactionPrediction,
	"RETROSYNTHESIS":    ModelRetrosynthesis,
}

// Model describes one selectable model variant of a model family.
type Model struct {
	Name string `json:"name"`
}

// ListModels returns the models supported by the platform, grouped by model
// family and reduced to the whitelisted fields.
func (c *Client) ListModels(ctx context.Context) (map[string][]Model, error) {
	payload, err := c.do(ctx, http.MethodGet, c.routes().models(), nil, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var probe struct {
		Models map[string][]Model `json:"models"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("decode models payload: %w", err)
	}

	models := make(map[string][]Model)
	for upstream, list := range probe.Models {
		name, known := modelNames[upstream]
		if !known {
			continue
		}
		models[name] = list
	}
	return models, nil
}
