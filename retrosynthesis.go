package rxn4chemistry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/rxn4chemistry/rxn4chemistry-go/tree"
)

// RetrosynthesisOptions are the search parameters of an automatic
// retrosynthesis prediction. The zero value selects the platform defaults.
type RetrosynthesisOptions struct {
	// AvailabilityPricingThreshold is the maximum price in USD per mg/ml
	// for a commercially available compound to count as a precursor.
	// Zero means no threshold.
	AvailabilityPricingThreshold int

	// AvailableSMILES lists molecules available as precursors, "."-separated.
	AvailableSMILES string

	// ExcludeSMILES lists molecules excluded from the precursors,
	// "."-separated.
	ExcludeSMILES string

	// ExcludeSubstructures lists substructures excluded from the
	// precursors, "."-separated.
	ExcludeSubstructures string

	// IncludeTargetMolecule allows the product itself among the precursors.
	IncludeTargetMolecule bool

	// FAP is the forward acceptance probability; a retrosynthetic step is
	// retained when the forward model confidence exceeds it.
	FAP float64

	// MaxSteps bounds the number of retrosynthetic steps.
	MaxSteps int

	// NBeams is the maximum number of beams exploring the hyper-tree.
	NBeams int

	// PruningSteps is the interval, in steps, at which the explored
	// hyper-tree is pruned.
	PruningSteps int
}

func defaultRetrosynthesisOptions() *RetrosynthesisOptions {
	return &RetrosynthesisOptions{
		FAP:          0.6,
		MaxSteps:     3,
		NBeams:       10,
		PruningSteps: 2,
	}
}

// PredictAutomaticRetrosynthesis launches an automatic retrosynthesis
// prediction for a product SMILES. The client's project id must be set.
func (c *Client) PredictAutomaticRetrosynthesis(ctx context.Context, product string, opts *RetrosynthesisOptions) (*PredictionSubmission, error) {
	projectID, err := c.requireProject()
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = defaultRetrosynthesisOptions()
	}

	parameters := map[string]any{
		"availability_pricing_threshold": opts.AvailabilityPricingThreshold,
		"available_smiles":               nullableString(opts.AvailableSMILES),
		"exclude_smiles":                 nullableString(opts.ExcludeSMILES),
		"exclude_substructures":          nullableString(opts.ExcludeSubstructures),
		"exclude_target_molecule":        !opts.IncludeTargetMolecule,
		"fap":                            opts.FAP,
		"max_steps":                      opts.MaxSteps,
		"nbeams":                         opts.NBeams,
		"pruning_steps":                  opts.PruningSteps,
	}
	body := map[string]any{
		"isinteractive": false,
		"parameters":    parameters,
		"product":       product,
	}
	query := url.Values{"projectId": {projectID}}

	payload, err := c.do(ctx, http.MethodPost, c.routes().retrosynthesis(), query, body, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return predictionSubmissionFromPayload(payload)
}

// RetrosynthesisResults holds the post-processed outcome of an automatic
// retrosynthesis prediction.
type RetrosynthesisResults struct {
	Status string

	// Paths are the retrosynthetic path trees, one per sequence, with leaf
	// availability annotated from the platform metadata.
	Paths []*tree.Node

	Raw json.RawMessage
}

// AutomaticRetrosynthesisResults fetches and post-processes the results of
// an automatic retrosynthesis prediction.
func (c *Client) AutomaticRetrosynthesisResults(ctx context.Context, predictionID string) (*RetrosynthesisResults, error) {
	payload, err := c.do(ctx, http.MethodGet, c.routes().retrosynthesisResults(predictionID), nil, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var outcome struct {
		Status    string `json:"status"`
		Sequences []struct {
			SequenceID string     `json:"sequenceId"`
			Tree       *tree.Node `json:"tree"`
		} `json:"sequences"`
	}
	if err := json.Unmarshal(payload, &outcome); err != nil {
		return nil, fmt.Errorf("decode retrosynthesis payload: %w", err)
	}

	results := &RetrosynthesisResults{Status: outcome.Status, Raw: payload}
	for _, seq := range outcome.Sequences {
		if seq.Tree == nil {
			continue
		}
		if seq.Tree.SequenceID == "" {
			seq.Tree.SequenceID = seq.SequenceID
		}
		tree.AnnotateAvailability(seq.Tree)
		for _, leaf := range tree.PostOrder(seq.Tree) {
			if leaf.IsLeaf() && leaf.IsCommercial == nil {
				c.logger.Warn("no commercial availability information for leaf",
					zap.String("node_id", leaf.ID), zap.String("smiles", leaf.SMILES))
			}
		}
		results.Paths = append(results.Paths, seq.Tree)
	}
	return results, nil
}

// WaitForRetrosynthesis polls an automatic retrosynthesis prediction until
// it leaves the NEW/PROCESSING states.
func (c *Client) WaitForRetrosynthesis(ctx context.Context, predictionID string, interval time.Duration) (*RetrosynthesisResults, error) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		results, err := c.AutomaticRetrosynthesisResults(ctx, predictionID)
		if err != nil {
			return nil, err
		}
		switch results.Status {
		case StatusNew, StatusProcessing:
		default:
			return results, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// RetrosynthesisSequencePDF downloads the PDF report of one retrosynthesis
// sequence.
func (c *Client) RetrosynthesisSequencePDF(ctx context.Context, predictionID, sequenceID string) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, c.routes().retrosynthesisSequencePDF(predictionID, sequenceID), http.StatusOK)
}

// nullableString maps "" to JSON null, the way the platform expects unset
// SMILES parameters.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
