package rxn4chemistry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/rxn4chemistry/rxn4chemistry-go/tree"
)

// SynthesisSubmission identifies a created synthesis.
type SynthesisSubmission struct {
	SynthesisID string
	Raw         json.RawMessage
}

// CreateSynthesisFromSequence creates a new synthesis from a sequence id
// taken from the results of an automatic retrosynthesis prediction.
func (c *Client) CreateSynthesisFromSequence(ctx context.Context, sequenceID string) (*SynthesisSubmission, error) {
	if _, err := c.requireProject(); err != nil {
		return nil, err
	}

	body := map[string]string{"sequenceId": sequenceID}
	payload, err := c.do(ctx, http.MethodPost, c.routes().synthesisCreate(), nil, body, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("decode synthesis payload: %w", err)
	}
	if probe.ID == "" {
		return nil, fmt.Errorf("synthesis payload carries no id")
	}
	return &SynthesisSubmission{SynthesisID: probe.ID, Raw: stripUser(payload)}, nil
}

// SynthesisStatus is the state of a synthesis on the robot or simulator.
type SynthesisStatus struct {
	Status string
	Raw    json.RawMessage
}

// GetSynthesisStatus fetches the status of a synthesis.
func (c *Client) GetSynthesisStatus(ctx context.Context, synthesisID string) (*SynthesisStatus, error) {
	payload, err := c.do(ctx, http.MethodGet, c.routes().synthesisStatus(synthesisID), nil, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return synthesisStatusFromPayload(payload)
}

// StartSynthesis starts a synthesis on the robot or the simulator. A robot
// (or simulator) key must be active on the user account.
func (c *Client) StartSynthesis(ctx context.Context, synthesisID string) (*SynthesisStatus, error) {
	payload, err := c.do(ctx, http.MethodPost, c.routes().synthesisStart(synthesisID), nil, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return synthesisStatusFromPayload(payload)
}

// SynthesisPlan is the tree of a synthesis together with its post-order node
// ordering and the flattened action list covering every step.
type SynthesisPlan struct {
	Tree    *tree.Node
	Nodes   []*tree.Node
	Actions []tree.Action
}

// GetSynthesisPlan fetches the synthesis tree for a synthesis id and
// flattens it into the ordered list of actions to carry out.
func (c *Client) GetSynthesisPlan(ctx context.Context, synthesisID string) (*SynthesisPlan, error) {
	status, err := c.GetSynthesisStatus(ctx, synthesisID)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Sequences []struct {
			Tree *tree.Node `json:"tree"`
		} `json:"sequences"`
	}
	if err := json.Unmarshal(status.Raw, &payload); err != nil {
		return nil, fmt.Errorf("decode synthesis sequences: %w", err)
	}
	if len(payload.Sequences) == 0 || payload.Sequences[0].Tree == nil {
		return nil, fmt.Errorf("synthesis %s carries no sequence tree", synthesisID)
	}

	root := payload.Sequences[0].Tree
	return &SynthesisPlan{
		Tree:    root,
		Nodes:   tree.PostOrder(root),
		Actions: tree.FlattenActions(root),
	}, nil
}

// SpectrometerReportRef locates one spectrometer report inside a synthesis.
type SpectrometerReportRef struct {
	SynthesisID string
	NodeID      string
	ActionIndex int
}

// ActionsWithSpectrometerPDF walks the synthesis plan and returns a
// reference for every action that has a spectrometer PDF ready for download.
func (c *Client) ActionsWithSpectrometerPDF(ctx context.Context, synthesisID string) ([]SpectrometerReportRef, error) {
	plan, err := c.GetSynthesisPlan(ctx, synthesisID)
	if err != nil {
		return nil, err
	}

	var refs []SpectrometerReportRef
	for _, node := range plan.Nodes {
		for i, action := range node.Actions {
			if action.HasSpectrometerPDF {
				refs = append(refs, SpectrometerReportRef{
					SynthesisID: synthesisID,
					NodeID:      node.ID,
					ActionIndex: i,
				})
			}
		}
	}
	return refs, nil
}

// SynthesisAnalysisReportPDF downloads the spectrometer PDF report for one
// action of a synthesis node.
func (c *Client) SynthesisAnalysisReportPDF(ctx context.Context, synthesisID, nodeID string, actionIndex int) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet,
		c.routes().spectrometerReport(synthesisID, nodeID, actionIndex), http.StatusOK)
}

// SpectrometerReport is one downloaded spectrometer report.
type SpectrometerReport struct {
	Ref     SpectrometerReportRef
	Content []byte
}

// downloadConcurrency bounds parallel report downloads so a big synthesis
// does not burn the rate budget in one burst.
const downloadConcurrency = 4

// DownloadSpectrometerReports fetches every available spectrometer report of
// a synthesis concurrently. Reports come back ordered by plan position.
func (c *Client) DownloadSpectrometerReports(ctx context.Context, synthesisID string) ([]SpectrometerReport, error) {
	refs, err := c.ActionsWithSpectrometerPDF(ctx, synthesisID)
	if err != nil {
		return nil, err
	}

	reports := make([]SpectrometerReport, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(downloadConcurrency)

	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			content, err := c.SynthesisAnalysisReportPDF(gctx, ref.SynthesisID, ref.NodeID, ref.ActionIndex)
			if err != nil {
				return fmt.Errorf("report %s/%d: %w", ref.NodeID, ref.ActionIndex, err)
			}
			reports[i] = SpectrometerReport{Ref: ref, Content: content}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func synthesisStatusFromPayload(payload json.RawMessage) (*SynthesisStatus, error) {
	var probe struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("decode synthesis status: %w", err)
	}
	return &SynthesisStatus{Status: probe.Status, Raw: stripUser(payload)}, nil
}

// stripUser removes the user object the platform embeds in synthesis
// payloads before handing the payload to callers.
func stripUser(payload json.RawMessage) json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return payload
	}
	if _, ok := fields["user"]; !ok {
		return payload
	}
	delete(fields, "user")
	stripped, err := json.Marshal(fields)
	if err != nil {
		return payload
	}
	return stripped
}
