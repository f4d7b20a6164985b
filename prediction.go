package rxn4chemistry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Prediction statuses reported by the platform.
const (
	StatusNew        = "NEW"
	StatusProcessing = "PROCESSING"
	StatusSuccess    = "SUCCESS"
	StatusError      = "ERROR"
)

// PredictionSubmission identifies a submitted prediction.
type PredictionSubmission struct {
	PredictionID string
	Raw          json.RawMessage
}

// PredictReactionOptions tunes PredictReaction.
type PredictReactionOptions struct {
	// PredictionID attaches the run to an existing prediction instead of
	// starting an independent one.
	PredictionID string
}

// PredictReaction launches a forward reaction prediction for the given
// precursors (a reaction SMILES). The client's project id must be set.
func (c *Client) PredictReaction(ctx context.Context, precursors string, opts *PredictReactionOptions) (*PredictionSubmission, error) {
	projectID, err := c.requireProject()
	if err != nil {
		return nil, err
	}

	query := url.Values{"projectId": {projectID}}
	if opts != nil && opts.PredictionID != "" {
		query.Set("predictionId", opts.PredictionID)
	}
	body := map[string]string{"reactants": precursors}

	payload, err := c.do(ctx, http.MethodPost, c.routes().predictReaction(), query, body, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return predictionSubmissionFromPayload(payload)
}

// PredictReactionResults fetches the results of a reaction prediction.
func (c *Client) PredictReactionResults(ctx context.Context, predictionID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.routes().predictionResults(predictionID), nil, nil, http.StatusOK)
}

// TaskSubmission identifies a submitted asynchronous task.
type TaskSubmission struct {
	TaskID string
	Status string
}

// PredictReactionBatch launches a forward prediction for a batch of
// precursors in a single task.
func (c *Client) PredictReactionBatch(ctx context.Context, precursors []string) (*TaskSubmission, error) {
	body := map[string]any{"reactants": precursors}
	payload, err := c.do(ctx, http.MethodPost, c.routes().predictReactionBatch(), nil, body, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var task struct {
		TaskID     string `json:"task_id"`
		TaskStatus string `json:"task_status"`
	}
	if err := json.Unmarshal(payload, &task); err != nil {
		return nil, fmt.Errorf("decode task payload: %w", err)
	}
	if task.TaskID == "" {
		return nil, fmt.Errorf("task payload carries no task id")
	}
	return &TaskSubmission{TaskID: task.TaskID, Status: task.TaskStatus}, nil
}

// BatchPredictionResults is the state of a batch prediction task. Result is
// set only once the task is DONE.
type BatchPredictionResults struct {
	TaskID  string
	Status  string
	Message string
	Result  json.RawMessage
}

// Done reports whether the batch task has finished.
func (r *BatchPredictionResults) Done() bool {
	return r.Status == "DONE"
}

// PredictReactionBatchResults fetches the state of a batch prediction task.
// A WAITING task is not an error; it simply has no result yet.
func (c *Client) PredictReactionBatchResults(ctx context.Context, taskID string) (*BatchPredictionResults, error) {
	payload, err := c.do(ctx, http.MethodGet, c.routes().predictionBatchResults(taskID), nil, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var batch struct {
		Task struct {
			TaskID string `json:"task_id"`
			Status string `json:"status"`
		} `json:"task"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(payload, &batch); err != nil {
		return nil, fmt.Errorf("decode batch payload: %w", err)
	}

	results := &BatchPredictionResults{TaskID: batch.Task.TaskID, Status: batch.Task.Status}
	switch batch.Task.Status {
	case "DONE":
		results.Result = batch.Result
	case "WAITING":
		results.Message = "task waiting: either submitted and not running yet, or unknown to the queue"
	}
	return results, nil
}

// payloadStatus extracts the status field of a results payload.
func payloadStatus(payload json.RawMessage) string {
	var probe struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(payload, &probe)
	return probe.Status
}

// WaitForPrediction polls a reaction prediction until it leaves the
// NEW/PROCESSING states, waiting interval between polls. The context bounds
// the total wait.
func (c *Client) WaitForPrediction(ctx context.Context, predictionID string, interval time.Duration) (json.RawMessage, error) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		payload, err := c.PredictReactionResults(ctx, predictionID)
		if err != nil {
			return nil, err
		}
		switch payloadStatus(payload) {
		case StatusNew, StatusProcessing:
		default:
			return payload, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func predictionSubmissionFromPayload(payload json.RawMessage) (*PredictionSubmission, error) {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("decode prediction payload: %w", err)
	}
	if probe.ID == "" {
		return nil, fmt.Errorf("prediction payload carries no id")
	}
	return &PredictionSubmission{PredictionID: probe.ID, Raw: payload}, nil
}
