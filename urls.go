package rxn4chemistry

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the production RXN for Chemistry endpoint.
const DefaultBaseURL = "https://rxn.res.ibm.com"

// apiPrefix is the (doubled on purpose, the platform really serves it there)
// path prefix of the v1 REST API.
const apiPrefix = "rxn/api/api/v1"

// endpoints builds the URL for every API route from a base URL.
type endpoints struct {
	api *url.URL
}

func newEndpoints(baseURL string) (*endpoints, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", baseURL)
	}
	return &endpoints{api: base.JoinPath(apiPrefix)}, nil
}

func (e *endpoints) projects() *url.URL {
	return e.api.JoinPath("projects")
}

func (e *endpoints) attempts(projectID string) *url.URL {
	return e.api.JoinPath("projects", projectID, "attempts")
}

func (e *endpoints) predictReaction() *url.URL {
	return e.api.JoinPath("predictions", "pr")
}

func (e *endpoints) predictionResults(predictionID string) *url.URL {
	return e.api.JoinPath("predictions", predictionID)
}

func (e *endpoints) predictReactionBatch() *url.URL {
	return e.api.JoinPath("predictions", "pr-batch")
}

func (e *endpoints) predictionBatchResults(taskID string) *url.URL {
	return e.api.JoinPath("predictions", "batch", taskID)
}

func (e *endpoints) retrosynthesis() *url.URL {
	return e.api.JoinPath("retrosynthesis", "rs")
}

func (e *endpoints) retrosynthesisResults(predictionID string) *url.URL {
	return e.api.JoinPath("retrosynthesis", predictionID)
}

func (e *endpoints) retrosynthesisSequencePDF(predictionID, sequenceID string) *url.URL {
	return e.api.JoinPath("retrosynthesis", predictionID, "sequences", sequenceID, "download-pdf")
}

func (e *endpoints) paragraphActions() *url.URL {
	return e.api.JoinPath("paragraph-actions")
}

func (e *endpoints) synthesisCreate() *url.URL {
	return e.api.JoinPath("synthesis", "create-from-sequence")
}

func (e *endpoints) synthesisStatus(synthesisID string) *url.URL {
	return e.api.JoinPath("synthesis", synthesisID)
}

func (e *endpoints) synthesisStart(synthesisID string) *url.URL {
	return e.api.JoinPath("synthesis", synthesisID, "start")
}

func (e *endpoints) spectrometerReport(synthesisID, nodeID string, actionIndex int) *url.URL {
	return e.api.JoinPath("synthesis", synthesisID, "node", nodeID,
		"action", fmt.Sprintf("%d", actionIndex), "spectrometer-report")
}

func (e *endpoints) models() *url.URL {
	return e.api.JoinPath("models")
}
