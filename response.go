package rxn4chemistry

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// envelope is the outer shape shared by all JSON responses of the platform.
type envelope struct {
	Payload json.RawMessage `json:"payload"`
}

// statusProbe looks for the error markers the platform hides at two
// different places of the payload depending on the endpoint.
type statusProbe struct {
	TaskStatus string `json:"task_status"`
	Task       struct {
		Status string `json:"status"`
	} `json:"task"`
}

// errorProbe extracts the human-readable error description when present.
type errorProbe struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// classify decides success vs. error for one API response. On success it
// returns the payload; every other case yields an *APIError carrying the raw
// body. Success requires all of: the expected status code, a parseable JSON
// body, a present payload, and no ERROR marker inside the payload.
func (c *Client) classify(resp *http.Response, body []byte, wantStatus int) (json.RawMessage, error) {
	var env envelope
	parseErr := json.Unmarshal(body, &env)
	hasPayload := parseErr == nil && len(env.Payload) > 0 && string(env.Payload) != "null"

	payloadHasError := false
	var probe statusProbe
	if hasPayload && json.Unmarshal(env.Payload, &probe) == nil {
		payloadHasError = probe.TaskStatus == "ERROR" || probe.Task.Status == "ERROR"
	}

	if resp.StatusCode == wantStatus && hasPayload && !payloadHasError {
		return env.Payload, nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Body: body}

	switch {
	case resp.StatusCode == http.StatusUnauthorized && wasRedirected(resp):
		// The http client strips the authorization header when following a
		// redirect to a different host, so the platform sees no api key.
		apiErr.RedirectedTo = resp.Request.URL.String()
		c.logger.Error("api key dropped due to a redirect, set the base url to the redirected host",
			zap.String("redirected_url", apiErr.RedirectedTo))
	case !hasPayload:
		c.logger.Error("response carries no payload, the service might be overloaded",
			zap.Int("status_code", resp.StatusCode))
	case payloadHasError:
		var ep errorProbe
		_ = json.Unmarshal(env.Payload, &ep)
		apiErr.Title = ep.Title
		apiErr.Detail = ep.Detail
		c.logger.Error("execution error reported by the platform",
			zap.String("title", ep.Title), zap.String("detail", ep.Detail))
	case resp.StatusCode == http.StatusUnauthorized:
		c.logger.Error("authorization failed, check the api key")
	default:
		c.logger.Error("unexpected api response", zap.Int("status_code", resp.StatusCode))
	}
	c.logger.Debug("full api response", zap.ByteString("body", body))

	return nil, apiErr
}

// wasRedirected reports whether resp is the end of a redirect chain.
func wasRedirected(resp *http.Response) bool {
	return resp.Request != nil && resp.Request.Response != nil
}
