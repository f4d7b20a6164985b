package rxn4chemistry

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func classifierClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewWithConfig(Config{APIKey: "k", Logger: zap.NewNop()})
	require.NoError(t, err)
	return client
}

func fakeResponse(status int) *http.Response {
	u, _ := url.Parse("https://rxn.res.ibm.com/rxn/api/api/v1/projects")
	return &http.Response{
		StatusCode: status,
		Request:    &http.Request{URL: u},
	}
}

func TestClassify_Success(t *testing.T) {
	client := classifierClient(t)

	payload, err := client.classify(fakeResponse(200), []byte(`{"payload": {"id": "abc"}}`), 200)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "abc"}`, string(payload))
}

func TestClassify_SuccessWithNonDefaultStatus(t *testing.T) {
	client := classifierClient(t)

	_, err := client.classify(fakeResponse(201), []byte(`{"payload": {"id": "abc"}}`), 201)
	assert.NoError(t, err)
}

func TestClassify_WrongStatusCode(t *testing.T) {
	client := classifierClient(t)

	_, err := client.classify(fakeResponse(500), []byte(`{"payload": {"id": "abc"}}`), 200)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Body)
}

func TestClassify_ErrorMarkers(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "task_status at payload top level",
			body: `{"payload": {"task_status": "ERROR", "title": "boom", "detail": "model crashed"}}`,
		},
		{
			name: "status nested under task",
			body: `{"payload": {"task": {"status": "ERROR"}, "title": "boom", "detail": "model crashed"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := classifierClient(t)

			// Status code alone says success; the payload says otherwise.
			_, err := client.classify(fakeResponse(200), []byte(tt.body), 200)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "boom", apiErr.Title)
			assert.Equal(t, "model crashed", apiErr.Detail)
		})
	}
}

func TestClassify_NonErrorTaskStatusPasses(t *testing.T) {
	client := classifierClient(t)

	_, err := client.classify(fakeResponse(200),
		[]byte(`{"payload": {"task": {"status": "DONE"}}}`), 200)
	assert.NoError(t, err)
}

func TestClassify_MissingPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no payload key", body: `{"other": 1}`},
		{name: "null payload", body: `{"payload": null}`},
		{name: "not json", body: `<html>503 Service Unavailable</html>`},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := classifierClient(t)

			_, err := client.classify(fakeResponse(200), []byte(tt.body), 200)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, []byte(tt.body), apiErr.Body)
		})
	}
}

func TestClassify_Unauthorized(t *testing.T) {
	client := classifierClient(t)

	_, err := client.classify(fakeResponse(401), []byte(`{}`), 200)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClassify_UnauthorizedAfterRedirect(t *testing.T) {
	client := classifierClient(t)

	// Simulate the end of a redirect chain: the final request carries a
	// pointer to the response that redirected it.
	redirected, _ := url.Parse("https://new-host.example.com/rxn/api/api/v1/projects")
	resp := &http.Response{
		StatusCode: 401,
		Request: &http.Request{
			URL:      redirected,
			Response: &http.Response{StatusCode: http.StatusMovedPermanently},
		},
	}

	_, err := client.classify(resp, []byte(`{}`), 200)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, redirected.String(), apiErr.RedirectedTo)
	assert.Contains(t, apiErr.Error(), "update the client base url")
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestAPIError_Messages(t *testing.T) {
	assert.Contains(t, (&APIError{StatusCode: 500}).Error(), "500")
	assert.Contains(t, (&APIError{StatusCode: 400, Title: "bad"}).Error(), "bad")

	withDetail := &APIError{StatusCode: 400, Title: "bad", Detail: "very bad"}
	assert.Contains(t, withDetail.Error(), "very bad")
}
