package rxn4chemistry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rxn4chemistry/rxn4chemistry-go/ratelimit"
)

// newTestClient spins up a fake platform server and returns a client pointed
// at it. The Noop governor keeps tests free of rate-limit interference.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewWithConfig(Config{
		APIKey:   "test-api-key",
		BaseURL:  server.URL,
		Governor: ratelimit.Noop{},
	})
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	return client, server
}

// jsonHandler replies with a fixed status code and body for every request.
func jsonHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// countingGovernor records Acquire calls and can be armed to fail.
type countingGovernor struct {
	calls int
	err   error
}

func (g *countingGovernor) Acquire(ctx context.Context) error {
	g.calls++
	if g.err != nil {
		return g.err
	}
	return ctx.Err()
}
