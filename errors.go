package rxn4chemistry

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProject is returned by endpoints that need a project id when none
	// has been set on the client.
	ErrNoProject = errors.New("rxn4chemistry: project identifier has to be set first")

	// ErrUnauthorized indicates the API rejected the configured API key.
	ErrUnauthorized = errors.New("rxn4chemistry: unauthorized, check your api key")
)

// APIError is returned when the platform answers with an unexpected status
// code or an error payload. Body always carries the raw response.
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
	Body       []byte

	// RedirectedTo is set when the request was redirected before failing,
	// which strips the authorization header. The client base URL should be
	// updated to the redirected host.
	RedirectedTo string
}

func (e *APIError) Error() string {
	switch {
	case e.RedirectedTo != "":
		return fmt.Sprintf("rxn4chemistry: api key dropped on redirect to %s, update the client base url (status %d)",
			e.RedirectedTo, e.StatusCode)
	case e.Title != "" && e.Detail != "":
		return fmt.Sprintf("rxn4chemistry: api error (status %d): %s: %s", e.StatusCode, e.Title, e.Detail)
	case e.Title != "":
		return fmt.Sprintf("rxn4chemistry: api error (status %d): %s", e.StatusCode, e.Title)
	default:
		return fmt.Sprintf("rxn4chemistry: unexpected api response (status %d)", e.StatusCode)
	}
}

// Unwrap lets callers match 401 responses with errors.Is(err, ErrUnauthorized).
func (e *APIError) Unwrap() error {
	if e.StatusCode == 401 {
		return ErrUnauthorized
	}
	return nil
}
