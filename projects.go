package rxn4chemistry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Project is the normalized view of a project payload.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Raw is the full project payload as returned by the platform.
	Raw json.RawMessage `json:"-"`
}

// CreateProjectOptions tunes CreateProject.
type CreateProjectOptions struct {
	// Invitations to send for the new project.
	Invitations []string

	// KeepCurrentProject leaves the client's project id untouched; by
	// default the freshly created project becomes the active one.
	KeepCurrentProject bool
}

// CreateProject creates a new project on the platform. Unless opted out, the
// new project id is adopted as the client's active project, which is required
// before predicting reactions.
func (c *Client) CreateProject(ctx context.Context, name string, opts *CreateProjectOptions) (*Project, error) {
	if opts == nil {
		opts = &CreateProjectOptions{}
	}
	invitations := opts.Invitations
	if invitations == nil {
		invitations = []string{}
	}

	body := map[string]any{"name": name, "invitations": invitations}
	payload, err := c.do(ctx, http.MethodPost, c.routes().projects(), nil, body, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	var project Project
	if err := json.Unmarshal(payload, &project); err != nil {
		return nil, fmt.Errorf("decode project payload: %w", err)
	}
	project.Raw = payload

	if !opts.KeepCurrentProject && project.ID != "" {
		c.SetProject(project.ID)
	}
	return &project, nil
}

// ListProjects returns the projects visible to the API key.
func (c *Client) ListProjects(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.routes().projects(), nil, nil, http.StatusOK)
}

// ListAttemptsOptions pages and sorts attempt listings.
type ListAttemptsOptions struct {
	// ProjectID overrides the client's active project.
	ProjectID string

	Page int
	Size int

	// DescendingCreationOrder flips the default ascending createdOn sort.
	DescendingCreationOrder bool
}

// ListAttempts returns one page of the attempts recorded in a project.
func (c *Client) ListAttempts(ctx context.Context, opts *ListAttemptsOptions) (json.RawMessage, error) {
	if opts == nil {
		opts = &ListAttemptsOptions{}
	}
	projectID := opts.ProjectID
	if projectID == "" {
		var err error
		if projectID, err = c.requireProject(); err != nil {
			return nil, err
		}
	}
	size := opts.Size
	if size <= 0 {
		size = 8
	}
	order := "ASC"
	if opts.DescendingCreationOrder {
		order = "DESC"
	}

	query := url.Values{
		"page": {strconv.Itoa(opts.Page)},
		"size": {strconv.Itoa(size)},
		"sort": {"createdOn|" + order},
	}
	return c.do(ctx, http.MethodGet, c.routes().attempts(projectID), query, nil, http.StatusOK)
}
