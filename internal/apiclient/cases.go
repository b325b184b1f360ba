package apiclient

import (
	"context"
	"net/url"
)

// CaseInput is the payload for creating or updating a case.
type CaseInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	ClientID    string `json:"client_id"`
}

func (c *Client) ListCases(ctx context.Context, status string) ([]Case, error) {
	path := "/api/cases"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out []Case
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCase(ctx context.Context, id string) (*Case, error) {
	var out Case
	if err := c.get(ctx, "/api/cases/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCase(ctx context.Context, in CaseInput) (*Case, error) {
	var out Case
	if err := c.post(ctx, "/api/cases", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCase(ctx context.Context, id string, in CaseInput) (*Case, error) {
	var out Case
	if err := c.put(ctx, "/api/cases/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCase(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/cases/"+url.PathEscape(id))
}

func (c *Client) ListCaseUpdates(ctx context.Context, caseID string) ([]CaseUpdate, error) {
	var out []CaseUpdate
	if err := c.get(ctx, "/api/cases/"+url.PathEscape(caseID)+"/updates", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddCaseUpdate(ctx context.Context, caseID, note string) (*CaseUpdate, error) {
	var out CaseUpdate
	body := map[string]string{"note": note}
	if err := c.post(ctx, "/api/cases/"+url.PathEscape(caseID)+"/updates", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
