package apiclient

import (
	"context"
	"net/url"
)

// ClientInput is the payload for creating or updating a client record.
type ClientInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

func (c *Client) ListClients(ctx context.Context, search string) ([]ClientRecord, error) {
	path := "/api/clients"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var out []ClientRecord
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetClient(ctx context.Context, id string) (*ClientRecord, error) {
	var out ClientRecord
	if err := c.get(ctx, "/api/clients/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateClient(ctx context.Context, in ClientInput) (*ClientRecord, error) {
	var out ClientRecord
	if err := c.post(ctx, "/api/clients", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateClient(ctx context.Context, id string, in ClientInput) (*ClientRecord, error) {
	var out ClientRecord
	if err := c.put(ctx, "/api/clients/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteClient(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/clients/"+url.PathEscape(id))
}
