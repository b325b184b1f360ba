package apiclient

import (
	"context"
	"net/url"
)

// Portal endpoints expose a client's own cases, updates and invoices. The
// backend scopes every response to the authenticated portal user.

func (c *Client) PortalCases(ctx context.Context) ([]Case, error) {
	var out []Case
	if err := c.get(ctx, "/api/portal/cases", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PortalCaseUpdates(ctx context.Context, caseID string) ([]CaseUpdate, error) {
	var out []CaseUpdate
	if err := c.get(ctx, "/api/portal/cases/"+url.PathEscape(caseID)+"/updates", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PortalInvoices(ctx context.Context) ([]Invoice, error) {
	var out []Invoice
	if err := c.get(ctx, "/api/portal/invoices", &out); err != nil {
		return nil, err
	}
	return out, nil
}
