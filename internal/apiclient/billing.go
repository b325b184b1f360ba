package apiclient

import (
	"context"
	"net/url"
	"time"
)

// InvoiceInput is the payload for creating an invoice.
type InvoiceInput struct {
	ClientID string    `json:"client_id"`
	CaseID   string    `json:"case_id,omitempty"`
	Amount   float64   `json:"amount"`
	DueDate  time.Time `json:"due_date"`
}

// PaymentInput is the payload for recording a payment against an invoice.
type PaymentInput struct {
	InvoiceID string  `json:"invoice_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method,omitempty"`
}

func (c *Client) ListInvoices(ctx context.Context, status string) ([]Invoice, error) {
	path := "/api/billing/invoices"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out []Invoice
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	var out Invoice
	if err := c.get(ctx, "/api/billing/invoices/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateInvoice(ctx context.Context, in InvoiceInput) (*Invoice, error) {
	var out Invoice
	if err := c.post(ctx, "/api/billing/invoices", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPayments(ctx context.Context, invoiceID string) ([]Payment, error) {
	path := "/api/billing/payments"
	if invoiceID != "" {
		path += "?invoice_id=" + url.QueryEscape(invoiceID)
	}
	var out []Payment
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RecordPayment(ctx context.Context, in PaymentInput) (*Payment, error) {
	var out Payment
	if err := c.post(ctx, "/api/billing/payments", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
