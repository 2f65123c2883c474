package gateway

import (
	"context"
	"fmt"

	"github.com/dev-alt/invoice-generator-go/model"
)

// ListInvoicesResponse is the backend's list payload
type ListInvoicesResponse struct {
	Invoices []model.Invoice `json:"invoices"`
}

// ListInvoices returns all invoices for the current user
func (c *Client) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	var resp ListInvoicesResponse
	if err := c.getJSON(ctx, "/api/invoices", &resp); err != nil {
		return nil, err
	}
	return resp.Invoices, nil
}

// GetInvoice fetches a single invoice by id
func (c *Client) GetInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := c.getJSON(ctx, "/api/invoices/"+id, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// CreateInvoice persists a finalized invoice and returns the created
// record. Not safe to retry automatically; a duplicate submission would
// create a second invoice.
func (c *Client) CreateInvoice(ctx context.Context, invoice model.Invoice) (*model.Invoice, error) {
	var created model.Invoice
	if err := c.postJSON(ctx, "/api/invoices", invoice, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateInvoice replaces an existing invoice
func (c *Client) UpdateInvoice(ctx context.Context, id string, invoice model.Invoice) (*model.Invoice, error) {
	var updated model.Invoice
	if err := c.putJSON(ctx, "/api/invoices/"+id, invoice, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteInvoice removes an invoice by id
func (c *Client) DeleteInvoice(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/invoices/"+id)
}

// GeneratePDF asks the backend to render the invoice's PDF
func (c *Client) GeneratePDF(ctx context.Context, id string) error {
	return c.postJSON(ctx, fmt.Sprintf("/api/invoices/%s/generate-pdf", id), nil, nil)
}

// DownloadPDF fetches the rendered PDF bytes and their content type
func (c *Client) DownloadPDF(ctx context.Context, id string) ([]byte, string, error) {
	return c.getBinary(ctx, fmt.Sprintf("/api/invoices/%s/download-pdf", id))
}

// PreviewPDF fetches the preview rendering of the invoice's PDF
func (c *Client) PreviewPDF(ctx context.Context, id string) ([]byte, string, error) {
	return c.getBinary(ctx, fmt.Sprintf("/api/invoices/%s/preview-pdf", id))
}
