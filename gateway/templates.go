package gateway

import (
	"context"

	"github.com/dev-alt/invoice-generator-go/model"
)

// ListTemplatesResponse is the backend's template list payload
type ListTemplatesResponse struct {
	Templates []model.Template `json:"templates"`
}

// ListTemplates returns all templates for the current user
func (c *Client) ListTemplates(ctx context.Context) ([]model.Template, error) {
	var resp ListTemplatesResponse
	if err := c.getJSON(ctx, "/api/templates", &resp); err != nil {
		return nil, err
	}
	return resp.Templates, nil
}

// UploadTemplate stores a new template
func (c *Client) UploadTemplate(ctx context.Context, template model.Template) (*model.Template, error) {
	var created model.Template
	if err := c.postJSON(ctx, "/api/templates", template, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
