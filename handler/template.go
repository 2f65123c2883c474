package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-alt/invoice-generator-go/gateway"
	"github.com/dev-alt/invoice-generator-go/model"
)

type TemplateHandler struct {
	client *gateway.Client
}

func NewTemplateHandler(client *gateway.Client) *TemplateHandler {
	return &TemplateHandler{client: client}
}

// List returns all templates for the current user
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.client.ListTemplates(c.Request.Context())
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// Upload stores a new template
func (h *TemplateHandler) Upload(c *gin.Context) {
	var template model.Template
	if err := c.ShouldBindJSON(&template); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if template.Name == "" || template.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Template name and content are required"})
		return
	}

	created, err := h.client.UploadTemplate(c.Request.Context(), template)
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
