package handler

import (
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/dev-alt/invoice-generator-go/gateway"
	"github.com/dev-alt/invoice-generator-go/model"
	"github.com/dev-alt/invoice-generator-go/pkg/logger"
)

// InvoiceHandler forwards invoice operations to the backend through the
// gateway. No retry logic lives here; a failed mutation is reported and
// the user decides.
type InvoiceHandler struct {
	client *gateway.Client
}

func NewInvoiceHandler(client *gateway.Client) *InvoiceHandler {
	return &InvoiceHandler{client: client}
}

// List returns all invoices for the current user
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.client.ListInvoices(c.Request.Context())
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// Get returns a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.client.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// Update replaces an existing invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	var invoice model.Invoice
	if err := c.ShouldBindJSON(&invoice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updated, err := h.client.UpdateInvoice(c.Request.Context(), c.Param("id"), invoice)
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes an invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.client.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		writeGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted"})
}

// GeneratePDF asks the backend to render the invoice
func (h *InvoiceHandler) GeneratePDF(c *gin.Context) {
	id := c.Param("id")
	if err := h.client.GeneratePDF(c.Request.Context(), id); err != nil {
		writeGatewayError(c, err)
		return
	}

	logger.Info(c.Request.Context(), "pdf generation requested", "invoice_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "PDF generation started"})
}

// DownloadPDF streams the rendered PDF as an attachment
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id := c.Param("id")
	data, contentType, err := h.client.DownloadPDF(c.Request.Context(), id)
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	if contentType == "" {
		contentType = "application/pdf"
	}

	logger.Info(c.Request.Context(), "pdf downloaded",
		"invoice_id", id,
		"size", humanize.Bytes(uint64(len(data))),
	)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", id))
	c.Data(http.StatusOK, contentType, data)
}

// PreviewPDF streams the preview rendering inline
func (h *InvoiceHandler) PreviewPDF(c *gin.Context) {
	data, contentType, err := h.client.PreviewPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	if contentType == "" {
		contentType = "application/pdf"
	}

	c.Header("Content-Disposition", "inline")
	c.Data(http.StatusOK, contentType, data)
}
