package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-alt/invoice-generator-go/currency"
	"github.com/dev-alt/invoice-generator-go/draft"
	"github.com/dev-alt/invoice-generator-go/gateway"
	"github.com/dev-alt/invoice-generator-go/pkg/logger"
)

type DraftHandler struct {
	editor *draft.Editor
	client *gateway.Client
}

func NewDraftHandler(editor *draft.Editor, client *gateway.Client) *DraftHandler {
	return &DraftHandler{editor: editor, client: client}
}

// snapshotResponse renders a snapshot for the preview consumer,
// including totals formatted in the draft's currency
func snapshotResponse(snap draft.Snapshot) gin.H {
	return gin.H{
		"invoice":       snap.Invoice,
		"currency_code": snap.CurrencyCode,
		"state":         snap.State.String(),
		"display": gin.H{
			"subtotal":     currency.Format(snap.Invoice.Subtotal, snap.CurrencyCode),
			"tax_amount":   currency.Format(snap.Invoice.TaxAmount, snap.CurrencyCode),
			"total_amount": currency.Format(snap.Invoice.TotalAmount, snap.CurrencyCode),
		},
	}
}

// writeEditorError maps editor failures onto HTTP responses
func writeEditorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, draft.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "Submission in progress"})
	case errors.Is(err, draft.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// Get returns the current draft snapshot
func (h *DraftHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, snapshotResponse(h.editor.Snapshot()))
}

type setFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// SetField updates exactly one scalar field of the draft
func (h *DraftHandler) SetField(c *gin.Context) {
	var req setFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.editor.SetDetail(draft.Field(req.Field), req.Value); err != nil {
		writeEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshotResponse(h.editor.Snapshot()))
}

type setTaxRateRequest struct {
	TaxRate float64 `json:"tax_rate"`
}

// SetTaxRate updates the tax rate; totals are recomputed before the
// response snapshot is taken
func (h *DraftHandler) SetTaxRate(c *gin.Context) {
	var req setTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.editor.SetTaxRate(req.TaxRate); err != nil {
		writeEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshotResponse(h.editor.Snapshot()))
}

// AddItem appends a new empty line item
func (h *DraftHandler) AddItem(c *gin.Context) {
	id, err := h.editor.AddItem()
	if err != nil {
		writeEditorError(c, err)
		return
	}

	resp := snapshotResponse(h.editor.Snapshot())
	resp["item_id"] = id
	c.JSON(http.StatusOK, resp)
}

// UpdateItem patches one line item
func (h *DraftHandler) UpdateItem(c *gin.Context) {
	var patch draft.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.editor.UpdateItem(c.Param("id"), patch); err != nil {
		writeEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshotResponse(h.editor.Snapshot()))
}

// RemoveItem deletes one line item
func (h *DraftHandler) RemoveItem(c *gin.Context) {
	if err := h.editor.RemoveItem(c.Param("id")); err != nil {
		writeEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshotResponse(h.editor.Snapshot()))
}

type setCurrencyRequest struct {
	CurrencyCode string `json:"currency_code" binding:"required"`
}

// SetCurrency re-labels the draft's amounts in a new currency
func (h *DraftHandler) SetCurrency(c *gin.Context) {
	var req setCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.editor.SetCurrency(currency.Code(req.CurrencyCode)); err != nil {
		writeEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshotResponse(h.editor.Snapshot()))
}

type setTemplateRequest struct {
	TemplateID string `json:"template_id"`
}

// SetTemplate selects the rendering template
func (h *DraftHandler) SetTemplate(c *gin.Context) {
	var req setTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.editor.SetTemplate(req.TemplateID); err != nil {
		writeEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshotResponse(h.editor.Snapshot()))
}

// Submit finalizes the draft and sends it to the backend
func (h *DraftHandler) Submit(c *gin.Context) {
	created, err := h.editor.Submit(c.Request.Context(), h.client)
	if err != nil {
		if errors.Is(err, draft.ErrSubmitInFlight) {
			writeEditorError(c, err)
			return
		}
		writeGatewayError(c, err)
		return
	}

	logger.Info(c.Request.Context(), "invoice created",
		"invoice_id", created.ID,
		"invoice_number", created.InvoiceNumber,
		"total", created.TotalAmount,
	)
	c.JSON(http.StatusCreated, gin.H{"invoice": created})
}
