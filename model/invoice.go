package model

import (
	"time"
)

// InvoiceItem represents a single line item on an invoice. TotalPrice is
// derived: once totals have been computed it always equals
// max(Quantity, 0) * max(UnitPrice, 0).
type InvoiceItem struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// Invoice is the wire model shared with the backend. Subtotal, TaxAmount
// and TotalAmount are outputs of the computation engine, never set
// directly.
type Invoice struct {
	ID              string        `json:"id,omitempty"`
	UserID          string        `json:"user_id,omitempty"`
	TemplateID      string        `json:"template_id,omitempty"`
	InvoiceNumber   string        `json:"invoice_number"`
	Status          string        `json:"status"`
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email,omitempty"`
	CustomerAddress string        `json:"customer_address,omitempty"`
	InvoiceDate     string        `json:"invoice_date,omitempty"`
	DueDate         string        `json:"due_date,omitempty"`
	Currency        string        `json:"currency"`
	Subtotal        float64       `json:"subtotal"`
	TaxRate         float64       `json:"tax_rate"`
	TaxAmount       float64       `json:"tax_amount"`
	TotalAmount     float64       `json:"total_amount"`
	Notes           string        `json:"notes,omitempty"`
	PdfPath         string        `json:"pdf_path,omitempty"`
	CreatedAt       time.Time     `json:"created_at,omitempty"`
	UpdatedAt       time.Time     `json:"updated_at,omitempty"`
	Items           []InvoiceItem `json:"items"`
}

// Template represents an invoice rendering template stored by the backend
type Template struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id,omitempty"`
	Name          string    `json:"name"`
	Language      string    `json:"language,omitempty"`
	BackgroundURL string    `json:"background_url,omitempty"`
	LogoURL       string    `json:"logo_url,omitempty"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// InvoiceStatus constants
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the closed status set
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}
