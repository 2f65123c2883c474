package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestInvoiceStruct(t *testing.T) {
	invoice := &Invoice{
		ID:            "test-id",
		InvoiceNumber: "INV-20250101-000001",
		Status:        StatusDraft,
		CustomerName:  "Acme Corp",
		Currency:      "$",
		Subtotal:      130,
		TaxRate:       10,
		TaxAmount:     13,
		TotalAmount:   143,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
		Items: []InvoiceItem{
			{Description: "Consulting", Quantity: 2, UnitPrice: 50, TotalPrice: 100},
			{Description: "Hosting", Quantity: 1, UnitPrice: 30, TotalPrice: 30},
		},
	}

	if invoice.ID != "test-id" {
		t.Errorf("Expected ID 'test-id', got '%s'", invoice.ID)
	}
	if invoice.Status != StatusDraft {
		t.Errorf("Expected status '%s', got '%s'", StatusDraft, invoice.Status)
	}
	if len(invoice.Items) != 2 {
		t.Errorf("Expected 2 items, got %d", len(invoice.Items))
	}
}

func TestInvoiceStatusConstants(t *testing.T) {
	statuses := []string{StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled}
	expected := []string{"draft", "sent", "paid", "overdue", "cancelled"}

	for i, status := range statuses {
		if status != expected[i] {
			t.Errorf("Expected '%s', got '%s'", expected[i], status)
		}
	}
}

func TestValidStatus(t *testing.T) {
	tests := []struct {
		status string
		valid  bool
	}{
		{"draft", true},
		{"sent", true},
		{"paid", true},
		{"overdue", true},
		{"cancelled", true},
		{"", false},
		{"void", false},
		{"DRAFT", false},
	}

	for _, tt := range tests {
		if got := ValidStatus(tt.status); got != tt.valid {
			t.Errorf("ValidStatus(%q) = %v, want %v", tt.status, got, tt.valid)
		}
	}
}

func TestInvoiceJSONFieldNames(t *testing.T) {
	invoice := Invoice{
		InvoiceNumber: "INV-1",
		Status:        StatusDraft,
		CustomerName:  "Acme",
		Currency:      "$",
		TaxRate:       10,
		Items:         []InvoiceItem{{Description: "x", Quantity: 1, UnitPrice: 2, TotalPrice: 2}},
	}

	data, err := json.Marshal(invoice)
	if err != nil {
		t.Fatalf("Failed to marshal invoice: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal invoice: %v", err)
	}

	// The backend contract uses snake_case field names
	for _, key := range []string{"invoice_number", "customer_name", "tax_rate", "total_amount", "items"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Expected JSON field %q in payload", key)
		}
	}

	items := decoded["items"].([]any)
	item := items[0].(map[string]any)
	if _, ok := item["unit_price"]; !ok {
		t.Error("Expected JSON field 'unit_price' in item payload")
	}
}
