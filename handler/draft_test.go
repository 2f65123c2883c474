package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dev-alt/invoice-generator-go/draft"
	"github.com/dev-alt/invoice-generator-go/model"
)

func newDraftRouter(t *testing.T, backend http.HandlerFunc) (*gin.Engine, *draft.Editor) {
	t.Helper()
	client, _ := newBackend(t, backend)
	editor := draft.NewEditor()
	handler := NewDraftHandler(editor, client)

	router := gin.New()
	router.GET("/api/draft", handler.Get)
	router.PUT("/api/draft/fields", handler.SetField)
	router.PUT("/api/draft/tax-rate", handler.SetTaxRate)
	router.POST("/api/draft/items", handler.AddItem)
	router.PATCH("/api/draft/items/:id", handler.UpdateItem)
	router.DELETE("/api/draft/items/:id", handler.RemoveItem)
	router.PUT("/api/draft/currency", handler.SetCurrency)
	router.POST("/api/draft/submit", handler.Submit)
	return router, editor
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		data, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type snapshotPayload struct {
	Invoice      model.Invoice `json:"invoice"`
	CurrencyCode string        `json:"currency_code"`
	State        string        `json:"state"`
	Display      struct {
		Subtotal    string `json:"subtotal"`
		TaxAmount   string `json:"tax_amount"`
		TotalAmount string `json:"total_amount"`
	} `json:"display"`
	ItemID string `json:"item_id"`
}

func parseSnapshot(t *testing.T, w *httptest.ResponseRecorder) snapshotPayload {
	t.Helper()
	var snap snapshotPayload
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("Failed to parse snapshot: %v", err)
	}
	return snap
}

func TestDraftHandlerGet(t *testing.T) {
	router, _ := newDraftRouter(t, func(w http.ResponseWriter, r *http.Request) {})

	w := doJSON(router, "GET", "/api/draft", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	snap := parseSnapshot(t, w)
	if snap.CurrencyCode != "USD" {
		t.Errorf("Expected currency USD, got %s", snap.CurrencyCode)
	}
	if snap.State != "editing" {
		t.Errorf("Expected state editing, got %s", snap.State)
	}
	if len(snap.Invoice.Items) != 1 {
		t.Errorf("Expected 1 seeded item, got %d", len(snap.Invoice.Items))
	}
	if snap.Display.TotalAmount != "$0.00" {
		t.Errorf("Expected display total $0.00, got %s", snap.Display.TotalAmount)
	}
}

func TestDraftHandlerSetField(t *testing.T) {
	router, _ := newDraftRouter(t, func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name:           "valid field",
			body:           map[string]string{"field": "customer_name", "value": "Acme Corp"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown field",
			body:           map[string]string{"field": "color", "value": "blue"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing field name",
			body:           map[string]string{"value": "x"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, "PUT", "/api/draft/fields", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}

	w := doJSON(router, "GET", "/api/draft", nil)
	snap := parseSnapshot(t, w)
	if snap.Invoice.CustomerName != "Acme Corp" {
		t.Errorf("Expected customer name to persist, got %q", snap.Invoice.CustomerName)
	}
}

func TestDraftHandlerItemsAndTotals(t *testing.T) {
	router, editor := newDraftRouter(t, func(w http.ResponseWriter, r *http.Request) {})

	seeded := editor.Snapshot().Invoice.Items[0].ID

	qty := 10.0
	price := 13.0
	w := doJSON(router, "PATCH", "/api/draft/items/"+seeded, map[string]any{
		"quantity":   qty,
		"unit_price": price,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	w = doJSON(router, "PUT", "/api/draft/tax-rate", map[string]float64{"tax_rate": 10})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	snap := parseSnapshot(t, w)
	if snap.Invoice.Subtotal != 130 {
		t.Errorf("Expected subtotal 130, got %v", snap.Invoice.Subtotal)
	}
	if snap.Invoice.TaxAmount != 13 {
		t.Errorf("Expected tax amount 13, got %v", snap.Invoice.TaxAmount)
	}
	if snap.Invoice.TotalAmount != 143 {
		t.Errorf("Expected total 143, got %v", snap.Invoice.TotalAmount)
	}
	if snap.Display.TotalAmount != "$143.00" {
		t.Errorf("Expected display total $143.00, got %s", snap.Display.TotalAmount)
	}

	// Add a second item, then remove it again
	w = doJSON(router, "POST", "/api/draft/items", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	added := parseSnapshot(t, w)
	if added.ItemID == "" {
		t.Fatal("Expected item_id in add response")
	}
	if len(added.Invoice.Items) != 2 {
		t.Errorf("Expected 2 items, got %d", len(added.Invoice.Items))
	}

	w = doJSON(router, "DELETE", "/api/draft/items/"+added.ItemID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	w = doJSON(router, "DELETE", "/api/draft/items/no-such-item", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown item, got %d", w.Code)
	}
}

func TestDraftHandlerSetCurrency(t *testing.T) {
	router, editor := newDraftRouter(t, func(w http.ResponseWriter, r *http.Request) {})

	seeded := editor.Snapshot().Invoice.Items[0].ID
	doJSON(router, "PATCH", "/api/draft/items/"+seeded, map[string]any{
		"quantity":   1.0,
		"unit_price": 1234.5,
	})

	w := doJSON(router, "PUT", "/api/draft/currency", map[string]string{"currency_code": "EUR"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	snap := parseSnapshot(t, w)
	if snap.CurrencyCode != "EUR" {
		t.Errorf("Expected currency EUR, got %s", snap.CurrencyCode)
	}
	// Switching currency re-labels the amount, it never rescales it
	if snap.Invoice.TotalAmount != 1234.5 {
		t.Errorf("Expected total unchanged at 1234.5, got %v", snap.Invoice.TotalAmount)
	}
	if snap.Display.TotalAmount != "1.234,50 €" {
		t.Errorf("Expected display total '1.234,50 €', got %s", snap.Display.TotalAmount)
	}

	w = doJSON(router, "PUT", "/api/draft/currency", map[string]string{"currency_code": "XXX"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unsupported currency, got %d", w.Code)
	}
}

func TestDraftHandlerSubmit(t *testing.T) {
	var requests atomic.Int32
	router, editor := newDraftRouter(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/api/invoices" || r.Method != "POST" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		var inv model.Invoice
		json.NewDecoder(r.Body).Decode(&inv)
		inv.ID = "inv-123"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(inv)
	})

	editor.SetDetail(draft.FieldCustomerName, "Acme Corp")
	seeded := editor.Snapshot().Invoice.Items[0].ID
	qty, price := 2.0, 50.0
	editor.UpdateItem(seeded, draft.ItemPatch{Quantity: &qty, UnitPrice: &price})

	w := doJSON(router, "POST", "/api/draft/submit", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Invoice model.Invoice `json:"invoice"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.Invoice.ID != "inv-123" {
		t.Errorf("Expected created id inv-123, got %q", resp.Invoice.ID)
	}
	if resp.Invoice.TotalAmount != 100 {
		t.Errorf("Expected total 100, got %v", resp.Invoice.TotalAmount)
	}
	if requests.Load() != 1 {
		t.Errorf("Expected 1 backend request, got %d", requests.Load())
	}
}

func TestDraftHandlerSubmitValidationFailure(t *testing.T) {
	var requests atomic.Int32
	router, _ := newDraftRouter(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	})

	// Customer name never set; validation fails before any network call
	w := doJSON(router, "POST", "/api/draft/submit", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if _, ok := resp.Fields["customer_name"]; !ok {
		t.Errorf("Expected field error for customer_name, got %v", resp.Fields)
	}
	if requests.Load() != 0 {
		t.Errorf("Expected no backend requests, got %d", requests.Load())
	}
}
