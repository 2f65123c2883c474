// Package draft owns the editable invoice draft. All mutations pass
// through the Editor, which recomputes totals after every relevant
// change and publishes one consistent snapshot per change. Consumers
// never see a half-updated state.
package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dev-alt/invoice-generator-go/compute"
	"github.com/dev-alt/invoice-generator-go/currency"
	"github.com/dev-alt/invoice-generator-go/gateway"
	"github.com/dev-alt/invoice-generator-go/model"
)

// State tracks the draft's submission lifecycle
type State int

const (
	// StateEditing accepts mutations
	StateEditing State = iota
	// StateSubmitting rejects mutations while the network call is in flight
	StateSubmitting
	// StateSubmitted means the backend accepted the draft; the draft is
	// kept so the caller can choose the next view
	StateSubmitted
	// StateSubmitFailed behaves like StateEditing with all field values
	// preserved
	StateSubmitFailed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	case StateSubmitFailed:
		return "submit_failed"
	}
	return "unknown"
}

// Field identifies a scalar draft field for SetDetail
type Field string

const (
	FieldInvoiceNumber   Field = "invoice_number"
	FieldCustomerName    Field = "customer_name"
	FieldCustomerEmail   Field = "customer_email"
	FieldCustomerAddress Field = "customer_address"
	FieldInvoiceDate     Field = "invoice_date"
	FieldDueDate         Field = "due_date"
	FieldNotes           Field = "notes"
)

// ItemPatch updates one or more fields of a line item; nil fields are
// left untouched
type ItemPatch struct {
	Description *string  `json:"description,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
}

// Snapshot is an immutable copy of the draft published to read-only
// consumers (preview, submission)
type Snapshot struct {
	Invoice      model.Invoice `json:"invoice"`
	CurrencyCode currency.Code `json:"currency_code"`
	State        State         `json:"-"`
}

var (
	// ErrSubmitInFlight is returned when a mutation or a second submit
	// arrives while a submission is in progress
	ErrSubmitInFlight = errors.New("submission in flight")
	// ErrUnknownField is returned by SetDetail for a field it does not manage
	ErrUnknownField = errors.New("unknown draft field")
	// ErrItemNotFound is returned when an item id does not exist in the draft
	ErrItemNotFound = errors.New("item not found")
)

// Editor is the single writer for one invoice draft
type Editor struct {
	mu    sync.Mutex
	inv   model.Invoice
	code  currency.Code
	state State
	subs  []func(Snapshot)
}

// NewEditor creates an editor seeded with the default draft: one empty
// line item, USD, zero tax, a generated invoice number and draft status.
func NewEditor() *Editor {
	e := &Editor{
		inv: model.Invoice{
			InvoiceNumber: newInvoiceNumber(),
			Status:        model.StatusDraft,
			Currency:      currency.Lookup(currency.USD).Symbol,
			Items: []model.InvoiceItem{
				{ID: uuid.New().String()},
			},
		},
		code:  currency.USD,
		state: StateEditing,
	}
	e.recompute()
	return e
}

// newInvoiceNumber creates a unique invoice number.
// Format: INV-YYYYMMDD-XXXXXX
func newInvoiceNumber() string {
	now := time.Now()
	return fmt.Sprintf("INV-%s-%06d", now.Format("20060102"), now.UnixMicro()%1000000)
}

// Subscribe registers a consumer for published snapshots. Publication is
// synchronous and happens after every mutation.
func (e *Editor) Subscribe(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

// Snapshot returns an immutable copy of the current draft
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// State returns the current submission state
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// snapshotLocked deep-copies the draft. Caller holds the mutex.
func (e *Editor) snapshotLocked() Snapshot {
	inv := e.inv
	inv.Items = make([]model.InvoiceItem, len(e.inv.Items))
	copy(inv.Items, e.inv.Items)
	return Snapshot{Invoice: inv, CurrencyCode: e.code, State: e.state}
}

// recompute reruns the computation engine over the current items and tax
// rate. Caller holds the mutex.
func (e *Editor) recompute() {
	result := compute.Recompute(e.inv.Items, e.inv.TaxRate)
	e.inv.Items = result.Items
	e.inv.Subtotal = result.Subtotal
	e.inv.TaxAmount = result.TaxAmount
	e.inv.TotalAmount = result.TotalAmount
}

// publishLocked emits one snapshot to every subscriber. Caller holds the
// mutex, so snapshots arrive in mutation order.
func (e *Editor) publishLocked() {
	snap := e.snapshotLocked()
	for _, fn := range e.subs {
		fn(snap)
	}
}

// editable reports whether mutations are currently accepted. Caller
// holds the mutex.
func (e *Editor) editable() bool {
	return e.state != StateSubmitting
}

// SetDetail updates exactly one scalar field of the draft. Detail fields
// never affect totals, so no recomputation runs.
func (e *Editor) SetDetail(field Field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editable() {
		return ErrSubmitInFlight
	}

	switch field {
	case FieldInvoiceNumber:
		e.inv.InvoiceNumber = value
	case FieldCustomerName:
		e.inv.CustomerName = value
	case FieldCustomerEmail:
		e.inv.CustomerEmail = value
	case FieldCustomerAddress:
		e.inv.CustomerAddress = value
	case FieldInvoiceDate:
		e.inv.InvoiceDate = value
	case FieldDueDate:
		e.inv.DueDate = value
	case FieldNotes:
		e.inv.Notes = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	e.resumeEditing()
	e.publishLocked()
	return nil
}

// SetTaxRate updates the tax rate and recomputes totals
func (e *Editor) SetTaxRate(percent float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editable() {
		return ErrSubmitInFlight
	}

	e.inv.TaxRate = percent
	e.recompute()
	e.resumeEditing()
	e.publishLocked()
	return nil
}

// AddItem appends a zero-value line item and returns its id
func (e *Editor) AddItem() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editable() {
		return "", ErrSubmitInFlight
	}

	id := uuid.New().String()
	e.inv.Items = append(e.inv.Items, model.InvoiceItem{ID: id})
	e.recompute()
	e.resumeEditing()
	e.publishLocked()
	return id, nil
}

// RemoveItem deletes the line item with the given id
func (e *Editor) RemoveItem(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editable() {
		return ErrSubmitInFlight
	}

	for i := range e.inv.Items {
		if e.inv.Items[i].ID == id {
			e.inv.Items = append(e.inv.Items[:i], e.inv.Items[i+1:]...)
			e.recompute()
			e.resumeEditing()
			e.publishLocked()
			return nil
		}
	}
	return ErrItemNotFound
}

// UpdateItem applies a patch to the line item with the given id and
// recomputes totals
func (e *Editor) UpdateItem(id string, patch ItemPatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editable() {
		return ErrSubmitInFlight
	}

	for i := range e.inv.Items {
		if e.inv.Items[i].ID != id {
			continue
		}
		if patch.Description != nil {
			e.inv.Items[i].Description = *patch.Description
		}
		if patch.Quantity != nil {
			e.inv.Items[i].Quantity = *patch.Quantity
		}
		if patch.UnitPrice != nil {
			e.inv.Items[i].UnitPrice = *patch.UnitPrice
		}
		e.recompute()
		e.resumeEditing()
		e.publishLocked()
		return nil
	}
	return ErrItemNotFound
}

// SetCurrency switches the draft's currency. Switching re-labels the
// amounts, it never rescales them.
func (e *Editor) SetCurrency(code currency.Code) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editable() {
		return ErrSubmitInFlight
	}
	if !currency.Valid(code) {
		return fmt.Errorf("unsupported currency code: %s", code)
	}

	e.code = code
	e.inv.Currency = currency.Lookup(code).Symbol
	e.resumeEditing()
	e.publishLocked()
	return nil
}

// SetTemplate selects a rendering template; it has no effect on totals
func (e *Editor) SetTemplate(templateID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editable() {
		return ErrSubmitInFlight
	}

	e.inv.TemplateID = templateID
	e.resumeEditing()
	e.publishLocked()
	return nil
}

// resumeEditing folds the Submitted and SubmitFailed states back into
// Editing once the user touches the draft again. Caller holds the mutex.
func (e *Editor) resumeEditing() {
	if e.state == StateSubmitted || e.state == StateSubmitFailed {
		e.state = StateEditing
	}
}

// Submit finalizes the draft and forwards it through the gateway. On
// failure every field value is preserved and the editor returns to an
// editable state. On success the draft is kept; the caller chooses the
// next view.
func (e *Editor) Submit(ctx context.Context, client *gateway.Client) (*model.Invoice, error) {
	e.mu.Lock()
	if e.state == StateSubmitting {
		e.mu.Unlock()
		return nil, ErrSubmitInFlight
	}

	if err := e.validateLocked(); err != nil {
		e.mu.Unlock()
		return nil, err
	}

	payload := e.finalizeLocked()
	e.state = StateSubmitting
	e.publishLocked()
	e.mu.Unlock()

	// The mutex is not held across the network call; late responses
	// only ever touch the state field below.
	created, err := client.CreateInvoice(ctx, payload)

	e.mu.Lock()
	if err != nil {
		e.state = StateSubmitFailed
	} else {
		e.state = StateSubmitted
	}
	e.publishLocked()
	e.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return created, nil
}

// finalizeLocked builds the wire payload: status forced to draft, dates
// normalized to RFC3339, currency resolved to its display symbol. The
// currency selector code never leaves the client. Caller holds the
// mutex.
func (e *Editor) finalizeLocked() model.Invoice {
	snap := e.snapshotLocked()
	inv := snap.Invoice
	inv.Status = model.StatusDraft
	inv.Currency = currency.Lookup(e.code).Symbol
	inv.InvoiceDate = normalizeDate(inv.InvoiceDate)
	inv.DueDate = normalizeDate(inv.DueDate)
	return inv
}

// normalizeDate converts a date field to RFC3339. Form inputs arrive as
// YYYY-MM-DD; already-normalized values pass through; anything else is
// left as entered for the backend to rule on.
func normalizeDate(value string) string {
	if value == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	return value
}
