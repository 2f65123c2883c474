package draft

import (
	"regexp"
	"strings"

	"github.com/dev-alt/invoice-generator-go/gateway"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// validateLocked checks the draft before it goes on the wire, so obvious
// rejections never cost a network round trip. Failures use the same
// shape as server-side validation so the shell surfaces them inline the
// same way. Caller holds the mutex.
func (e *Editor) validateLocked() error {
	fields := make(map[string]string)

	if strings.TrimSpace(e.inv.InvoiceNumber) == "" {
		fields["invoice_number"] = "invoice number is required"
	}
	if strings.TrimSpace(e.inv.CustomerName) == "" {
		fields["customer_name"] = "customer name is required"
	}
	if e.inv.CustomerEmail != "" && !emailRegex.MatchString(e.inv.CustomerEmail) {
		fields["customer_email"] = "invalid email format"
	}
	if e.inv.TaxRate < 0 || e.inv.TaxRate > 100 {
		fields["tax_rate"] = "tax rate must be between 0 and 100"
	}

	if len(fields) == 0 {
		return nil
	}
	return &gateway.Error{
		Kind:    gateway.KindValidation,
		Message: "invoice validation failed",
		Fields:  fields,
	}
}
