package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Code is a supported currency code. The set is closed; values are
// constrained to it by construction (selector payloads come from Codes).
type Code string

const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	JPY Code = "JPY"
	CNY Code = "CNY"
	INR Code = "INR"
	AUD Code = "AUD"
	NZD Code = "NZD"
	CAD Code = "CAD"
)

// Info describes how a currency is displayed. SymbolAfter currencies
// render the symbol behind the amount, separated by a space.
type Info struct {
	Symbol      string `json:"symbol"`
	Locale      string `json:"locale"`
	Name        string `json:"name"`
	SymbolAfter bool   `json:"-"`
}

// The mapping is immutable for the process lifetime.
var catalog = map[Code]Info{
	USD: {Symbol: "$", Locale: "en-US", Name: "US Dollar"},
	EUR: {Symbol: "€", Locale: "de-DE", Name: "Euro", SymbolAfter: true},
	GBP: {Symbol: "£", Locale: "en-GB", Name: "British Pound"},
	JPY: {Symbol: "¥", Locale: "ja-JP", Name: "Japanese Yen"},
	CNY: {Symbol: "¥", Locale: "zh-CN", Name: "Chinese Yuan"},
	INR: {Symbol: "₹", Locale: "en-IN", Name: "Indian Rupee"},
	AUD: {Symbol: "A$", Locale: "en-AU", Name: "Australian Dollar"},
	NZD: {Symbol: "NZ$", Locale: "en-NZ", Name: "New Zealand Dollar"},
	CAD: {Symbol: "C$", Locale: "en-CA", Name: "Canadian Dollar"},
}

// codeOrder keeps selector payloads stable
var codeOrder = []Code{USD, EUR, GBP, JPY, CNY, INR, AUD, NZD, CAD}

var printers = make(map[Code]*message.Printer, len(catalog))

func init() {
	for code, info := range catalog {
		printers[code] = message.NewPrinter(language.MustParse(info.Locale))
	}
}

// Lookup returns the display info for a code. It is total: an unknown
// code falls back to USD rather than failing.
func Lookup(code Code) Info {
	if info, ok := catalog[code]; ok {
		return info
	}
	return catalog[USD]
}

// Valid reports whether code belongs to the supported set
func Valid(code Code) bool {
	_, ok := catalog[code]
	return ok
}

// Codes returns the supported codes in stable display order
func Codes() []Code {
	out := make([]Code, len(codeOrder))
	copy(out, codeOrder)
	return out
}

// Format renders an amount with the locale's digit grouping, exactly two
// fraction digits, and the currency symbol in its conventional position.
func Format(amount float64, code Code) string {
	info := Lookup(code)
	p, ok := printers[code]
	if !ok {
		p = printers[USD]
	}

	n := number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	)

	if info.SymbolAfter {
		return p.Sprintf("%v %s", n, info.Symbol)
	}
	return p.Sprintf("%s%v", info.Symbol, n)
}
