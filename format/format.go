// Package format contains deterministic formatters shared by all document
// builders. None of them fail: values which cannot be interpreted are shown as
// they came in the source document, so an imperfect invoice still renders.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Placeholder is shown in place of mandatory value missing from the document.
const Placeholder = "-"

// Amount formats monetary amount with exactly two decimal places using dot as
// decimal separator, like the schema does.
func Amount(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	d, ok := parseDecimal(s)
	if !ok {
		return s
	}
	return d.StringFixed(2)
}

// parseDecimal accepts plain decimal notation only. Exponent form is valid for
// decimal package but expanding it may produce arbitrarily long strings.
func parseDecimal(s string) (decimal.Decimal, bool) {
	if strings.ContainsAny(s, "eE") {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// AmountWithCurrency formats amount and appends currency code when known.
func AmountWithCurrency(s, currency string) string {
	a := Amount(s)
	if a == "" || currency == "" {
		return a
	}
	return a + " " + currency
}

// Quantity formats decimal value dropping insignificant trailing zeros.
func Quantity(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	d, ok := parseDecimal(s)
	if !ok {
		return s
	}
	return d.String()
}

const (
	displayDate     = "02.01.2006"
	displayDateTime = "02.01.2006 15:04:05"
)

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// Date converts ISO date (2006-01-02) or date-time (RFC 3339, zone optional)
// into local display form. Time is shown in the offset it was written with.
func Date(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.Format(displayDate)
	}
	for _, l := range dateTimeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.Format(displayDateTime)
		}
	}
	return s
}

// IsSet reports whether schema flag (1 - yes, 2 - no) is set.
func IsSet(s string) bool {
	return strings.TrimSpace(s) == "1"
}

// Flag returns label for schema flag value.
func Flag(s string) string {
	switch strings.TrimSpace(s) {
	case "1":
		return "Tak"
	case "2":
		return "Nie"
	default:
		return s
	}
}

// Country returns Polish name of the country for ISO 3166 code.
func Country(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}
	if name := display.Regions(language.Polish).Name(region); name != "" {
		return name
	}
	return code
}

// AddressLines returns non empty address parts, country name is appended for
// addresses outside of Poland.
func AddressLines(countryCode string, parts ...string) []string {
	var lines []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	if cc := strings.TrimSpace(countryCode); cc != "" && !strings.EqualFold(cc, "PL") {
		lines = append(lines, Country(cc))
	}
	return lines
}

// Address is AddressLines joined into single line.
func Address(countryCode string, parts ...string) string {
	return strings.Join(AddressLines(countryCode, parts...), ", ")
}

// Join concatenates non empty values with separator.
func Join(sep string, values ...string) string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}
