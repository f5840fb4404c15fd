// Package common keeps enums and error kinds shared by the pipeline stages and
// the configuration, so neither has to import the other.
package common

//go:generate go tool go-enum --names --marshal

// Document type requested by the caller. When not given the type is detected
// from the document itself.
// ENUM(invoice, upo)
type DocumentType int

// IsInvoice reports whether document should be processed by one of the
// invoice builders.
func (d DocumentType) IsInvoice() bool {
	return d == DocumentTypeInvoice
}

// Page orientation of the generated document.
// ENUM(portrait, landscape)
type Orientation int
