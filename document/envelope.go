// Package document decides what kind of KSeF document a normalized tree holds
// and carries that decision to the builders.
package document

import (
	"ksefpdf/common"
	"ksefpdf/xmltree"
)

// Version of the invoice schema.
type Version int

const (
	FA1 Version = iota + 1
	FA2
	FA3
)

func (v Version) String() string {
	switch v {
	case FA1:
		return "FA(1)"
	case FA2:
		return "FA(2)"
	case FA3:
		return "FA(3)"
	default:
		return "FA(?)"
	}
}

// Envelope is a classified document. Implementations are Invoice and
// Receipt, nothing else.
type Envelope interface {
	Kind() common.DocumentType
	String() string
	isEnvelope()
}

// Invoice is one of FA(1), FA(2) or FA(3) documents. Root is the normalized
// document root holding Faktura element.
type Invoice struct {
	Version Version
	Root    *xmltree.Node
}

// Receipt is UPO, official receipt confirmation. Root is the normalized
// document root holding Potwierdzenie element.
type Receipt struct {
	Root *xmltree.Node
}

func (Invoice) isEnvelope() {}
func (Receipt) isEnvelope() {}

func (Invoice) Kind() common.DocumentType { return common.DocumentTypeInvoice }
func (Receipt) Kind() common.DocumentType { return common.DocumentTypeUpo }

func (i Invoice) String() string {
	switch i.Version {
	case FA1:
		return "invoice-v1"
	case FA2:
		return "invoice-v2"
	case FA3:
		return "invoice-v3"
	default:
		return "invoice"
	}
}

func (Receipt) String() string { return "upo" }

// NoRegistryNumber is shown when document has not been assigned KSeF number yet.
const NoRegistryNumber = "nie nadano"

// AdditionalData is supplied by the caller next to the document.
type AdditionalData struct {
	// RegistryNumber is the KSeF number of the invoice, may be empty.
	RegistryNumber string
	// QRCode is verification link payload, QR block is omitted when empty.
	QRCode string
	// NoRegistryNumber replaces default sentinel text when set.
	NoRegistryNumber string
}

// Registry returns registry number to display, sentinel when there is none.
func (a AdditionalData) Registry() string {
	if a.RegistryNumber != "" {
		return a.RegistryNumber
	}
	if a.NoRegistryNumber != "" {
		return a.NoRegistryNumber
	}
	return NoRegistryNumber
}
