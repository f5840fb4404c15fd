package document

import (
	"fmt"
	"strings"

	"ksefpdf/common"
	"ksefpdf/xmltree"
)

const (
	invoiceRoot = "Faktura"
	receiptRoot = "Potwierdzenie"
)

var versionCodes = map[string]Version{
	"FA(1)": FA1,
	"FA(2)": FA2,
	"FA(3)": FA3,
}

// Classify looks at the normalized root and decides which builder should
// handle it. Override, when not nil, skips type detection: "upo" is trusted
// as is, "invoice" still needs schema version from the document.
func Classify(root *xmltree.Node, override *common.DocumentType) (Envelope, error) {
	if override != nil {
		switch *override {
		case common.DocumentTypeUpo:
			return Receipt{Root: root}, nil
		case common.DocumentTypeInvoice:
			if !root.Has(invoiceRoot) {
				return nil, fmt.Errorf("%w: no %s element in document forced to be invoice", common.ErrMissingRequiredStructure, invoiceRoot)
			}
			return classifyInvoice(root)
		default:
			return nil, fmt.Errorf("%w: %s", common.ErrUnrecognizedDocumentType, override)
		}
	}

	switch {
	case root.Has(invoiceRoot):
		return classifyInvoice(root)
	case root.Has(receiptRoot):
		return Receipt{Root: root}, nil
	default:
		return nil, fmt.Errorf("%w: root elements %v", common.ErrUnrecognizedDocumentType, root.Keys())
	}
}

func classifyInvoice(root *xmltree.Node) (Envelope, error) {
	code := root.Path(invoiceRoot, "Naglowek", "KodFormularza").Attr("kodSystemowy")
	v, ok := versionCodes[compactCode(code)]
	if !ok {
		return nil, fmt.Errorf("%w: form code %q", common.ErrUnknownSchemaVersion, code)
	}
	return Invoice{Version: v, Root: root}, nil
}

// compactCode removes white space so "FA (2)" and "FA(2)" compare equal.
func compactCode(code string) string {
	return strings.Join(strings.Fields(code), "")
}
