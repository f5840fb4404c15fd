// Package builders dispatches classified documents to the builder of their
// schema version. Each version is handled by its own package and no version
// falls back to another.
package builders

import (
	"fmt"

	"ksefpdf/builders/fa1"
	"ksefpdf/builders/fa2"
	"ksefpdf/builders/fa3"
	"ksefpdf/builders/upo"
	"ksefpdf/common"
	"ksefpdf/document"
	"ksefpdf/layout"
)

// Build returns layout content for classified document.
func Build(env document.Envelope, add document.AdditionalData) (layout.Node, error) {
	switch e := env.(type) {
	case document.Invoice:
		switch e.Version {
		case document.FA1:
			return fa1.Build(e.Root, add)
		case document.FA2:
			return fa2.Build(e.Root, add)
		case document.FA3:
			return fa3.Build(e.Root, add)
		default:
			return nil, fmt.Errorf("%w: %s", common.ErrUnknownSchemaVersion, e.Version)
		}
	case document.Receipt:
		return upo.Build(e.Root, add)
	default:
		return nil, fmt.Errorf("%w: %T", common.ErrUnrecognizedDocumentType, env)
	}
}
