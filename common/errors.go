package common

import (
	"errors"
	"fmt"
)

// Kinds of failures reported by the conversion pipeline. Stages wrap them
// with details, callers should test with errors.Is.
var (
	ErrMalformedInput           = errors.New("malformed input")
	ErrUnrecognizedDocumentType = errors.New("unrecognized document type")
	ErrUnknownSchemaVersion     = errors.New("unknown schema version")
	ErrMissingRequiredStructure = errors.New("missing required structure")
	ErrRenderingFailure         = errors.New("rendering failure")
)

// ParseDocumentTypeOverride converts caller supplied document type hint. Empty
// string means "detect", so nil is returned without error.
func ParseDocumentTypeOverride(name string) (*DocumentType, error) {
	if name == "" {
		return nil, nil
	}
	dt, err := ParseDocumentType(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnrecognizedDocumentType, err)
	}
	return &dt, nil
}
