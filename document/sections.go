package document

// Section identifiers used by the builders. Mandatory sections are present in
// every document of given kind, the rest appear only when the source document
// carries data for them.
const (
	SectionHeader  = "header"
	SectionParties = "parties"
	SectionDetails = "details"
	SectionSummary = "summary"

	SectionThirdParties    = "third-parties"
	SectionAuthorized      = "authorized-entity"
	SectionCorrection      = "correction"
	SectionItems           = "items"
	SectionAdvancePayments = "advance-payments"
	SectionAdvanceInvoices = "advance-invoices"
	SectionAnnotations     = "annotations"
	SectionDescriptions    = "descriptions"
	SectionPayment         = "payment"
	SectionSettlement      = "settlement"
	SectionTerms           = "terms"
	SectionOrder           = "order"
	SectionFooter          = "footer-info"
	SectionAttachment      = "attachment"

	SectionSubmission = "submission"
	SectionDocuments  = "documents"
)

var optionalSections = map[string]bool{
	SectionThirdParties:    true,
	SectionAuthorized:      true,
	SectionCorrection:      true,
	SectionItems:           true,
	SectionAdvancePayments: true,
	SectionAdvanceInvoices: true,
	SectionAnnotations:     true,
	SectionDescriptions:    true,
	SectionPayment:         true,
	SectionSettlement:      true,
	SectionTerms:           true,
	SectionOrder:           true,
	SectionFooter:          true,
	SectionAttachment:      true,
}

// IsOptionalSection reports whether section with given id depends on
// optional document data.
func IsOptionalSection(id string) bool {
	return optionalSections[id]
}
