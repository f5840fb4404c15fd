// Package upo builds layout of UPO v4-2, the official confirmation of
// receipt issued by KSeF for a batch or session of submitted invoices.
package upo

type Receipt struct {
	ReceivingEntity string
	SessionNumber   string
	Context         Context
	AuthDigest      string
	Pages           Pages
	StructureName   string
	FormCode        string
	Documents       []Document
}

// Context identifies on whose behalf documents were submitted.
type Context struct {
	Kind  string
	Value string
}

// Pages is OpisPotwierdzenia, receipts of large sessions are split.
type Pages struct {
	Page      string
	PageCount string
	RangeFrom string
	RangeTo   string
	Total     string
}

type Document struct {
	SellerNIP      string
	RegistryNumber string
	InvoiceNumber  string
	IssueDate      string
	SubmittedAt    string
	RegisteredAt   string
	Digest         string
	Mode           string
}
