package upo

import (
	"fmt"
	"strconv"

	"ksefpdf/common"
	"ksefpdf/document"
	"ksefpdf/format"
	"ksefpdf/layout"
	"ksefpdf/xmltree"
)

var documentColumns = []layout.Column{
	{Header: "Lp.", Width: 0.5},
	{Header: "Numer KSeF", Width: 3.2},
	{Header: "Numer faktury", Width: 1.8},
	{Header: "NIP sprzedawcy", Width: 1.2},
	{Header: "Data wystawienia", Width: 1.1},
	{Header: "Data przesłania", Width: 1.6},
	{Header: "Data nadania numeru KSeF", Width: 1.6},
	{Header: "Skrót dokumentu", Width: 3},
	{Header: "Tryb wysyłki", Width: 0.9},
}

// Build returns layout of UPO kept in normalized document root. Additional
// data is not used, receipts carry registry numbers themselves.
func Build(root *xmltree.Node, _ document.AdditionalData) (layout.Node, error) {
	p := root.Child("Potwierdzenie")
	if p == nil {
		return nil, fmt.Errorf("%w: no Potwierdzenie element", common.ErrMissingRequiredStructure)
	}
	r := parseReceipt(p)

	var pages layout.Node
	if r.Pages.PageCount != "" {
		pages = format.Optional("Strona", format.OrPlaceholder(r.Pages.Page)+" z "+r.Pages.PageCount)
	}
	var docRange layout.Node
	if r.Pages.RangeFrom != "" || r.Pages.RangeTo != "" {
		docRange = format.Optional("Zakres dokumentów", format.OrPlaceholder(r.Pages.RangeFrom)+" - "+format.OrPlaceholder(r.Pages.RangeTo))
	}
	contextLabel := "Identyfikator kontekstu"
	if r.Context.Kind != "" {
		contextLabel += " (" + r.Context.Kind + ")"
	}

	rows := make([][]string, 0, len(r.Documents))
	for i, d := range r.Documents {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			format.OrPlaceholder(d.RegistryNumber),
			format.OrPlaceholder(d.InvoiceNumber),
			format.OrPlaceholder(d.SellerNIP),
			format.OrPlaceholder(format.Date(d.IssueDate)),
			format.OrPlaceholder(format.Date(d.SubmittedAt)),
			format.OrPlaceholder(format.Date(d.RegisteredAt)),
			format.OrPlaceholder(d.Digest),
			d.Mode,
		})
	}
	documents := format.Table(documentColumns, rows)
	if documents == nil {
		documents = layout.NewText(format.Placeholder)
	}

	return layout.VStack(
		layout.NewSection(document.SectionHeader, "",
			layout.Title("Urzędowe Poświadczenie Odbioru"),
			layout.Subtitle("dokumentów elektronicznych przesłanych do Krajowego Systemu e-Faktur"),
		),
		layout.NewSection(document.SectionSubmission, "Dane przesłania",
			format.Required("Nazwa podmiotu przyjmującego", r.ReceivingEntity),
			format.Required("Numer referencyjny sesji", r.SessionNumber),
			format.Required(contextLabel, r.Context.Value),
			format.Required("Skrót dokumentu uwierzytelniającego", r.AuthDigest),
			format.Required("Nazwa struktury logicznej", r.StructureName),
			format.Required("Kod formularza", r.FormCode),
			pages,
			docRange,
			format.Optional("Całkowita liczba dokumentów", r.Pages.Total),
			layout.Bold("Status: dokumenty przyjęte przez KSeF"),
		),
		layout.NewSection(document.SectionDocuments, "Dokumenty", documents),
	), nil
}
