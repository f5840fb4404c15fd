package upo

import "ksefpdf/xmltree"

var contextKinds = []struct {
	field, label string
}{
	{"Nip", "NIP"},
	{"IdWew", "Identyfikator wewnętrzny"},
	{"IdZlozonyVatUE", "Identyfikator złożony NIP-VAT UE"},
	{"IdDostawcyUslugPeppol", "Identyfikator dostawcy usług Peppol"},
}

func parseContext(n *xmltree.Node) Context {
	for _, k := range contextKinds {
		if v := n.Value(k.field); v != "" {
			return Context{Kind: k.label, Value: v}
		}
	}
	return Context{}
}

func parseReceipt(p *xmltree.Node) Receipt {
	r := Receipt{
		ReceivingEntity: p.Value("NazwaPodmiotuPrzyjmujacego"),
		SessionNumber:   p.Value("NumerReferencyjnySesji"),
		Context:         parseContext(p.Path("Uwierzytelnienie", "IdKontekstu")),
		AuthDigest:      p.Value("Uwierzytelnienie", "SkrotDokumentuUwierzytelniajacego"),
		StructureName:   p.Value("NazwaStrukturyLogicznej"),
		FormCode:        p.Value("KodFormularza"),
	}
	if d := p.Child("OpisPotwierdzenia"); d != nil {
		r.Pages = Pages{
			Page:      d.Value("Strona"),
			PageCount: d.Value("LiczbaStron"),
			RangeFrom: d.Value("ZakresDokumentowOd"),
			RangeTo:   d.Value("ZakresDokumentowDo"),
			Total:     d.Value("CalkowitaLiczbaDokumentow"),
		}
	}
	for _, d := range p.All("Dokument") {
		r.Documents = append(r.Documents, Document{
			SellerNIP:      d.Value("NipSprzedawcy"),
			RegistryNumber: d.Value("NumerKSeFDokumentu"),
			InvoiceNumber:  d.Value("NumerFaktury"),
			IssueDate:      d.Value("DataWystawieniaFaktury"),
			SubmittedAt:    d.Value("DataPrzeslaniaDokumentu"),
			RegisteredAt:   d.Value("DataNadaniaNumeruKSeF"),
			Digest:         d.Value("SkrotDokumentu"),
			Mode:           d.Value("TrybWysylki"),
		})
	}
	return r
}
