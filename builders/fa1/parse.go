package fa1

import (
	"ksefpdf/format"
	"ksefpdf/xmltree"
)

func parseInvoice(fak *xmltree.Node) Invoice {
	inv := Invoice{
		Seller: parseParty(fak.Child("Podmiot1")),
		Buyer:  parseParty(fak.Child("Podmiot2")),
		Fa:     parseFa(fak.Child("Fa")),
		Footer: parseFooter(fak.Child("Stopka")),
	}
	for _, p := range fak.All("Podmiot3") {
		inv.ThirdParties = append(inv.ThirdParties, ThirdParty{
			Party:           parseParty(p),
			Role:            p.Value("Rola"),
			OtherRole:       format.IsSet(p.Value("RolaInna")),
			RoleDescription: p.Value("OpisRoli"),
			Share:           p.Value("Udzial"),
		})
	}
	return inv
}

func parseAddress(n *xmltree.Node) *Address {
	if n == nil {
		return nil
	}
	a := &Address{}
	if pl := n.Child("AdresPol"); pl != nil {
		a.CountryCode = pl.Value("KodKraju")
		a.Domestic = &DomesticAddress{
			Street:     pl.Value("Ulica"),
			House:      pl.Value("NrDomu"),
			Flat:       pl.Value("NrLokalu"),
			City:       pl.Value("Miejscowosc"),
			PostalCode: pl.Value("KodPocztowy"),
			Post:       pl.Value("Poczta"),
		}
	}
	if zagr := n.Child("AdresZagr"); zagr != nil {
		a.CountryCode = zagr.Value("KodKraju")
		a.Foreign = &ForeignAddress{Line1: zagr.Value("AdresL1"), Line2: zagr.Value("AdresL2")}
	}
	return a
}

func parseParty(n *xmltree.Node) Party {
	id := n.Child("DaneIdentyfikacyjne")
	name := id.Value("PelnaNazwa")
	if name == "" {
		name = format.Join(" ", id.Value("ImiePierwsze"), id.Value("Nazwisko"))
	}
	return Party{
		VatPrefix:      n.Value("PrefiksPodatnika"),
		EORI:           n.Value("NrEORI"),
		NIP:            id.Value("NIP"),
		EUCode:         id.Value("KodUE"),
		EUVatNumber:    id.Value("NrVatUE"),
		CountryCode:    id.Value("KodKraju"),
		TaxID:          id.Value("NrID"),
		NoID:           format.IsSet(id.Value("BrakID")),
		FullName:       name,
		TradeName:      id.Value("NazwaHandlowa"),
		Address:        parseAddress(n.Child("Adres")),
		Correspondence: parseAddress(n.Child("AdresKoresp")),
		Email:          n.Value("Email"),
		Phone:          n.Value("Telefon"),
		ClientNumber:   n.Value("NrKlienta"),
		Status:         n.Value("StatusInfoPodatnika"),
	}
}

var rateFields = []struct {
	net, tax, taxPLN, label string
}{
	{"P_13_1", "P_14_1", "P_14_1W", "22% lub 23%"},
	{"P_13_2", "P_14_2", "P_14_2W", "7% lub 8%"},
	{"P_13_3", "P_14_3", "P_14_3W", "5%"},
	{"P_13_4", "P_14_4", "P_14_4W", "ryczałt dla taksówek"},
	{"P_13_5", "P_14_5", "", "procedura szczególna"},
	{"P_13_6", "", "", "0%"},
	{"P_13_7", "", "", "zwolnione od podatku"},
	{"P_13_8", "", "", "np (poza krajem)"},
	{"P_13_9", "", "", "np (art. 100 ust. 1 pkt 4)"},
	{"P_13_10", "", "", "odwrotne obciążenie"},
	{"P_13_11", "", "", "procedura marży"},
}

func parseRates(fa *xmltree.Node) []RateTotal {
	var out []RateTotal
	for _, f := range rateFields {
		r := RateTotal{Label: f.label, Net: fa.Value(f.net)}
		if f.tax != "" {
			r.Tax = fa.Value(f.tax)
		}
		if f.taxPLN != "" {
			r.TaxPLN = fa.Value(f.taxPLN)
		}
		if r.Net != "" || r.Tax != "" {
			out = append(out, r)
		}
	}
	return out
}

// Flags are flat in FA(1) Adnotacje, later schemas nest them.
func parseAnnotations(n *xmltree.Node) Annotations {
	a := Annotations{
		CashMethod:     n.Value("P_16"),
		SelfBilling:    n.Value("P_17"),
		ReverseCharge:  n.Value("P_18"),
		SplitPayment:   n.Value("P_18A"),
		Exemption:      n.Value("P_19"),
		ExemptionBasis: format.Join("; ", n.Value("P_19A"), n.Value("P_19B"), n.Value("P_19C")),
		NewTransport:   n.Value("P_22"),
		Simplified:     n.Value("P_23"),
		Margin:         n.Value("P_PMarzy"),
	}
	switch {
	case format.IsSet(n.Value("P_PMarzy_2")):
		a.MarginKind = "biura podróży"
	case format.IsSet(n.Value("P_PMarzy_3_1")):
		a.MarginKind = "towary używane"
	case format.IsSet(n.Value("P_PMarzy_3_2")):
		a.MarginKind = "dzieła sztuki"
	case format.IsSet(n.Value("P_PMarzy_3_3")):
		a.MarginKind = "przedmioty kolekcjonerskie i antyki"
	}
	return a
}

func parseFa(fa *xmltree.Node) Fa {
	f := Fa{
		Currency:     fa.Value("KodWaluty"),
		IssueDate:    fa.Value("P_1"),
		IssuePlace:   fa.Value("P_1M"),
		Number:       fa.Value("P_2"),
		SaleDate:     fa.Value("P_6"),
		PeriodFrom:   fa.Value("OkresFa", "P_6_Od"),
		PeriodTo:     fa.Value("OkresFa", "P_6_Do"),
		Rates:        parseRates(fa),
		Total:        fa.Value("P_15"),
		ExchangeRate: fa.Value("KursWalutyZ"),
		Annotations:  parseAnnotations(fa.Child("Adnotacje")),
		Kind:         fa.Value("RodzajFaktury"),
		Receipt:      fa.Value("FP"),
		Related:      fa.Value("TP"),
		Correction: Correction{
			Reason: fa.Value("PrzyczynaKorekty"),
			Type:   fa.Value("TypKorekty"),
		},
	}
	for _, d := range fa.All("DaneFaKorygowanej") {
		f.Correction.Invoices = append(f.Correction.Invoices, CorrectedInvoice{
			IssueDate:      d.Value("DataWystFaKorygowanej"),
			Number:         d.Value("NrFaKorygowanej"),
			RegistryNumber: d.Value("NrKSeFFaKorygowanej"),
		})
	}
	for _, d := range fa.All("DodatkowyOpis") {
		f.Descriptions = append(f.Descriptions, KeyValue{Key: d.Value("Klucz"), Value: d.Value("Wartosc")})
	}
	for _, w := range fa.All("FaWiersz") {
		f.Lines = append(f.Lines, Line{
			Number:     w.Value("NrWierszaFa"),
			Name:       w.Value("P_7"),
			Unit:       w.Value("P_8A"),
			Quantity:   w.Value("P_8B"),
			NetPrice:   w.Value("P_9A"),
			GrossPrice: w.Value("P_9B"),
			NetValue:   w.Value("P_11"),
			GrossValue: w.Value("P_11A"),
			Rate:       w.Value("P_12"),
			Before:     format.IsSet(w.Value("StanPrzed")),
		})
	}
	if p := fa.Child("Platnosc"); p != nil {
		f.Payment = parsePayment(p)
	}
	return f
}

func parsePayment(n *xmltree.Node) *Payment {
	p := &Payment{
		Paid:     n.Value("Zaplacono"),
		PaidDate: n.Value("DataZaplaty"),
		Method:   n.Value("FormaPlatnosci"),
	}
	if format.IsSet(n.Value("PlatnoscInna")) {
		p.OtherMethod = n.Value("OpisPlatnosci")
	}
	for _, t := range n.All("TerminyPlatnosci") {
		p.DueDates = append(p.DueDates, DueDate{
			Date:        t.Value("TerminPlatnosci"),
			Description: t.Value("TerminPlatnosciOpis"),
		})
	}
	for _, r := range n.All("RachunekBankowy") {
		number := r.Value("NrRBPL")
		if number == "" {
			number = r.Value("NrRBZagr")
		}
		p.Accounts = append(p.Accounts, BankAccount{
			Number:   number,
			SWIFT:    r.Value("SWIFT"),
			BankName: r.Value("NazwaBanku"),
		})
	}
	return p
}

func parseFooter(n *xmltree.Node) Footer {
	var f Footer
	for _, i := range n.All("Informacje") {
		if s := i.Value("StopkaFaktury"); s != "" {
			f.Texts = append(f.Texts, s)
		}
	}
	for _, r := range n.All("Rejestry") {
		f.Registries = append(f.Registries, Registry{
			Name:  r.Value("PelnaNazwa"),
			KRS:   r.Value("KRS"),
			REGON: r.Value("REGON"),
			BDO:   r.Value("BDO"),
		})
	}
	return f
}
