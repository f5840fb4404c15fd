package fa3

import (
	"ksefpdf/format"
	"ksefpdf/xmltree"
)

func parseInvoice(fak *xmltree.Node) Invoice {
	inv := Invoice{
		Seller:     parseSeller(fak.Child("Podmiot1")),
		Buyer:      parseBuyer(fak.Child("Podmiot2")),
		Fa:         parseFa(fak.Child("Fa")),
		Footer:     parseFooter(fak.Child("Stopka")),
		Attachment: parseAttachment(fak.Child("Zalacznik")),
	}
	for _, p := range fak.All("Podmiot3") {
		inv.ThirdParties = append(inv.ThirdParties, ThirdParty{
			Buyer:           parseBuyer(p),
			Role:            p.Value("Rola"),
			OtherRole:       format.IsSet(p.Value("RolaInna")),
			RoleDescription: p.Value("OpisRoli"),
			Share:           p.Value("Udzial"),
		})
	}
	if pu := fak.Child("PodmiotUpowazniony"); pu != nil {
		inv.Authorized = &Authorized{
			EORI:           pu.Value("NrEORI"),
			Identity:       parseIdentity(pu.Child("DaneIdentyfikacyjne")),
			Address:        parseAddress(pu.Child("Adres")),
			Correspondence: parseAddress(pu.Child("AdresKoresp")),
			Role:           pu.Value("RolaPU"),
		}
		for _, c := range pu.All("DaneKontaktowe") {
			inv.Authorized.Contacts = append(inv.Authorized.Contacts, Contact{
				Email: c.Value("EmailPU"),
				Phone: c.Value("TelefonPU"),
			})
		}
	}
	return inv
}

func parseIdentity(n *xmltree.Node) Identity {
	return Identity{
		NIP:         n.Value("NIP"),
		InternalID:  n.Value("IDWew"),
		EUCode:      n.Value("KodUE"),
		EUVatNumber: n.Value("NrVatUE"),
		CountryCode: n.Value("KodKraju"),
		TaxID:       n.Value("NrID"),
		NoID:        format.IsSet(n.Value("BrakID")),
		Name:        n.Value("Nazwa"),
	}
}

func parseAddress(n *xmltree.Node) *Address {
	if n == nil {
		return nil
	}
	return &Address{
		CountryCode: n.Value("KodKraju"),
		Line1:       n.Value("AdresL1"),
		Line2:       n.Value("AdresL2"),
		GLN:         n.Value("GLN"),
	}
}

func parseContacts(nodes []*xmltree.Node) []Contact {
	var out []Contact
	for _, c := range nodes {
		out = append(out, Contact{Email: c.Value("Email"), Phone: c.Value("Telefon")})
	}
	return out
}

func parseSeller(n *xmltree.Node) Seller {
	return Seller{
		VatPrefix:      n.Value("PrefiksPodatnika"),
		EORI:           n.Value("NrEORI"),
		Identity:       parseIdentity(n.Child("DaneIdentyfikacyjne")),
		Address:        parseAddress(n.Child("Adres")),
		Correspondence: parseAddress(n.Child("AdresKoresp")),
		Contacts:       parseContacts(n.All("DaneKontaktowe")),
		Status:         n.Value("StatusInfoPodatnika"),
	}
}

func parseBuyer(n *xmltree.Node) Buyer {
	return Buyer{
		EORI:           n.Value("NrEORI"),
		Identity:       parseIdentity(n.Child("DaneIdentyfikacyjne")),
		Address:        parseAddress(n.Child("Adres")),
		Correspondence: parseAddress(n.Child("AdresKoresp")),
		Contacts:       parseContacts(n.All("DaneKontaktowe")),
		ClientNumber:   n.Value("NrKlienta"),
		BuyerID:        n.Value("IDNabywcy"),
		JST:            n.Value("JST"),
		GV:             n.Value("GV"),
	}
}

var rateFields = []struct {
	net, tax, taxPLN, label string
}{
	{"P_13_1", "P_14_1", "P_14_1W", "23% lub 22%"},
	{"P_13_2", "P_14_2", "P_14_2W", "8% lub 7%"},
	{"P_13_3", "P_14_3", "P_14_3W", "5%"},
	{"P_13_4", "P_14_4", "P_14_4W", "4% lub 3% (ryczałt dla taksówek)"},
	{"P_13_5", "P_14_5", "", "procedura szczególna OSS"},
	{"P_13_6_1", "", "", "0% (kraj)"},
	{"P_13_6_2", "", "", "0% (WDT)"},
	{"P_13_6_3", "", "", "0% (eksport)"},
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
		if r.Net == "" && r.Tax == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

var marginKinds = []struct {
	field, label string
}{
	{"P_PMarzy_2", "biura podróży"},
	{"P_PMarzy_3_1", "towary używane"},
	{"P_PMarzy_3_2", "dzieła sztuki"},
	{"P_PMarzy_3_3", "przedmioty kolekcjonerskie i antyki"},
}

func parseAnnotations(n *xmltree.Node) Annotations {
	a := Annotations{
		CashMethod:    n.Value("P_16"),
		SelfBilling:   n.Value("P_17"),
		ReverseCharge: n.Value("P_18"),
		SplitPayment:  n.Value("P_18A"),
		Exemption:     n.Value("Zwolnienie", "P_19"),
		NewTransport:  n.Value("NoweSrodkiTransportu", "P_22"),
		Simplified:    n.Value("P_23"),
		Margin:        n.Value("PMarzy", "P_PMarzy"),
	}
	ex := n.Child("Zwolnienie")
	a.ExemptionBasis = format.Join("; ", ex.Value("P_19A"), ex.Value("P_19B"), ex.Value("P_19C"))
	for _, m := range marginKinds {
		if format.IsSet(n.Value("PMarzy", m.field)) {
			a.MarginKind = m.label
			break
		}
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
			Reason:          fa.Value("PrzyczynaKorekty"),
			Type:            fa.Value("TypKorekty"),
			Period:          fa.Value("OkresFaKorygowanej"),
			CorrectedNumber: fa.Value("NrFaKorygowany"),
			TotalBefore:     fa.Value("P_15ZK"),
			RateBefore:      fa.Value("KursWalutyZK"),
		},
	}
	for _, wz := range fa.All("WZ") {
		f.WZ = append(f.WZ, wz.Text())
	}
	for _, d := range fa.All("DaneFaKorygowanej") {
		f.Correction.Invoices = append(f.Correction.Invoices, CorrectedInvoice{
			IssueDate:      d.Value("DataWystFaKorygowanej"),
			Number:         d.Value("NrFaKorygowanej"),
			RegistryNumber: d.Value("NrKSeFFaKorygowanej"),
		})
	}
	for _, z := range fa.All("ZaliczkaCzesciowa") {
		f.Advances = append(f.Advances, AdvancePayment{
			Date:   z.Value("P_6Z"),
			Amount: z.Value("P_15Z"),
			Rate:   z.Value("KursWalutyZW"),
		})
	}
	for _, d := range fa.All("DodatkowyOpis") {
		f.Descriptions = append(f.Descriptions, Description{
			Line:  d.Value("NrWiersza"),
			Key:   d.Value("Klucz"),
			Value: d.Value("Wartosc"),
		})
	}
	for _, z := range fa.All("FakturaZaliczkowa") {
		f.AdvanceFa = append(f.AdvanceFa, AdvanceInvoice{
			RegistryNumber: z.Value("NrKSeFFaZaliczkowej"),
			Number:         z.Value("NrFaZaliczkowej"),
		})
	}
	for _, w := range fa.All("FaWiersz") {
		f.Lines = append(f.Lines, Line{
			Number:       w.Value("NrWierszaFa"),
			Date:         w.Value("P_6A"),
			Name:         w.Value("P_7"),
			Index:        w.Value("Indeks"),
			GTIN:         w.Value("GTIN"),
			PKWiU:        w.Value("PKWiU"),
			CN:           w.Value("CN"),
			PKOB:         w.Value("PKOB"),
			Unit:         w.Value("P_8A"),
			Quantity:     w.Value("P_8B"),
			NetPrice:     w.Value("P_9A"),
			GrossPrice:   w.Value("P_9B"),
			Discount:     w.Value("P_10"),
			NetValue:     w.Value("P_11"),
			GrossValue:   w.Value("P_11A"),
			Rate:         w.Value("P_12"),
			GTU:          w.Value("GTU"),
			Procedure:    w.Value("Procedura"),
			ExchangeRate: w.Value("KursWaluty"),
			Before:       format.IsSet(w.Value("StanPrzed")),
		})
	}
	if r := fa.Child("Rozliczenie"); r != nil {
		f.Settlement = parseSettlement(r)
	}
	if p := fa.Child("Platnosc"); p != nil {
		f.Payment = parsePayment(p)
	}
	if t := fa.Child("WarunkiTransakcji"); t != nil {
		f.Terms = parseTerms(t)
	}
	if z := fa.Child("Zamowienie"); z != nil {
		f.Order = parseOrder(z)
	}
	return f
}

func parseAmounts(nodes []*xmltree.Node) []Amount {
	var out []Amount
	for _, n := range nodes {
		out = append(out, Amount{Reason: n.Value("Powod"), Amount: n.Value("Kwota")})
	}
	return out
}

func parseSettlement(n *xmltree.Node) *Settlement {
	return &Settlement{
		Charges:       parseAmounts(n.All("Obciazenia")),
		ChargesSum:    n.Value("SumaObciazen"),
		Deductions:    parseAmounts(n.All("Odliczenia")),
		DeductionsSum: n.Value("SumaOdliczen"),
		ToPay:         n.Value("DoZaplaty"),
		ToSettle:      n.Value("DoRozliczenia"),
	}
}

func parseAccounts(nodes []*xmltree.Node) []BankAccount {
	var out []BankAccount
	for _, n := range nodes {
		out = append(out, BankAccount{
			Number:      n.Value("NrRB"),
			SWIFT:       n.Value("SWIFT"),
			BankName:    n.Value("NazwaBanku"),
			Description: n.Value("OpisRachunku"),
		})
	}
	return out
}

func parsePayment(n *xmltree.Node) *Payment {
	p := &Payment{
		Paid:           n.Value("Zaplacono"),
		PaidDate:       n.Value("DataZaplaty"),
		PartialPaid:    n.Value("ZnacznikZaplatyCzesciowej"),
		Method:         n.Value("FormaPlatnosci"),
		Accounts:       parseAccounts(n.All("RachunekBankowy")),
		FactorAccounts: parseAccounts(n.All("RachunekBankowyFaktora")),
		DiscountTerms:  n.Value("Skonto", "WarunkiSkonta"),
		DiscountAmount: n.Value("Skonto", "WysokoscSkonta"),
		Link:           n.Value("LinkDoPlatnosci"),
		IPKSeF:         n.Value("IPKSeF"),
		OtherMethod:    otherMethod(n),
	}
	for _, z := range n.All("ZaplataCzesciowa") {
		method := format.PaymentMethod(z.Value("FormaPlatnosci"))
		if other := otherMethod(z); other != "" {
			method = other
		}
		p.Partial = append(p.Partial, PartialPayment{
			Amount: z.Value("KwotaZaplatyCzesciowej"),
			Date:   z.Value("DataZaplatyCzesciowej"),
			Method: method,
		})
	}
	for _, t := range n.All("TerminPlatnosci") {
		p.DueDates = append(p.DueDates, DueDate{
			Date:   t.Value("Termin"),
			Amount: t.Value("TerminOpis", "Ilosc"),
			Unit:   t.Value("TerminOpis", "Jednostka"),
			Event:  t.Value("TerminOpis", "ZdarzeniePoczatkowe"),
		})
	}
	return p
}

func otherMethod(n *xmltree.Node) string {
	if !format.IsSet(n.Value("PlatnoscInna")) {
		return ""
	}
	return n.Value("OpisPlatnosci")
}

func parseTerms(n *xmltree.Node) *Terms {
	t := &Terms{
		DeliveryTerms:    n.Value("WarunkiDostawy"),
		ContractRate:     n.Value("KursUmowny"),
		ContractCurrency: n.Value("WalutaUmowna"),
	}
	for _, u := range n.All("Umowy") {
		t.Contracts = append(t.Contracts, Dated{Date: u.Value("DataUmowy"), Number: u.Value("NrUmowy")})
	}
	for _, z := range n.All("Zamowienia") {
		t.Orders = append(t.Orders, Dated{Date: z.Value("DataZamowienia"), Number: z.Value("NrZamowienia")})
	}
	for _, b := range n.All("NrPartiiTowaru") {
		t.Batches = append(t.Batches, b.Text())
	}
	return t
}

func parseOrder(n *xmltree.Node) *Order {
	o := &Order{Value: n.Value("WartoscZamowienia")}
	for _, w := range n.All("ZamowienieWiersz") {
		o.Lines = append(o.Lines, OrderLine{
			Name:     w.Value("P_7Z"),
			Unit:     w.Value("P_8AZ"),
			Quantity: w.Value("P_8BZ"),
			NetPrice: w.Value("P_9AZ"),
			NetValue: w.Value("P_11NettoZ"),
			Rate:     w.Value("P_12Z"),
		})
	}
	return o
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

func keyValues(nodes []*xmltree.Node, key, value string) []KeyValue {
	var out []KeyValue
	for _, n := range nodes {
		out = append(out, KeyValue{Key: n.Value(key), Value: n.Value(value)})
	}
	return out
}

func texts(nodes []*xmltree.Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Text())
	}
	return out
}

func parseAttachment(n *xmltree.Node) []DataBlock {
	var out []DataBlock
	for _, b := range n.All("BlokDanych") {
		block := DataBlock{
			Header:     b.Value("ZNaglowek"),
			Meta:       keyValues(b.All("MetaDane"), "ZKlucz", "ZWartosc"),
			Paragraphs: texts(b.Path("Tekst").All("Akapit")),
		}
		for _, t := range b.All("Tabela") {
			table := DataTable{
				Meta:        keyValues(t.All("TMetaDane"), "TKlucz", "TWartosc"),
				Description: t.Value("Opis"),
				Sums:        texts(t.Path("Suma").All("SKom")),
			}
			for _, k := range t.Path("TNaglowek").All("Kol") {
				table.Columns = append(table.Columns, k.Value("NKom"))
			}
			for _, w := range t.All("Wiersz") {
				table.Rows = append(table.Rows, texts(w.All("WKom")))
			}
			block.Tables = append(block.Tables, table)
		}
		out = append(out, block)
	}
	return out
}
