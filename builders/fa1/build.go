package fa1

import (
	"fmt"
	"strconv"

	"ksefpdf/common"
	"ksefpdf/document"
	"ksefpdf/format"
	"ksefpdf/layout"
	"ksefpdf/xmltree"
)

// Build returns layout of FA(1) invoice kept in normalized document root.
func Build(root *xmltree.Node, add document.AdditionalData) (layout.Node, error) {
	fak := root.Child("Faktura")
	if fak == nil {
		return nil, fmt.Errorf("%w: no Faktura element", common.ErrMissingRequiredStructure)
	}
	if !fak.Has("Fa") {
		return nil, fmt.Errorf("%w: no Faktura/Fa element", common.ErrMissingRequiredStructure)
	}

	inv := parseInvoice(fak)
	return layout.VStack(
		header(inv.Fa, add),
		parties(inv.Seller, inv.Buyer),
		thirdParties(inv.ThirdParties),
		details(inv.Fa),
		correction(inv.Fa.Correction),
		items(inv.Fa.Lines),
		summary(inv.Fa),
		annotations(inv.Fa.Annotations),
		descriptions(inv.Fa.Descriptions),
		payment(inv.Fa.Payment),
		footer(inv.Footer),
	), nil
}

func header(fa Fa, add document.AdditionalData) layout.Node {
	var qr layout.Node
	if add.QRCode != "" {
		qr = &layout.QRCode{Payload: add.QRCode, Caption: add.Registry()}
	}
	return layout.NewSection(document.SectionHeader, "",
		layout.Title("Faktura VAT"),
		layout.Subtitle(format.InvoiceKind(format.OrPlaceholder(fa.Kind))),
		format.Required("Numer faktury", fa.Number),
		format.Required("Numer KSeF", add.Registry()),
		qr,
	)
}

func addressText(a *Address) string {
	switch {
	case a == nil:
		return ""
	case a.Domestic != nil:
		d := a.Domestic
		street := d.Street
		if street == "" {
			street = d.City
		}
		number := d.House
		if d.Flat != "" {
			number += "/" + d.Flat
		}
		post := d.Post
		if post == "" {
			post = d.City
		}
		return format.Address(a.CountryCode, format.Join(" ", street, number), format.Join(" ", d.PostalCode, post))
	case a.Foreign != nil:
		return format.Address(a.CountryCode, a.Foreign.Line1, a.Foreign.Line2)
	default:
		return ""
	}
}

func identity(p Party) layout.Node {
	switch {
	case p.NIP != "":
		return format.Optional("NIP", p.NIP)
	case p.EUVatNumber != "":
		return format.Optional("Numer VAT-UE", p.EUCode+p.EUVatNumber)
	case p.TaxID != "":
		return format.Optional("Identyfikator podatkowy", format.Join(" ", p.CountryCode, p.TaxID))
	case p.NoID:
		return layout.NewText("Brak identyfikatora podatkowego")
	default:
		return nil
	}
}

func partyRows(p Party) []layout.Node {
	return format.Rows(
		format.Optional("Prefiks VAT", p.VatPrefix),
		identity(p),
		format.Optional("Nazwa", p.FullName),
		format.Optional("Nazwa handlowa", p.TradeName),
		format.Optional("Adres", addressText(p.Address)),
		format.Optional("Adres korespondencyjny", addressText(p.Correspondence)),
		format.Optional("Numer EORI", p.EORI),
		format.Optional("E-mail", p.Email),
		format.Optional("Telefon", p.Phone),
		format.Optional("Numer klienta", p.ClientNumber),
		format.Optional("Status podatnika", format.TaxpayerStatus(p.Status)),
	)
}

func parties(seller, buyer Party) layout.Node {
	// seller identity, name and address are mandatory in every schema version
	sellerBlock := layout.VStack(
		&layout.Text{Value: "Sprzedawca", Class: layout.ClassHeading},
		format.Optional("Prefiks VAT", seller.VatPrefix),
		format.Required("NIP", seller.NIP),
		format.Required("Nazwa", seller.FullName),
		format.Optional("Nazwa handlowa", seller.TradeName),
		format.Required("Adres", addressText(seller.Address)),
		format.Optional("Adres korespondencyjny", addressText(seller.Correspondence)),
		format.Optional("Numer EORI", seller.EORI),
		format.Optional("E-mail", seller.Email),
		format.Optional("Telefon", seller.Phone),
		format.Optional("Status podatnika", format.TaxpayerStatus(seller.Status)),
	)
	buyerBlock := layout.VStack(append([]layout.Node{
		&layout.Text{Value: "Nabywca", Class: layout.ClassHeading},
	}, partyRows(buyer)...)...)
	return layout.NewSection(document.SectionParties, "", layout.HStack(sellerBlock, buyerBlock))
}

func thirdParties(list []ThirdParty) layout.Node {
	var blocks []layout.Node
	for _, p := range list {
		role := format.ThirdPartyRole(p.Role)
		if p.OtherRole {
			role = p.RoleDescription
		}
		share := ""
		if p.Share != "" {
			share = format.Quantity(p.Share) + "%"
		}
		rows := format.Rows(format.Optional("Rola", role), format.Optional("Udział", share))
		blocks = append(blocks, layout.VStack(append(rows, partyRows(p.Party)...)...))
	}
	return layout.OptionalSection(document.SectionThirdParties, "Podmioty trzecie", blocks...)
}

func details(fa Fa) layout.Node {
	var period string
	if fa.PeriodFrom != "" || fa.PeriodTo != "" {
		period = format.Date(format.OrPlaceholder(fa.PeriodFrom)) + " - " + format.Date(format.OrPlaceholder(fa.PeriodTo))
	}
	return layout.NewSection(document.SectionDetails, "Szczegóły",
		format.Required("Data wystawienia", format.Date(fa.IssueDate)),
		format.Optional("Miejsce wystawienia", fa.IssuePlace),
		format.Optional("Data dokonania lub zakończenia dostawy", format.Date(fa.SaleDate)),
		format.Optional("Okres, którego dotyczy faktura", period),
		format.Required("Kod waluty", fa.Currency),
		format.Optional("Kurs waluty", fa.ExchangeRate),
		format.OptionalFlag("Faktura wystawiona do paragonu", fa.Receipt),
		format.OptionalFlag("Transakcja pomiędzy podmiotami powiązanymi", fa.Related),
	)
}

func correction(c Correction) layout.Node {
	var rows [][]string
	for _, i := range c.Invoices {
		rows = append(rows, []string{
			format.OrPlaceholder(i.Number),
			format.OrPlaceholder(format.Date(i.IssueDate)),
			format.OrPlaceholder(i.RegistryNumber),
		})
	}
	cols := []layout.Column{
		{Header: "Numer faktury korygowanej", Width: 2},
		{Header: "Data wystawienia", Width: 1},
		{Header: "Numer KSeF faktury korygowanej", Width: 3},
	}
	return layout.OptionalSection(document.SectionCorrection, "Dane faktury korygowanej",
		format.Optional("Przyczyna korekty", c.Reason),
		format.Optional("Typ skutku korekty", format.CorrectionType(c.Type)),
		format.Table(cols, rows),
	)
}

func items(lines []Line) layout.Node {
	if len(lines) == 0 {
		return nil
	}
	var netPrice, netValue bool
	for _, l := range lines {
		netPrice = netPrice || l.NetPrice != ""
		netValue = netValue || l.NetValue != ""
	}
	priceHeader, valueHeader := "Cena jedn. brutto", "Wartość brutto"
	if netPrice {
		priceHeader = "Cena jedn. netto"
	}
	if netValue {
		valueHeader = "Wartość netto"
	}
	cols := []layout.Column{
		{Header: "Lp.", Width: 0.6},
		{Header: "Nazwa towaru lub usługi", Width: 5},
		{Header: "J.m.", Width: 0.8},
		{Header: "Ilość", Width: 1, Align: layout.AlignRight},
		{Header: priceHeader, Width: 1.4, Align: layout.AlignRight},
		{Header: valueHeader, Width: 1.4, Align: layout.AlignRight},
		{Header: "Stawka podatku", Width: 1},
	}
	rows := make([][]string, 0, len(lines))
	for i, l := range lines {
		lp := l.Number
		if lp == "" {
			lp = strconv.Itoa(i + 1)
		}
		name := format.OrPlaceholder(l.Name)
		if l.Before {
			name += " (stan przed korektą)"
		}
		price, value := l.GrossPrice, l.GrossValue
		if netPrice {
			price = l.NetPrice
		}
		if netValue {
			value = l.NetValue
		}
		rows = append(rows, []string{lp, name, l.Unit, format.Quantity(l.Quantity), format.Amount(price), format.Amount(value), format.VATRate(l.Rate)})
	}
	return layout.OptionalSection(document.SectionItems, "Pozycje", format.Table(cols, rows))
}

func summary(fa Fa) layout.Node {
	var inPLN bool
	for _, r := range fa.Rates {
		inPLN = inPLN || r.TaxPLN != ""
	}
	cols := []layout.Column{
		{Header: "Stawka podatku", Width: 2},
		{Header: "Wartość netto", Width: 1, Align: layout.AlignRight},
		{Header: "Kwota podatku", Width: 1, Align: layout.AlignRight},
	}
	if inPLN {
		cols = append(cols, layout.Column{Header: "Kwota podatku w PLN", Width: 1, Align: layout.AlignRight})
	}
	var rows [][]string
	for _, r := range fa.Rates {
		row := []string{r.Label, format.Amount(r.Net), format.Amount(r.Tax)}
		if inPLN {
			row = append(row, format.Amount(r.TaxPLN))
		}
		rows = append(rows, row)
	}
	total := format.Required("Kwota należności ogółem", format.AmountWithCurrency(fa.Total, fa.Currency))
	total.Bold = true
	total.Align = layout.AlignRight
	return layout.NewSection(document.SectionSummary, "Podsumowanie stawek podatku", format.Table(cols, rows), total)
}

func annotations(a Annotations) layout.Node {
	var exemption, margin layout.Node
	if format.IsSet(a.Exemption) {
		exemption = format.Required("Zwolnienie z podatku", a.ExemptionBasis)
	}
	if format.IsSet(a.Margin) {
		margin = format.Required("Procedura marży", a.MarginKind)
	}
	return layout.OptionalSection(document.SectionAnnotations, "Adnotacje",
		format.OptionalFlag("Metoda kasowa", a.CashMethod),
		format.OptionalFlag("Samofakturowanie", a.SelfBilling),
		format.OptionalFlag("Odwrotne obciążenie", a.ReverseCharge),
		format.OptionalFlag("Mechanizm podzielonej płatności", a.SplitPayment),
		exemption,
		format.OptionalFlag("Wewnątrzwspólnotowa dostawa nowych środków transportu", a.NewTransport),
		format.OptionalFlag("Procedura uproszczona, art. 135-138 ustawy", a.Simplified),
		margin,
	)
}

func descriptions(list []KeyValue) layout.Node {
	var rows [][]string
	for _, d := range list {
		rows = append(rows, []string{d.Key, d.Value})
	}
	cols := []layout.Column{{Header: "Rodzaj informacji", Width: 2}, {Header: "Treść informacji", Width: 4}}
	return layout.OptionalSection(document.SectionDescriptions, "Dodatkowy opis", format.Table(cols, rows))
}

func payment(p *Payment) layout.Node {
	if p == nil {
		return nil
	}
	var paid layout.Node
	if format.IsSet(p.Paid) {
		paid = format.Required("Zapłacono", format.Date(p.PaidDate))
	}
	var due, accounts [][]string
	for _, d := range p.DueDates {
		due = append(due, []string{format.OrPlaceholder(format.Date(d.Date)), d.Description})
	}
	for _, a := range p.Accounts {
		accounts = append(accounts, []string{format.OrPlaceholder(a.Number), a.SWIFT, a.BankName})
	}
	return layout.OptionalSection(document.SectionPayment, "Płatność",
		paid,
		format.Table([]layout.Column{{Header: "Termin płatności"}, {Header: "Opis terminu", Width: 2}}, due),
		format.Optional("Forma płatności", format.PaymentMethod(p.Method)),
		format.Optional("Inna forma płatności", p.OtherMethod),
		format.Group("Rachunek bankowy", format.Table([]layout.Column{
			{Header: "Numer rachunku", Width: 3},
			{Header: "SWIFT", Width: 1},
			{Header: "Nazwa banku", Width: 2},
		}, accounts)),
	)
}

func footer(f Footer) layout.Node {
	var items []layout.Node
	for _, s := range f.Texts {
		items = append(items, layout.NewText(s))
	}
	var rows [][]string
	for _, r := range f.Registries {
		rows = append(rows, []string{r.Name, r.KRS, r.REGON, r.BDO})
	}
	cols := []layout.Column{{Header: "Pełna nazwa", Width: 3}, {Header: "KRS"}, {Header: "REGON"}, {Header: "BDO"}}
	items = append(items, format.Group("Rejestry", format.Table(cols, rows)))
	return layout.OptionalSection(document.SectionFooter, "Stopka", items...)
}
