package fa3

import (
	"fmt"
	"strconv"

	"ksefpdf/common"
	"ksefpdf/document"
	"ksefpdf/format"
	"ksefpdf/layout"
	"ksefpdf/xmltree"
)

// Build returns layout of FA(3) invoice kept in normalized document root.
// Missing mandatory values are shown as placeholders, only absence of the
// invoice structure itself is an error.
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
		parties(inv),
		thirdParties(inv.ThirdParties),
		authorized(inv.Authorized),
		details(inv.Fa),
		correction(inv.Fa),
		items(inv.Fa),
		advancePayments(inv.Fa),
		advanceInvoices(inv.Fa),
		summary(inv.Fa),
		annotations(inv.Fa.Annotations),
		descriptions(inv.Fa.Descriptions),
		payment(inv.Fa.Payment, inv.Fa.Currency),
		settlement(inv.Fa.Settlement, inv.Fa.Currency),
		terms(inv.Fa.Terms),
		order(inv.Fa.Order, inv.Fa.Currency),
		footer(inv.Footer),
		attachment(inv.Attachment),
	), nil
}

func heading(s string) *layout.Text {
	return &layout.Text{Value: s, Class: layout.ClassHeading}
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
	if a == nil {
		return ""
	}
	return format.Address(a.CountryCode, a.Line1, a.Line2)
}

func addressGLN(a *Address) string {
	if a == nil {
		return ""
	}
	return a.GLN
}

func contactRows(contacts []Contact) []layout.Node {
	var out []layout.Node
	for _, c := range contacts {
		out = append(out, format.Optional("E-mail", c.Email), format.Optional("Telefon", c.Phone))
	}
	return format.Rows(out...)
}

func identityRows(id Identity) []layout.Node {
	var idRow layout.Node
	switch {
	case id.NIP != "":
		idRow = format.Optional("NIP", id.NIP)
	case id.InternalID != "":
		idRow = format.Optional("Identyfikator wewnętrzny", id.InternalID)
	case id.EUVatNumber != "":
		idRow = format.Optional("Numer VAT-UE", id.EUCode+id.EUVatNumber)
	case id.TaxID != "":
		idRow = format.Optional("Identyfikator podatkowy", format.Join(" ", id.CountryCode, id.TaxID))
	case id.NoID:
		idRow = layout.NewText("Brak identyfikatora podatkowego")
	}
	return format.Rows(idRow, format.Optional("Nazwa", id.Name))
}

func sellerRows(s Seller) []layout.Node {
	rows := []layout.Node{
		heading("Sprzedawca"),
		format.Optional("Prefiks VAT", s.VatPrefix),
		format.Required("NIP", s.Identity.NIP),
		format.Required("Nazwa", s.Identity.Name),
		format.Required("Adres", addressText(s.Address)),
		format.Optional("GLN", addressGLN(s.Address)),
		format.Optional("Adres korespondencyjny", addressText(s.Correspondence)),
		format.Optional("Numer EORI", s.EORI),
		format.Optional("Status podatnika", format.TaxpayerStatus(s.Status)),
	}
	return append(format.Rows(rows...), contactRows(s.Contacts)...)
}

func buyerRows(b Buyer) []layout.Node {
	rows := identityRows(b.Identity)
	rows = append(rows, format.Rows(
		format.Optional("Adres", addressText(b.Address)),
		format.Optional("GLN", addressGLN(b.Address)),
		format.Optional("Adres korespondencyjny", addressText(b.Correspondence)),
		format.Optional("Numer EORI", b.EORI),
		format.Optional("Numer klienta", b.ClientNumber),
		format.Optional("Identyfikator nabywcy", b.BuyerID),
		format.OptionalFlag("Jednostka podrzędna JST", b.JST),
		format.OptionalFlag("Członek grupy VAT", b.GV),
	)...)
	return append(rows, contactRows(b.Contacts)...)
}

func parties(inv Invoice) layout.Node {
	buyer := append([]layout.Node{heading("Nabywca")}, buyerRows(inv.Buyer)...)
	return layout.NewSection(document.SectionParties, "",
		layout.HStack(layout.VStack(sellerRows(inv.Seller)...), layout.VStack(buyer...)))
}

func thirdParties(list []ThirdParty) layout.Node {
	var items []layout.Node
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
		items = append(items, layout.VStack(append(rows, buyerRows(p.Buyer)...)...))
	}
	return layout.OptionalSection(document.SectionThirdParties, "Podmioty trzecie", items...)
}

func authorized(a *Authorized) layout.Node {
	if a == nil {
		return nil
	}
	rows := []layout.Node{format.Required("Rola", format.AuthorizedRole(a.Role))}
	rows = append(rows, identityRows(a.Identity)...)
	rows = append(rows,
		format.Optional("Adres", addressText(a.Address)),
		format.Optional("Adres korespondencyjny", addressText(a.Correspondence)),
		format.Optional("Numer EORI", a.EORI),
	)
	rows = append(rows, contactRows(a.Contacts)...)
	return layout.OptionalSection(document.SectionAuthorized, "Podmiot upoważniony", rows...)
}

func period(from, to string) string {
	if from == "" && to == "" {
		return ""
	}
	return format.Date(format.OrPlaceholder(from)) + " - " + format.Date(format.OrPlaceholder(to))
}

func details(fa Fa) layout.Node {
	return layout.NewSection(document.SectionDetails, "Szczegóły",
		format.Required("Data wystawienia", format.Date(fa.IssueDate)),
		format.Optional("Miejsce wystawienia", fa.IssuePlace),
		format.Optional("Data dokonania lub zakończenia dostawy", format.Date(fa.SaleDate)),
		format.Optional("Okres, którego dotyczy faktura", period(fa.PeriodFrom, fa.PeriodTo)),
		format.Required("Kod waluty", fa.Currency),
		format.Optional("Kurs waluty", fa.ExchangeRate),
		format.Optional("Numery WZ", format.Join(", ", fa.WZ...)),
		format.OptionalFlag("Faktura wystawiona do paragonu", fa.Receipt),
		format.OptionalFlag("Transakcja pomiędzy podmiotami powiązanymi", fa.Related),
	)
}

var correctedColumns = []layout.Column{
	{Header: "Numer faktury korygowanej", Width: 2},
	{Header: "Data wystawienia", Width: 1},
	{Header: "Numer KSeF faktury korygowanej", Width: 3},
}

func correction(fa Fa) layout.Node {
	c := fa.Correction
	var rows [][]string
	for _, i := range c.Invoices {
		rows = append(rows, []string{
			format.OrPlaceholder(i.Number),
			format.OrPlaceholder(format.Date(i.IssueDate)),
			format.OrPlaceholder(i.RegistryNumber),
		})
	}
	return layout.OptionalSection(document.SectionCorrection, "Dane faktury korygowanej",
		format.Optional("Przyczyna korekty", c.Reason),
		format.Optional("Typ skutku korekty", format.CorrectionType(c.Type)),
		format.Table(correctedColumns, rows),
		format.Optional("Okres, którego dotyczy rabat", c.Period),
		format.Optional("Poprawny numer faktury korygowanej", c.CorrectedNumber),
		format.Optional("Kwota należności przed korektą", format.AmountWithCurrency(c.TotalBefore, fa.Currency)),
		format.Optional("Kurs waluty przed korektą", c.RateBefore),
	)
}

func items(fa Fa) layout.Node {
	if len(fa.Lines) == 0 {
		return nil
	}
	var netPrice, netValue, discount, gtin, pkwiu, rate bool
	for _, l := range fa.Lines {
		netPrice = netPrice || l.NetPrice != ""
		netValue = netValue || l.NetValue != ""
		discount = discount || l.Discount != ""
		gtin = gtin || l.GTIN != ""
		pkwiu = pkwiu || l.PKWiU != ""
		rate = rate || l.ExchangeRate != ""
	}

	cols := []layout.Column{
		{Header: "Lp.", Width: 0.6},
		{Header: "Nazwa towaru lub usługi", Width: 5},
	}
	if gtin {
		cols = append(cols, layout.Column{Header: "GTIN", Width: 1.4})
	}
	if pkwiu {
		cols = append(cols, layout.Column{Header: "PKWiU", Width: 1.2})
	}
	priceHeader := "Cena jedn. brutto"
	if netPrice {
		priceHeader = "Cena jedn. netto"
	}
	cols = append(cols,
		layout.Column{Header: "J.m.", Width: 0.8},
		layout.Column{Header: "Ilość", Width: 1, Align: layout.AlignRight},
		layout.Column{Header: priceHeader, Width: 1.4, Align: layout.AlignRight},
	)
	if discount {
		cols = append(cols, layout.Column{Header: "Rabat", Width: 1, Align: layout.AlignRight})
	}
	valueHeader := "Wartość brutto"
	if netValue {
		valueHeader = "Wartość netto"
	}
	cols = append(cols,
		layout.Column{Header: valueHeader, Width: 1.4, Align: layout.AlignRight},
		layout.Column{Header: "Stawka podatku", Width: 1},
	)
	if rate {
		cols = append(cols, layout.Column{Header: "Kurs waluty", Width: 1, Align: layout.AlignRight})
	}

	rows := make([][]string, 0, len(fa.Lines))
	for i, l := range fa.Lines {
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
		row := []string{lp, name}
		if gtin {
			row = append(row, l.GTIN)
		}
		if pkwiu {
			row = append(row, l.PKWiU)
		}
		row = append(row, l.Unit, format.Quantity(l.Quantity), format.Amount(price))
		if discount {
			row = append(row, format.Amount(l.Discount))
		}
		row = append(row, format.Amount(value), format.VATRate(l.Rate))
		if rate {
			row = append(row, l.ExchangeRate)
		}
		rows = append(rows, row)
	}
	return layout.OptionalSection(document.SectionItems, "Pozycje", format.Table(cols, rows))
}

func advancePayments(fa Fa) layout.Node {
	var rows [][]string
	for _, a := range fa.Advances {
		rows = append(rows, []string{format.Date(a.Date), format.AmountWithCurrency(a.Amount, fa.Currency), a.Rate})
	}
	cols := []layout.Column{
		{Header: "Data otrzymania zapłaty"},
		{Header: "Kwota zapłaty", Align: layout.AlignRight},
		{Header: "Kurs waluty", Align: layout.AlignRight},
	}
	return layout.OptionalSection(document.SectionAdvancePayments, "Zaliczki częściowe", format.Table(cols, rows))
}

func advanceInvoices(fa Fa) layout.Node {
	var rows [][]string
	for _, a := range fa.AdvanceFa {
		rows = append(rows, []string{format.OrPlaceholder(a.RegistryNumber), format.OrPlaceholder(a.Number)})
	}
	cols := []layout.Column{{Header: "Numer KSeF faktury zaliczkowej", Width: 3}, {Header: "Numer faktury zaliczkowej", Width: 2}}
	return layout.OptionalSection(document.SectionAdvanceInvoices, "Faktury zaliczkowe", format.Table(cols, rows))
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

func descriptions(list []Description) layout.Node {
	var withLine bool
	for _, d := range list {
		withLine = withLine || d.Line != ""
	}
	var cols []layout.Column
	if withLine {
		cols = append(cols, layout.Column{Header: "Numer wiersza", Width: 1})
	}
	cols = append(cols, layout.Column{Header: "Rodzaj informacji", Width: 2}, layout.Column{Header: "Treść informacji", Width: 4})
	var rows [][]string
	for _, d := range list {
		var row []string
		if withLine {
			row = append(row, d.Line)
		}
		rows = append(rows, append(row, d.Key, d.Value))
	}
	return layout.OptionalSection(document.SectionDescriptions, "Dodatkowy opis", format.Table(cols, rows))
}

var accountColumns = []layout.Column{
	{Header: "Numer rachunku", Width: 3},
	{Header: "SWIFT", Width: 1},
	{Header: "Nazwa banku", Width: 2},
	{Header: "Opis rachunku", Width: 2},
}

func accounts(list []BankAccount) layout.Node {
	var rows [][]string
	for _, a := range list {
		rows = append(rows, []string{format.OrPlaceholder(a.Number), a.SWIFT, a.BankName, a.Description})
	}
	return format.Table(accountColumns, rows)
}

func payment(p *Payment, currency string) layout.Node {
	if p == nil {
		return nil
	}
	var paid layout.Node
	if format.IsSet(p.Paid) {
		paid = format.Required("Zapłacono", format.Date(p.PaidDate))
	}
	var partial, due [][]string
	for _, z := range p.Partial {
		partial = append(partial, []string{format.AmountWithCurrency(z.Amount, currency), format.Date(z.Date), z.Method})
	}
	for _, d := range p.DueDates {
		due = append(due, []string{format.OrPlaceholder(format.Date(d.Date)), format.Join(" ", d.Amount, d.Unit, d.Event)})
	}
	return layout.OptionalSection(document.SectionPayment, "Płatność",
		paid,
		format.OptionalFlag("Zapłata częściowa", p.PartialPaid),
		format.Table([]layout.Column{
			{Header: "Kwota zapłaty częściowej", Align: layout.AlignRight},
			{Header: "Data zapłaty częściowej"},
			{Header: "Forma płatności"},
		}, partial),
		format.Table([]layout.Column{{Header: "Termin płatności"}, {Header: "Opis terminu", Width: 2}}, due),
		format.Optional("Forma płatności", format.PaymentMethod(p.Method)),
		format.Optional("Inna forma płatności", p.OtherMethod),
		format.Group("Rachunek bankowy", accounts(p.Accounts)),
		format.Group("Rachunek bankowy faktora", accounts(p.FactorAccounts)),
		format.Optional("Warunki skonta", p.DiscountTerms),
		format.Optional("Wysokość skonta", p.DiscountAmount),
		format.Optional("Link do płatności", p.Link),
		format.Optional("Identyfikator płatności KSeF", p.IPKSeF),
	)
}

func amounts(list []Amount, currency string) [][]string {
	var rows [][]string
	for _, a := range list {
		rows = append(rows, []string{a.Reason, format.AmountWithCurrency(a.Amount, currency)})
	}
	return rows
}

func settlement(s *Settlement, currency string) layout.Node {
	if s == nil {
		return nil
	}
	cols := []layout.Column{{Header: "Powód", Width: 3}, {Header: "Kwota", Width: 1, Align: layout.AlignRight}}
	return layout.OptionalSection(document.SectionSettlement, "Rozliczenie",
		format.Group("Obciążenia", format.Table(cols, amounts(s.Charges, currency))),
		format.Optional("Suma obciążeń", format.AmountWithCurrency(s.ChargesSum, currency)),
		format.Group("Odliczenia", format.Table(cols, amounts(s.Deductions, currency))),
		format.Optional("Suma odliczeń", format.AmountWithCurrency(s.DeductionsSum, currency)),
		format.Optional("Do zapłaty", format.AmountWithCurrency(s.ToPay, currency)),
		format.Optional("Do rozliczenia", format.AmountWithCurrency(s.ToSettle, currency)),
	)
}

func dated(list []Dated) [][]string {
	var rows [][]string
	for _, d := range list {
		rows = append(rows, []string{format.Date(d.Date), d.Number})
	}
	return rows
}

func terms(t *Terms) layout.Node {
	if t == nil {
		return nil
	}
	return layout.OptionalSection(document.SectionTerms, "Warunki transakcji",
		format.Table([]layout.Column{{Header: "Data umowy"}, {Header: "Numer umowy", Width: 3}}, dated(t.Contracts)),
		format.Table([]layout.Column{{Header: "Data zamówienia"}, {Header: "Numer zamówienia", Width: 3}}, dated(t.Orders)),
		format.Optional("Numery partii towaru", format.Join(", ", t.Batches...)),
		format.Optional("Warunki dostawy", t.DeliveryTerms),
		format.Optional("Kurs umowny", t.ContractRate),
		format.Optional("Waluta umowna", t.ContractCurrency),
	)
}

func order(o *Order, currency string) layout.Node {
	if o == nil {
		return nil
	}
	cols := []layout.Column{
		{Header: "Nazwa towaru lub usługi", Width: 4},
		{Header: "J.m.", Width: 0.8},
		{Header: "Ilość", Align: layout.AlignRight},
		{Header: "Cena jedn. netto", Align: layout.AlignRight},
		{Header: "Wartość netto", Align: layout.AlignRight},
		{Header: "Stawka podatku"},
	}
	var rows [][]string
	for _, l := range o.Lines {
		rows = append(rows, []string{
			format.OrPlaceholder(l.Name), l.Unit, format.Quantity(l.Quantity),
			format.Amount(l.NetPrice), format.Amount(l.NetValue), format.VATRate(l.Rate),
		})
	}
	return layout.OptionalSection(document.SectionOrder, "Zamówienie",
		format.Optional("Wartość zamówienia", format.AmountWithCurrency(o.Value, currency)),
		format.Table(cols, rows),
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

func keyValueTable(list []KeyValue) layout.Node {
	var rows [][]string
	for _, kv := range list {
		rows = append(rows, []string{kv.Key, kv.Value})
	}
	return format.Table([]layout.Column{{Header: "Klucz", Width: 2}, {Header: "Wartość", Width: 4}}, rows)
}

func dataTable(t DataTable) layout.Node {
	width := len(t.Columns)
	for _, r := range t.Rows {
		width = max(width, len(r))
	}
	if width == 0 {
		return nil
	}
	cols := make([]layout.Column, width)
	for i := range cols {
		if i < len(t.Columns) {
			cols[i].Header = t.Columns[i]
		}
	}
	rows := make([][]string, 0, len(t.Rows)+1)
	for _, r := range t.Rows {
		rows = append(rows, append(r, make([]string, width-len(r))...))
	}
	if len(t.Sums) > 0 {
		rows = append(rows, append(t.Sums, make([]string, max(0, width-len(t.Sums)))...)[:width])
	}
	return layout.OptionalStack(keyValueTable(t.Meta), format.Optional("Opis", t.Description), format.Table(cols, rows))
}

func attachment(blocks []DataBlock) layout.Node {
	var items []layout.Node
	for i, b := range blocks {
		title := b.Header
		if title == "" {
			title = "Blok danych " + strconv.Itoa(i+1)
		}
		parts := []layout.Node{keyValueTable(b.Meta)}
		for _, p := range b.Paragraphs {
			parts = append(parts, layout.NewText(p))
		}
		for _, t := range b.Tables {
			parts = append(parts, dataTable(t))
		}
		items = append(items, format.Group(title, parts...))
	}
	return layout.OptionalSection(document.SectionAttachment, "Załącznik do faktury", items...)
}
