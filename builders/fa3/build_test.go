package fa3

import (
	"errors"
	"strings"
	"testing"

	"ksefpdf/common"
	"ksefpdf/document"
	"ksefpdf/layout"
	"ksefpdf/xmltree"
)

const minimal = `<?xml version="1.0" encoding="UTF-8"?>
<Faktura xmlns="http://crd.gov.pl/wzor/2025/06/25/13775/">
  <Naglowek>
    <KodFormularza kodSystemowy="FA (3)" wersjaSchemy="1-0E">FA</KodFormularza>
    <WariantFormularza>3</WariantFormularza>
    <DataWytworzeniaFa>2024-01-15T10:00:00Z</DataWytworzeniaFa>
  </Naglowek>
  <Podmiot1>
    <DaneIdentyfikacyjne><NIP>5265877635</NIP><Nazwa>Sprzedawca Sp. z o.o.</Nazwa></DaneIdentyfikacyjne>
    <Adres><KodKraju>PL</KodKraju><AdresL1>ul. Prosta 1</AdresL1><AdresL2>00-001 Warszawa</AdresL2></Adres>
  </Podmiot1>
  <Podmiot2>
    <DaneIdentyfikacyjne><NIP>7740001454</NIP><Nazwa>Nabywca S.A.</Nazwa></DaneIdentyfikacyjne>
    <JST>{{jst}}</JST>
    <GV>2</GV>
  </Podmiot2>
  {{faktura}}
  <Fa>
    <KodWaluty>PLN</KodWaluty>
    <P_1>2024-01-15</P_1>
    <P_2>FV/1/2024</P_2>
    <P_15>123.00</P_15>
    <Adnotacje>
      <P_16>2</P_16><P_17>2</P_17><P_18>2</P_18><P_18A>{{mpp}}</P_18A>
      <Zwolnienie><P_19N>1</P_19N></Zwolnienie>
      <NoweSrodkiTransportu><P_22N>1</P_22N></NoweSrodkiTransportu>
      <P_23>2</P_23>
      <PMarzy><P_PMarzyN>1</P_PMarzyN></PMarzy>
    </Adnotacje>
    <RodzajFaktury>VAT</RodzajFaktury>
    {{fa}}
  </Fa>
</Faktura>`

type fixture struct {
	fa, faktura, mpp, jst string
}

func orNo(flag string) string {
	if flag == "" {
		return "2"
	}
	return flag
}

func (f fixture) xml() string {
	return strings.NewReplacer(
		"{{fa}}", f.fa,
		"{{faktura}}", f.faktura,
		"{{mpp}}", orNo(f.mpp),
		"{{jst}}", orNo(f.jst),
	).Replace(minimal)
}

func build(t *testing.T, f fixture, add document.AdditionalData) layout.Node {
	t.Helper()
	raw, err := xmltree.ParseString(f.xml())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n, err := Build(xmltree.Normalize(raw), add)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return n
}

func optionalSections(n layout.Node) []string {
	var ids []string
	for _, s := range layout.Sections(n) {
		if document.IsOptionalSection(s.ID) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func TestMandatoryOnly(t *testing.T) {
	n := build(t, fixture{}, document.AdditionalData{})
	if ids := optionalSections(n); len(ids) != 0 {
		t.Fatalf("expected no optional sections, got %v", ids)
	}
	text := layout.PlainText(n)
	for _, want := range []string{
		"Faktura podstawowa",
		"Numer faktury: FV/1/2024",
		"Numer KSeF: " + document.NoRegistryNumber,
		"NIP: 5265877635",
		"Adres: ul. Prosta 1, 00-001 Warszawa",
		"Nazwa: Nabywca S.A.",
		"Data wystawienia: 15.01.2024",
		"Kwota należności ogółem: 123.00 PLN",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("%q not found in\n%s", want, text)
		}
	}
	for _, absent := range []string{
		"Miejsce wystawienia", "Kurs waluty", "Numery WZ", "Adnotacje", "Płatność",
		"Metoda kasowa", "Mechanizm podzielonej płatności", "Adres korespondencyjny", "E-mail",
		"Jednostka podrzędna JST", "Członek grupy VAT", "Załącznik",
	} {
		if strings.Contains(text, absent) {
			t.Errorf("suppressed label %q present", absent)
		}
	}
	for _, id := range []string{document.SectionHeader, document.SectionParties, document.SectionDetails, document.SectionSummary} {
		if layout.FindSection(n, id) == nil {
			t.Errorf("mandatory section %q missing", id)
		}
	}
}

func TestOptionalFieldAddsOneNode(t *testing.T) {
	tests := []struct {
		name    string
		fix     fixture
		section string
		text    string
	}{
		{"place", fixture{fa: `<P_1M>Kraków</P_1M>`}, "", "Miejsce wystawienia: Kraków"},
		{"period", fixture{fa: `<OkresFa><P_6_Od>2024-01-01</P_6_Od><P_6_Do>2024-01-31</P_6_Do></OkresFa>`}, "", "01.01.2024 - 31.01.2024"},
		{"rate", fixture{fa: `<P_13_1>100.00</P_13_1><P_14_1>23.00</P_14_1>`}, "", "23% lub 22%"},
		{"zero rate split", fixture{fa: `<P_13_6_2>40</P_13_6_2>`}, "", "0% (WDT)"},
		{"split payment", fixture{mpp: "1"}, document.SectionAnnotations, "Mechanizm podzielonej płatności"},
		{"items", fixture{fa: `<FaWiersz><NrWierszaFa>1</NrWierszaFa><P_7>Usługa doradcza</P_7><P_8A>h</P_8A><P_8B>2</P_8B><P_9A>50</P_9A><P_11>100</P_11><P_12>23</P_12></FaWiersz>`}, document.SectionItems, "Usługa doradcza"},
		{"correction", fixture{fa: `<PrzyczynaKorekty>Błędna cena</PrzyczynaKorekty>`}, document.SectionCorrection, "Przyczyna korekty: Błędna cena"},
		{"advance payment", fixture{fa: `<ZaliczkaCzesciowa><P_6Z>2024-01-10</P_6Z><P_15Z>50</P_15Z></ZaliczkaCzesciowa>`}, document.SectionAdvancePayments, "50.00 PLN"},
		{"advance invoice", fixture{fa: `<FakturaZaliczkowa><NrFaZaliczkowej>ZAL/7</NrFaZaliczkowej></FakturaZaliczkowa>`}, document.SectionAdvanceInvoices, "ZAL/7"},
		{"description", fixture{fa: `<DodatkowyOpis><Klucz>Projekt</Klucz><Wartosc>Alfa</Wartosc></DodatkowyOpis>`}, document.SectionDescriptions, "Projekt"},
		{"payment", fixture{fa: `<Platnosc><FormaPlatnosci>6</FormaPlatnosci></Platnosc>`}, document.SectionPayment, "Forma płatności: Przelew"},
		{"settlement", fixture{fa: `<Rozliczenie><DoZaplaty>10</DoZaplaty></Rozliczenie>`}, document.SectionSettlement, "Do zapłaty: 10.00 PLN"},
		{"terms", fixture{fa: `<WarunkiTransakcji><WarunkiDostawy>FCA</WarunkiDostawy></WarunkiTransakcji>`}, document.SectionTerms, "Warunki dostawy: FCA"},
		{"order", fixture{fa: `<Zamowienie><WartoscZamowienia>500</WartoscZamowienia></Zamowienie>`}, document.SectionOrder, "Wartość zamówienia: 500.00 PLN"},
		{"third party", fixture{faktura: `<Podmiot3><DaneIdentyfikacyjne><NIP>1111111111</NIP><Nazwa>Odbiorca</Nazwa></DaneIdentyfikacyjne><Rola>2</Rola></Podmiot3>`}, document.SectionThirdParties, "Rola: Odbiorca"},
		{"authorized", fixture{faktura: `<PodmiotUpowazniony><DaneIdentyfikacyjne><NIP>2222222222</NIP><Nazwa>Kancelaria</Nazwa></DaneIdentyfikacyjne><RolaPU>2</RolaPU></PodmiotUpowazniony>`}, document.SectionAuthorized, "Rola: Komornik sądowy"},
		{"footer", fixture{faktura: `<Stopka><Rejestry><KRS>0000123456</KRS></Rejestry></Stopka>`}, document.SectionFooter, "0000123456"},
		{"jst buyer", fixture{jst: "1"}, "", "Jednostka podrzędna JST"},
		{"payment link", fixture{fa: `<Platnosc><LinkDoPlatnosci>https://pay.example.com/1</LinkDoPlatnosci></Platnosc>`}, document.SectionPayment, "Link do płatności: https://pay.example.com/1"},
		{"payment ipksef", fixture{fa: `<Platnosc><IPKSeF>A1B2C3D4E5F6G7</IPKSeF></Platnosc>`}, document.SectionPayment, "Identyfikator płatności KSeF: A1B2C3D4E5F6G7"},
		{"attachment", fixture{faktura: `<Zalacznik><BlokDanych><ZNaglowek>Harmonogram dostaw</ZNaglowek><MetaDane><ZKlucz>Umowa</ZKlucz><ZWartosc>U/1</ZWartosc></MetaDane></BlokDanych></Zalacznik>`}, document.SectionAttachment, "Harmonogram dostaw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := build(t, tt.fix, document.AdditionalData{})
			if c := strings.Count(layout.PlainText(n), tt.text); c != 1 {
				t.Fatalf("%q found %d times", tt.text, c)
			}
			ids := optionalSections(n)
			if tt.section == "" {
				if len(ids) != 0 {
					t.Fatalf("unexpected optional sections %v", ids)
				}
				return
			}
			if len(ids) != 1 || ids[0] != tt.section {
				t.Fatalf("expected only %q, got %v", tt.section, ids)
			}
			if !strings.Contains(layout.PlainText(layout.FindSection(n, tt.section)), tt.text) {
				t.Errorf("%q not in section %q", tt.text, tt.section)
			}
		})
	}
}

func TestItemColumns(t *testing.T) {
	n := build(t, fixture{fa: `
    <FaWiersz><P_7>A</P_7><P_8B>1.000</P_8B><P_9B>123</P_9B><P_10>5</P_10><P_11A>118</P_11A><P_12>23</P_12></FaWiersz>
    <FaWiersz><P_7>B</P_7><P_8B>2</P_8B><P_9B>10</P_9B><P_11A>20</P_11A><P_12>zw</P_12><StanPrzed>1</StanPrzed></FaWiersz>`}, document.AdditionalData{})
	s := layout.FindSection(n, document.SectionItems)
	if s == nil {
		t.Fatal("no items section")
	}
	tbl := s.Items[0].(*layout.Table)
	var headers []string
	for _, c := range tbl.Columns {
		headers = append(headers, c.Header)
	}
	want := "Lp.|Nazwa towaru lub usługi|J.m.|Ilość|Cena jedn. brutto|Rabat|Wartość brutto|Stawka podatku"
	if got := strings.Join(headers, "|"); got != want {
		t.Errorf("got columns %s", got)
	}
	row := layout.Texts(&layout.Stack{Items: tbl.Rows[1]})
	if row[0] != "2" || row[1] != "B (stan przed korektą)" || row[3] != "2" || row[5] != "" || row[7] != "zw" {
		t.Errorf("unexpected row %q", row)
	}
}

func TestHeaderRegistryAndQR(t *testing.T) {
	add := document.AdditionalData{
		RegistryNumber: "5265877635-20240115-0100A0B1C2D3-4E",
		QRCode:         "https://ksef.mf.gov.pl/web/verify/abc",
	}
	n := build(t, fixture{}, add)
	h := layout.FindSection(n, document.SectionHeader)
	var qr *layout.QRCode
	layout.Walk(h, func(n layout.Node) bool {
		if q, ok := n.(*layout.QRCode); ok {
			qr = q
		}
		return true
	})
	if qr == nil || qr.Payload != add.QRCode || qr.Caption != add.RegistryNumber {
		t.Errorf("unexpected qr block %#v", qr)
	}
	if !strings.Contains(layout.PlainText(h), "Numer KSeF: "+add.RegistryNumber) {
		t.Error("registry number not shown")
	}
}

func TestMissingMandatoryValue(t *testing.T) {
	raw, err := xmltree.ParseString(strings.Replace(fixture{}.xml(), "<P_2>FV/1/2024</P_2>", "", 1))
	if err != nil {
		t.Fatal(err)
	}
	n, err := Build(xmltree.Normalize(raw), document.AdditionalData{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(layout.PlainText(n), "Numer faktury: -") {
		t.Error("placeholder not rendered for missing invoice number")
	}
}

func TestMissingStructure(t *testing.T) {
	tests := []struct {
		name string
		root *xmltree.Node
	}{
		{"no faktura", xmltree.NewNode().Append("Potwierdzenie", xmltree.NewNode())},
		{"no fa", xmltree.NewNode().Append("Faktura", xmltree.NewNode().Append("Podmiot1", xmltree.NewNode()))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.root, document.AdditionalData{}); !errors.Is(err, common.ErrMissingRequiredStructure) {
				t.Errorf("expected missing structure, got %v", err)
			}
		})
	}
}

func TestIndexColumns(t *testing.T) {
	n := build(t, fixture{fa: `
    <FaWiersz><P_7>Mleko</P_7><GTIN>5901234123457</GTIN><P_8A>szt</P_8A><P_8B>3</P_8B><P_9A>4</P_9A><P_11>12</P_11><P_12>5</P_12></FaWiersz>
    <FaWiersz><P_7>Chleb</P_7><P_8A>szt</P_8A><P_8B>1</P_8B><P_9A>6</P_9A><P_11>6</P_11><P_12>5</P_12></FaWiersz>`}, document.AdditionalData{})
	tbl := layout.FindSection(n, document.SectionItems).Items[0].(*layout.Table)
	var headers []string
	for _, c := range tbl.Columns {
		headers = append(headers, c.Header)
	}
	want := "Lp.|Nazwa towaru lub usługi|GTIN|J.m.|Ilość|Cena jedn. netto|Wartość netto|Stawka podatku"
	if got := strings.Join(headers, "|"); got != want {
		t.Errorf("got columns %s", got)
	}
	if len(tbl.Rows[1]) != len(tbl.Columns) {
		t.Errorf("row without GTIN has %d cells", len(tbl.Rows[1]))
	}
}

func TestDueDateDescription(t *testing.T) {
	n := build(t, fixture{fa: `<Platnosc><TerminPlatnosci><TerminOpis><Ilosc>14</Ilosc><Jednostka>dni</Jednostka><ZdarzeniePoczatkowe>od dostawy</ZdarzeniePoczatkowe></TerminOpis></TerminPlatnosci></Platnosc>`}, document.AdditionalData{})
	text := layout.PlainText(layout.FindSection(n, document.SectionPayment))
	if !strings.Contains(text, "14 dni od dostawy") {
		t.Errorf("due date description missing in\n%s", text)
	}
}

func TestAttachmentTable(t *testing.T) {
	n := build(t, fixture{faktura: `<Zalacznik><BlokDanych>
      <ZNaglowek>Odczyty</ZNaglowek>
      <Tekst><Akapit>Odczyty liczników za styczeń.</Akapit></Tekst>
      <Tabela>
        <TNaglowek><Kol><NKom>Licznik</NKom></Kol><Kol><NKom>Zużycie</NKom></Kol></TNaglowek>
        <Wiersz><WKom>L-1</WKom><WKom>120</WKom></Wiersz>
        <Wiersz><WKom>L-2</WKom></Wiersz>
        <Suma><SKom>Razem</SKom><SKom>120</SKom></Suma>
      </Tabela>
    </BlokDanych></Zalacznik>`}, document.AdditionalData{})
	s := layout.FindSection(n, document.SectionAttachment)
	if s == nil {
		t.Fatal("attachment section missing")
	}
	var tbl *layout.Table
	layout.Walk(s, func(n layout.Node) bool {
		if v, ok := n.(*layout.Table); ok && len(v.Columns) == 2 && v.Columns[0].Header == "Licznik" {
			tbl = v
		}
		return true
	})
	if tbl == nil {
		t.Fatal("data table missing")
	}
	if len(tbl.Rows) != 3 || len(tbl.Rows[1]) != 2 {
		t.Errorf("unexpected rows %d", len(tbl.Rows))
	}
	if !strings.Contains(layout.PlainText(s), "Odczyty liczników za styczeń.") {
		t.Error("paragraph missing")
	}
}
