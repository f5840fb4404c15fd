package fa1

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
<Faktura xmlns="http://crd.gov.pl/wzor/2021/11/29/11089/">
  <Naglowek>
    <KodFormularza kodSystemowy="FA (1)" wersjaSchemy="1-0E">FA</KodFormularza>
    <WariantFormularza>1</WariantFormularza>
    <DataWytworzeniaFa>2023-03-01T08:00:00Z</DataWytworzeniaFa>
  </Naglowek>
  <Podmiot1>
    <DaneIdentyfikacyjne><NIP>5265877635</NIP><PelnaNazwa>Sprzedawca Sp. z o.o.</PelnaNazwa></DaneIdentyfikacyjne>
    <Adres><AdresPol>
      <KodKraju>PL</KodKraju><Ulica>Prosta</Ulica><NrDomu>1</NrDomu><NrLokalu>2</NrLokalu>
      <Miejscowosc>Warszawa</Miejscowosc><KodPocztowy>00-001</KodPocztowy>
    </AdresPol></Adres>
  </Podmiot1>
  <Podmiot2>
    <DaneIdentyfikacyjne><NIP>7740001454</NIP><PelnaNazwa>Nabywca S.A.</PelnaNazwa></DaneIdentyfikacyjne>
    <Adres><AdresZagr><KodKraju>DE</KodKraju><AdresL1>Hauptstr. 5</AdresL1><AdresL2>10115 Berlin</AdresL2></AdresZagr></Adres>
  </Podmiot2>
  {{faktura}}
  <Fa>
    <KodWaluty>PLN</KodWaluty>
    <P_1>2023-03-01</P_1>
    <P_2>FV/3/2023</P_2>
    <P_15>246.00</P_15>
    <Adnotacje>
      <P_16>2</P_16><P_17>2</P_17><P_18>2</P_18><P_18A>2</P_18A><P_22>2</P_22><P_23>2</P_23>
      {{ann}}
    </Adnotacje>
    <RodzajFaktury>VAT</RodzajFaktury>
    {{fa}}
  </Fa>
</Faktura>`

type fixture struct {
	fa, faktura, ann string
}

func build(t *testing.T, f fixture) layout.Node {
	t.Helper()
	src := strings.NewReplacer("{{fa}}", f.fa, "{{faktura}}", f.faktura, "{{ann}}", f.ann).Replace(minimal)
	raw, err := xmltree.ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n, err := Build(xmltree.Normalize(raw), document.AdditionalData{})
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
	n := build(t, fixture{})
	if ids := optionalSections(n); len(ids) != 0 {
		t.Fatalf("expected no optional sections, got %v", ids)
	}
	text := layout.PlainText(n)
	for _, want := range []string{
		"Nazwa: Sprzedawca Sp. z o.o.",
		"Adres: Prosta 1/2, 00-001 Warszawa",
		"Adres: Hauptstr. 5, 10115 Berlin, Niemcy",
		"Numer KSeF: nie nadano",
		"Kwota należności ogółem: 246.00 PLN",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("%q not found in\n%s", want, text)
		}
	}
	for _, absent := range []string{"Nazwa handlowa", "Miejsce wystawienia", "Zwolnienie z podatku", "Procedura marży", "Telefon"} {
		if strings.Contains(text, absent) {
			t.Errorf("suppressed label %q present", absent)
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
		{"place", fixture{fa: `<P_1M>Gdańsk</P_1M>`}, "", "Miejsce wystawienia: Gdańsk"},
		{"sale date", fixture{fa: `<P_6>2023-02-28</P_6>`}, "", "Data dokonania lub zakończenia dostawy: 28.02.2023"},
		{"zero rate", fixture{fa: `<P_13_6>100</P_13_6>`}, "", "0%"},
		{"items", fixture{fa: `<FaWiersz><NrWierszaFa>1</NrWierszaFa><P_7>Śruby M8</P_7><P_8A>kg</P_8A><P_8B>2.500</P_8B><P_9A>80</P_9A><P_11>200</P_11><P_12>23</P_12></FaWiersz>`}, document.SectionItems, "Śruby M8"},
		{"exemption", fixture{ann: `<P_19>1</P_19><P_19A>art. 43 ust. 1 pkt 37</P_19A>`}, document.SectionAnnotations, "Zwolnienie z podatku: art. 43 ust. 1 pkt 37"},
		{"margin", fixture{ann: `<P_PMarzy>1</P_PMarzy><P_PMarzy_3_1>1</P_PMarzy_3_1>`}, document.SectionAnnotations, "Procedura marży: towary używane"},
		{"correction", fixture{fa: `<TypKorekty>1</TypKorekty>`}, document.SectionCorrection, "Typ skutku korekty: Korekta skutkująca w dacie ujęcia faktury pierwotnej"},
		{"description", fixture{fa: `<DodatkowyOpis><Klucz>Magazyn</Klucz><Wartosc>B2</Wartosc></DodatkowyOpis>`}, document.SectionDescriptions, "Magazyn"},
		{"payment", fixture{fa: `<Platnosc><Zaplacono>1</Zaplacono><DataZaplaty>2023-03-02</DataZaplaty></Platnosc>`}, document.SectionPayment, "Zapłacono: 02.03.2023"},
		{"bank account", fixture{fa: `<Platnosc><RachunekBankowy><NrRBPL>61109010140000071219812874</NrRBPL></RachunekBankowy></Platnosc>`}, document.SectionPayment, "61109010140000071219812874"},
		{"third party", fixture{faktura: `<Podmiot3><DaneIdentyfikacyjne><BrakID>1</BrakID><PelnaNazwa>Jan Kowalski</PelnaNazwa></DaneIdentyfikacyjne><Rola>4</Rola></Podmiot3>`}, document.SectionThirdParties, "Rola: Dodatkowy nabywca"},
		{"footer", fixture{faktura: `<Stopka><Informacje><StopkaFaktury>Dziękujemy za zakupy</StopkaFaktury></Informacje></Stopka>`}, document.SectionFooter, "Dziękujemy za zakupy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := build(t, tt.fix)
			if tt.section == "" {
				if ids := optionalSections(n); len(ids) != 0 {
					t.Fatalf("unexpected optional sections %v", ids)
				}
				if !strings.Contains(layout.PlainText(n), tt.text) {
					t.Fatalf("%q not found", tt.text)
				}
				return
			}
			if c := strings.Count(layout.PlainText(n), tt.text); c != 1 {
				t.Fatalf("%q found %d times", tt.text, c)
			}
			ids := optionalSections(n)
			if len(ids) != 1 || ids[0] != tt.section {
				t.Fatalf("expected only %q, got %v", tt.section, ids)
			}
		})
	}
}

func TestNaturalPersonName(t *testing.T) {
	n := build(t, fixture{faktura: `<Podmiot3><DaneIdentyfikacyjne><NIP>1234563218</NIP><ImiePierwsze>Anna</ImiePierwsze><Nazwisko>Nowak</Nazwisko></DaneIdentyfikacyjne><Rola>2</Rola></Podmiot3>`})
	if !strings.Contains(layout.PlainText(n), "Nazwa: Anna Nowak") {
		t.Error("name of natural person not composed")
	}
}

func TestMissingStructure(t *testing.T) {
	root := xmltree.NewNode().Append("Faktura", xmltree.NewNode().Append("Naglowek", xmltree.NewNode()))
	if _, err := Build(root, document.AdditionalData{}); !errors.Is(err, common.ErrMissingRequiredStructure) {
		t.Errorf("expected missing structure, got %v", err)
	}
}
