package format

import "strings"

type codeTable map[string]string

func (t codeTable) label(code string) string {
	if l, ok := t[strings.TrimSpace(code)]; ok {
		return l
	}
	return code
}

var vatRates = codeTable{
	"23":    "23%",
	"22":    "22%",
	"8":     "8%",
	"7":     "7%",
	"5":     "5%",
	"4":     "4%",
	"3":     "3%",
	"0":     "0%",
	"0 KR":  "0% (kraj)",
	"0 WDT": "0% (WDT)",
	"0 EX":  "0% (eksport)",
	"zw":    "zw",
	"oo":    "oo",
	"np":    "np",
	"np I":  "np (poza krajem)",
	"np II": "np (art. 100 ust. 1 pkt 4)",
}

// VATRate returns label for tax rate code (P_12).
func VATRate(code string) string {
	return vatRates.label(code)
}

var invoiceKinds = codeTable{
	"VAT":     "Faktura podstawowa",
	"KOR":     "Faktura korygująca",
	"ZAL":     "Faktura zaliczkowa",
	"ROZ":     "Faktura rozliczeniowa",
	"UPR":     "Faktura uproszczona",
	"KOR_ZAL": "Faktura korygująca fakturę zaliczkową",
	"KOR_ROZ": "Faktura korygująca fakturę rozliczeniową",
}

// InvoiceKind returns label for RodzajFaktury.
func InvoiceKind(code string) string {
	return invoiceKinds.label(code)
}

// IsCorrection reports whether RodzajFaktury denotes correcting invoice.
func IsCorrection(code string) bool {
	return strings.HasPrefix(strings.TrimSpace(code), "KOR")
}

var paymentMethods = codeTable{
	"1": "Gotówka",
	"2": "Karta",
	"3": "Bon",
	"4": "Czek",
	"5": "Kredyt",
	"6": "Przelew",
	"7": "Mobilna",
}

// PaymentMethod returns label for FormaPlatnosci.
func PaymentMethod(code string) string {
	return paymentMethods.label(code)
}

var correctionTypes = codeTable{
	"1": "Korekta skutkująca w dacie ujęcia faktury pierwotnej",
	"2": "Korekta skutkująca w dacie wystawienia faktury korygującej",
	"3": "Korekta skutkująca w dacie innej, w tym gdy dla różnych pozycji faktury korygującej daty te są różne",
}

// CorrectionType returns label for TypKorekty.
func CorrectionType(code string) string {
	return correctionTypes.label(code)
}

var thirdPartyRoles = codeTable{
	"1":  "Faktor",
	"2":  "Odbiorca",
	"3":  "Podmiot pierwotny",
	"4":  "Dodatkowy nabywca",
	"5":  "Wystawca faktury",
	"6":  "Dokonujący płatności",
	"7":  "Jednostka samorządu terytorialnego - wystawca",
	"8":  "Jednostka samorządu terytorialnego - odbiorca",
	"9":  "Członek grupy VAT - wystawca",
	"10": "Członek grupy VAT - odbiorca",
	"11": "Pracownik",
}

// ThirdPartyRole returns label for Podmiot3 Rola.
func ThirdPartyRole(code string) string {
	return thirdPartyRoles.label(code)
}

var authorizedRoles = codeTable{
	"1": "Organ egzekucyjny",
	"2": "Komornik sądowy",
	"3": "Przedstawiciel podatkowy",
}

// AuthorizedRole returns label for PodmiotUpowazniony RolaPU.
func AuthorizedRole(code string) string {
	return authorizedRoles.label(code)
}

var taxpayerStatuses = codeTable{
	"1": "Stan likwidacji",
	"2": "Postępowanie restrukturyzacyjne",
	"3": "Stan upadłości",
	"4": "Przedsiębiorstwo w spadku",
}

// TaxpayerStatus returns label for StatusInfoPodatnika.
func TaxpayerStatus(code string) string {
	return taxpayerStatuses.label(code)
}
