// Package fa1 builds layout of invoices in the first KSeF schema, FA(1).
// Addresses are structured there and party names are kept in PelnaNazwa.
package fa1

type Invoice struct {
	Seller       Party
	Buyer        Party
	ThirdParties []ThirdParty
	Fa           Fa
	Footer       Footer
}

// DomesticAddress is AdresPol.
type DomesticAddress struct {
	Street     string
	House      string
	Flat       string
	City       string
	PostalCode string
	Post       string
}

// ForeignAddress is AdresZagr.
type ForeignAddress struct {
	Line1 string
	Line2 string
}

type Address struct {
	CountryCode string
	Domestic    *DomesticAddress
	Foreign     *ForeignAddress
}

type Party struct {
	VatPrefix      string
	EORI           string
	NIP            string
	EUCode         string
	EUVatNumber    string
	CountryCode    string
	TaxID          string
	NoID           bool
	FullName       string
	TradeName      string
	Address        *Address
	Correspondence *Address
	Email          string
	Phone          string
	ClientNumber   string
	Status         string
}

type ThirdParty struct {
	Party
	Role            string
	OtherRole       bool
	RoleDescription string
	Share           string
}

type RateTotal struct {
	Label  string
	Net    string
	Tax    string
	TaxPLN string
}

type Fa struct {
	Currency     string
	IssueDate    string
	IssuePlace   string
	Number       string
	SaleDate     string
	PeriodFrom   string
	PeriodTo     string
	Rates        []RateTotal
	Total        string
	ExchangeRate string
	Annotations  Annotations
	Kind         string
	Correction   Correction
	Receipt      string
	Related      string
	Descriptions []KeyValue
	Lines        []Line
	Payment      *Payment
}

type Annotations struct {
	CashMethod     string
	SelfBilling    string
	ReverseCharge  string
	SplitPayment   string
	Exemption      string
	ExemptionBasis string
	NewTransport   string
	Simplified     string
	Margin         string
	MarginKind     string
}

type CorrectedInvoice struct {
	IssueDate      string
	Number         string
	RegistryNumber string
}

type Correction struct {
	Reason   string
	Type     string
	Invoices []CorrectedInvoice
}

type KeyValue struct {
	Key   string
	Value string
}

type Line struct {
	Number     string
	Name       string
	Unit       string
	Quantity   string
	NetPrice   string
	GrossPrice string
	NetValue   string
	GrossValue string
	Rate       string
	Before     bool
}

type DueDate struct {
	Date        string
	Description string
}

type BankAccount struct {
	Number   string
	SWIFT    string
	BankName string
}

type Payment struct {
	Paid        string
	PaidDate    string
	DueDates    []DueDate
	Method      string
	OtherMethod string
	Accounts    []BankAccount
}

type Footer struct {
	Texts      []string
	Registries []Registry
}

type Registry struct {
	Name  string
	KRS   string
	REGON string
	BDO   string
}
