// Package fa2 builds layout of invoices in FA(2) schema.
package fa2

// Invoice is the part of FA(2) document which is shown on the printout.
type Invoice struct {
	Seller       Seller
	Buyer        Buyer
	ThirdParties []ThirdParty
	Authorized   *Authorized
	Fa           Fa
	Footer       Footer
}

type Address struct {
	CountryCode string
	Line1       string
	Line2       string
	GLN         string
}

type Contact struct {
	Email string
	Phone string
}

// Identity is DaneIdentyfikacyjne, only one of identifiers is present.
type Identity struct {
	NIP         string
	InternalID  string
	EUCode      string
	EUVatNumber string
	CountryCode string
	TaxID       string
	NoID        bool
	Name        string
}

type Seller struct {
	VatPrefix      string
	EORI           string
	Identity       Identity
	Address        *Address
	Correspondence *Address
	Contacts       []Contact
	Status         string
}

type Buyer struct {
	EORI           string
	Identity       Identity
	Address        *Address
	Correspondence *Address
	Contacts       []Contact
	ClientNumber   string
	BuyerID        string
}

type ThirdParty struct {
	Buyer
	Role            string
	OtherRole       bool
	RoleDescription string
	Share           string
}

type Authorized struct {
	EORI           string
	Identity       Identity
	Address        *Address
	Correspondence *Address
	Contacts       []Contact
	Role           string
}

// RateTotal is one row of tax rate breakdown.
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
	WZ           []string
	SaleDate     string
	PeriodFrom   string
	PeriodTo     string
	Rates        []RateTotal
	Total        string
	ExchangeRate string
	Annotations  Annotations
	Kind         string
	Correction   Correction
	Advances     []AdvancePayment
	Receipt      string
	Related      string
	Descriptions []Description
	AdvanceFa    []AdvanceInvoice
	Lines        []Line
	Settlement   *Settlement
	Payment      *Payment
	Terms        *Terms
	Order        *Order
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
	Reason          string
	Type            string
	Invoices        []CorrectedInvoice
	Period          string
	CorrectedNumber string
	TotalBefore     string
	RateBefore      string
}

type AdvancePayment struct {
	Date   string
	Amount string
	Rate   string
}

type AdvanceInvoice struct {
	RegistryNumber string
	Number         string
}

type Description struct {
	Line  string
	Key   string
	Value string
}

type Line struct {
	Number     string
	Date       string
	Name       string
	Index      string
	Unit       string
	Quantity   string
	NetPrice   string
	GrossPrice string
	Discount   string
	NetValue   string
	GrossValue string
	Rate       string
	GTU        string
	Procedure  string
	Before     bool
}

type Amount struct {
	Reason string
	Amount string
}

type Settlement struct {
	Charges       []Amount
	ChargesSum    string
	Deductions    []Amount
	DeductionsSum string
	ToPay         string
	ToSettle      string
}

type PartialPayment struct {
	Amount string
	Date   string
}

type DueDate struct {
	Date        string
	Description string
}

type BankAccount struct {
	Number      string
	SWIFT       string
	BankName    string
	Description string
}

type Payment struct {
	Paid           string
	PaidDate       string
	PartialPaid    string
	Partial        []PartialPayment
	DueDates       []DueDate
	Method         string
	OtherMethod    string
	Accounts       []BankAccount
	FactorAccounts []BankAccount
	DiscountTerms  string
	DiscountAmount string
}

type Dated struct {
	Date   string
	Number string
}

type Terms struct {
	Contracts        []Dated
	Orders           []Dated
	Batches          []string
	DeliveryTerms    string
	ContractRate     string
	ContractCurrency string
}

type OrderLine struct {
	Name     string
	Unit     string
	Quantity string
	NetPrice string
	NetValue string
	Rate     string
}

type Order struct {
	Value string
	Lines []OrderLine
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
