package models

// Field defaults applied when an imported document omits a value or supplies
// one of the wrong type.
const (
	DefaultVATRate          = 20.0
	DefaultFontName         = "Calibri"
	DefaultPaymentTermsDays = 30
)

// DefaultColumnWidths returns the default header column widths in inches.
func DefaultColumnWidths() []float64 {
	return []float64{2.5, 3.5}
}

// Draft is a partial invoice record: every field is optional on input. It is
// produced by the import codec, where values may be absent or loosely typed,
// and turned into a well-formed InvoiceRecord by Apply.
type Draft struct {
	ID *string

	ClientName    *string
	ClientAddress *string
	CompanyName   *string

	Services     []string
	ColumnWidths []float64

	HourlyRate       *float64
	VATRate          *float64
	InvoiceNumber    *int
	InvoiceDate      *string
	PaymentTermsDays *int

	AccountNumber *string
	SortCode      *string
	BankAddress   *string

	CompanyNumber     *string
	VATNumber         *string
	RegisteredAddress *string

	Email         *string
	ContactNumber *string

	FontName *string

	ServiceDate        *string
	ServiceDescription *string
	Paid               *bool

	IconName *string
	IconHash *string
	IconData *string
}

// Apply constructs an InvoiceRecord from the draft, filling every absent
// field with its documented default.
func (d Draft) Apply() InvoiceRecord {
	record := InvoiceRecord{
		ID:                 stringOr(d.ID, ""),
		ClientName:         stringOr(d.ClientName, ""),
		ClientAddress:      stringOr(d.ClientAddress, ""),
		CompanyName:        stringOr(d.CompanyName, ""),
		Services:           d.Services,
		ColumnWidths:       d.ColumnWidths,
		HourlyRate:         floatOr(d.HourlyRate, 0),
		VATRate:            floatOr(d.VATRate, DefaultVATRate),
		InvoiceNumber:      intOr(d.InvoiceNumber, 0),
		InvoiceDate:        stringOr(d.InvoiceDate, ""),
		PaymentTermsDays:   intOr(d.PaymentTermsDays, DefaultPaymentTermsDays),
		AccountNumber:      stringOr(d.AccountNumber, ""),
		SortCode:           stringOr(d.SortCode, ""),
		BankAddress:        stringOr(d.BankAddress, ""),
		CompanyNumber:      stringOr(d.CompanyNumber, ""),
		VATNumber:          stringOr(d.VATNumber, ""),
		RegisteredAddress:  stringOr(d.RegisteredAddress, ""),
		Email:              stringOr(d.Email, ""),
		ContactNumber:      stringOr(d.ContactNumber, ""),
		FontName:           stringOr(d.FontName, DefaultFontName),
		ServiceDate:        stringOr(d.ServiceDate, ""),
		ServiceDescription: stringOr(d.ServiceDescription, ""),
		Paid:               boolOr(d.Paid, false),
		IconName:           stringOr(d.IconName, ""),
		IconHash:           stringOr(d.IconHash, ""),
		IconData:           stringOr(d.IconData, ""),
	}

	if record.Services == nil {
		record.Services = []string{}
	}
	if len(record.ColumnWidths) != 2 {
		record.ColumnWidths = DefaultColumnWidths()
	}

	return record
}

func stringOr(ptr *string, def string) string {
	if ptr == nil {
		return def
	}
	return *ptr
}

func floatOr(ptr *float64, def float64) float64 {
	if ptr == nil {
		return def
	}
	return *ptr
}

func intOr(ptr *int, def int) int {
	if ptr == nil {
		return def
	}
	return *ptr
}

func boolOr(ptr *bool, def bool) bool {
	if ptr == nil {
		return def
	}
	return *ptr
}
