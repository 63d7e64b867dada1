package models

// InvoiceRecord is the persisted unit representing one invoice's full data.
//
// IconData carries raw inline image bytes (base64) only while a record is in
// flight: imports and edits may populate it, but the record store always
// converts it to an IconHash reference before writing. IconHash addresses the
// logo payload in the asset store by SHA-256 content hash.
type InvoiceRecord struct {
	ID string `json:"id" yaml:"id"`

	ClientName    string `json:"client_name" yaml:"client_name"`
	ClientAddress string `json:"client_address" yaml:"client_address"`
	CompanyName   string `json:"company_name" yaml:"company_name"`

	Services     []string  `json:"services" yaml:"services"`
	ColumnWidths []float64 `json:"column_widths" yaml:"column_widths"`

	HourlyRate       float64 `json:"hourly_rate" yaml:"hourly_rate"`
	VATRate          float64 `json:"vat_rate" yaml:"vat_rate"`
	InvoiceNumber    int     `json:"invoice_number" yaml:"invoice_number"`
	InvoiceDate      string  `json:"invoice_date" yaml:"invoice_date"`
	PaymentTermsDays int     `json:"payment_terms_days" yaml:"payment_terms_days"`

	AccountNumber string `json:"account_number" yaml:"account_number"`
	SortCode      string `json:"sort_code" yaml:"sort_code"`
	BankAddress   string `json:"bank_address" yaml:"bank_address"`

	CompanyNumber     string `json:"company_number" yaml:"company_number"`
	VATNumber         string `json:"vat_number" yaml:"vat_number"`
	RegisteredAddress string `json:"registered_address" yaml:"registered_address"`

	Email         string `json:"email" yaml:"email"`
	ContactNumber string `json:"contact_number" yaml:"contact_number"`

	FontName string `json:"font_name" yaml:"font_name"`

	ServiceDate        string `json:"service_date,omitempty" yaml:"service_date,omitempty"`
	ServiceDescription string `json:"service_description,omitempty" yaml:"service_description,omitempty"`
	Paid               bool   `json:"paid,omitempty" yaml:"paid,omitempty"`

	IconName string `json:"icon_name,omitempty" yaml:"icon_name,omitempty"`
	IconHash string `json:"icon_hash,omitempty" yaml:"icon_hash,omitempty"`
	IconData string `json:"icon_data,omitempty" yaml:"icon_data,omitempty"`

	// ArtifactPath points at the last generated document. It is overwritten
	// on each regeneration and excluded from export.
	ArtifactPath string `json:"artifact_path,omitempty" yaml:"-"`
}

// HasLogo reports whether the record carries either inline image data or a
// stored asset reference.
func (r InvoiceRecord) HasLogo() bool {
	return r.IconData != "" || r.IconHash != ""
}

// InvoiceDateLayout is the fixed textual date format used across records
// (dd.mm.yy).
const InvoiceDateLayout = "02.01.06"
