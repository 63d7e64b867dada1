package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"invoicer/internal/api"
	"invoicer/internal/config"
	"invoicer/internal/models"
)

type recordCmdOptions struct {
	clientName         string
	clientAddress      string
	companyName        string
	services           []string
	columnWidths       []float64
	hourlyRate         float64
	vatRate            float64
	invoiceNumber      int
	invoiceDate        string
	paymentTermsDays   int
	accountNumber      string
	sortCode           string
	bankAddress        string
	companyNumber      string
	vatNumber          string
	registeredAddress  string
	email              string
	contactNumber      string
	fontName           string
	serviceDate        string
	serviceDescription string
	paid               bool
	iconPath           string
	iconName           string
}

func newAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	opts := &recordCmdOptions{}
	cmd := &cobra.Command{
		Use:   "add <client-name>",
		Short: "Add a new invoice record",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.clientName = args[0]

			draft := optsToDraft(cmd, opts)
			record := draft.Apply()
			if err := attachIcon(opts, &record); err != nil {
				return err
			}

			return withClient(cfg, func(client *api.Client) error {
				created, err := client.CreateInvoice(cmd.Context(), record)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(created)
				}
				return writePlain("%s\n", created.ID)
			})
		},
	}

	bindRecordFlags(cmd, opts)
	return cmd
}

// optsToDraft carries only the flags the user actually set, so defaulting
// stays in one place.
func optsToDraft(cmd *cobra.Command, opts *recordCmdOptions) models.Draft {
	draft := models.Draft{
		ClientName: &opts.clientName,
	}

	setString := func(flag string, dst **string, value *string) {
		if cmd.Flags().Changed(flag) {
			*dst = value
		}
	}

	setString("client-address", &draft.ClientAddress, &opts.clientAddress)
	setString("company", &draft.CompanyName, &opts.companyName)
	setString("date", &draft.InvoiceDate, &opts.invoiceDate)
	setString("account-number", &draft.AccountNumber, &opts.accountNumber)
	setString("sort-code", &draft.SortCode, &opts.sortCode)
	setString("bank-address", &draft.BankAddress, &opts.bankAddress)
	setString("company-number", &draft.CompanyNumber, &opts.companyNumber)
	setString("vat-number", &draft.VATNumber, &opts.vatNumber)
	setString("registered-address", &draft.RegisteredAddress, &opts.registeredAddress)
	setString("email", &draft.Email, &opts.email)
	setString("contact", &draft.ContactNumber, &opts.contactNumber)
	setString("font", &draft.FontName, &opts.fontName)
	setString("service-date", &draft.ServiceDate, &opts.serviceDate)
	setString("service-description", &draft.ServiceDescription, &opts.serviceDescription)

	if cmd.Flags().Changed("service") {
		draft.Services = opts.services
	}
	if cmd.Flags().Changed("widths") {
		draft.ColumnWidths = opts.columnWidths
	}
	if cmd.Flags().Changed("rate") {
		draft.HourlyRate = &opts.hourlyRate
	}
	if cmd.Flags().Changed("vat") {
		draft.VATRate = &opts.vatRate
	}
	if cmd.Flags().Changed("number") {
		draft.InvoiceNumber = &opts.invoiceNumber
	}
	if cmd.Flags().Changed("payment-terms") {
		draft.PaymentTermsDays = &opts.paymentTermsDays
	}
	if cmd.Flags().Changed("paid") {
		draft.Paid = &opts.paid
	}

	return draft
}

func attachIcon(opts *recordCmdOptions, record *models.InvoiceRecord) error {
	if opts.iconPath == "" {
		return nil
	}
	payload, err := os.ReadFile(opts.iconPath)
	if err != nil {
		return fmt.Errorf("read icon: %w", err)
	}
	record.IconData = base64.StdEncoding.EncodeToString(payload)
	record.IconName = opts.iconName
	if record.IconName == "" {
		record.IconName = filepath.Base(opts.iconPath)
	}
	return nil
}

func bindRecordFlags(cmd *cobra.Command, opts *recordCmdOptions) {
	cmd.Flags().StringVar(&opts.clientAddress, "client-address", "", "client postal address")
	cmd.Flags().StringVar(&opts.companyName, "company", "", "issuing company name")
	cmd.Flags().StringSliceVarP(&opts.services, "service", "s", nil, "service line, e.g. 'Consulting (2 hours)' (repeatable)")
	cmd.Flags().Float64SliceVar(&opts.columnWidths, "widths", nil, "two table column widths in inches")
	cmd.Flags().Float64VarP(&opts.hourlyRate, "rate", "r", 0, "hourly rate")
	cmd.Flags().Float64Var(&opts.vatRate, "vat", 0, "VAT rate percent")
	cmd.Flags().IntVarP(&opts.invoiceNumber, "number", "n", 0, "invoice number")
	cmd.Flags().StringVar(&opts.invoiceDate, "date", "", "invoice date (dd.mm.yy)")
	cmd.Flags().IntVar(&opts.paymentTermsDays, "payment-terms", 0, "payment terms in days")
	cmd.Flags().StringVar(&opts.accountNumber, "account-number", "", "bank account number")
	cmd.Flags().StringVar(&opts.sortCode, "sort-code", "", "bank sort code")
	cmd.Flags().StringVar(&opts.bankAddress, "bank-address", "", "bank address")
	cmd.Flags().StringVar(&opts.companyNumber, "company-number", "", "registered company number")
	cmd.Flags().StringVar(&opts.vatNumber, "vat-number", "", "VAT registration number")
	cmd.Flags().StringVar(&opts.registeredAddress, "registered-address", "", "registered company address")
	cmd.Flags().StringVar(&opts.email, "email", "", "contact email")
	cmd.Flags().StringVar(&opts.contactNumber, "contact", "", "contact phone number")
	cmd.Flags().StringVar(&opts.fontName, "font", "", "document font")
	cmd.Flags().StringVar(&opts.serviceDate, "service-date", "", "service date (dd.mm.yy)")
	cmd.Flags().StringVar(&opts.serviceDescription, "service-description", "", "service description")
	cmd.Flags().BoolVar(&opts.paid, "paid", false, "mark as paid")
	cmd.Flags().StringVar(&opts.iconPath, "icon", "", "logo image file")
	cmd.Flags().StringVar(&opts.iconName, "icon-name", "", "logo display name")
}
