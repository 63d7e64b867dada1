package main

import (
	"errors"

	"github.com/spf13/cobra"

	"invoicer/internal/api"
	"invoicer/internal/config"
	"invoicer/internal/models"
)

func newUpdateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	opts := &recordCmdOptions{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an invoice record",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("record id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				record, err := client.GetInvoice(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				applyRecordFlags(cmd, opts, &record)
				if err := attachIcon(opts, &record); err != nil {
					return err
				}

				updated, err := client.UpdateInvoice(cmd.Context(), record.ID, record)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(updated)
				}
				return writeInvoiceDetail(updated)
			})
		},
	}

	cmd.Flags().StringVar(&opts.clientName, "client", "", "client name")
	bindRecordFlags(cmd, opts)
	return cmd
}

// applyRecordFlags overwrites only the fields whose flags were set.
func applyRecordFlags(cmd *cobra.Command, opts *recordCmdOptions, record *models.InvoiceRecord) {
	set := func(flag string, apply func()) {
		if cmd.Flags().Changed(flag) {
			apply()
		}
	}

	set("client", func() { record.ClientName = opts.clientName })
	set("client-address", func() { record.ClientAddress = opts.clientAddress })
	set("company", func() { record.CompanyName = opts.companyName })
	set("service", func() { record.Services = opts.services })
	set("widths", func() { record.ColumnWidths = opts.columnWidths })
	set("rate", func() { record.HourlyRate = opts.hourlyRate })
	set("vat", func() { record.VATRate = opts.vatRate })
	set("number", func() { record.InvoiceNumber = opts.invoiceNumber })
	set("date", func() { record.InvoiceDate = opts.invoiceDate })
	set("payment-terms", func() { record.PaymentTermsDays = opts.paymentTermsDays })
	set("account-number", func() { record.AccountNumber = opts.accountNumber })
	set("sort-code", func() { record.SortCode = opts.sortCode })
	set("bank-address", func() { record.BankAddress = opts.bankAddress })
	set("company-number", func() { record.CompanyNumber = opts.companyNumber })
	set("vat-number", func() { record.VATNumber = opts.vatNumber })
	set("registered-address", func() { record.RegisteredAddress = opts.registeredAddress })
	set("email", func() { record.Email = opts.email })
	set("contact", func() { record.ContactNumber = opts.contactNumber })
	set("font", func() { record.FontName = opts.fontName })
	set("service-date", func() { record.ServiceDate = opts.serviceDate })
	set("service-description", func() { record.ServiceDescription = opts.serviceDescription })
	set("paid", func() { record.Paid = opts.paid })
	set("icon-name", func() { record.IconName = opts.iconName })
}
