package main

import (
	"fmt"
	"os"
	"strings"

	"invoicer/internal/format"
	"invoicer/internal/models"
	"invoicer/internal/query"
)

var outputFormatter format.Formatter = format.JSONFormatter{Indent: true}

func writeJSON(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeInvoiceList(records []models.InvoiceRecord) error {
	for _, record := range records {
		if err := writePlain("%s\n", formatInvoiceLine(record)); err != nil {
			return err
		}
	}
	return nil
}

func writeInvoiceDetail(record models.InvoiceRecord) error {
	lines := []string{
		fmt.Sprintf("id: %s", record.ID),
		fmt.Sprintf("invoice_number: %d", record.InvoiceNumber),
		fmt.Sprintf("client_name: %s", record.ClientName),
		fmt.Sprintf("company_name: %s", record.CompanyName),
		fmt.Sprintf("hourly_rate: %.2f", record.HourlyRate),
		fmt.Sprintf("vat_rate: %.1f", record.VATRate),
		fmt.Sprintf("total: %s", query.Total(record).StringFixed(2)),
	}

	if record.InvoiceDate != "" {
		lines = append(lines, fmt.Sprintf("invoice_date: %s", record.InvoiceDate))
	}
	if record.ServiceDate != "" {
		lines = append(lines, fmt.Sprintf("service_date: %s", record.ServiceDate))
	}
	if record.ServiceDescription != "" {
		lines = append(lines, fmt.Sprintf("service_description: %s", record.ServiceDescription))
	}
	if len(record.Services) > 0 {
		lines = append(lines, "services:")
		for _, service := range record.Services {
			lines = append(lines, fmt.Sprintf("  - %s", service))
		}
	}
	if record.IconName != "" {
		lines = append(lines, fmt.Sprintf("icon_name: %s", record.IconName))
	}
	if record.IconHash != "" {
		lines = append(lines, fmt.Sprintf("icon_hash: %s", record.IconHash))
	}
	if record.ArtifactPath != "" {
		lines = append(lines, fmt.Sprintf("artifact: %s", record.ArtifactPath))
	}
	lines = append(lines, fmt.Sprintf("paid: %t", record.Paid))

	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func formatInvoiceLine(record models.InvoiceRecord) string {
	marker := " "
	if record.ArtifactPath != "" {
		marker = "*"
	}
	return fmt.Sprintf("%s %s #%d %s (total %s)",
		marker, record.ID, record.InvoiceNumber, record.ClientName,
		query.Total(record).StringFixed(2))
}
