package query

import (
	"github.com/shopspring/decimal"

	"invoicer/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// Total computes the amount due for a record: the summed service-line hours
// times the hourly rate, plus VAT, rounded to two decimal places.
func Total(record models.InvoiceRecord) decimal.Decimal {
	hours := decimal.Zero
	for _, line := range record.Services {
		hours = hours.Add(decimal.NewFromFloat(ServiceHours(line)))
	}

	subtotal := hours.Mul(decimal.NewFromFloat(record.HourlyRate))
	vat := subtotal.Mul(decimal.NewFromFloat(record.VATRate)).Div(oneHundred)
	return subtotal.Add(vat).Round(2)
}
