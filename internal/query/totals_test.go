package query

import (
	"testing"

	"invoicer/internal/models"
)

func TestTotal(t *testing.T) {
	cases := []struct {
		name   string
		record models.InvoiceRecord
		want   string
	}{
		{
			name: "hours plus unsuffixed line",
			record: models.InvoiceRecord{
				Services:   []string{"Consulting (2 hours)", "Review"},
				HourlyRate: 300,
				VATRate:    20,
			},
			// 3 hours * 300 = 900, plus 20% VAT.
			want: "1080.00",
		},
		{
			name: "no services",
			record: models.InvoiceRecord{
				HourlyRate: 300,
				VATRate:    20,
			},
			want: "0.00",
		},
		{
			name: "fractional hours",
			record: models.InvoiceRecord{
				Services:   []string{"Support (0.5 hours)"},
				HourlyRate: 99.99,
				VATRate:    20,
			},
			want: "59.99",
		},
		{
			name: "zero vat",
			record: models.InvoiceRecord{
				Services:   []string{"Consulting (2 hours)"},
				HourlyRate: 150,
			},
			want: "300.00",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Total(tc.record).StringFixed(2); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
