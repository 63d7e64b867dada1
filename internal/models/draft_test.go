package models

import (
	"reflect"
	"testing"
)

func TestDraftApplyDefaults(t *testing.T) {
	record := Draft{}.Apply()

	if record.VATRate != DefaultVATRate {
		t.Fatalf("vat rate: %v", record.VATRate)
	}
	if record.FontName != DefaultFontName {
		t.Fatalf("font name: %q", record.FontName)
	}
	if record.PaymentTermsDays != DefaultPaymentTermsDays {
		t.Fatalf("payment terms: %d", record.PaymentTermsDays)
	}
	if !reflect.DeepEqual(record.ColumnWidths, DefaultColumnWidths()) {
		t.Fatalf("column widths: %v", record.ColumnWidths)
	}
	if record.Services == nil || len(record.Services) != 0 {
		t.Fatalf("services: %v", record.Services)
	}
	if record.Paid {
		t.Fatal("paid must default to false")
	}
}

func TestDraftApplyKeepsExplicitValues(t *testing.T) {
	name := "Acme Ltd"
	rate := 0.0
	paid := true
	draft := Draft{
		ClientName:   &name,
		VATRate:      &rate,
		Paid:         &paid,
		Services:     []string{"Consulting (2 hours)"},
		ColumnWidths: []float64{1.5, 4.5},
	}

	record := draft.Apply()
	if record.ClientName != "Acme Ltd" {
		t.Fatalf("client name: %q", record.ClientName)
	}
	// An explicit zero is not replaced by the default.
	if record.VATRate != 0 {
		t.Fatalf("vat rate: %v", record.VATRate)
	}
	if !record.Paid {
		t.Fatal("paid not applied")
	}
	if !reflect.DeepEqual(record.ColumnWidths, []float64{1.5, 4.5}) {
		t.Fatalf("column widths: %v", record.ColumnWidths)
	}
}

func TestDraftApplyRejectsMalformedColumnWidths(t *testing.T) {
	draft := Draft{ColumnWidths: []float64{1.0}}
	record := draft.Apply()
	if !reflect.DeepEqual(record.ColumnWidths, DefaultColumnWidths()) {
		t.Fatalf("expected defaults for non-pair widths, got %v", record.ColumnWidths)
	}
}

func TestHasLogo(t *testing.T) {
	if (InvoiceRecord{}).HasLogo() {
		t.Fatal("empty record must not report a logo")
	}
	if !(InvoiceRecord{IconData: "aGk="}).HasLogo() {
		t.Fatal("inline data counts as a logo")
	}
	if !(InvoiceRecord{IconHash: "abc123"}).HasLogo() {
		t.Fatal("asset reference counts as a logo")
	}
}
