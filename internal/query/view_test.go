package query

import (
	"testing"

	"invoicer/internal/models"
)

func numbered(client string, number int) models.InvoiceRecord {
	return models.InvoiceRecord{ClientName: client, InvoiceNumber: number}
}

func numbers(records []models.InvoiceRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.InvoiceNumber
	}
	return out
}

func TestViewSortsByInvoiceNumber(t *testing.T) {
	records := []models.InvoiceRecord{
		numbered("Acme Ltd", 1002),
		numbered("Beta Inc", 1000),
		numbered("Gamma GmbH", 1001),
	}

	got := numbers(View(records, Options{SortField: SortInvoiceNumber, Direction: Ascending}))
	want := []int{1000, 1001, 1002}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ascending order %v, want %v", got, want)
		}
	}

	got = numbers(View(records, Options{SortField: SortInvoiceNumber, Direction: Descending}))
	want = []int{1002, 1001, 1000}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("descending order %v, want %v", got, want)
		}
	}
}

func TestViewDoesNotModifyInput(t *testing.T) {
	records := []models.InvoiceRecord{
		numbered("Acme Ltd", 1002),
		numbered("Beta Inc", 1000),
	}

	View(records, Options{SortField: SortInvoiceNumber})
	if records[0].InvoiceNumber != 1002 || records[1].InvoiceNumber != 1000 {
		t.Fatalf("input slice was reordered: %v", numbers(records))
	}
}

func TestViewFiltersByQuery(t *testing.T) {
	records := []models.InvoiceRecord{
		numbered("Acme Ltd", 1000),
		numbered("Beta Inc", 1001),
		{ClientName: "Gamma GmbH", CompanyName: "Acme Holdings", InvoiceNumber: 1002},
	}

	got := View(records, Options{Query: "acme"})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %v", numbers(got))
	}
	if got[0].InvoiceNumber != 1000 || got[1].InvoiceNumber != 1002 {
		t.Fatalf("unexpected matches %v", numbers(got))
	}

	// The invoice number participates in matching too.
	got = View(records, Options{Query: "1001"})
	if len(got) != 1 || got[0].ClientName != "Beta Inc" {
		t.Fatalf("expected number match for Beta Inc, got %v", numbers(got))
	}

	// Empty and whitespace queries match everything.
	if got := View(records, Options{Query: "  "}); len(got) != 3 {
		t.Fatalf("blank query should match all, got %v", numbers(got))
	}
}

func TestViewSortsByClientNameCaseInsensitively(t *testing.T) {
	records := []models.InvoiceRecord{
		numbered("beta Inc", 1),
		numbered("Acme Ltd", 2),
		numbered("ACME Industries", 3),
	}

	got := View(records, Options{SortField: SortClientName, Direction: Ascending})
	want := []string{"ACME Industries", "Acme Ltd", "beta Inc"}
	for i := range want {
		if got[i].ClientName != want[i] {
			t.Fatalf("unexpected order: %v", numbers(got))
		}
	}
}

func TestViewSortsByInvoiceDate(t *testing.T) {
	a := numbered("Acme Ltd", 1)
	a.InvoiceDate = "15.03.24"
	b := numbered("Beta Inc", 2)
	b.InvoiceDate = "01.02.24"
	c := numbered("Gamma GmbH", 3)
	c.InvoiceDate = "28.12.23"

	got := numbers(View([]models.InvoiceRecord{a, b, c}, Options{SortField: SortInvoiceDate, Direction: Ascending}))
	want := []int{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", got, want)
		}
	}
}

func TestViewServiceDateMissingSortsLast(t *testing.T) {
	a := numbered("Acme Ltd", 1)
	a.ServiceDate = "01.02.24"
	b := numbered("Beta Inc", 2)
	c := numbered("Gamma GmbH", 3)
	c.ServiceDate = "15.01.24"
	records := []models.InvoiceRecord{a, b, c}

	got := numbers(View(records, Options{SortField: SortServiceDate, Direction: Ascending}))
	want := []int{3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ascending order %v, want %v", got, want)
		}
	}

	// Missing dates stay last even when the direction flips.
	got = numbers(View(records, Options{SortField: SortServiceDate, Direction: Descending}))
	want = []int{1, 3, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("descending order %v, want %v", got, want)
		}
	}
}

func TestViewSortsByTotal(t *testing.T) {
	a := numbered("Acme Ltd", 1)
	a.Services = []string{"Consulting (3 hours)"}
	a.HourlyRate = 100
	b := numbered("Beta Inc", 2)
	b.Services = []string{"Consulting (1 hour)"}
	b.HourlyRate = 100
	c := numbered("Gamma GmbH", 3)
	c.Services = []string{"Consulting (2 hours)"}
	c.HourlyRate = 100

	got := numbers(View([]models.InvoiceRecord{a, b, c}, Options{SortField: SortTotal, Direction: Ascending}))
	want := []int{2, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", got, want)
		}
	}
}

func TestViewSortsByGenerated(t *testing.T) {
	a := numbered("Acme Ltd", 1)
	a.ArtifactPath = "/tmp/invoice_1.pdf"
	b := numbered("Beta Inc", 2)
	c := numbered("Gamma GmbH", 3)
	c.ArtifactPath = "/tmp/invoice_3.pdf"

	// Ungenerated records first, ties keep insertion order.
	got := numbers(View([]models.InvoiceRecord{a, b, c}, Options{SortField: SortGenerated, Direction: Ascending}))
	want := []int{2, 1, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", got, want)
		}
	}
}

func TestParseSortField(t *testing.T) {
	if field, err := ParseSortField(""); err != nil || field != SortInvoiceNumber {
		t.Fatalf("empty field: %v %v", field, err)
	}
	if field, err := ParseSortField(" client_name "); err != nil || field != SortClientName {
		t.Fatalf("trimmed field: %v %v", field, err)
	}
	if _, err := ParseSortField("favourite_colour"); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParseDirection(t *testing.T) {
	if dir, err := ParseDirection(""); err != nil || dir != Ascending {
		t.Fatalf("empty direction: %v %v", dir, err)
	}
	if dir, err := ParseDirection("DESC"); err != nil || dir != Descending {
		t.Fatalf("case-folded direction: %v %v", dir, err)
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Fatal("expected error for unknown direction")
	}
}
