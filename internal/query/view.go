// Package query derives filtered, sorted views over the invoice collection.
// Everything here is pure: records in, records out, no store access.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"invoicer/internal/models"
)

// SortField selects the comparator key for View.
type SortField string

const (
	SortInvoiceNumber      SortField = "invoice_number"
	SortClientName         SortField = "client_name"
	SortInvoiceDate        SortField = "invoice_date"
	SortServiceDate        SortField = "service_date"
	SortServiceDescription SortField = "service_description"
	SortTotal              SortField = "total"
	SortGenerated          SortField = "generated"
)

// Direction orders a sorted view ascending or descending.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Options describe one derived view.
type Options struct {
	Query     string
	SortField SortField
	Direction Direction
}

// ParseSortField validates a sort field name.
func ParseSortField(value string) (SortField, error) {
	switch SortField(strings.TrimSpace(value)) {
	case "":
		return SortInvoiceNumber, nil
	case SortInvoiceNumber:
		return SortInvoiceNumber, nil
	case SortClientName:
		return SortClientName, nil
	case SortInvoiceDate:
		return SortInvoiceDate, nil
	case SortServiceDate:
		return SortServiceDate, nil
	case SortServiceDescription:
		return SortServiceDescription, nil
	case SortTotal:
		return SortTotal, nil
	case SortGenerated:
		return SortGenerated, nil
	default:
		return "", fmt.Errorf("invalid sort field %q", value)
	}
}

// ParseDirection validates a sort direction.
func ParseDirection(value string) (Direction, error) {
	switch Direction(strings.TrimSpace(strings.ToLower(value))) {
	case "":
		return Ascending, nil
	case Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	default:
		return "", fmt.Errorf("invalid sort direction %q", value)
	}
}

// View returns the records matching opts.Query, ordered by opts.SortField and
// opts.Direction. The input slice is not modified; ties keep insertion order.
func View(records []models.InvoiceRecord, opts Options) []models.InvoiceRecord {
	out := make([]models.InvoiceRecord, 0, len(records))
	for _, record := range records {
		if Matches(record, opts.Query) {
			out = append(out, record)
		}
	}

	if opts.SortField == "" {
		return out
	}

	collator := collate.New(language.English, collate.IgnoreCase)
	descending := opts.Direction == Descending

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		// Records missing a service date sort after records that have one,
		// in either direction.
		if opts.SortField == SortServiceDate {
			aMissing := a.ServiceDate == ""
			bMissing := b.ServiceDate == ""
			if aMissing != bMissing {
				return bMissing
			}
		}

		cmp := compare(a, b, opts.SortField, collator)
		if descending {
			cmp = -cmp
		}
		return cmp < 0
	})

	return out
}

// Matches reports whether a record matches a free-text query: a
// case-insensitive substring of the client name, the company name, or the
// decimal rendering of the invoice number. The empty query matches all.
func Matches(record models.InvoiceRecord, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(record.ClientName), query) ||
		strings.Contains(strings.ToLower(record.CompanyName), query) ||
		strings.Contains(strconv.Itoa(record.InvoiceNumber), query)
}

func compare(a, b models.InvoiceRecord, field SortField, collator *collate.Collator) int {
	switch field {
	case SortClientName:
		return collator.CompareString(a.ClientName, b.ClientName)
	case SortInvoiceDate:
		return compareTimes(parseDate(a.InvoiceDate), parseDate(b.InvoiceDate))
	case SortServiceDate:
		return compareTimes(parseDate(a.ServiceDate), parseDate(b.ServiceDate))
	case SortServiceDescription:
		return strings.Compare(a.ServiceDescription, b.ServiceDescription)
	case SortTotal:
		return Total(a).Cmp(Total(b))
	case SortGenerated:
		return generatedRank(a) - generatedRank(b)
	default:
		return a.InvoiceNumber - b.InvoiceNumber
	}
}

func parseDate(value string) time.Time {
	t, err := time.Parse(models.InvoiceDateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}
	}
	return t
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// Records with a generated artifact sort after those without, before
// direction is applied.
func generatedRank(record models.InvoiceRecord) int {
	if record.ArtifactPath != "" {
		return 1
	}
	return 0
}
