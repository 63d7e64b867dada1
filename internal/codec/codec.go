// Package codec serializes invoice field-sets to and from the human-editable
// YAML settings format. Import is deliberately forgiving: recognized fields
// that are absent or of the wrong type fall back to their documented
// defaults, unknown keys are ignored, and only a document that is not YAML at
// all is an error.
package codec

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"invoicer/internal/models"
)

// ParseError reports input that could not be parsed as a YAML mapping.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse settings: %s", e.Reason)
}

// Export serializes the full record, including any transient inline image
// data present. The generated-artifact reference is intentionally excluded.
func Export(record models.InvoiceRecord) ([]byte, error) {
	return yaml.Marshal(record)
}

// Import parses a YAML settings document into a partial record. It never
// fails on missing or mistyped fields; it fails only when the input is not a
// YAML mapping.
func Import(data []byte) (models.Draft, error) {
	var zero models.Draft

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return zero, &ParseError{Reason: err.Error()}
	}
	if raw == nil {
		return zero, &ParseError{Reason: "document is empty"}
	}

	return models.Draft{
		ID:                 stringField(raw, "id"),
		ClientName:         stringField(raw, "client_name"),
		ClientAddress:      stringField(raw, "client_address"),
		CompanyName:        stringField(raw, "company_name"),
		Services:           stringSliceField(raw, "services"),
		ColumnWidths:       floatSliceField(raw, "column_widths"),
		HourlyRate:         floatField(raw, "hourly_rate"),
		VATRate:            floatField(raw, "vat_rate"),
		InvoiceNumber:      intField(raw, "invoice_number"),
		InvoiceDate:        stringField(raw, "invoice_date"),
		PaymentTermsDays:   intField(raw, "payment_terms_days"),
		AccountNumber:      stringField(raw, "account_number"),
		SortCode:           stringField(raw, "sort_code"),
		BankAddress:        stringField(raw, "bank_address"),
		CompanyNumber:      stringField(raw, "company_number"),
		VATNumber:          stringField(raw, "vat_number"),
		RegisteredAddress:  stringField(raw, "registered_address"),
		Email:              stringField(raw, "email"),
		ContactNumber:      stringField(raw, "contact_number"),
		FontName:           stringField(raw, "font_name"),
		ServiceDate:        stringField(raw, "service_date"),
		ServiceDescription: stringField(raw, "service_description"),
		Paid:               boolField(raw, "paid"),
		IconName:           stringField(raw, "icon_name"),
		IconHash:           stringField(raw, "icon_hash"),
		IconData:           stringField(raw, "icon_data"),
	}, nil
}

func stringField(raw map[string]any, key string) *string {
	value, ok := raw[key]
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case string:
		return &v
	case int:
		s := strconv.Itoa(v)
		return &s
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s
	default:
		return nil
	}
}

func floatField(raw map[string]any, key string) *float64 {
	value, ok := raw[key]
	if !ok {
		return nil
	}
	f, ok := coerceFloat(value)
	if !ok {
		return nil
	}
	return &f
}

func intField(raw map[string]any, key string) *int {
	value, ok := raw[key]
	if !ok {
		return nil
	}
	f, ok := coerceFloat(value)
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}

func boolField(raw map[string]any, key string) *bool {
	value, ok := raw[key]
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case bool:
		return &v
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}

func stringSliceField(raw map[string]any, key string) []string {
	value, ok := raw[key]
	if !ok {
		return nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func floatSliceField(raw map[string]any, key string) []float64 {
	value, ok := raw[key]
	if !ok {
		return nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		if f, ok := coerceFloat(item); ok {
			out = append(out, f)
		}
	}
	return out
}

func coerceFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
