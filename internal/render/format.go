package render

import (
	"fmt"
	"strings"
)

// Format selects which document variant the rendering service produces. It
// is an enum-valued request field, never spliced into the endpoint URL.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ParseFormat validates a document format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected pdf or docx)", value)
	}
}

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	return string(f)
}

// MediaType returns the media type of the generated document.
func (f Format) MediaType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}
