// Package render is the HTTP client for the external document-rendering
// service. It builds one JSON payload from a record, resolves the logo asset
// reference to raw bytes, submits a single request, and turns the binary
// response into a local artifact reference. It never retries: a failed
// attempt surfaces to the caller.
package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"invoicer/internal/assetstore"
	"invoicer/internal/models"
)

const (
	defaultHTTPTimeout = 60 * time.Second
	httpTimeoutEnvKey  = "INVOICER_HTTP_TIMEOUT"

	errorBodyLimit = 64 << 10 // 64 KiB

	// Anything smaller than this cannot be a DOCX or PDF document body.
	minArtifactBytes = 256
)

// Client talks to the rendering endpoint.
type Client struct {
	endpoint   string
	pdfBackend string
	http       *http.Client
	assets     assetstore.Store
	artifacts  *ArtifactDir
}

// NewClient creates a generation client for the configured endpoint.
func NewClient(endpoint, pdfBackend string, assets assetstore.Store, artifacts *ArtifactDir) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		pdfBackend: strings.TrimSpace(pdfBackend),
		http:       &http.Client{Timeout: httpTimeoutFromEnv()},
		assets:     assets,
		artifacts:  artifacts,
	}
}

// generateRequest mirrors the rendering service's invoice details model:
// numbers as JSON numbers, image data as an embedded base64 string.
type generateRequest struct {
	ClientName         string    `json:"client_name"`
	ClientAddress      string    `json:"client_address"`
	CompanyName        string    `json:"company_name"`
	Services           []string  `json:"services"`
	ColumnWidths       []float64 `json:"column_widths"`
	HourlyRate         float64   `json:"hourly_rate"`
	VATRate            float64   `json:"vat_rate"`
	InvoiceNumber      int       `json:"invoice_number"`
	InvoiceDate        string    `json:"invoice_date,omitempty"`
	PaymentTermsDays   int       `json:"payment_terms_days"`
	AccountNumber      string    `json:"account_number"`
	SortCode           string    `json:"sort_code"`
	BankAddress        string    `json:"bank_address"`
	CompanyNumber      string    `json:"company_number"`
	VATNumber          string    `json:"vat_number"`
	RegisteredAddress  string    `json:"registered_address"`
	Email              string    `json:"email"`
	ContactNumber      string    `json:"contact_number"`
	FontName           string    `json:"font_name"`
	ServiceDate        string    `json:"service_date,omitempty"`
	ServiceDescription string    `json:"service_description,omitempty"`
	Paid               bool      `json:"paid"`
	IconName           string    `json:"icon_name,omitempty"`
	IconData           string    `json:"icon_data,omitempty"`
}

// Generate submits one render request for the record and returns a reference
// to the downloaded artifact. The record itself is not modified; writing the
// reference back is the caller's job.
func (c *Client) Generate(ctx context.Context, record models.InvoiceRecord, format Format) (ArtifactRef, error) {
	var zero ArtifactRef
	if c == nil {
		return zero, fmt.Errorf("render client is not configured")
	}
	if format != FormatPDF && format != FormatDOCX {
		return zero, fmt.Errorf("invalid format %q", format)
	}

	payload, err := c.buildPayload(ctx, record)
	if err != nil {
		return zero, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return zero, err
	}

	query := url.Values{}
	query.Set("format", string(format))
	if format == FormatPDF && c.pdfBackend != "" {
		query.Set("pdf_backend", c.pdfBackend)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?"+query.Encode(), bytes.NewReader(body))
	if err != nil {
		return zero, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", format.MediaType())

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, decodeError(resp)
	}

	document, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, err
	}
	if len(document) < minArtifactBytes {
		return zero, &GenerationError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("response body too small to be a document (%d bytes)", len(document)),
		}
	}

	return c.artifacts.Write(record.InvoiceNumber, format, document)
}

func (c *Client) buildPayload(ctx context.Context, record models.InvoiceRecord) (generateRequest, error) {
	payload := generateRequest{
		ClientName:         record.ClientName,
		ClientAddress:      record.ClientAddress,
		CompanyName:        record.CompanyName,
		Services:           record.Services,
		ColumnWidths:       record.ColumnWidths,
		HourlyRate:         record.HourlyRate,
		VATRate:            record.VATRate,
		InvoiceNumber:      record.InvoiceNumber,
		InvoiceDate:        record.InvoiceDate,
		PaymentTermsDays:   record.PaymentTermsDays,
		AccountNumber:      record.AccountNumber,
		SortCode:           record.SortCode,
		BankAddress:        record.BankAddress,
		CompanyNumber:      record.CompanyNumber,
		VATNumber:          record.VATNumber,
		RegisteredAddress:  record.RegisteredAddress,
		Email:              record.Email,
		ContactNumber:      record.ContactNumber,
		FontName:           record.FontName,
		ServiceDate:        record.ServiceDate,
		ServiceDescription: record.ServiceDescription,
		Paid:               record.Paid,
		IconName:           record.IconName,
	}

	if payload.Services == nil {
		payload.Services = []string{}
	}
	if len(payload.ColumnWidths) != 2 {
		payload.ColumnWidths = models.DefaultColumnWidths()
	}
	if payload.PaymentTermsDays < 0 {
		payload.PaymentTermsDays = 0
	}

	logo, err := c.resolveLogo(ctx, record)
	if err != nil {
		return generateRequest{}, err
	}
	if len(logo) > 0 {
		payload.IconData = base64.StdEncoding.EncodeToString(logo)
	}

	return payload, nil
}

// resolveLogo prefers inline data already present on the record, then falls
// back to the stored asset. A dangling reference renders without a logo.
func (c *Client) resolveLogo(ctx context.Context, record models.InvoiceRecord) ([]byte, error) {
	if record.IconData != "" {
		return models.DecodeInlineImage(record.IconData), nil
	}
	if record.IconHash == "" || c.assets == nil {
		return nil, nil
	}
	payload, err := c.assets.Get(ctx, record.IconHash)
	if errors.Is(err, assetstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))

	message := strings.TrimSpace(string(body))
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		message = detail.Detail
	}
	if message == "" {
		message = resp.Status
	}

	return &GenerationError{Status: resp.StatusCode, Message: message}
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
