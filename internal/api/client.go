package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"invoicer/internal/models"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	httpTimeoutEnvKey  = "INVOICER_API_TIMEOUT"
)

// Client is a simple HTTP client for the invoicer API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeoutFromEnv()},
	}
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) GetInfo(ctx context.Context) (InfoResponse, error) {
	var resp InfoResponse
	err := c.do(ctx, http.MethodGet, "/v1/info", nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateInvoice(ctx context.Context, record models.InvoiceRecord) (models.InvoiceRecord, error) {
	var resp models.InvoiceRecord
	err := c.do(ctx, http.MethodPost, "/v1/invoices", nil, record, &resp)
	return resp, err
}

func (c *Client) GetInvoice(ctx context.Context, id string) (models.InvoiceRecord, error) {
	var resp models.InvoiceRecord
	err := c.do(ctx, http.MethodGet, "/v1/invoices/"+url.PathEscape(id), nil, nil, &resp)
	return resp, err
}

func (c *Client) UpdateInvoice(ctx context.Context, id string, record models.InvoiceRecord) (models.InvoiceRecord, error) {
	var resp models.InvoiceRecord
	err := c.do(ctx, http.MethodPut, "/v1/invoices/"+url.PathEscape(id), nil, record, &resp)
	return resp, err
}

func (c *Client) DeleteInvoice(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/invoices/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListInvoices(ctx context.Context, query url.Values) ([]models.InvoiceRecord, error) {
	var resp []models.InvoiceRecord
	err := c.do(ctx, http.MethodGet, "/v1/invoices", query, nil, &resp)
	return resp, err
}

// ExportInvoice streams one record as YAML to a writer.
func (c *Client) ExportInvoice(ctx context.Context, id string, includeLogo bool, w io.Writer) error {
	endpoint := c.baseURL + "/v1/invoices/" + url.PathEscape(id) + "/export"
	if includeLogo {
		endpoint += "?include_logo=true"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

// Import sends a YAML document and returns the created record.
func (c *Client) Import(ctx context.Context, document io.Reader) (models.InvoiceRecord, error) {
	var resp models.InvoiceRecord
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/import", document)
	if err != nil {
		return resp, err
	}
	req.Header.Set("Content-Type", "application/yaml")

	httpResp, err := c.http.Do(req)
	if err != nil {
		return resp, err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode >= 400 {
		return resp, decodeError(httpResp)
	}
	err = json.NewDecoder(httpResp.Body).Decode(&resp)
	return resp, err
}

// Generate asks the server to render one document for the record.
func (c *Client) Generate(ctx context.Context, id, format string) (GenerateResponse, error) {
	var resp GenerateResponse
	query := url.Values{}
	if format != "" {
		query.Set("format", format)
	}
	err := c.do(ctx, http.MethodPost, "/v1/invoices/"+url.PathEscape(id)+"/generate", query, nil, &resp)
	return resp, err
}

// GetAsset fetches one stored asset payload by key.
func (c *Client) GetAsset(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/assets/"+url.PathEscape(key), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, decodeError(resp)
	}
	return io.ReadAll(resp.Body)
}

// AdminSweep runs the unreferenced-asset sweep.
func (c *Client) AdminSweep(ctx context.Context, apply bool) (SweepResponse, error) {
	var resp SweepResponse
	query := url.Values{}
	if apply {
		query.Set("apply", "true")
	}
	err := c.do(ctx, http.MethodPost, "/v1/admin/sweep", query, nil, &resp)
	return resp, err
}

// AdminClear deletes every record and every stored asset. The server refuses
// the call without the confirm header.
func (c *Client) AdminClear(ctx context.Context, confirm bool) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/admin/clear", nil)
	if err != nil {
		return err
	}
	if confirm {
		req.Header.Set("X-Confirm", "true")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return &APIError{
			Status:    resp.StatusCode,
			Code:      errResp.Code,
			ErrorCode: errResp.ErrorCode,
			Message:   errResp.Error,
		}
	}
	return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("api error: %s", resp.Status)}
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
