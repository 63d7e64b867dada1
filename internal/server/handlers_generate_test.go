package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"invoicer/internal/api"
)

func stubRenderer(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(stub.Close)
	return stub
}

func TestGenerateWritesArtifactBack(t *testing.T) {
	document := bytes.Repeat([]byte("%PDF"), 200)
	stub := stubRenderer(t, http.StatusOK, document)

	srv, records := newTestServer(t, stub.URL)

	created, err := records.Add(t.Context(), testRecord("Acme Ltd", 1000))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	rec := doJSON(t, srv, http.MethodPost, "/v1/invoices/"+created.ID+"/generate?format=pdf", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp api.GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Artifact.Path == "" {
		t.Fatal("expected artifact path")
	}
	if resp.Record.ArtifactPath != resp.Artifact.Path {
		t.Fatalf("record artifact %q does not match %q", resp.Record.ArtifactPath, resp.Artifact.Path)
	}

	stored, err := records.Get(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.ArtifactPath != resp.Artifact.Path {
		t.Fatalf("artifact path not persisted, got %q", stored.ArtifactPath)
	}
}

func TestGenerateFailureLeavesRecordUntouched(t *testing.T) {
	stub := stubRenderer(t, http.StatusInternalServerError, []byte(`{"detail": "server error"}`))

	srv, records := newTestServer(t, stub.URL)

	created, err := records.Add(t.Context(), testRecord("Acme Ltd", 1000))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	rec := doJSON(t, srv, http.MethodPost, "/v1/invoices/"+created.ID+"/generate?format=pdf", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "server error") {
		t.Fatalf("expected upstream detail in response, got %s", rec.Body.String())
	}

	stored, err := records.Get(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.ArtifactPath != "" {
		t.Fatalf("record gained artifact path %q after failed generation", stored.ArtifactPath)
	}
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	srv, records := newTestServer(t, "http://127.0.0.1:1")

	created, err := records.Add(t.Context(), testRecord("Acme Ltd", 1000))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	rec := doJSON(t, srv, http.MethodPost, "/v1/invoices/"+created.ID+"/generate?format=odt", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetAsset(t *testing.T) {
	srv, records := newTestServer(t, "http://127.0.0.1:1")

	key, err := records.Assets().Put(t.Context(), []byte("logo payload"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	rec := doJSON(t, srv, http.MethodGet, "/v1/assets/"+key, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "logo payload" {
		t.Fatalf("unexpected payload %q", rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/assets/"+strings.Repeat("0", 64), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown key, got %d", rec.Code)
	}
}
