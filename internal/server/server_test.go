package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"invoicer/internal/assetstore"
	"invoicer/internal/invoices"
	"invoicer/internal/kvstore"
	"invoicer/internal/render"
)

func newTestServer(t *testing.T, endpoint string) (*Server, *invoices.Store) {
	t.Helper()

	records := invoices.NewStore(kvstore.NewMemory(), assetstore.NewMemory())

	artifacts, err := render.NewArtifactDir(t.TempDir())
	if err != nil {
		t.Fatalf("artifact dir: %v", err)
	}
	renderer := render.NewClient(endpoint, "libreoffice", records.Assets(), artifacts)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New("127.0.0.1:0", records, renderer, Info{DBPath: "/tmp/test.db"}, logger)
	return srv, records
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, "http://127.0.0.1:1")

	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestInfoReportsRecordCount(t *testing.T) {
	srv, records := newTestServer(t, "http://127.0.0.1:1")
	ctx := t.Context()

	for range 3 {
		if _, err := records.Add(ctx, testRecord("Acme Ltd", 1000)); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/info", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"record_count":3`) {
		t.Fatalf("expected record_count 3 in %s", body)
	}
}

func TestListenAddrDefaultsToLoopback(t *testing.T) {
	addr, err := ListenAddr("http://127.0.0.1:7411")
	if err != nil {
		t.Fatalf("listen addr: %v", err)
	}
	if addr != "127.0.0.1:7411" {
		t.Fatalf("unexpected addr %q", addr)
	}
}

func TestListenAddrRejectsRemoteHost(t *testing.T) {
	t.Setenv("INVOICER_ALLOW_REMOTE", "")
	if _, err := ListenAddr("http://0.0.0.0:7411"); err == nil {
		t.Fatal("expected error for remote listen host")
	}
}

func TestListenAddrAllowsRemoteWhenOptedIn(t *testing.T) {
	t.Setenv("INVOICER_ALLOW_REMOTE", "true")
	addr, err := ListenAddr("http://0.0.0.0:7411")
	if err != nil {
		t.Fatalf("listen addr: %v", err)
	}
	if addr != "0.0.0.0:7411" {
		t.Fatalf("unexpected addr %q", addr)
	}
}
