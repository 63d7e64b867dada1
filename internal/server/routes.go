package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check and info.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/info", s.handleInfo)

	// Invoice collection.
	mux.HandleFunc("GET /v1/invoices", s.handleListInvoices)
	mux.HandleFunc("POST /v1/invoices", s.handleCreateInvoice)

	// Single invoice.
	mux.HandleFunc("GET /v1/invoices/{id}", s.handleGetInvoice)
	mux.HandleFunc("PUT /v1/invoices/{id}", s.handleUpdateInvoice)
	mux.HandleFunc("DELETE /v1/invoices/{id}", s.handleDeleteInvoice)

	// Import/Export.
	mux.HandleFunc("GET /v1/invoices/{id}/export", s.handleExport)
	mux.HandleFunc("POST /v1/import", s.handleImport)

	// Document generation.
	mux.HandleFunc("POST /v1/invoices/{id}/generate", s.handleGenerate)

	// Assets.
	mux.HandleFunc("GET /v1/assets/{key}", s.handleGetAsset)

	// Admin.
	mux.HandleFunc("POST /v1/admin/sweep", s.handleAdminSweep)
	mux.HandleFunc("POST /v1/admin/clear", s.handleAdminClear)

	return s.withRequestLogging(mux)
}
