package server

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"invoicer/internal/assetstore"
	"invoicer/internal/codec"
)

// handleExport streams one record as a YAML document. The artifact reference
// never leaves the machine; with include_logo=true the stored logo payload is
// embedded as base64 so the document is portable on its own.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	record, err := s.records.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if includeLogo(r) && record.IconHash != "" {
		payload, err := s.records.Assets().Get(r.Context(), record.IconHash)
		switch {
		case errors.Is(err, assetstore.ErrNotFound):
			// Dangling reference, export without the logo.
		case err != nil:
			s.writeServiceError(w, r, err)
			return
		default:
			record.IconData = base64.StdEncoding.EncodeToString(payload)
		}
	}

	document, err := codec.Export(record)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("invoice_%d.yaml", record.InvoiceNumber)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(document); err != nil {
		s.log().Error("write export response", "id", id, "error", err)
	}
}

func includeLogo(r *http.Request) bool {
	value, err := strconv.ParseBool(r.URL.Query().Get("include_logo"))
	return err == nil && value
}

// handleImport accepts a YAML document, fills defaults for missing fields, and
// creates a new record.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	s.withLimiter(w, r, s.importLimiter, "import", func() {
		r.Body = http.MaxBytesReader(w, r.Body, int64(importYAMLMaxBody))
		document, err := io.ReadAll(r.Body)
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				s.writeErrorReq(w, r, http.StatusBadRequest,
					badRequestCode(fmt.Errorf("request body too large"), ErrCodeRequestTooLarge))
				return
			}
			s.writeErrorReq(w, r, http.StatusBadRequest, badRequest(err))
			return
		}

		draft, err := codec.Import(document)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}

		created, err := s.records.Add(r.Context(), draft.Apply())
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusCreated, created)
	})
}
