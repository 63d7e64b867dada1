package server

import (
	"net/http"
	"strings"

	"invoicer/internal/api"
	"invoicer/internal/render"
)

// handleGenerate renders one document for the record and writes the artifact
// reference back. A failed attempt leaves the record untouched.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	format, err := render.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(err, ErrCodeInvalidFormat))
		return
	}

	s.withLimiter(w, r, s.generateLimiter, "generate", func() {
		record, err := s.records.Get(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}

		artifact, err := s.renderer.Generate(r.Context(), record, format)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}

		record.ArtifactPath = artifact.Path
		updated, err := s.records.Update(r.Context(), record)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusOK, api.GenerateResponse{Artifact: artifact, Record: updated})
	})
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.PathValue("key"))

	payload, err := s.records.Assets().Get(r.Context(), key)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(payload))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		s.log().Error("write asset response", "key", key, "error", err)
	}
}
