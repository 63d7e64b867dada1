package server

import (
	"net/http"

	"invoicer/internal/api"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := api.InfoResponse{
		DBPath:       s.dbPath,
		AssetsDir:    s.assetsDir,
		ArtifactsDir: s.artifactsDir,
		EndpointURL:  s.endpointURL,
		PDFBackend:   s.pdfBackend,
		RecordCount:  len(records),
	}

	s.writeJSON(w, http.StatusOK, resp)
}
