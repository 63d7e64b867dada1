package server

import (
	"fmt"
	"net/http"
	"strconv"

	"invoicer/internal/api"
)

func (s *Server) handleAdminSweep(w http.ResponseWriter, r *http.Request) {
	apply, err := strconv.ParseBool(r.URL.Query().Get("apply"))
	if err != nil {
		apply = false
	}

	result, err := s.records.SweepAssets(r.Context(), apply)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.SweepResponse{
		Candidates: result.Candidates,
		Deleted:    result.Deleted,
		Failed:     result.Failed,
		Keys:       result.Keys,
		DryRun:     result.DryRun,
	})
}

// handleAdminClear deletes every record and stored asset. Destructive, so it
// demands an explicit confirm header.
func (s *Server) handleAdminClear(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Confirm") != "true" {
		s.writeErrorReq(w, r, http.StatusBadRequest,
			badRequestCode(fmt.Errorf("clear requires X-Confirm: true"), ErrCodeConfirmRequired))
		return
	}

	if err := s.records.ClearAll(r.Context()); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
