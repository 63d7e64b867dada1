package server

import (
	"net/http"

	"invoicer/internal/models"
	"invoicer/internal/query"
)

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	records, err := s.records.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, query.View(records, opts))
}

func listOptions(r *http.Request) (query.Options, error) {
	values := r.URL.Query()

	field, err := query.ParseSortField(values.Get("sort"))
	if err != nil {
		return query.Options{}, badRequestCode(err, ErrCodeInvalidQuery)
	}
	direction, err := query.ParseDirection(values.Get("direction"))
	if err != nil {
		return query.Options{}, badRequestCode(err, ErrCodeInvalidQuery)
	}

	return query.Options{
		Query:     values.Get("q"),
		SortField: field,
		Direction: direction,
	}, nil
}

func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var candidate models.InvoiceRecord
	if !s.decodeJSONReq(w, r, &candidate) {
		return
	}

	created, err := s.records.Add(r.Context(), candidate)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	record, err := s.records.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleUpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	var record models.InvoiceRecord
	if !s.decodeJSONReq(w, r, &record) {
		return
	}
	record.ID = id

	updated, err := s.records.Update(r.Context(), record)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	if err := s.records.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
