package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soochol/weave/internal/pipeline"
	"github.com/soochol/weave/internal/repository"
	"github.com/soochol/weave/internal/services"
	"github.com/soochol/weave/internal/weave"
)

func (s *Server) createSink(w http.ResponseWriter, r *http.Request) {
	var entry weave.SinkEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.sinkSvc.Create(r.Context(), &entry); err != nil {
		if errors.Is(err, repository.ErrExists) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) listSinks(w http.ResponseWriter, r *http.Request) {
	entries, err := s.sinkSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if entries == nil {
		entries = []*weave.SinkEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) getSink(w http.ResponseWriter, r *http.Request) {
	contextID := chi.URLParam(r, "contextId")
	entry, err := s.sinkSvc.Lookup(r.Context(), contextID)
	if err != nil {
		if errors.Is(err, services.ErrContextNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error(), Kind: pipeline.KindUnrecognizedContext})
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) updateSink(w http.ResponseWriter, r *http.Request) {
	contextID := chi.URLParam(r, "contextId")
	var entry weave.SinkEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry.ContextID = contextID
	if err := s.sinkSvc.Update(r.Context(), &entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, errors.New("sink not found"))
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) deleteSink(w http.ResponseWriter, r *http.Request) {
	contextID := chi.URLParam(r, "contextId")
	if err := s.sinkSvc.Delete(r.Context(), contextID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, errors.New("sink not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
