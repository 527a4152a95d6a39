package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soochol/weave/internal/repository"
	"github.com/soochol/weave/internal/weave"
)

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.historySvc.ListRuns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if runs == nil {
		runs = []*weave.RunRecord{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.historySvc.GetRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, errors.New("run not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
