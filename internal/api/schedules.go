package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soochol/weave/internal/repository"
	"github.com/soochol/weave/internal/weave"
)

func (s *Server) createSchedule(w http.ResponseWriter, r *http.Request) {
	var sched weave.ScheduleDefinition
	if err := json.NewDecoder(r.Body).Decode(&sched); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.schedulerSvc.Add(r.Context(), &sched); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, sched)
}

func (s *Server) listSchedules(w http.ResponseWriter, r *http.Request) {
	scheds, err := s.schedulerSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if scheds == nil {
		scheds = []*weave.ScheduleDefinition{}
	}
	writeJSON(w, http.StatusOK, scheds)
}

func (s *Server) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.schedulerSvc.Remove(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, errors.New("schedule not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
