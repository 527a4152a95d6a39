package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soochol/weave/internal/repository"
	"github.com/soochol/weave/internal/services"
	"github.com/soochol/weave/internal/weave"
)

type createCompositeRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Nodes       []weave.NodeDefinition `json:"nodes"`
	Edges       []weave.EdgeDefinition `json:"edges,omitempty"`
}

func (s *Server) createComposite(w http.ResponseWriter, r *http.Request) {
	var req createCompositeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	wf := &weave.WorkflowDefinition{Name: req.Name, Nodes: req.Nodes, Edges: req.Edges}
	card, err := s.compositeSvc.Register(r.Context(), req.Name, req.Description, wf)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateName):
			writeError(w, http.StatusConflict, err)
		case errors.Is(err, services.ErrEmptyWorkflow), errors.Is(err, services.ErrCompositeCycle):
			writeError(w, http.StatusBadRequest, err)
		default:
			writeError(w, http.StatusBadRequest, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (s *Server) listComposites(w http.ResponseWriter, r *http.Request) {
	defs, err := s.compositeSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if defs == nil {
		defs = []*weave.CompositeDefinition{}
	}
	writeJSON(w, http.StatusOK, defs)
}

func (s *Server) getComposite(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	def, err := s.compositeSvc.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, errors.New("composite not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func (s *Server) deleteComposite(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.compositeSvc.Remove(r.Context(), name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, errors.New("composite not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
