package api

import (
	"encoding/json"
	"net/http"

	"github.com/soochol/weave/internal/engine"
	"github.com/soochol/weave/internal/weave"
)

// runWorkflowRequest carries an ad-hoc workflow plus its initial inputs.
type runWorkflowRequest struct {
	Name   string                 `json:"name,omitempty"`
	Nodes  []weave.NodeDefinition `json:"nodes"`
	Edges  []weave.EdgeDefinition `json:"edges,omitempty"`
	Inputs map[string]any         `json:"inputs,omitempty"`
}

func (req *runWorkflowRequest) workflow() *weave.WorkflowDefinition {
	return &weave.WorkflowDefinition{Name: req.Name, Nodes: req.Nodes, Edges: req.Edges}
}

// listAgents returns every agent card visible through the directory,
// builtin, remote, and composite alike.
func (s *Server) listAgents(w http.ResponseWriter, r *http.Request) {
	cards, err := s.directory.List(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) runWorkflow(w http.ResponseWriter, r *http.Request) {
	var req runWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	wf := req.workflow()
	var runID string
	if s.historySvc != nil {
		if rec, err := s.historySvc.StartRun(r.Context(), weave.RunKindWorkflow, wf.Name, req.Inputs); err == nil {
			runID = rec.ID
		}
	}

	result, err := s.runner.Execute(r.Context(), wf, req.Inputs)
	if err != nil {
		if runID != "" {
			s.historySvc.FailRun(r.Context(), runID, err.Error())
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if runID != "" {
		s.historySvc.CompleteRun(r.Context(), runID, result.Status, result.Logs)
	}
	writeJSON(w, http.StatusOK, result)
}

// workflowParams resolves the external input surface of a workflow
// without running it.
func (s *Server) workflowParams(w http.ResponseWriter, r *http.Request) {
	var req runWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resolved := engine.ResolveParams(r.Context(), req.workflow(), s.directory)
	writeJSON(w, http.StatusOK, resolved)
}
