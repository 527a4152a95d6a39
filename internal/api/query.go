package api

import (
	"encoding/json"
	"net/http"

	"github.com/soochol/weave/internal/weave"
)

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req weave.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := s.pipeline.Handle(r.Context(), req)

	if s.historySvc != nil {
		status := weave.StatusSuccess
		if resp.Type == weave.ResponseError {
			status = weave.StatusError
		}
		if rec, err := s.historySvc.StartRun(r.Context(), weave.RunKindQuery, req.ContextID, map[string]any{"query": req.Query}); err == nil {
			if status == weave.StatusError {
				s.historySvc.FailRun(r.Context(), rec.ID, resp.Error)
			} else {
				s.historySvc.CompleteRun(r.Context(), rec.ID, status, nil)
			}
		}
	}

	// A pipeline failure is still a well-formed response; HTTP 200 keeps
	// the typed envelope as the single source of truth for clients.
	writeJSON(w, http.StatusOK, resp)
}
