// Package api exposes the orchestration core over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/soochol/weave/internal/directory"
	"github.com/soochol/weave/internal/engine"
	"github.com/soochol/weave/internal/pipeline"
	"github.com/soochol/weave/internal/services"
)

type Server struct {
	directory    *directory.Directory
	runner       *engine.Runner
	compositeSvc *services.CompositeService
	sinkSvc      *services.SinkService
	pipeline     *pipeline.Pipeline

	historySvc   *services.RunHistoryService
	schedulerSvc *services.SchedulerService
}

func NewServer(dir *directory.Directory, runner *engine.Runner, composites *services.CompositeService, sinks *services.SinkService, pipe *pipeline.Pipeline) *Server {
	return &Server{
		directory:    dir,
		runner:       runner,
		compositeSvc: composites,
		sinkSvc:      sinks,
		pipeline:     pipe,
	}
}

// SetRunHistoryService configures the run history service.
func (s *Server) SetRunHistoryService(svc *services.RunHistoryService) {
	s.historySvc = svc
}

// SetSchedulerService configures the scheduler service.
func (s *Server) SetSchedulerService(svc *services.SchedulerService) {
	s.schedulerSvc = svc
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))
	r.Route("/api", func(r chi.Router) {
		r.Get("/agents", s.listAgents)
		r.Post("/run_workflow", s.runWorkflow)
		r.Post("/workflow_params", s.workflowParams)
		r.Post("/query", s.handleQuery)
		r.Route("/composites", func(r chi.Router) {
			r.Post("/", s.createComposite)
			r.Get("/", s.listComposites)
			r.Get("/{name}", s.getComposite)
			r.Delete("/{name}", s.deleteComposite)
		})
		r.Route("/sinks", func(r chi.Router) {
			r.Post("/", s.createSink)
			r.Get("/", s.listSinks)
			r.Get("/{contextId}", s.getSink)
			r.Put("/{contextId}", s.updateSink)
			r.Delete("/{contextId}", s.deleteSink)
		})
		if s.historySvc != nil {
			r.Route("/runs", func(r chi.Router) {
				r.Get("/", s.listRuns)
				r.Get("/{id}", s.getRun)
			})
		}
		if s.schedulerSvc != nil {
			r.Route("/schedules", func(r chi.Router) {
				r.Post("/", s.createSchedule)
				r.Get("/", s.listSchedules)
				r.Delete("/{id}", s.deleteSchedule)
			})
		}
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorBody is the uniform error envelope. Kind is set only when a
// machine-checkable discriminator exists for the failure.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}
