package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/soochol/weave/internal/agents"
	"github.com/soochol/weave/internal/api"
	"github.com/soochol/weave/internal/config"
	"github.com/soochol/weave/internal/db"
	"github.com/soochol/weave/internal/directory"
	"github.com/soochol/weave/internal/engine"
	"github.com/soochol/weave/internal/pipeline"
	"github.com/soochol/weave/internal/repository"
	"github.com/soochol/weave/internal/rpc"
	"github.com/soochol/weave/internal/services"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		serve()
		return
	}
	fmt.Println("weave v0.1.0")
	fmt.Println("Usage: weave serve")
}

func serve() {
	// Missing .env is fine; real deployments set the environment directly.
	godotenv.Load()

	cfg, err := config.LoadDefault()
	if err != nil {
		slog.Error("config error", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	compositeMem := repository.NewMemoryCompositeRepository()
	sinkMem := repository.NewMemorySinkRepository()
	runMem := repository.NewMemoryRunRepository()
	scheduleMem := repository.NewMemoryScheduleRepository()

	var (
		compositeRepo repository.CompositeRepository = compositeMem
		sinkRepo      repository.SinkRepository      = sinkMem
		runRepo       repository.RunRepository       = runMem
		scheduleRepo  repository.ScheduleRepository  = scheduleMem
	)

	if cfg.Database.URL != "" {
		database, err := db.New(ctx, cfg.Database.URL)
		if err != nil {
			slog.Error("database connection failed", "err", err)
			os.Exit(1)
		}
		defer database.Close()
		if err := database.Migrate(ctx); err != nil {
			slog.Error("database migration failed", "err", err)
			os.Exit(1)
		}

		composites := repository.NewPersistentCompositeRepository(compositeMem, database)
		if err := composites.Warm(ctx); err != nil {
			slog.Warn("composite cache warm failed", "err", err)
		}
		sinks := repository.NewPersistentSinkRepository(sinkMem, database)
		if err := sinks.Warm(ctx); err != nil {
			slog.Warn("sink cache warm failed", "err", err)
		}
		compositeRepo = composites
		sinkRepo = sinks
		runRepo = repository.NewPersistentRunRepository(runMem, database)
		scheduleRepo = repository.NewPersistentScheduleRepository(scheduleMem, database)
		slog.Info("persistence enabled")
	} else {
		slog.Info("no database configured, state is in-memory only")
	}

	registry := agents.NewRegistry()
	builtinCards := agents.RegisterBuiltins(registry)

	rpcClient := rpc.NewClient(http.DefaultClient, time.Duration(cfg.Registry.TimeoutSeconds)*time.Second)

	sources := []directory.Source{directory.NewStaticSource(builtinCards...)}
	if cfg.Registry.URL != "" {
		sources = append(sources, directory.NewRegistrySource(rpcClient, cfg.Registry.URL))
	}
	sources = append(sources, directory.NewCompositeSource(compositeRepo))
	dir := directory.New(sources...)

	runner := engine.NewRunner(dir, registry, time.Duration(cfg.Engine.CallTimeoutSeconds)*time.Second)

	// Late-bound resolvers: remote agents advertised through the
	// directory, then composites backed by the running engine.
	registry.AddFallback(agents.RemoteResolver(dir, rpcClient))
	registry.AddFallback(agents.CompositeResolver(compositeRepo, runner))

	compositeSvc := services.NewCompositeService(compositeRepo, dir, dir.Invalidate)
	sinkSvc := services.NewSinkService(sinkRepo)
	historySvc := services.NewRunHistoryService(runRepo)
	schedulerSvc := services.NewSchedulerService(scheduleRepo, compositeRepo, runner, historySvc)
	if err := schedulerSvc.Start(ctx); err != nil {
		slog.Error("scheduler start failed", "err", err)
		os.Exit(1)
	}
	defer schedulerSvc.Stop()

	pipe := pipeline.New(sinkSvc, registry, pipeline.RoleBindings{
		Chat:      cfg.Pipeline.ChatAgent,
		Planner:   cfg.Pipeline.PlannerAgent,
		Executor:  cfg.Pipeline.ExecutorAgent,
		Analytics: cfg.Pipeline.AnalyticsAgent,
	})

	srv := api.NewServer(dir, runner, compositeSvc, sinkSvc, pipe)
	srv.SetRunHistoryService(historySvc)
	srv.SetSchedulerService(schedulerSvc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	slog.Info("starting weave server", "addr", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
