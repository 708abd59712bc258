package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/hearthapp/hearth/internal/api/handler"
	"github.com/hearthapp/hearth/internal/api/middleware"
	"github.com/hearthapp/hearth/internal/metrics"
	"github.com/hearthapp/hearth/internal/service"
	"github.com/hearthapp/hearth/internal/storage"
)

// Deps holds what the router needs to build its handlers.
type Deps struct {
	Store    storage.Store
	Log      *zap.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter creates and configures the HTTP router.
func NewRouter(deps Deps) *chi.Mux {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	auditRepo := deps.Store.AuditLogs()

	r := chi.NewRouter()

	// Global middleware chain. Logging wraps Recovery so that requests
	// ending in a panic are still logged and counted.
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log, deps.Metrics))
	r.Use(middleware.Recovery(log))
	r.Use(chimiddleware.RealIP)

	// Initialize services and handlers
	projects := service.NewProjectService(deps.Store, auditRepo, log)
	tasks := service.NewTaskService(deps.Store, auditRepo, log)
	dependencies := service.NewDependencyService(deps.Store, auditRepo, log, deps.Metrics)
	templates := service.NewTemplateService(deps.Store, projects, tasks, dependencies, auditRepo, log)

	systemHandler := handler.NewSystemHandler(deps.Store, log)
	projectHandler := handler.NewProjectHandler(projects, templates)
	taskHandler := handler.NewTaskHandler(tasks)
	dependencyHandler := handler.NewDependencyHandler(dependencies)
	auditHandler := handler.NewAuditHandler(service.NewAuditService(auditRepo))

	// System routes (no identity needed)
	r.Get("/v1/health", systemHandler.Health)
	if deps.Gatherer != nil {
		r.Method("GET", "/metrics", metrics.Handler(deps.Gatherer))
	}

	// Family-scoped routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Member)
		r.Use(middleware.RequireParent)

		r.Get("/v1/projects", projectHandler.ListProjects)
		r.Post("/v1/projects", projectHandler.CreateProject)
		r.Get("/v1/projects/templates", projectHandler.ListTemplates)
		r.Post("/v1/projects/templates", projectHandler.CreateFromTemplate)

		r.Route("/v1/projects/{projectID}", func(r chi.Router) {
			r.Get("/", projectHandler.GetProject)
			r.Patch("/", projectHandler.UpdateProject)
			r.Delete("/", projectHandler.DeleteProject)
			r.Get("/verify", projectHandler.VerifyProject)
			r.Get("/dependencies", dependencyHandler.ListProjectDependencies)
			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks", taskHandler.CreateTask)
		})

		r.Route("/v1/tasks/{taskID}", func(r chi.Router) {
			r.Get("/", taskHandler.GetTask)
			r.Patch("/", taskHandler.UpdateTask)
			r.Delete("/", taskHandler.DeleteTask)
			r.Get("/dependencies", dependencyHandler.ListDependencies)
			r.Post("/dependencies", dependencyHandler.AddDependency)
		})

		r.Delete("/v1/dependencies/{dependencyID}", dependencyHandler.RemoveDependency)
		r.Get("/v1/audit", auditHandler.QueryAuditLog)
	})

	return r
}
