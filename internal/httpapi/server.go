package httpapi

import (
	"html/template"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"todo-web/internal/model"
	"todo-web/internal/observability/jsonlog"
)

const (
	defaultRequestTimeout = 3 * time.Second
	defaultMaxFormBytes   = 1 << 20 // 1 MiB
)

type TaskService interface {
	Create(title, description string) (model.Task, error)
	List() []model.Task
	Complete(id int64) error
	Delete(id int64) error
}

// Options tunes the server. Zero values fall back to defaults.
type Options struct {
	RequestTimeout time.Duration
	MaxFormBytes   int64
}

type Server struct {
	service      TaskService
	logger       *jsonlog.Logger
	router       chi.Router
	listTmpl     *template.Template
	maxFormBytes int64
	draining     atomic.Bool
}

func NewServer(service TaskService, logger *jsonlog.Logger, opts Options) *Server {
	if logger == nil {
		logger = jsonlog.Discard()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.MaxFormBytes <= 0 {
		opts.MaxFormBytes = defaultMaxFormBytes
	}

	srv := &Server{
		service:      service,
		logger:       logger,
		router:       chi.NewRouter(),
		listTmpl:     mustParseTemplates(),
		maxFormBytes: opts.MaxFormBytes,
	}

	srv.router.Use(
		WithRequestID,
		Logging(logger),
		middleware.Recoverer,
		Timeout(opts.RequestTimeout),
	)

	srv.router.Get("/healthz", srv.handleHealth)
	srv.router.Get("/readyz", srv.handleReadyz)

	srv.router.Get("/", srv.handleListTasks)
	srv.router.Post("/add", srv.handleCreateTask)
	// Non-numeric ids never match and fall through to chi's 404.
	srv.router.Get("/complete/{id:[0-9]+}", srv.handleCompleteTask)
	srv.router.Get("/delete/{id:[0-9]+}", srv.handleDeleteTask)

	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
