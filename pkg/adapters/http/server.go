package http

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/cipher"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves the API over a set of named machines.
type Server struct {
	Machines ports.MachineLoader
	Store    ports.RunStore
	Streams  *StreamManager

	cipher    *cipher.Cipher
	stepLimit int
	hooks     domain.LifecycleHooks
	metrics   http.Handler
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithStore keeps every run and enables the /runs endpoints.
func WithStore(store ports.RunStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithStepLimit bounds every run served (default turing.DefaultStepLimit).
func WithStepLimit(limit int) Option {
	return func(s *Server) {
		s.stepLimit = limit
	}
}

// WithLifecycleHooks adds hooks to every machine built by the server.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// WithMetrics mounts h under /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server resolving machine names through machines.
func NewServer(machines ports.MachineLoader, opts ...Option) *Server {
	s := &Server{
		Machines:  machines,
		Streams:   NewStreamManager(),
		stepLimit: turing.DefaultStepLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.cipher = cipher.New(s.machineOptions()...)
	return s
}

// NewHandler creates a new HTTP handler for the machines.
func NewHandler(machines ports.MachineLoader, opts ...Option) http.Handler {
	return NewServer(machines, opts...).Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Route("/machines", func(r chi.Router) {
		r.Get("/", s.ListMachines)
		r.Get("/{name}", s.GetMachine)
		r.Post("/{name}/run", s.RunMachine)
	})
	r.Post("/run", s.RunDocument)
	r.Post("/encrypt", s.cipherHandler(cipher.Encrypt))
	r.Post("/decrypt", s.cipherHandler(cipher.Decrypt))

	r.Route("/runs", func(r chi.Router) {
		r.Get("/", s.ListRuns)
		r.Get("/{id}", s.GetRun)
		r.Delete("/{id}", s.DeleteRun)
	})
	r.Get("/events", s.SubscribeEvents)

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return r
}

// machineOptions are the facade options applied to every machine the server runs.
// Run ends are broadcast to /events subscribers in addition to the configured hooks.
func (s *Server) machineOptions() []turing.Option {
	opts := []turing.Option{
		turing.WithStepLimit(s.stepLimit),
		turing.WithLogger(s.logger),
		turing.WithLifecycleHooks(s.broadcastHooks()),
	}
	if s.Store != nil {
		opts = append(opts, turing.WithStore(s.Store))
	}
	return opts
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
