// Package gateway serves the advice endpoint the planner submits profiles to,
// and provides the client side used by the TUI and CLI.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// DefaultPath is the route profiles are posted to.
const DefaultPath = "/.netlify/functions/getAdvice"

const (
	defaultAddr    = "127.0.0.1:8787"
	maxRequestBody = 1 << 20
	requestIDKey   = "X-Request-Id"
)

// Advisor turns a serialized profile into advice text.
type Advisor interface {
	Advise(ctx context.Context, profileJSON []byte) (string, error)
}

// Config controls where the gateway listens.
type Config struct {
	Addr string
	Path string
}

// Server is the advice gateway HTTP service.
type Server struct {
	cfg     Config
	advisor Advisor
	log     logrus.FieldLogger
	router  *mux.Router
}

// NewServer builds the gateway router around advisor.
func NewServer(cfg Config, advisor Advisor, log logrus.FieldLogger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Server{cfg: cfg, advisor: advisor, log: log}

	r := mux.NewRouter()
	r.Use(s.withRequestID)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc(cfg.Path, s.handleAdvice).Methods(http.MethodPost)
	r.MethodNotAllowedHandler = s.withRequestID(http.HandlerFunc(handleMethodNotAllowed))
	s.router = r
	return s
}

// Handler returns the gateway's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.cfg.Addr }

// Path returns the advice endpoint path.
func (s *Server) Path() string { return s.cfg.Path }

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("gateway listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.WithFields(logrus.Fields{"addr": ln.Addr().String(), "path": s.cfg.Path}).Info("advice gateway listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("gateway http server: %w", err)
	}
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	log := s.log.WithField("request_id", w.Header().Get(requestIDKey))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		log.WithError(err).Warn("reading request body")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	var profile json.RawMessage
	if err := json.Unmarshal(body, &profile); err != nil {
		log.WithError(err).Warn("request body is not JSON")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	advice, err := s.advisor.Advise(r.Context(), profile)
	if err != nil {
		log.WithError(err).Error("advice request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, adviceResponse{Advice: advice})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
}

// withRequestID tags each request with an id and logs its outcome.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDKey, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		s.log.WithFields(logrus.Fields{
			"request_id":  id,
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
