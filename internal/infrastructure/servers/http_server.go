package servers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repodoctor/internal/domain/commands"
)

const (
	readTimeout = 15 * time.Second
	// reads may wait on the upstream provider
	writeTimeout = 60 * time.Second
)

// HTTPServer exposes the repository tools as plain JSON endpoints.
type HTTPServer struct {
	router *mux.Router
	tools  *commands.RepositoryTools
	server *http.Server
}

// NewHTTPServer creates a fully-wired HTTPServer ready to Start().
func NewHTTPServer(addr string, tools *commands.RepositoryTools) *HTTPServer {
	srv := &HTTPServer{
		router: mux.NewRouter(),
		tools:  tools,
	}
	srv.server = &http.Server{
		Addr:         addr,
		Handler:      srv.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	srv.registerRoutes()
	return srv
}

// Handler returns the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler { return s.router }

// Start begins listening and serving HTTP requests. It blocks until the
// server is shut down or encounters a fatal error.
func (s *HTTPServer) Start() error {
	logger.Infof("HTTP tool server listening on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests and stops the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) registerRoutes() {
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	s.router.HandleFunc("/tools", s.handleListTools).Methods(http.MethodGet)
	s.router.HandleFunc("/tools/{name}", s.handleCallTool).Methods(http.MethodPost)
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tools.Specs())
}

func (s *HTTPServer) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	// an empty body, chunked or not, means no arguments
	arguments := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&arguments); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid arguments: "+err.Error())
		return
	}
	if arguments == nil {
		arguments = map[string]any{}
	}

	result, err := s.tools.Call(r.Context(), name, arguments)
	if err != nil {
		if errors.Is(err, commands.ErrUnknownTool) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeJSON serialises data as JSON and writes it to the response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("failed to encode JSON response: %v", err)
	}
}

// writeError writes a JSON error envelope to the response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
