// Package http exposes playback sessions over a JSON API. Sessions are
// stateless on the server side: every request loads the snapshot from the
// store, rebuilds a runtime and persists the result.
package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fabulist/fabula/internal/runtime"
	"github.com/fabulist/fabula/pkg/domain"
	"github.com/fabulist/fabula/pkg/ports"
)

// Server hosts one story document and drives sessions against a store.
type Server struct {
	doc    *domain.Document
	store  ports.SessionStore
	logger *slog.Logger

	sessionsStarted prometheus.Counter
	choicesSelected prometheus.Counter
	runtimeErrors   prometheus.Counter
}

// NewHandler creates the HTTP handler for the story. Metrics register on
// a fresh registry owned by the handler.
func NewHandler(doc *domain.Document, store ports.SessionStore, logger *slog.Logger) http.Handler {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	s := &Server{
		doc:    doc,
		store:  store,
		logger: logger,
		sessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "fabula_sessions_started_total",
			Help: "Number of playback sessions created.",
		}),
		choicesSelected: factory.NewCounter(prometheus.CounterOpts{
			Name: "fabula_choices_selected_total",
			Help: "Number of successfully committed choice selections.",
		}),
		runtimeErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "fabula_runtime_errors_total",
			Help: "Number of select calls rejected by the runtime.",
		}),
	}

	r := chi.NewRouter()
	r.Post("/sessions", s.createSession)
	r.Get("/sessions", s.listSessions)
	r.Get("/sessions/{id}", s.getSession)
	r.Post("/sessions/{id}/select", s.selectChoice)
	r.Delete("/sessions/{id}", s.deleteSession)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return r
}

type createSessionRequest struct {
	ID string `json:"id,omitempty"`
}

type sessionResponse struct {
	ID    string              `json:"id"`
	Model *domain.RenderModel `json:"model"`
}

type selectRequest struct {
	Index int `json:"index"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	id := body.ID
	if id == "" {
		id = newSessionID()
	}

	rt, err := runtime.New(s.doc, runtime.WithLogger(s.logger))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.store.Save(r.Context(), id, rt.Snapshot()); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.sessionsStarted.Inc()
	s.logger.Info("session created", "session", id)
	s.writeJSON(w, http.StatusCreated, sessionResponse{ID: id, Model: rt.Render()})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rt, ok := s.resume(w, r, id)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse{ID: id, Model: rt.Render()})
}

func (s *Server) selectChoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body selectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rt, ok := s.resume(w, r, id)
	if !ok {
		return
	}

	if err := rt.Select(body.Index); err != nil {
		s.runtimeErrors.Inc()
		s.writeError(w, selectStatus(err), err.Error())
		return
	}
	if err := s.store.Save(r.Context(), id, rt.Snapshot()); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.choicesSelected.Inc()
	s.writeJSON(w, http.StatusOK, sessionResponse{ID: id, Model: rt.Render()})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// resume loads a session snapshot and rebuilds its runtime. On failure it
// writes the error response and returns ok=false.
func (s *Server) resume(w http.ResponseWriter, r *http.Request, id string) (*runtime.Runtime, bool) {
	snap, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.writeError(w, http.StatusNotFound, err.Error())
		} else {
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return nil, false
	}

	rt, err := runtime.New(s.doc, runtime.WithLogger(s.logger))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if err := rt.Restore(snap); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return rt, true
}

func selectStatus(err error) int {
	var unknown *domain.UnknownBranchError
	switch {
	case errors.Is(err, domain.ErrDisabledChoice):
		return http.StatusConflict
	case errors.Is(err, domain.ErrIndexOutOfRange), errors.Is(err, domain.ErrEnded):
		return http.StatusBadRequest
	case errors.As(err, &unknown):
		return http.StatusUnprocessableEntity
	default:
		// Evaluation failures (division by zero, type mismatch).
		return http.StatusUnprocessableEntity
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func newSessionID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
