package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/reusee/mailx/asks"
	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/storages"
	"github.com/reusee/mailx/syncs"
)

// Server exposes sessions over HTTP. Each session owns its conversation and
// answers one question at a time; every question gets its own transaction.
type Server struct {
	store      *storages.Store
	newSession asks.NewSession
	logger     logs.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	session *asks.Session
	sem     syncs.Semaphore
}

type NewServer func(store *storages.Store) *Server

func (Module) NewServer(
	newSession asks.NewSession,
	logger logs.Logger,
) NewServer {
	return func(store *storages.Store) *Server {
		return &Server{
			store:      store,
			newSession: newSession,
			logger:     logger,
			sessions:   make(map[string]*entry),
		}
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Get("/summary", s.handleSummary)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.handleDelete)
			r.Get("/turns", s.handleTurns)
			r.Post("/ask", s.handleAsk)
		})
	})
	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.Routes(),
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) lookup(r *http.Request) (*entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[chi.URLParam(r, "id")]
	return e, ok
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	session, err := s.newSession(s.store, false)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "new session", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = &entry{
		session: session,
		sem:     syncs.NewSemaphore(1),
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTurns(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if !e.sem.TryAcquire() {
		writeError(w, http.StatusConflict, "session is busy")
		return
	}
	turns := e.session.Conversation().Turns()
	e.sem.Release()
	writeJSON(w, http.StatusOK, turns)
}

type askRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !e.sem.TryAcquire() {
		writeError(w, http.StatusConflict, "session is busy")
		return
	}
	defer e.sem.Release()

	answer, err := e.session.Ask(r.Context(), req.Query)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.store.Summary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
