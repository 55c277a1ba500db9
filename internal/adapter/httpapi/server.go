package httpapi

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"shopping-agent/internal/application/port/input"
	"shopping-agent/internal/application/port/output"

	"github.com/go-chi/chi/v5"
)

//go:embed frontend/index.html
var indexHTML []byte

// Server exposes the chat surface: the searcher agent answers /chat, the
// action agent runs the navigate-then-click sequence behind /execute_buy.
type Server struct {
	searcher input.TaskExecutor
	executor input.TaskExecutor
	browser  output.BrowserPort
	logger   output.LoggerPort
}

func NewServer(searcher, executor input.TaskExecutor, browser output.BrowserPort, logger output.LoggerPort) *Server {
	return &Server{
		searcher: searcher,
		executor: executor,
		browser:  browser,
		logger:   logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.handleIndex)
	r.Post("/chat", s.handleChat)
	r.Post("/execute_buy", s.handleExecuteBuy)
	r.Get("/screenshot", s.handleScreenshot)
	return r
}

type chatRequest struct {
	Message string `json:"message"`
}

type buyRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	result, err := s.searcher.Execute(r.Context(), req.Message)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeResponse(w, result.FinalAnswer)
}

func (s *Server) handleExecuteBuy(w http.ResponseWriter, r *http.Request) {
	var req buyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	s.logger.Info("Auto-buy sequence triggered", "url", req.URL)

	prompt := fmt.Sprintf("Open browser to %s and add the item to the cart.", req.URL)
	result, err := s.executor.Execute(r.Context(), prompt)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeResponse(w, result.FinalAnswer)
}

func (s *Server) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	if !s.browser.Started() {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("no browser session open"))
		return
	}

	shot, err := s.browser.Screenshot(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/"+shot.Format)
	w.Write(shot.Data)
}

func (s *Server) writeResponse(w http.ResponseWriter, response string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"response": response})
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error("Request failed", "status", status, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
