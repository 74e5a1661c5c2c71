package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/nyaya-legal/nyaya/internal/assistant"
	"github.com/nyaya-legal/nyaya/internal/caselaw"
	"github.com/nyaya-legal/nyaya/internal/kanoon"
	"github.com/nyaya-legal/nyaya/internal/llm"
	"github.com/nyaya-legal/nyaya/internal/prompts"
)

// Assistant is the service the handlers delegate to.
type Assistant interface {
	Ask(ctx context.Context, feature prompts.Feature, query string) (string, error)
	FindCases(ctx context.Context, query string) ([]caselaw.CaseResult, error)
	SearchDatabase(ctx context.Context, query string, page int) ([]kanoon.Document, error)
	Transcribe(ctx context.Context, audio llm.Audio, translate bool) (assistant.Transcript, error)
}

// Server is the HTTP front door for the legal assistant.
type Server struct {
	assistant      Assistant
	corsOrigins    []string
	maxUploadBytes int64
	services       map[string]bool
	mux            *http.ServeMux
}

// Config holds the HTTP server configuration.
type Config struct {
	Assistant   Assistant
	CORSOrigins []string
	MaxUploadMB int64
	// Services reports, per upstream name, whether its API key is configured.
	Services map[string]bool
}

// New creates and initializes a new Server.
func New(cfg Config) (*Server, error) {
	if cfg.Assistant == nil {
		return nil, errors.New("assistant is required")
	}
	maxUpload := cfg.MaxUploadMB
	if maxUpload <= 0 {
		maxUpload = 25
	}

	s := &Server{
		assistant:      cfg.Assistant,
		corsOrigins:    cfg.CORSOrigins,
		maxUploadBytes: maxUpload << 20,
		services:       cfg.Services,
		mux:            http.NewServeMux(),
	}
	s.registerRoutes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return requestID(logRequests(corsMiddleware(s.corsOrigins, s.mux)))
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)

	s.mux.HandleFunc("/api/legal-assist", s.handleAsk(prompts.Legal))
	s.mux.HandleFunc("/api/general-chat", s.handleAsk(prompts.Chat))
	s.mux.HandleFunc("/api/case-law", s.handleCaseLaw)
	s.mux.HandleFunc("/api/indian-kanoon", s.handleIndianKanoon)
	s.mux.HandleFunc("/api/transcribe", s.handleTranscribe)
}

// queryRequest is the body shared by the chat-style endpoints.
type queryRequest struct {
	Query string `json:"query"`
	Page  int    `json:"page,omitempty"`
}

// handleHealth returns a simple health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"services": s.services,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

// handleAsk serves the free-text features: POST {query} -> {response}.
func (s *Server) handleAsk(feature prompts.Feature) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, r, &statusError{code: http.StatusMethodNotAllowed, msg: "method not allowed"})
			return
		}
		req, err := decodeQuery(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		response, err := s.assistant.Ask(r.Context(), feature, req.Query)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"response": response})
	}
}

// handleCaseLaw handles POST /api/case-law: {query} -> {results: [case]}.
func (s *Server) handleCaseLaw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, &statusError{code: http.StatusMethodNotAllowed, msg: "method not allowed"})
		return
	}
	req, err := decodeQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	results, err := s.assistant.FindCases(r.Context(), req.Query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// handleIndianKanoon handles GET ?query=&page= and POST {query, page}.
func (s *Server) handleIndianKanoon(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	switch r.Method {
	case http.MethodGet:
		req.Query = r.URL.Query().Get("query")
		if p := r.URL.Query().Get("page"); p != "" {
			page, err := strconv.Atoi(p)
			if err != nil {
				writeError(w, r, &statusError{code: http.StatusBadRequest, msg: "page must be a number"})
				return
			}
			req.Page = page
		}
	case http.MethodPost:
		var err error
		if req, err = decodeQuery(r); err != nil {
			writeError(w, r, err)
			return
		}
	default:
		writeError(w, r, &statusError{code: http.StatusMethodNotAllowed, msg: "method not allowed"})
		return
	}

	docs, err := s.assistant.SearchDatabase(r.Context(), req.Query, req.Page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": docs})
}

func decodeQuery(r *http.Request) (queryRequest, error) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, &statusError{code: http.StatusBadRequest, msg: "invalid request body: " + err.Error()}
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
