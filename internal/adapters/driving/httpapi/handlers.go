package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
	"github.com/wayfarer-labs/wayfarer/internal/logger"
)

// Request and response shapes.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

type chatRequest struct {
	Prompt string `json:"prompt"`
}

type documentResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

type chatResponse struct {
	Documents     []documentResponse `json:"documents"`
	GeneratedText string             `json:"generatedText"`
	Citations     []string           `json:"citations"`
}

type itineraryRequest struct {
	UserInput string `json:"userInput"`
}

type itineraryResponse struct {
	Itinerary string `json:"itinerary"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Corpus    string `json:"corpus"`
	Documents int    `json:"documents"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := s.auth.Login(req.Email, req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, loginResponse{Success: false})
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Success: true, Token: session.Token})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := s.query.Answer(r.Context(), req.Prompt)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	docs := make([]documentResponse, len(answer.Documents))
	for i, d := range answer.Documents {
		docs[i] = documentResponse{ID: d.ID, Title: d.Title, Text: d.Text}
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Documents:     docs,
		GeneratedText: answer.GeneratedText,
		Citations:     answer.Citations,
	})
}

func (s *Server) handleItinerary(w http.ResponseWriter, r *http.Request) {
	var req itineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.query.Itinerary(r.Context(), req.UserInput)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, itineraryResponse{Itinerary: result.Itinerary})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	state := s.corpus.State()

	status := "ok"
	code := http.StatusOK
	if state != domain.CorpusReady {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, healthResponse{
		Status:    status,
		Corpus:    state.String(),
		Documents: len(s.corpus.Snapshot()),
	})
}

// requireAuth gates a handler behind a bearer session token.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !s.auth.Verify(token) {
			writeError(w, http.StatusUnauthorized, "invalid or missing token")
			return
		}
		next(w, r)
	}
}

// writeDomainError maps domain errors onto distinct status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotReady):
		w.Header().Set("Retry-After", "10")
		writeError(w, http.StatusServiceUnavailable, "corpus is still building, try again shortly")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrDimensionMismatch):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		logger.Warn("Unhandled request error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
