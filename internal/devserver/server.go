// Package devserver is a local stand-in for the case-management backend.
// It implements the auth endpoints and serves static case data.
package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/casedesk/cli/internal/models"
	"github.com/casedesk/cli/internal/utils"
)

// Server holds the in-memory state of the development backend
type Server struct {
	otp string
	pin string

	cases    []models.Case
	hearings []models.Hearing

	mu      sync.Mutex
	pending map[string]bool         // mobiles with an outstanding OTP
	tokens  map[string]*models.User // issued bearer tokens
	nextID  int
}

// Option configures a Server
type Option func(*Server)

// WithCases replaces the built-in case fixtures
func WithCases(cases []models.Case, hearings []models.Hearing) Option {
	return func(s *Server) {
		s.cases = cases
		s.hearings = hearings
	}
}

// New creates a Server that accepts the given OTP and PIN for every mobile
func New(otp, pin string, opts ...Option) *Server {
	s := &Server{
		otp:      otp,
		pin:      pin,
		cases:    FixtureCases(),
		hearings: FixtureHearings(),
		pending:  make(map[string]bool),
		tokens:   make(map[string]*models.User),
		nextID:   1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns a chi.Router with all routes mounted. Extra middleware
// runs after panic recovery.
func (s *Server) Router(mw ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(mw...)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/send-otp", s.SendOTP)
		r.Post("/auth/login", s.Login)
		r.With(s.requireToken).Post("/auth/pin-login", s.PINLogin)

		r.With(s.requireToken).Get("/cases", s.ListCases)
		r.With(s.requireToken).Get("/cases/{caseID}", s.GetCase)
		r.With(s.requireToken).Get("/hearings", s.ListHearings)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Message: msg})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !found || token == "" {
			writeError(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		s.mu.Lock()
		_, ok := s.tokens[token]
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SendOTP handles POST /api/auth/send-otp
func (s *Server) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req models.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateMobile(req.Mobile); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid mobile number")
		return
	}

	s.mu.Lock()
	s.pending[req.Mobile] = true
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP sent"})
}

// Login handles POST /api/auth/login
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req models.OTPLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pending[req.Mobile] {
		writeError(w, http.StatusBadRequest, "No OTP requested for this number")
		return
	}
	if req.OTP != s.otp {
		writeError(w, http.StatusUnauthorized, "Invalid OTP")
		return
	}
	delete(s.pending, req.Mobile)

	user := &models.User{ID: models.UserID(strconv.Itoa(s.nextID)), Name: "Advocate " + req.Mobile[len(req.Mobile)-4:], Mobile: req.Mobile, Role: "advocate"}
	s.nextID++
	writeJSON(w, http.StatusOK, s.issueLocked(user))
}

// PINLogin handles POST /api/auth/pin-login. The OTP-issued token is
// exchanged for a fresh one.
func (s *Server) PINLogin(w http.ResponseWriter, r *http.Request) {
	var req models.PINLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.PIN != s.pin {
		writeError(w, http.StatusUnauthorized, "Invalid PIN")
		return
	}
	user, ok := s.tokens[token]
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	delete(s.tokens, token)
	writeJSON(w, http.StatusOK, s.issueLocked(user))
}

func (s *Server) issueLocked(user *models.User) models.LoginResponse {
	token := uuid.NewString()
	s.tokens[token] = user
	return models.LoginResponse{Token: token, User: user}
}

// Revoke invalidates a token, as a backend would on expiry
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// ListCases handles GET /api/cases
func (s *Server) ListCases(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cases)
}

// GetCase handles GET /api/cases/{caseID}
func (s *Server) GetCase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "caseID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid case id")
		return
	}
	for _, c := range s.cases {
		if c.ID == id {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Case not found")
}

// ListHearings handles GET /api/hearings
func (s *Server) ListHearings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.hearings)
}
