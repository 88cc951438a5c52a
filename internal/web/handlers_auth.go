package web

import (
	"net/http"
	"net/mail"
	"time"

	"tanihitung/internal/apperr"
	"tanihitung/internal/auth"
	"tanihitung/internal/store"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *store.User `json:"user"`
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleRegister creates a new user account.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	if req.Name == "" {
		s.respondError(w, r, apperr.New(apperr.KindBadRequest, "name is required"))
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		s.respondError(w, r, apperr.New(apperr.KindBadRequest, "invalid email format"))
		return
	}
	if len(req.Password) < 6 {
		s.respondError(w, r, apperr.New(apperr.KindBadRequest, "password must be at least 6 characters"))
		return
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	user, err := s.users.CreateUser(r.Context(), req.Name, req.Email, hash)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// handleLogin verifies credentials and issues a bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	user, err := s.users.UserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(user.Password, req.Password) {
		// One message for both cases: do not reveal which part failed.
		s.respondError(w, r, apperr.New(apperr.KindUnauthorized, "invalid email or password"))
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}
