package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/manapixels/stock-screener/internal/errors"
	"github.com/manapixels/stock-screener/internal/models"
)

// handleRegisterUser handles POST /users/ - Register a new account
func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondWithError(w, errors.NewValidationError("Invalid request body"))
		return
	}

	if req.Email == "" {
		respondWithError(w, errors.NewValidationError("Email is required"))
		return
	}
	if req.Password == "" {
		respondWithError(w, errors.NewValidationError("Password is required"))
		return
	}

	exists, err := s.users.ExistsByEmail(r.Context(), req.Email)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if exists {
		respondWithError(w, errors.NewValidationError("Email already registered"))
		return
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		respondWithError(w, err)
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.users.Create(r.Context(), user); err != nil {
		respondWithError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// handleLogin handles POST /token - Exchange form credentials for a bearer
// token (OAuth2 password flow shape: username field carries the email)
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, errors.NewValidationError("Invalid form body"))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		respondWithError(w, errors.NewValidationError("Username and password are required"))
		return
	}

	user, err := s.auth.Authenticate(r.Context(), username, password)
	if err != nil {
		respondWithError(w, err)
		return
	}

	token, err := s.auth.IssueToken(user.Email)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// handleCurrentUser handles GET /users/me/ - Profile of the caller
func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// handleUpdateSettings handles PUT /users/me/settings - Partial update of
// the caller's Telegram settings; absent fields are left untouched
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	var update models.UserSettingsUpdate
	if err := parseJSONBody(r, &update); err != nil {
		respondWithError(w, errors.NewValidationError("Invalid request body"))
		return
	}

	updated, err := s.users.UpdateSettings(r.Context(), user.ID, &update)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if updated == nil {
		respondWithError(w, errors.NewNotFoundError("User not found"))
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// handleListUsers handles GET /users/ - List accounts with skip/limit
// pagination
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	skip := parseQueryInt(r, "skip", 0)
	limit := parseQueryInt(r, "limit", 100)

	users, err := s.users.List(r.Context(), limit, skip)
	if err != nil {
		respondWithError(w, err)
		return
	}
	// Serialize an empty listing as [] rather than null.
	if users == nil {
		users = []*models.User{}
	}

	respondJSON(w, http.StatusOK, users)
}

// handleGetUser handles GET /users/{user_id} - Get account by ID
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	user, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if user == nil {
		respondWithError(w, errors.NewNotFoundError("User not found"))
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// parseQueryInt parses an integer query parameter, falling back to def when
// the value is absent, malformed or negative.
func parseQueryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
