package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"expense-tracker-api/internal/auth"
	"expense-tracker-api/internal/database"
	"expense-tracker-api/internal/models"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:       user.ID.Hex(),
		Email:    user.Email,
		Name:     user.Name,
		Currency: user.Currency,
	}
}

// Register creates an account and returns a token for it.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, "Please provide email, password, and name")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	user := &models.User{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
		Name:     strings.TrimSpace(req.Name),
		Currency: models.DefaultCurrency,
	}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, http.StatusBadRequest, "User already exists")
			return
		}
		h.serverError(w, r, err)
		return
	}

	token, err := auth.GenerateToken(h.config.JWTSecret, h.config.JWTExpire, user.ID.Hex(), user.Email)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    newUserResponse(user),
	})
}

// Login verifies credentials and returns a token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	user, err := h.store.FindUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.serverError(w, r, err)
		return
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.GenerateToken(h.config.JWTSecret, h.config.JWTExpire, user.ID.Hex(), user.Email)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    newUserResponse(user),
	})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.FindUserByID(r.Context(), userID(r))
	if err != nil {
		h.notFoundOr(w, r, err, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    newUserResponse(user),
	})
}
