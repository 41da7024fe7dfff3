package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type categoriesRequest struct {
	Categories []string `json:"categories"`
}

// GetCategories returns the user's expense categories, seeding the default
// list on first access.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.GetCategories(r.Context(), userID(r), h.config.DefaultCategories)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, categories)
}

// UpdateCategories replaces the user's expense categories.
func (h *Handler) UpdateCategories(w http.ResponseWriter, r *http.Request) {
	h.putCategoryList(w, r, h.store.PutCategories)
}

// GetIncomeCategories returns the user's income categories, seeding the
// default list on first access.
func (h *Handler) GetIncomeCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.GetIncomeCategories(r.Context(), userID(r), h.config.DefaultIncomeCategories)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, categories)
}

// UpdateIncomeCategories replaces the user's income categories.
func (h *Handler) UpdateIncomeCategories(w http.ResponseWriter, r *http.Request) {
	h.putCategoryList(w, r, h.store.PutIncomeCategories)
}

func (h *Handler) putCategoryList(w http.ResponseWriter, r *http.Request,
	put func(ctx context.Context, userID primitive.ObjectID, categories []string) ([]string, error)) {

	var req categoriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if len(req.Categories) == 0 {
		respondError(w, http.StatusBadRequest, "Please provide a valid categories array")
		return
	}

	categories, err := put(r.Context(), userID(r), req.Categories)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, categories)
}
