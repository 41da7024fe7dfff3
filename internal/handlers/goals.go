package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"expense-tracker-api/internal/database"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createGoalRequest struct {
	Name         string   `json:"name"`
	TargetAmount *float64 `json:"targetAmount"`
	EndDate      string   `json:"endDate"`
}

type updateGoalRequest struct {
	Name         *string  `json:"name"`
	TargetAmount *float64 `json:"targetAmount"`
	EndDate      *string  `json:"endDate"`
}

type depositRequest struct {
	Amount *float64 `json:"amount"`
	Note   string   `json:"note"`
}

// ListGoals returns all goals for the user, newest-created first, each with
// its recomputed totalSaved.
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.store.ListGoals(r.Context(), userID(r))
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, goals)
}

// GetGoal returns a single goal.
func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	goalID, ok := objectIDParam(w, r, "id", "Goal not found")
	if !ok {
		return
	}

	goal, err := h.store.FindGoal(r.Context(), goalID, userID(r))
	if err != nil {
		h.notFoundOr(w, r, err, "Goal not found")
		return
	}
	respondData(w, http.StatusOK, goal)
}

// CreateGoal creates a goal with an empty deposit array.
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Name == "" || req.TargetAmount == nil || req.EndDate == "" {
		respondError(w, http.StatusBadRequest, "Please provide name, targetAmount, and endDate")
		return
	}
	if *req.TargetAmount < 0 {
		respondError(w, http.StatusBadRequest, "targetAmount must not be negative")
		return
	}
	endDate, err := utils.ParseDate(req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Please provide name, targetAmount, and endDate")
		return
	}

	goal := &models.SavingGoal{
		UserID:       userID(r),
		Name:         req.Name,
		TargetAmount: *req.TargetAmount,
		EndDate:      endDate,
	}
	if err := h.store.CreateGoal(r.Context(), goal); err != nil {
		h.serverError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, goal)
}

// UpdateGoal applies only the fields present in the body. Validation covers
// only those fields; unmodified fields and the deposit array stay as they
// are.
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	goalID, ok := objectIDParam(w, r, "id", "Goal not found")
	if !ok {
		return
	}

	var req updateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	patch := models.GoalPatch{}
	if req.Name != nil {
		if *req.Name == "" {
			respondError(w, http.StatusBadRequest, "name must not be empty")
			return
		}
		patch.Name = req.Name
	}
	if req.TargetAmount != nil {
		if *req.TargetAmount < 0 {
			respondError(w, http.StatusBadRequest, "targetAmount must not be negative")
			return
		}
		patch.TargetAmount = req.TargetAmount
	}
	if req.EndDate != nil {
		endDate, err := utils.ParseDate(*req.EndDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "endDate is not a valid date")
			return
		}
		patch.EndDate = &endDate
	}

	goal, err := h.store.UpdateGoal(r.Context(), goalID, userID(r), patch)
	if err != nil {
		h.notFoundOr(w, r, err, "Goal not found")
		return
	}
	respondData(w, http.StatusOK, goal)
}

// AddDeposit appends a deposit to the goal and returns the goal with its
// updated totalSaved.
func (h *Handler) AddDeposit(w http.ResponseWriter, r *http.Request) {
	goalID, ok := objectIDParam(w, r, "id", "Goal not found")
	if !ok {
		return
	}

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Amount == nil || *req.Amount <= 0 {
		respondError(w, http.StatusBadRequest, "Please provide a valid amount")
		return
	}

	dep := models.Deposit{
		ID:     primitive.NewObjectID(),
		Amount: *req.Amount,
		Note:   req.Note,
		Date:   time.Now(),
	}
	goal, err := h.store.AddDeposit(r.Context(), goalID, userID(r), dep)
	if err != nil {
		h.notFoundOr(w, r, err, "Goal not found")
		return
	}
	respondData(w, http.StatusOK, goal)
}

// DeleteDeposit removes one deposit by id. A deposit id that does not exist
// on the goal is a 404, not a silent success.
func (h *Handler) DeleteDeposit(w http.ResponseWriter, r *http.Request) {
	goalID, ok := objectIDParam(w, r, "goalId", "Goal not found")
	if !ok {
		return
	}
	depositID, ok := objectIDParam(w, r, "depositId", "Deposit not found")
	if !ok {
		return
	}

	goal, err := h.store.RemoveDeposit(r.Context(), goalID, userID(r), depositID)
	if err != nil {
		if errors.Is(err, database.ErrDepositNotFound) {
			respondError(w, http.StatusNotFound, "Deposit not found")
			return
		}
		h.notFoundOr(w, r, err, "Goal not found")
		return
	}
	respondData(w, http.StatusOK, goal)
}

// DeleteGoal removes the goal and, with it, every deposit it contains.
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID, ok := objectIDParam(w, r, "id", "Goal not found")
	if !ok {
		return
	}

	if err := h.store.DeleteGoal(r.Context(), goalID, userID(r)); err != nil {
		h.notFoundOr(w, r, err, "Goal not found")
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}

// objectIDParam parses a URL parameter into an ObjectID; a malformed id is
// indistinguishable from a missing record and gets the same 404.
func objectIDParam(w http.ResponseWriter, r *http.Request, name, notFoundMessage string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		respondError(w, http.StatusNotFound, notFoundMessage)
		return primitive.NilObjectID, false
	}
	return id, true
}
