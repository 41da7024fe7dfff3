package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"expense-tracker-api/internal/database"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/stats"
	"expense-tracker-api/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordRequest struct {
	Amount   *float64 `json:"amount"`
	Category *string  `json:"category"`
	Note     *string  `json:"note"`
	Date     *string  `json:"date"`
}

// recordOps bundles the store methods a record endpoint family needs, so the
// expense and income handlers share one implementation.
type recordOps struct {
	name            string
	categoryNeeded  bool
	insert          func(ctx context.Context, rec *models.Record) error
	find            func(ctx context.Context, id, userID primitive.ObjectID) (*models.Record, error)
	list            func(ctx context.Context, userID primitive.ObjectID, filter database.RecordFilter) ([]models.Record, error)
	update          func(ctx context.Context, id, userID primitive.ObjectID, patch models.RecordPatch) (*models.Record, error)
	delete          func(ctx context.Context, id, userID primitive.ObjectID) error
	notFoundMessage string
}

func (h *Handler) expenseOps() recordOps {
	return recordOps{
		name:            "expense",
		categoryNeeded:  true,
		insert:          h.store.InsertExpense,
		find:            h.store.FindExpense,
		list:            h.store.ListExpenses,
		update:          h.store.UpdateExpense,
		delete:          h.store.DeleteExpense,
		notFoundMessage: "Expense not found",
	}
}

func (h *Handler) incomeOps() recordOps {
	return recordOps{
		name:            "income",
		categoryNeeded:  false,
		insert:          h.store.InsertIncome,
		find:            h.store.FindIncome,
		list:            h.store.ListIncome,
		update:          h.store.UpdateIncome,
		delete:          h.store.DeleteIncome,
		notFoundMessage: "Income not found",
	}
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	h.listRecords(w, r, h.expenseOps())
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	h.createRecord(w, r, h.expenseOps())
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	h.getRecord(w, r, h.expenseOps())
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	h.updateRecord(w, r, h.expenseOps())
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.expenseOps())
}

// ExpenseStats aggregates one month of expenses into total, per-category
// totals and count.
func (h *Handler) ExpenseStats(w http.ResponseWriter, r *http.Request) {
	h.monthlyStats(w, r, h.expenseOps())
}

func (h *Handler) ListIncome(w http.ResponseWriter, r *http.Request) {
	h.listRecords(w, r, h.incomeOps())
}

func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	h.createRecord(w, r, h.incomeOps())
}

func (h *Handler) GetIncome(w http.ResponseWriter, r *http.Request) {
	h.getRecord(w, r, h.incomeOps())
}

func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	h.updateRecord(w, r, h.incomeOps())
}

func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.incomeOps())
}

// IncomeStats is the income counterpart of ExpenseStats.
func (h *Handler) IncomeStats(w http.ResponseWriter, r *http.Request) {
	h.monthlyStats(w, r, h.incomeOps())
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request, ops recordOps) {
	filter := database.RecordFilter{Category: r.URL.Query().Get("category")}
	if v := r.URL.Query().Get("startDate"); v != "" {
		t, err := utils.ParseDate(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "startDate is not a valid date")
			return
		}
		filter.StartDate = &t
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		t, err := utils.ParseDate(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "endDate is not a valid date")
			return
		}
		filter.EndDate = &t
	}

	records, err := ops.list(r.Context(), userID(r), filter)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(records),
		"data":    records,
	})
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request, ops recordOps) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Amount == nil || *req.Amount < 0 {
		respondError(w, http.StatusBadRequest, "Please provide an amount")
		return
	}
	if ops.categoryNeeded && (req.Category == nil || *req.Category == "") {
		respondError(w, http.StatusBadRequest, "Please provide a category")
		return
	}

	rec := models.Record{
		UserID: userID(r),
		Amount: *req.Amount,
	}
	if req.Category != nil {
		rec.Category = *req.Category
	}
	if req.Note != nil {
		rec.Note = *req.Note
	}
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "date is not a valid date")
			return
		}
		rec.Date = date
	}

	if err := ops.insert(r.Context(), &rec); err != nil {
		h.serverError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, rec)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request, ops recordOps) {
	id, ok := objectIDParam(w, r, "id", ops.notFoundMessage)
	if !ok {
		return
	}

	rec, err := ops.find(r.Context(), id, userID(r))
	if err != nil {
		h.notFoundOr(w, r, err, ops.notFoundMessage)
		return
	}
	respondData(w, http.StatusOK, rec)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request, ops recordOps) {
	id, ok := objectIDParam(w, r, "id", ops.notFoundMessage)
	if !ok {
		return
	}

	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	patch := models.RecordPatch{Note: req.Note}
	if req.Amount != nil {
		if *req.Amount < 0 {
			respondError(w, http.StatusBadRequest, "amount must not be negative")
			return
		}
		patch.Amount = req.Amount
	}
	if req.Category != nil {
		if ops.categoryNeeded && *req.Category == "" {
			respondError(w, http.StatusBadRequest, "category must not be empty")
			return
		}
		patch.Category = req.Category
	}
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "date is not a valid date")
			return
		}
		patch.Date = &date
	}

	rec, err := ops.update(r.Context(), id, userID(r), patch)
	if err != nil {
		h.notFoundOr(w, r, err, ops.notFoundMessage)
		return
	}
	respondData(w, http.StatusOK, rec)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request, ops recordOps) {
	id, ok := objectIDParam(w, r, "id", ops.notFoundMessage)
	if !ok {
		return
	}

	if err := ops.delete(r.Context(), id, userID(r)); err != nil {
		h.notFoundOr(w, r, err, ops.notFoundMessage)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}

func (h *Handler) monthlyStats(w http.ResponseWriter, r *http.Request, ops recordOps) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "year must be a number")
			return
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			respondError(w, http.StatusBadRequest, "month must be a number between 1 and 12")
			return
		}
		month = n
	}

	start, end := stats.MonthWindow(year, month)
	records, err := ops.list(r.Context(), userID(r), database.RecordFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	respondData(w, http.StatusOK, stats.Summarize(records, year, month))
}
