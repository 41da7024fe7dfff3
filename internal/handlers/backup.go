package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"expense-tracker-api/internal/database"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/utils"
)

// GetBackup exports the user's whole account as one snapshot. Income records
// and goal deposits are not part of the snapshot format.
func (h *Handler) GetBackup(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.engine.Export(r.Context(), userID(r))
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, snapshot)
}

// RestoreBackup applies a snapshot. Each present section is a destructive
// replace of its collection; sections commit independently, so a failure can
// leave earlier sections applied. Callers should re-fetch state after an
// error rather than assume nothing changed.
func (h *Handler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	var req models.RestoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.engine.Restore(r.Context(), userID(r), req); err != nil {
		h.serverError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Backup restored successfully")
}

// ExportCSV streams the user's expenses as a CSV attachment.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListExpenses(r.Context(), userID(r), database.RecordFilter{})
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	filename := fmt.Sprintf("expenses-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if err := utils.WriteExpensesCSV(records, w); err != nil {
		// Headers are already out; all that is left is to log it.
		slog.ErrorContext(r.Context(), "csv export failed", "error", err)
	}
}
