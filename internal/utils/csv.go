package utils

import (
	"encoding/csv"
	"fmt"
	"io"

	"expense-tracker-api/internal/models"
)

// WriteExpensesCSV writes the user's expense records as CSV, one row per
// record, newest first as provided.
func WriteExpensesCSV(records []models.Record, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	if err := csvWriter.Write([]string{"Date", "Category", "Amount", "Note"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Date.Format("2006-01-02"),
			rec.Category,
			fmt.Sprintf("%.2f", rec.Amount),
			rec.Note,
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
