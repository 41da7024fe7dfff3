// Package backup implements whole-account snapshot export and destructive
// restore. The snapshot format carries expenses, goal-level fields and the
// expense category list; income records and goal deposits are not part of
// the format.
package backup

import (
	"context"
	"fmt"
	"time"

	"expense-tracker-api/internal/database"
	"expense-tracker-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the persistence surface the engine needs. *database.DB satisfies
// it.
type Store interface {
	ListExpenses(ctx context.Context, userID primitive.ObjectID, filter database.RecordFilter) ([]models.Record, error)
	DeleteAllExpenses(ctx context.Context, userID primitive.ObjectID) error
	InsertExpenses(ctx context.Context, recs []models.Record) error

	FindGoalByUser(ctx context.Context, userID primitive.ObjectID) (*models.SavingGoal, error)
	UpsertGoalSnapshot(ctx context.Context, userID primitive.ObjectID, snap models.BackupGoal) error
	DeleteGoalByUser(ctx context.Context, userID primitive.ObjectID) error

	FindCategories(ctx context.Context, userID primitive.ObjectID) ([]string, error)
	PutCategories(ctx context.Context, userID primitive.ObjectID, categories []string) ([]string, error)
}

// Engine produces and consumes backup snapshots.
type Engine struct {
	store Store
	now   func() time.Time
}

// New creates a backup engine backed by the given store.
func New(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// Export gathers the user's full state into one snapshot. Read-only; the
// category list is read as-is, without seeding defaults.
func (e *Engine) Export(ctx context.Context, userID primitive.ObjectID) (*models.Backup, error) {
	expenses, err := e.store.ListExpenses(ctx, userID, database.RecordFilter{})
	if err != nil {
		return nil, fmt.Errorf("export expenses: %w", err)
	}

	goal, err := e.store.FindGoalByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("export goal: %w", err)
	}

	categories, err := e.store.FindCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("export categories: %w", err)
	}

	snapshot := &models.Backup{
		Expenses:   make([]models.BackupExpense, 0, len(expenses)),
		Categories: categories,
		ExportDate: e.now().UTC().Format(time.RFC3339),
	}
	for _, exp := range expenses {
		snapshot.Expenses = append(snapshot.Expenses, models.BackupExpense{
			Amount:   exp.Amount,
			Category: exp.Category,
			Note:     exp.Note,
			Date:     exp.Date,
		})
	}
	if goal != nil {
		snapshot.SavingGoal = &models.BackupGoal{
			TargetAmount: goal.TargetAmount,
			EndDate:      goal.EndDate,
			CreatedDate:  goal.CreatedAt,
		}
	}

	return snapshot, nil
}

// Restore applies a snapshot section by section: expenses, then goal, then
// categories. Each section is a destructive replace, not a merge. Sections
// commit independently; the first failure aborts the remaining sections and
// is returned, leaving earlier sections applied.
func (e *Engine) Restore(ctx context.Context, userID primitive.ObjectID, req models.RestoreRequest) error {
	if req.Expenses != nil {
		// An empty array deliberately clears all expenses.
		if err := e.store.DeleteAllExpenses(ctx, userID); err != nil {
			return fmt.Errorf("restore expenses: %w", err)
		}
		recs := make([]models.Record, 0, len(*req.Expenses))
		for _, exp := range *req.Expenses {
			recs = append(recs, models.Record{
				UserID:   userID,
				Amount:   exp.Amount,
				Category: exp.Category,
				Note:     exp.Note,
				Date:     exp.Date,
			})
		}
		if err := e.store.InsertExpenses(ctx, recs); err != nil {
			return fmt.Errorf("restore expenses: %w", err)
		}
	}

	if req.SavingGoal != nil {
		if err := e.store.UpsertGoalSnapshot(ctx, userID, *req.SavingGoal); err != nil {
			return fmt.Errorf("restore goal: %w", err)
		}
	} else {
		// A snapshot without a goal restores to an account without a goal.
		if err := e.store.DeleteGoalByUser(ctx, userID); err != nil {
			return fmt.Errorf("restore goal: %w", err)
		}
	}

	// Unlike the goal section, an absent categories section leaves the
	// existing list untouched. This asymmetry is part of the snapshot
	// contract.
	if req.Categories != nil {
		if _, err := e.store.PutCategories(ctx, userID, *req.Categories); err != nil {
			return fmt.Errorf("restore categories: %w", err)
		}
	}

	return nil
}
