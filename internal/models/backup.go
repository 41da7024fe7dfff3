package models

import "time"

// BackupExpense is one expense as it appears in a backup snapshot.
// Identifiers are stripped; restore re-stamps records with the target user.
type BackupExpense struct {
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Note     string    `json:"note"`
	Date     time.Time `json:"date"`
}

// BackupGoal carries the goal-level fields of a snapshot. Deposits are not
// part of the backup format.
type BackupGoal struct {
	TargetAmount float64   `json:"targetAmount"`
	EndDate      time.Time `json:"endDate"`
	CreatedDate  time.Time `json:"createdDate"`
}

// Backup is the portable whole-account snapshot: the sole interchange format
// for account transfer. Income records and goal deposits are intentionally
// absent from the format; a snapshot cannot carry them.
type Backup struct {
	Expenses   []BackupExpense `json:"expenses"`
	SavingGoal *BackupGoal     `json:"savingGoal"`
	Categories []string        `json:"categories"`
	ExportDate string          `json:"exportDate"`
}

// RestoreRequest is the body of a restore call. Each section is optional and
// restored independently: a nil section is skipped (except savingGoal, whose
// absence deletes any existing goal).
type RestoreRequest struct {
	Expenses   *[]BackupExpense `json:"expenses"`
	SavingGoal *BackupGoal      `json:"savingGoal"`
	Categories *[]string        `json:"categories"`
}
