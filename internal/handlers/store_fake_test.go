package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"expense-tracker-api/internal/database"
	"expense-tracker-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory Store for handler tests. Deposit mutation is
// append/remove under a lock, mirroring the targeted array updates of the
// real store rather than a whole-document rewrite.
type fakeStore struct {
	mu               sync.Mutex
	users            []models.User
	expenses         []models.Record
	incomes          []models.Record
	goals            []models.SavingGoal
	categories       map[primitive.ObjectID][]string
	incomeCategories map[primitive.ObjectID][]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		categories:       map[primitive.ObjectID][]string{},
		incomeCategories: map[primitive.ObjectID][]string{},
	}
}

func (s *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return database.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users = append(s.users, *user)
	return nil
}

func (s *fakeStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, database.ErrNotFound
}

func matchRecord(rec models.Record, userID primitive.ObjectID, filter database.RecordFilter) bool {
	if rec.UserID != userID {
		return false
	}
	if filter.Category != "" && rec.Category != filter.Category {
		return false
	}
	if filter.StartDate != nil && rec.Date.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && rec.Date.After(*filter.EndDate) {
		return false
	}
	return true
}

func (s *fakeStore) insertRecord(records *[]models.Record, rec *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = primitive.NewObjectID()
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.Date.IsZero() {
		rec.Date = now
	}
	*records = append(*records, *rec)
	return nil
}

func (s *fakeStore) listRecords(records []models.Record, userID primitive.ObjectID, filter database.RecordFilter) ([]models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Record{}
	for _, rec := range records {
		if matchRecord(rec, userID, filter) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *fakeStore) findRecord(records []models.Record, id, userID primitive.ObjectID) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		if rec.ID == id && rec.UserID == userID {
			r := rec
			return &r, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) updateRecord(records []models.Record, id, userID primitive.ObjectID, patch models.RecordPatch) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range records {
		if records[i].ID == id && records[i].UserID == userID {
			if patch.Amount != nil {
				records[i].Amount = *patch.Amount
			}
			if patch.Category != nil {
				records[i].Category = *patch.Category
			}
			if patch.Note != nil {
				records[i].Note = *patch.Note
			}
			if patch.Date != nil {
				records[i].Date = *patch.Date
			}
			records[i].UpdatedAt = time.Now()
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) deleteRecord(records *[]models.Record, id, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range *records {
		if rec.ID == id && rec.UserID == userID {
			*records = append((*records)[:i], (*records)[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (s *fakeStore) InsertExpense(ctx context.Context, rec *models.Record) error {
	return s.insertRecord(&s.expenses, rec)
}

func (s *fakeStore) FindExpense(ctx context.Context, id, userID primitive.ObjectID) (*models.Record, error) {
	return s.findRecord(s.expenses, id, userID)
}

func (s *fakeStore) ListExpenses(ctx context.Context, userID primitive.ObjectID, filter database.RecordFilter) ([]models.Record, error) {
	return s.listRecords(s.expenses, userID, filter)
}

func (s *fakeStore) UpdateExpense(ctx context.Context, id, userID primitive.ObjectID, patch models.RecordPatch) (*models.Record, error) {
	return s.updateRecord(s.expenses, id, userID, patch)
}

func (s *fakeStore) DeleteExpense(ctx context.Context, id, userID primitive.ObjectID) error {
	return s.deleteRecord(&s.expenses, id, userID)
}

func (s *fakeStore) DeleteAllExpenses(_ context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.expenses[:0]
	for _, rec := range s.expenses {
		if rec.UserID != userID {
			kept = append(kept, rec)
		}
	}
	s.expenses = kept
	return nil
}

func (s *fakeStore) InsertExpenses(_ context.Context, recs []models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for i := range recs {
		recs[i].ID = primitive.NewObjectID()
		recs[i].CreatedAt = now
		recs[i].UpdatedAt = now
		s.expenses = append(s.expenses, recs[i])
	}
	return nil
}

func (s *fakeStore) InsertIncome(ctx context.Context, rec *models.Record) error {
	return s.insertRecord(&s.incomes, rec)
}

func (s *fakeStore) FindIncome(ctx context.Context, id, userID primitive.ObjectID) (*models.Record, error) {
	return s.findRecord(s.incomes, id, userID)
}

func (s *fakeStore) ListIncome(ctx context.Context, userID primitive.ObjectID, filter database.RecordFilter) ([]models.Record, error) {
	return s.listRecords(s.incomes, userID, filter)
}

func (s *fakeStore) UpdateIncome(ctx context.Context, id, userID primitive.ObjectID, patch models.RecordPatch) (*models.Record, error) {
	return s.updateRecord(s.incomes, id, userID, patch)
}

func (s *fakeStore) DeleteIncome(ctx context.Context, id, userID primitive.ObjectID) error {
	return s.deleteRecord(&s.incomes, id, userID)
}

func (s *fakeStore) ListGoals(_ context.Context, userID primitive.ObjectID) ([]models.SavingGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.SavingGoal{}
	for _, g := range s.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeStore) FindGoal(_ context.Context, id, userID primitive.ObjectID) (*models.SavingGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findGoalLocked(id, userID)
}

func (s *fakeStore) findGoalLocked(id, userID primitive.ObjectID) (*models.SavingGoal, error) {
	for _, g := range s.goals {
		if g.ID == id && g.UserID == userID {
			goal := g
			goal.Deposits = append([]models.Deposit{}, g.Deposits...)
			return &goal, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) CreateGoal(_ context.Context, goal *models.SavingGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal.ID = primitive.NewObjectID()
	goal.Deposits = []models.Deposit{}
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt
	s.goals = append(s.goals, *goal)
	return nil
}

func (s *fakeStore) UpdateGoal(_ context.Context, id, userID primitive.ObjectID, patch models.GoalPatch) (*models.SavingGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == id && s.goals[i].UserID == userID {
			if patch.Name != nil {
				s.goals[i].Name = *patch.Name
			}
			if patch.TargetAmount != nil {
				s.goals[i].TargetAmount = *patch.TargetAmount
			}
			if patch.EndDate != nil {
				s.goals[i].EndDate = *patch.EndDate
			}
			s.goals[i].UpdatedAt = time.Now()
			return s.findGoalLocked(id, userID)
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) AddDeposit(_ context.Context, goalID, userID primitive.ObjectID, dep models.Deposit) (*models.SavingGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == goalID && s.goals[i].UserID == userID {
			s.goals[i].Deposits = append(s.goals[i].Deposits, dep)
			s.goals[i].UpdatedAt = time.Now()
			return s.findGoalLocked(goalID, userID)
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) RemoveDeposit(_ context.Context, goalID, userID, depositID primitive.ObjectID) (*models.SavingGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == goalID && s.goals[i].UserID == userID {
			for j, dep := range s.goals[i].Deposits {
				if dep.ID == depositID {
					s.goals[i].Deposits = append(s.goals[i].Deposits[:j], s.goals[i].Deposits[j+1:]...)
					s.goals[i].UpdatedAt = time.Now()
					return s.findGoalLocked(goalID, userID)
				}
			}
			return nil, database.ErrDepositNotFound
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) DeleteGoal(_ context.Context, id, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id && g.UserID == userID {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (s *fakeStore) FindGoalByUser(_ context.Context, userID primitive.ObjectID) (*models.SavingGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.goals {
		if g.UserID == userID {
			goal := g
			return &goal, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) UpsertGoalSnapshot(_ context.Context, userID primitive.ObjectID, snap models.BackupGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].UserID == userID {
			s.goals[i].TargetAmount = snap.TargetAmount
			s.goals[i].EndDate = snap.EndDate
			s.goals[i].CreatedAt = snap.CreatedDate
			s.goals[i].UpdatedAt = time.Now()
			return nil
		}
	}
	s.goals = append(s.goals, models.SavingGoal{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		TargetAmount: snap.TargetAmount,
		EndDate:      snap.EndDate,
		Deposits:     []models.Deposit{},
		CreatedAt:    snap.CreatedDate,
		UpdatedAt:    time.Now(),
	})
	return nil
}

func (s *fakeStore) DeleteGoalByUser(_ context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.UserID == userID {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeStore) GetCategories(_ context.Context, userID primitive.ObjectID, defaults []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if list, ok := s.categories[userID]; ok {
		return list, nil
	}
	s.categories[userID] = defaults
	return defaults, nil
}

func (s *fakeStore) PutCategories(_ context.Context, userID primitive.ObjectID, categories []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[userID] = categories
	return categories, nil
}

func (s *fakeStore) FindCategories(_ context.Context, userID primitive.ObjectID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories[userID], nil
}

func (s *fakeStore) GetIncomeCategories(_ context.Context, userID primitive.ObjectID, defaults []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if list, ok := s.incomeCategories[userID]; ok {
		return list, nil
	}
	s.incomeCategories[userID] = defaults
	return defaults, nil
}

func (s *fakeStore) PutIncomeCategories(_ context.Context, userID primitive.ObjectID, categories []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incomeCategories[userID] = categories
	return categories, nil
}
