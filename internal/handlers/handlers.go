package handlers

import (
	"context"
	"net/http"

	"expense-tracker-api/internal/backup"
	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/database"
	"expense-tracker-api/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the persistence surface the handlers depend on. *database.DB
// implements it; tests substitute an in-memory fake.
type Store interface {
	backup.Store

	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	InsertExpense(ctx context.Context, rec *models.Record) error
	FindExpense(ctx context.Context, id, userID primitive.ObjectID) (*models.Record, error)
	UpdateExpense(ctx context.Context, id, userID primitive.ObjectID, patch models.RecordPatch) (*models.Record, error)
	DeleteExpense(ctx context.Context, id, userID primitive.ObjectID) error

	InsertIncome(ctx context.Context, rec *models.Record) error
	FindIncome(ctx context.Context, id, userID primitive.ObjectID) (*models.Record, error)
	ListIncome(ctx context.Context, userID primitive.ObjectID, filter database.RecordFilter) ([]models.Record, error)
	UpdateIncome(ctx context.Context, id, userID primitive.ObjectID, patch models.RecordPatch) (*models.Record, error)
	DeleteIncome(ctx context.Context, id, userID primitive.ObjectID) error

	ListGoals(ctx context.Context, userID primitive.ObjectID) ([]models.SavingGoal, error)
	FindGoal(ctx context.Context, id, userID primitive.ObjectID) (*models.SavingGoal, error)
	CreateGoal(ctx context.Context, goal *models.SavingGoal) error
	UpdateGoal(ctx context.Context, id, userID primitive.ObjectID, patch models.GoalPatch) (*models.SavingGoal, error)
	AddDeposit(ctx context.Context, goalID, userID primitive.ObjectID, dep models.Deposit) (*models.SavingGoal, error)
	RemoveDeposit(ctx context.Context, goalID, userID, depositID primitive.ObjectID) (*models.SavingGoal, error)
	DeleteGoal(ctx context.Context, id, userID primitive.ObjectID) error

	GetCategories(ctx context.Context, userID primitive.ObjectID, defaults []string) ([]string, error)
	GetIncomeCategories(ctx context.Context, userID primitive.ObjectID, defaults []string) ([]string, error)
	PutIncomeCategories(ctx context.Context, userID primitive.ObjectID, categories []string) ([]string, error)
}

// Handler encapsulates HTTP handling for all resources.
type Handler struct {
	store  Store
	config *config.Config
	engine *backup.Engine
}

// NewHandler creates a handler backed by the given store.
func NewHandler(store Store, config *config.Config) *Handler {
	return &Handler{
		store:  store,
		config: config,
		engine: backup.New(store),
	}
}

// Routes builds the full router with middleware and all API routes.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", h.Health)

		api.Post("/auth/register", h.Register)
		api.Post("/auth/login", h.Login)

		api.Group(func(private chi.Router) {
			private.Use(h.Authenticate)

			private.Get("/auth/me", h.Me)

			private.Get("/expenses", h.ListExpenses)
			private.Post("/expenses", h.CreateExpense)
			private.Get("/expenses/stats/monthly", h.ExpenseStats)
			private.Get("/expenses/{id}", h.GetExpense)
			private.Put("/expenses/{id}", h.UpdateExpense)
			private.Delete("/expenses/{id}", h.DeleteExpense)

			private.Get("/income", h.ListIncome)
			private.Post("/income", h.CreateIncome)
			private.Get("/income/stats/monthly", h.IncomeStats)
			private.Get("/income/{id}", h.GetIncome)
			private.Put("/income/{id}", h.UpdateIncome)
			private.Delete("/income/{id}", h.DeleteIncome)

			private.Get("/goals", h.ListGoals)
			private.Post("/goals", h.CreateGoal)
			private.Get("/goals/{id}", h.GetGoal)
			private.Put("/goals/{id}", h.UpdateGoal)
			private.Delete("/goals/{id}", h.DeleteGoal)
			private.Post("/goals/{id}/deposits", h.AddDeposit)
			private.Delete("/goals/{goalId}/deposits/{depositId}", h.DeleteDeposit)

			private.Get("/categories", h.GetCategories)
			private.Put("/categories", h.UpdateCategories)
			private.Get("/income-categories", h.GetIncomeCategories)
			private.Put("/income-categories", h.UpdateIncomeCategories)

			private.Get("/export/csv", h.ExportCSV)
			private.Get("/export/backup", h.GetBackup)
			private.Post("/export/backup/restore", h.RestoreBackup)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Route "+r.URL.Path+" not found")
	})

	return r
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, http.StatusOK, "Server is running")
}
