package handlers

import (
	"net/http"
	"testing"
)

func TestCreateExpenseValidation(t *testing.T) {
	h, _, token, _ := newTestServer(t)

	// Missing amount.
	rec := doRequest(t, h, http.MethodPost, "/api/expenses", token, map[string]interface{}{
		"category": "Food",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing amount: expected 400, got %d", rec.Code)
	}

	// Missing category: required for expenses.
	rec = doRequest(t, h, http.MethodPost, "/api/expenses", token, map[string]interface{}{
		"amount": 10.0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing category: expected 400, got %d", rec.Code)
	}

	// Income has no category requirement.
	rec = doRequest(t, h, http.MethodPost, "/api/income", token, map[string]interface{}{
		"amount": 100.0,
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("income without category: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestExpenseCRUD(t *testing.T) {
	h, _, token, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodPost, "/api/expenses", token, map[string]interface{}{
		"amount":   42.0,
		"category": "Food",
		"note":     "groceries",
		"date":     "2025-02-10",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	created := envelope["data"].(map[string]interface{})
	id := created["id"].(string)

	rec = doRequest(t, h, http.MethodGet, "/api/expenses/"+id, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}

	// Partial update: amount only, category untouched.
	rec = doRequest(t, h, http.MethodPut, "/api/expenses/"+id, token, map[string]interface{}{
		"amount": 45.0,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	envelope = decodeEnvelope(t, rec)
	updated := envelope["data"].(map[string]interface{})
	if updated["amount"].(float64) != 45 {
		t.Errorf("expected amount 45, got %v", updated["amount"])
	}
	if updated["category"] != "Food" {
		t.Errorf("expected category untouched, got %v", updated["category"])
	}

	rec = doRequest(t, h, http.MethodDelete, "/api/expenses/"+id, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}

	rec = doRequest(t, h, http.MethodGet, "/api/expenses/"+id, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rec.Code)
	}
}

func TestListExpensesFilters(t *testing.T) {
	h, _, token, _ := newTestServer(t)
	seedExpense(t, h, token, 10, "Food", "2025-01-05")
	seedExpense(t, h, token, 20, "Bills", "2025-02-05")
	seedExpense(t, h, token, 30, "Food", "2025-03-05")

	rec := doRequest(t, h, http.MethodGet, "/api/expenses?category=Food", token, nil)
	envelope := decodeEnvelope(t, rec)
	if envelope["count"].(float64) != 2 {
		t.Errorf("category filter: expected 2, got %v", envelope["count"])
	}

	rec = doRequest(t, h, http.MethodGet, "/api/expenses?startDate=2025-02-01&endDate=2025-02-28", token, nil)
	envelope = decodeEnvelope(t, rec)
	if envelope["count"].(float64) != 1 {
		t.Errorf("date filter: expected 1, got %v", envelope["count"])
	}
}

func TestMonthlyStats(t *testing.T) {
	h, _, token, _ := newTestServer(t)
	seedExpense(t, h, token, 10, "Food", "2025-06-02")
	seedExpense(t, h, token, 5, "Food", "2025-06-15")
	seedExpense(t, h, token, 3, "Transport", "2025-06-29")
	seedExpense(t, h, token, 99, "Food", "2025-07-02") // outside the window

	rec := doRequest(t, h, http.MethodGet, "/api/expenses/stats/monthly?year=2025&month=6", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})

	if data["total"].(float64) != 18 {
		t.Errorf("expected total 18, got %v", data["total"])
	}
	if data["count"].(float64) != 3 {
		t.Errorf("expected count 3, got %v", data["count"])
	}
	totals := data["categoryTotals"].(map[string]interface{})
	if totals["Food"].(float64) != 15 || totals["Transport"].(float64) != 3 {
		t.Errorf("unexpected categoryTotals: %v", totals)
	}
	if data["year"].(float64) != 2025 || data["month"].(float64) != 6 {
		t.Errorf("expected resolved year/month, got %v/%v", data["year"], data["month"])
	}
}

func TestMonthlyStatsEmptyMonth(t *testing.T) {
	h, _, token, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodGet, "/api/expenses/stats/monthly?year=2030&month=1", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	if data["total"].(float64) != 0 || data["count"].(float64) != 0 {
		t.Errorf("expected zero stats, got %v", data)
	}
	if totals := data["categoryTotals"].(map[string]interface{}); len(totals) != 0 {
		t.Errorf("expected empty categoryTotals, got %v", totals)
	}
}

func TestMonthlyStatsBadMonth(t *testing.T) {
	h, _, token, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodGet, "/api/expenses/stats/monthly?month=13", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for month 13, got %d", rec.Code)
	}
}

func TestCategoriesDefaultOnFirstAccess(t *testing.T) {
	h, _, token, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodGet, "/api/categories", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	categories := envelope["data"].([]interface{})
	if len(categories) != 8 || categories[0] != "Food" {
		t.Errorf("expected default expense categories, got %v", categories)
	}

	rec = doRequest(t, h, http.MethodGet, "/api/income-categories", token, nil)
	envelope = decodeEnvelope(t, rec)
	categories = envelope["data"].([]interface{})
	if len(categories) != 7 || categories[0] != "Salary" {
		t.Errorf("expected default income categories, got %v", categories)
	}
}

func TestUpdateCategoriesValidation(t *testing.T) {
	h, _, token, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodPut, "/api/categories", token, map[string]interface{}{
		"categories": []string{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty list: expected 400, got %d", rec.Code)
	}

	rec = doRequest(t, h, http.MethodPut, "/api/categories", token, map[string]interface{}{
		"categories": []string{"Rent", "Fun"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	categories := envelope["data"].([]interface{})
	if len(categories) != 2 || categories[0] != "Rent" {
		t.Errorf("expected replaced list, got %v", categories)
	}
}
