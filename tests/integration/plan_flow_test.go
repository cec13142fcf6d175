package integration

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"dompet/internal/models"
)

func (app *testApp) createPlan(t *testing.T, token, body string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/plans", body, token)
	expectStatus(t, rec, http.StatusCreated)
	return parseJSON(t, rec)["plan"].(map[string]interface{})["id"].(string)
}

func (app *testApp) countPlanTransactions(t *testing.T, planID string) int64 {
	t.Helper()
	var n int64
	if err := app.DB.Model(&models.Transaction{}).Where("plan_id = ?", planID).Count(&n).Error; err != nil {
		t.Fatalf("failed to count transactions: %v", err)
	}
	return n
}

func TestPlanFlow_PayRent(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "budi", "password123")
	pocketID := app.createPocket(t, token, "BCA", 5000000)
	planID := app.createPlan(t, token, fmt.Sprintf(
		`{"title":"Rent","amount":2000000,"due_date":"2024-04-01","category":"Housing","pocket_id":%q}`, pocketID))

	rec := app.request("POST", "/api/v1/plans/"+planID+"/pay", "", token)
	expectStatus(t, rec, http.StatusOK)
	result := parseJSON(t, rec)
	if result["plan"].(map[string]interface{})["is_paid"] != true {
		t.Error("expected plan to be paid")
	}
	tx := result["transaction"].(map[string]interface{})
	if tx["description"] != "Plan Payment: Rent" || tx["plan_id"] != planID {
		t.Errorf("unexpected realized transaction %v", tx)
	}
	if tx["type"] != "expense" || tx["category"] != "Housing" {
		t.Errorf("expected the plan's type and category, got %v", tx)
	}
	if got := app.pocketBalance(t, token, pocketID); got != 3000000 {
		t.Errorf("expected 3000000 after payment, got %d", got)
	}

	t.Run("paying again is a no-op", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/plans/"+planID+"/pay", "", token)
		expectStatus(t, rec, http.StatusOK)
		if _, ok := parseJSON(t, rec)["transaction"]; ok {
			t.Error("expected no new transaction")
		}
		if n := app.countPlanTransactions(t, planID); n != 1 {
			t.Errorf("expected exactly one realized transaction, got %d", n)
		}
		if got := app.pocketBalance(t, token, pocketID); got != 3000000 {
			t.Errorf("expected balance unchanged, got %d", got)
		}
	})

	t.Run("unpaid toggle keeps the transaction and re-paying books nothing", func(t *testing.T) {
		expectStatus(t, app.request("PUT", "/api/v1/plans/"+planID, `{"is_paid":false}`, token), http.StatusOK)
		if n := app.countPlanTransactions(t, planID); n != 1 {
			t.Fatalf("expected the realized transaction to survive, got %d", n)
		}

		rec := app.request("POST", "/api/v1/plans/"+planID+"/pay", "", token)
		expectStatus(t, rec, http.StatusOK)
		if parseJSON(t, rec)["plan"].(map[string]interface{})["is_paid"] != true {
			t.Error("expected plan to be paid again")
		}
		if n := app.countPlanTransactions(t, planID); n != 1 {
			t.Errorf("expected exactly one realized transaction, got %d", n)
		}
		if got := app.pocketBalance(t, token, pocketID); got != 3000000 {
			t.Errorf("expected balance unchanged, got %d", got)
		}
	})
}

func TestPlanFlow_FallsBackToFirstPocket(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "budi", "password123")
	first := app.createPocket(t, token, "First", 100)
	second := app.createPocket(t, token, "Second", 100)
	planID := app.createPlan(t, token,
		`{"title":"Bonus","amount":900,"due_date":"2024-04-01","category":"Salary","type":"income"}`)

	rec := app.request("POST", "/api/v1/plans/"+planID+"/pay", "", token)
	expectStatus(t, rec, http.StatusOK)

	if got := app.pocketBalance(t, token, first); got != 1000 {
		t.Errorf("expected the first pocket to receive the income, got %d", got)
	}
	if got := app.pocketBalance(t, token, second); got != 100 {
		t.Errorf("expected the second pocket untouched, got %d", got)
	}
}

func TestPlanFlow_NoPocketAvailable(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "budi", "password123")
	planID := app.createPlan(t, token, `{"title":"Rent","amount":1000,"due_date":"2024-04-01","category":"Housing"}`)

	rec := app.request("POST", "/api/v1/plans/"+planID+"/pay", "", token)
	expectStatus(t, rec, http.StatusConflict)
	expectErrorCode(t, rec, "NO_POCKET_AVAILABLE")

	rec = app.request("GET", "/api/v1/plans/"+planID, "", token)
	expectStatus(t, rec, http.StatusOK)
	if parseJSON(t, rec)["plan"].(map[string]interface{})["is_paid"] != false {
		t.Error("expected plan to stay unpaid")
	}
}

func TestPlanFlow_ConcurrentPayBooksOnce(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "budi", "password123")
	pocketID := app.createPocket(t, token, "BCA", 10000)
	planID := app.createPlan(t, token, fmt.Sprintf(
		`{"title":"Internet","amount":1000,"due_date":"2024-04-01","category":"Bills","pocket_id":%q}`, pocketID))

	var wg sync.WaitGroup
	codes := make([]int, 8)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = app.request("POST", "/api/v1/plans/"+planID+"/pay", "", token).Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if code != http.StatusOK {
			t.Errorf("request %d: expected 200, got %d", i, code)
		}
	}
	if n := app.countPlanTransactions(t, planID); n != 1 {
		t.Errorf("expected exactly one realized transaction, got %d", n)
	}
	if got := app.pocketBalance(t, token, pocketID); got != 9000 {
		t.Errorf("expected 9000, got %d", got)
	}
}

func TestPlanFlow_ListByPaidStatus(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "budi", "password123")
	app.createPocket(t, token, "BCA", 10000)
	paid := app.createPlan(t, token, `{"title":"Rent","amount":1000,"due_date":"2024-04-01","category":"Housing"}`)
	app.createPlan(t, token, `{"title":"Gym","amount":300,"due_date":"2024-04-05","category":"Health"}`)

	expectStatus(t, app.request("POST", "/api/v1/plans/"+paid+"/pay", "", token), http.StatusOK)

	rec := app.request("GET", "/api/v1/plans?is_paid=false", "", token)
	expectStatus(t, rec, http.StatusOK)
	plans := parseJSON(t, rec)["plans"].([]interface{})
	if len(plans) != 1 || plans[0].(map[string]interface{})["title"] != "Gym" {
		t.Errorf("expected only the unpaid plan, got %v", plans)
	}
}
