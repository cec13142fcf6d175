package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "dompet/internal/errors"
	"dompet/internal/models"
	"dompet/internal/services"
)

func setupPlanRouter(handler *PlanHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/plans", injectUserID(testUserID))
	g.POST("", handler.CreatePlan)
	g.GET("", handler.GetUserPlans)
	g.GET("/:id", handler.GetPlanByID)
	g.PUT("/:id", handler.UpdatePlan)
	g.DELETE("/:id", handler.DeletePlan)
	g.POST("/:id/pay", handler.PayPlan)
	return r
}

func TestPlanHandler_CreatePlan(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotType models.TransactionType
		var gotDue time.Time
		svc := &mockPlanService{
			createPlanFn: func(userID, title string, amount int64, dueDate time.Time, category models.Category, planType models.TransactionType, pocketID *string) (*models.Plan, error) {
				gotType = planType
				gotDue = dueDate
				return &models.Plan{
					Base:     models.Base{ID: testPlanID},
					UserID:   userID,
					Title:    title,
					Amount:   amount,
					DueDate:  dueDate,
					Category: category,
					Type:     models.TransactionTypeExpense,
					PocketID: pocketID,
				}, nil
			},
		}
		r := setupPlanRouter(NewPlanHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/plans",
			`{"title":"Rent","amount":2000000,"due_date":"2024-04-01","category":"Housing"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotType != "" {
			t.Errorf("expected empty type to be left for the service default, got %q", gotType)
		}
		if !gotDue.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected due date %v", gotDue)
		}
		plan := parseJSON(t, rec)["plan"].(map[string]interface{})
		if plan["is_paid"] != false {
			t.Errorf("expected unpaid plan, got %v", plan["is_paid"])
		}
	})

	t.Run("returns 400 without due date", func(t *testing.T) {
		r := setupPlanRouter(NewPlanHandler(&mockPlanService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/plans", `{"title":"Rent","amount":2000000,"category":"Housing"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPlanHandler_GetUserPlans(t *testing.T) {
	t.Run("parses the is_paid filter", func(t *testing.T) {
		var got *bool
		svc := &mockPlanService{
			getUserPlansFn: func(_ string, isPaid *bool) ([]models.Plan, error) {
				got = isPaid
				return []models.Plan{}, nil
			},
		}
		r := setupPlanRouter(NewPlanHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/plans?is_paid=false", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got == nil || *got {
			t.Errorf("expected is_paid=false filter, got %v", got)
		}
	})

	t.Run("returns 400 on a malformed is_paid", func(t *testing.T) {
		r := setupPlanRouter(NewPlanHandler(&mockPlanService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/plans?is_paid=maybe", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPlanHandler_UpdatePlan(t *testing.T) {
	t.Run("empty pocket_id clears the pocket", func(t *testing.T) {
		var got services.PlanUpdateFields
		svc := &mockPlanService{
			updatePlanFn: func(_, planID string, fields services.PlanUpdateFields) (*models.Plan, error) {
				got = fields
				return &models.Plan{Base: models.Base{ID: planID}}, nil
			},
		}
		r := setupPlanRouter(NewPlanHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/plans/"+testPlanID, `{"pocket_id":"","is_paid":false}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.ClearPocket || got.PocketID != nil {
			t.Errorf("expected ClearPocket without PocketID, got %+v", got)
		}
		if got.IsPaid == nil || *got.IsPaid {
			t.Errorf("expected is_paid=false, got %v", got.IsPaid)
		}
	})

	t.Run("returns 400 on a malformed pocket_id", func(t *testing.T) {
		r := setupPlanRouter(NewPlanHandler(&mockPlanService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/plans/"+testPlanID, `{"pocket_id":"abc"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPlanHandler_PayPlan(t *testing.T) {
	t.Run("returns the plan and the booked transaction", func(t *testing.T) {
		planID := testPlanID
		svc := &mockPlanService{
			payPlanFn: func(_, id string) (*services.PlanPayment, error) {
				return &services.PlanPayment{
					Plan: &models.Plan{Base: models.Base{ID: id}, IsPaid: true},
					Transaction: &models.Transaction{
						Base:        models.Base{ID: testTxID},
						PocketID:    testPocketID,
						PlanID:      &planID,
						Amount:      2000000,
						Description: "Plan Payment: Rent",
					},
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupPlanRouter(NewPlanHandler(svc, audit))

		rec := doRequest(r, "POST", "/plans/"+testPlanID+"/pay", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["plan"].(map[string]interface{})["is_paid"] != true {
			t.Error("expected plan to be paid")
		}
		tx := result["transaction"].(map[string]interface{})
		if tx["plan_id"] != testPlanID {
			t.Errorf("expected plan_id %s, got %v", testPlanID, tx["plan_id"])
		}
		if len(audit.entries) != 1 || audit.entries[0].Action != "PAY" {
			t.Fatalf("expected one PAY audit entry, got %+v", audit.entries)
		}
		if audit.entries[0].Changes["transaction_id"] != tx["id"] {
			t.Errorf("expected audit to reference transaction %v, got %v", tx["id"], audit.entries[0].Changes)
		}
	})

	t.Run("omits the transaction on a repeated payment", func(t *testing.T) {
		svc := &mockPlanService{
			payPlanFn: func(_, id string) (*services.PlanPayment, error) {
				return &services.PlanPayment{Plan: &models.Plan{Base: models.Base{ID: id}, IsPaid: true}}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupPlanRouter(NewPlanHandler(svc, audit))

		rec := doRequest(r, "POST", "/plans/"+testPlanID+"/pay", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if _, ok := parseJSON(t, rec)["transaction"]; ok {
			t.Error("expected no transaction in a no-op payment")
		}
		if len(audit.entries) != 0 {
			t.Errorf("expected no audit entry for a no-op payment, got %+v", audit.entries)
		}
	})

	t.Run("returns 409 when no pocket is available", func(t *testing.T) {
		svc := &mockPlanService{
			payPlanFn: func(_, _ string) (*services.PlanPayment, error) {
				return nil, apperrors.ErrNoPocketAvailable
			},
		}
		r := setupPlanRouter(NewPlanHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/plans/"+testPlanID+"/pay", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NO_POCKET_AVAILABLE")
	})
}

func TestPlanHandler_DeletePlan(t *testing.T) {
	t.Run("returns 404 when plan is missing", func(t *testing.T) {
		svc := &mockPlanService{
			deletePlanFn: func(_, _ string) error { return apperrors.ErrPlanNotFound },
		}
		r := setupPlanRouter(NewPlanHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/plans/"+testPlanID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PLAN_NOT_FOUND")
	})
}
