package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "dompet/internal/errors"
	"dompet/internal/models"
	"dompet/internal/services"
)

func setupSummaryRouter(handler *SummaryHandler) *gin.Engine {
	r := gin.New()
	r.GET("/summary", injectUserID(testUserID), handler.GetSummary)
	r.GET("/data", injectUserID(testUserID), handler.GetData)
	return r
}

func TestSummaryHandler_GetSummary(t *testing.T) {
	t.Run("defaults to six months", func(t *testing.T) {
		var gotMonths int
		svc := &mockSummaryService{
			getSummaryFn: func(_ string, months int) (*services.Summary, error) {
				gotMonths = months
				return &services.Summary{TotalBalance: 150000, SavingsRate: "0.2500"}, nil
			},
		}
		r := setupSummaryRouter(NewSummaryHandler(svc, &mockSnapshotService{}))

		rec := doRequest(r, "GET", "/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotMonths != services.DefaultSummaryMonths {
			t.Errorf("expected %d months, got %d", services.DefaultSummaryMonths, gotMonths)
		}
		result := parseJSON(t, rec)
		if result["savings_rate"] != "0.2500" {
			t.Errorf("expected savings_rate 0.2500, got %v", result["savings_rate"])
		}
	})

	t.Run("forwards months", func(t *testing.T) {
		var gotMonths int
		svc := &mockSummaryService{
			getSummaryFn: func(_ string, months int) (*services.Summary, error) {
				gotMonths = months
				return &services.Summary{}, nil
			},
		}
		r := setupSummaryRouter(NewSummaryHandler(svc, &mockSnapshotService{}))

		rec := doRequest(r, "GET", "/summary?months=12", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotMonths != 12 {
			t.Errorf("expected 12 months, got %d", gotMonths)
		}
	})

	t.Run("returns 400 on non-numeric months", func(t *testing.T) {
		r := setupSummaryRouter(NewSummaryHandler(&mockSummaryService{}, &mockSnapshotService{}))

		rec := doRequest(r, "GET", "/summary?months=all", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("surfaces service validation", func(t *testing.T) {
		svc := &mockSummaryService{
			getSummaryFn: func(_ string, _ int) (*services.Summary, error) {
				return nil, apperrors.ErrInvalidInput
			},
		}
		r := setupSummaryRouter(NewSummaryHandler(svc, &mockSnapshotService{}))

		rec := doRequest(r, "GET", "/summary?months=99", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestSummaryHandler_GetData(t *testing.T) {
	svc := &mockSnapshotService{
		getSnapshotFn: func(userID string) (*services.Snapshot, error) {
			return &services.Snapshot{
				Pockets:      []models.Pocket{{Base: models.Base{ID: testPocketID}, UserID: userID}},
				Transactions: []models.Transaction{},
				Plans:        []models.Plan{},
			}, nil
		},
	}
	r := setupSummaryRouter(NewSummaryHandler(&mockSummaryService{}, svc))

	rec := doRequest(r, "GET", "/data", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	for _, key := range []string{"pockets", "transactions", "plans"} {
		if _, ok := result[key].([]interface{}); !ok {
			t.Errorf("expected %s array in snapshot, got %v", key, result[key])
		}
	}
}
