package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"dompet/internal/middleware"
	"dompet/internal/models"
	"dompet/internal/pagination"
	"dompet/internal/services"
	"dompet/internal/validator"
)

const (
	testUserID   = "0190a1b2-0000-7000-8000-000000000001"
	testPocketID = "0190a1b2-0000-7000-8000-0000000000a1"
	testTxID     = "0190a1b2-0000-7000-8000-0000000000b1"
	testPlanID   = "0190a1b2-0000-7000-8000-0000000000c1"
)

// --- mock services ---

type mockUserService struct {
	createUserFn            func(username, password, name, avatar string, role models.UserRole) (*models.User, error)
	getUserByUsernameFn     func(username string) (*models.User, error)
	getUserByIDFn           func(id string) (*models.User, error)
	verifyPasswordFn        func(user *models.User, password string) bool
	attemptLoginFn          func(username, password string) (*models.User, error)
	storeRefreshTokenHashFn func(userID string, tokenHash string) error
	getRefreshTokenHashFn   func(userID string) (string, error)
	listUsersFn             func(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	deleteUserFn            func(id string) error
}

func (m *mockUserService) CreateUser(username, password, name, avatar string, role models.UserRole) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(username, password, name, avatar, role)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByUsername(username string) (*models.User, error) {
	if m.getUserByUsernameFn != nil {
		return m.getUserByUsernameFn(username)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{Base: models.Base{ID: id}}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) AttemptLogin(username, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(username, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) StoreRefreshTokenHash(userID string, tokenHash string) error {
	if m.storeRefreshTokenHashFn != nil {
		return m.storeRefreshTokenHashFn(userID, tokenHash)
	}
	return nil
}

func (m *mockUserService) GetRefreshTokenHash(userID string) (string, error) {
	if m.getRefreshTokenHashFn != nil {
		return m.getRefreshTokenHashFn(userID)
	}
	return "", nil
}

func (m *mockUserService) ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(page)
	}
	resp := pagination.NewPageResponse([]models.User{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockUserService) DeleteUser(id string) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(id)
	}
	return nil
}

type mockPocketService struct {
	createPocketFn   func(userID, name string, balance int64, pocketType models.PocketType, color string) (*models.Pocket, error)
	getUserPocketsFn func(userID string) ([]models.Pocket, error)
	getPocketByIDFn  func(userID, pocketID string) (*models.Pocket, error)
	updatePocketFn   func(userID, pocketID string, fields services.PocketUpdateFields) (*models.Pocket, error)
	deletePocketFn   func(userID, pocketID string) error
}

func (m *mockPocketService) CreatePocket(userID, name string, balance int64, pocketType models.PocketType, color string) (*models.Pocket, error) {
	if m.createPocketFn != nil {
		return m.createPocketFn(userID, name, balance, pocketType, color)
	}
	return &models.Pocket{}, nil
}

func (m *mockPocketService) GetUserPockets(userID string) ([]models.Pocket, error) {
	if m.getUserPocketsFn != nil {
		return m.getUserPocketsFn(userID)
	}
	return []models.Pocket{}, nil
}

func (m *mockPocketService) GetPocketByID(userID, pocketID string) (*models.Pocket, error) {
	if m.getPocketByIDFn != nil {
		return m.getPocketByIDFn(userID, pocketID)
	}
	return &models.Pocket{}, nil
}

func (m *mockPocketService) UpdatePocket(userID, pocketID string, fields services.PocketUpdateFields) (*models.Pocket, error) {
	if m.updatePocketFn != nil {
		return m.updatePocketFn(userID, pocketID, fields)
	}
	return &models.Pocket{}, nil
}

func (m *mockPocketService) DeletePocket(userID, pocketID string) error {
	if m.deletePocketFn != nil {
		return m.deletePocketFn(userID, pocketID)
	}
	return nil
}

type mockTransactionService struct {
	createTransactionFn   func(userID, pocketID string, transactionType models.TransactionType, category models.Category, amount int64, description string, date time.Time) (*models.Transaction, error)
	getUserTransactionsFn func(userID string, filter services.TransactionFilter) ([]models.Transaction, error)
	getTransactionByIDFn  func(userID, transactionID string) (*models.Transaction, error)
	updateTransactionFn   func(userID, transactionID string, fields services.TransactionUpdateFields) (*models.Transaction, error)
	deleteTransactionFn   func(userID, transactionID string) error
}

func (m *mockTransactionService) CreateTransaction(userID, pocketID string, transactionType models.TransactionType, category models.Category, amount int64, description string, date time.Time) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, pocketID, transactionType, category, amount, description, date)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetUserTransactions(userID string, filter services.TransactionFilter) ([]models.Transaction, error) {
	if m.getUserTransactionsFn != nil {
		return m.getUserTransactionsFn(userID, filter)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(userID, transactionID)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(userID, transactionID string, fields services.TransactionUpdateFields) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(userID, transactionID, fields)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID, transactionID string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, transactionID)
	}
	return nil
}

type mockPlanService struct {
	createPlanFn   func(userID, title string, amount int64, dueDate time.Time, category models.Category, planType models.TransactionType, pocketID *string) (*models.Plan, error)
	getUserPlansFn func(userID string, isPaid *bool) ([]models.Plan, error)
	getPlanByIDFn  func(userID, planID string) (*models.Plan, error)
	updatePlanFn   func(userID, planID string, fields services.PlanUpdateFields) (*models.Plan, error)
	deletePlanFn   func(userID, planID string) error
	payPlanFn      func(userID, planID string) (*services.PlanPayment, error)
}

func (m *mockPlanService) CreatePlan(userID, title string, amount int64, dueDate time.Time, category models.Category, planType models.TransactionType, pocketID *string) (*models.Plan, error) {
	if m.createPlanFn != nil {
		return m.createPlanFn(userID, title, amount, dueDate, category, planType, pocketID)
	}
	return &models.Plan{}, nil
}

func (m *mockPlanService) GetUserPlans(userID string, isPaid *bool) ([]models.Plan, error) {
	if m.getUserPlansFn != nil {
		return m.getUserPlansFn(userID, isPaid)
	}
	return []models.Plan{}, nil
}

func (m *mockPlanService) GetPlanByID(userID, planID string) (*models.Plan, error) {
	if m.getPlanByIDFn != nil {
		return m.getPlanByIDFn(userID, planID)
	}
	return &models.Plan{}, nil
}

func (m *mockPlanService) UpdatePlan(userID, planID string, fields services.PlanUpdateFields) (*models.Plan, error) {
	if m.updatePlanFn != nil {
		return m.updatePlanFn(userID, planID, fields)
	}
	return &models.Plan{}, nil
}

func (m *mockPlanService) DeletePlan(userID, planID string) error {
	if m.deletePlanFn != nil {
		return m.deletePlanFn(userID, planID)
	}
	return nil
}

func (m *mockPlanService) PayPlan(userID, planID string) (*services.PlanPayment, error) {
	if m.payPlanFn != nil {
		return m.payPlanFn(userID, planID)
	}
	return &services.PlanPayment{Plan: &models.Plan{}}, nil
}

type mockSummaryService struct {
	getSummaryFn func(userID string, months int) (*services.Summary, error)
}

func (m *mockSummaryService) GetSummary(userID string, months int) (*services.Summary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(userID, months)
	}
	return &services.Summary{SavingsRate: "0.0000"}, nil
}

type mockSnapshotService struct {
	getSnapshotFn func(userID string) (*services.Snapshot, error)
}

func (m *mockSnapshotService) GetSnapshot(userID string) (*services.Snapshot, error) {
	if m.getSnapshotFn != nil {
		return m.getSnapshotFn(userID)
	}
	return &services.Snapshot{}, nil
}

type mockAuditService struct {
	entries []services.AuditEntry
}

func (m *mockAuditService) Record(entry services.AuditEntry) {
	m.entries = append(m.entries, entry)
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
