package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"dompet/internal/cache"
	"dompet/internal/handlers"
	"dompet/internal/logger"
	"dompet/internal/middleware"
	"dompet/internal/services"
	"dompet/internal/testutil"
	"dompet/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)

	summaryCache, err := cache.New[*services.Summary](time.Minute)
	if err != nil {
		t.Fatalf("failed to create summary cache: %v", err)
	}
	t.Cleanup(summaryCache.Close)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	handlers.RegisterRoutes(router.Group("/api/v1"), handlers.Services{
		Users:        services.NewUserService(db, summaryCache),
		Pockets:      services.NewPocketService(db, summaryCache),
		Transactions: services.NewTransactionService(db, summaryCache),
		Plans:        services.NewPlanService(db, summaryCache),
		Summary:      services.NewSummaryService(db, summaryCache),
		Snapshot:     services.NewSnapshotService(db),
		Audit:        services.NewAuditService(db),
	})

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// expectStatus fails the test when the response code differs.
func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

// expectErrorCode asserts the error envelope carries the given code.
func expectErrorCode(t *testing.T, rec *httptest.ResponseRecorder, code string) {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %v", code, errObj["code"])
	}
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, username, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q,"name":"Test User"}`, username, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	expectStatus(t, rec, http.StatusCreated)
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, username, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	expectStatus(t, rec, http.StatusOK)
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createPocket creates a pocket and returns its ID.
func (app *testApp) createPocket(t *testing.T, token, name string, balance int64) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"balance":%d,"type":"bank"}`, name, balance)
	rec := app.request("POST", "/api/v1/pockets", body, token)
	expectStatus(t, rec, http.StatusCreated)
	return parseJSON(t, rec)["pocket"].(map[string]interface{})["id"].(string)
}

// createTransaction books a transaction and returns its ID.
func (app *testApp) createTransaction(t *testing.T, token, pocketID, txType, category string, amount int64) string {
	t.Helper()
	body := fmt.Sprintf(`{"pocket_id":%q,"type":%q,"category":%q,"amount":%d}`, pocketID, txType, category, amount)
	rec := app.request("POST", "/api/v1/transactions", body, token)
	expectStatus(t, rec, http.StatusCreated)
	return parseJSON(t, rec)["transaction"].(map[string]interface{})["id"].(string)
}

// pocketBalance reads a pocket balance through the API.
func (app *testApp) pocketBalance(t *testing.T, token, pocketID string) int64 {
	t.Helper()
	rec := app.request("GET", "/api/v1/pockets/"+pocketID, "", token)
	expectStatus(t, rec, http.StatusOK)
	return int64(parseJSON(t, rec)["pocket"].(map[string]interface{})["balance"].(float64))
}
