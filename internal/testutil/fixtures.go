package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"dompet/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// CreateTestUser creates a regular user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, fmt.Sprintf("user%d", nextID()), models.UserRoleUser)
}

// CreateTestAdmin creates an admin user.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, fmt.Sprintf("admin%d", nextID()), models.UserRoleAdmin)
}

// CreateTestUserWithRole creates a user with the given username and role.
func CreateTestUserWithRole(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
		Name:     "Test " + username,
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPocket creates a wallet pocket with zero balance.
func CreateTestPocket(t *testing.T, db *gorm.DB, userID string) *models.Pocket {
	t.Helper()
	return CreateTestPocketWithBalance(t, db, userID, 0)
}

// CreateTestPocketWithBalance creates a wallet pocket with the given balance.
func CreateTestPocketWithBalance(t *testing.T, db *gorm.DB, userID string, balance int64) *models.Pocket {
	t.Helper()

	pocket := &models.Pocket{
		UserID:  userID,
		Name:    fmt.Sprintf("Test Pocket %d", nextID()),
		Balance: balance,
		Type:    models.PocketTypeWallet,
		Color:   "#3B82F6",
	}
	if err := db.Create(pocket).Error; err != nil {
		t.Fatalf("failed to create test pocket: %v", err)
	}
	return pocket
}

// CreateTestTransaction inserts a transaction row directly, without touching
// the pocket balance. Use the transaction service when the balance matters.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, pocketID string, txType models.TransactionType, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:   userID,
		PocketID: pocketID,
		Type:     txType,
		Category: models.CategoryOther,
		Amount:   amount,
		Date:     date.UTC(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestPlan creates an unpaid expense plan. pocketID may be nil.
func CreateTestPlan(t *testing.T, db *gorm.DB, userID string, pocketID *string, amount int64) *models.Plan {
	t.Helper()

	plan := &models.Plan{
		UserID:   userID,
		PocketID: pocketID,
		Title:    fmt.Sprintf("Test Plan %d", nextID()),
		Amount:   amount,
		DueDate:  time.Now().UTC().AddDate(0, 0, 7),
		Category: models.CategoryBills,
		Type:     models.TransactionTypeExpense,
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("failed to create test plan: %v", err)
	}
	return plan
}
