package testutil

import (
	"errors"
	"testing"

	apperrors "dompet/internal/errors"
	"dompet/internal/models"

	"gorm.io/gorm"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertPocketBalance reloads the pocket and checks its stored balance.
func AssertPocketBalance(t *testing.T, db *gorm.DB, pocketID string, expected int64) {
	t.Helper()

	var pocket models.Pocket
	if err := db.Unscoped().First(&pocket, "id = ?", pocketID).Error; err != nil {
		t.Fatalf("failed to reload pocket %s: %v", pocketID, err)
	}
	if pocket.Balance != expected {
		t.Errorf("expected pocket balance %d, got %d", expected, pocket.Balance)
	}
}
