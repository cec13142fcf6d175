package services

import (
	"gorm.io/gorm"

	apperrors "dompet/internal/errors"
	"dompet/internal/models"
)

// applyPocketDelta adds delta to the pocket balance in a single statement,
// so concurrent units serialize on the row instead of overwriting each
// other's read-modify-write. The guard keeps the result within
// ±models.MaxBalance; a delta that would leave that range is rejected.
func applyPocketDelta(tx *gorm.DB, userID, pocketID string, delta int64) error {
	q := tx.Model(&models.Pocket{}).Where("id = ? AND user_id = ?", pocketID, userID)
	if delta >= 0 {
		q = q.Where("balance <= ?", models.MaxBalance-delta)
	} else {
		q = q.Where("balance >= ?", -models.MaxBalance-delta)
	}
	result := q.Update("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if _, err := findPocket(tx, userID, pocketID); err != nil {
		return err
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, "pocket balance would leave the allowed range")
}

// bookTransaction applies a new transaction to its pocket and persists it.
// Must run inside a database transaction.
func bookTransaction(tx *gorm.DB, transaction *models.Transaction) error {
	if err := applyPocketDelta(tx, transaction.UserID, transaction.PocketID, transaction.SignedAmount()); err != nil {
		return err
	}
	if err := tx.Create(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// revertTransaction undoes the effect of a stored transaction on its pocket.
// Must run inside a database transaction.
func revertTransaction(tx *gorm.DB, transaction *models.Transaction) error {
	return applyPocketDelta(tx, transaction.UserID, transaction.PocketID, -transaction.SignedAmount())
}

// validateEntry checks the fields shared by transactions and plans.
func validateEntry(transactionType models.TransactionType, category models.Category, amount int64) error {
	if amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if amount > models.MaxAmount {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount is too large")
	}
	if !transactionType.Valid() {
		return apperrors.ErrInvalidTransactionType
	}
	if !category.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category")
	}
	return nil
}

func requireUserID(userID string) error {
	if userID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "user ID is required")
	}
	return nil
}

func invalidate(invalidator Invalidator, userID string) {
	if invalidator != nil {
		invalidator.InvalidateUser(userID)
	}
}
