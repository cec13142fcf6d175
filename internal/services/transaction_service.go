package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "dompet/internal/errors"
	"dompet/internal/models"
)

// MaxTransactionLimit is the largest result count a transaction list may request.
const MaxTransactionLimit = 1000

// transactionService handles transaction-related business logic.
type transactionService struct {
	db          *gorm.DB
	invalidator Invalidator
}

// NewTransactionService creates a new TransactionServicer. invalidator may be nil.
func NewTransactionService(db *gorm.DB, invalidator Invalidator) TransactionServicer {
	return &transactionService{
		db:          db,
		invalidator: invalidator,
	}
}

// CreateTransaction books a new transaction and applies it to the pocket balance.
func (s *transactionService) CreateTransaction(
	userID string,
	pocketID string,
	transactionType models.TransactionType,
	category models.Category,
	amount int64,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if pocketID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "pocket ID is required")
	}
	if err := validateEntry(transactionType, category, amount); err != nil {
		return nil, err
	}

	// Default date to now if not provided
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		UserID:      userID,
		PocketID:    pocketID,
		Type:        transactionType,
		Category:    category,
		Amount:      amount,
		Description: description,
		Date:        date.UTC(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return bookTransaction(tx, transaction)
	})
	if err != nil {
		return nil, err
	}

	invalidate(s.invalidator, userID)
	return transaction, nil
}

// GetUserTransactions lists a user's transactions newest first.
func (s *transactionService) GetUserTransactions(userID string, filter TransactionFilter) ([]models.Transaction, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if filter.Limit < 0 || filter.Limit > MaxTransactionLimit {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be between 1 and 1000")
	}

	q := s.db.Where("user_id = ?", userID)
	q = applyTransactionFilters(q, filter)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	transactions := []models.Transaction{}
	if err := q.Order("date DESC, created_at DESC, id DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.PocketID != nil {
		q = q.Where("pocket_id = ?", *f.PocketID)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", f.FromDate.UTC())
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", f.ToDate.UTC())
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	return findTransaction(s.db, userID, transactionID)
}

func findTransaction(db *gorm.DB, userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction merges fields onto the stored transaction. The old
// effect is reverted from the old pocket and the new effect applied to the
// (possibly different) new pocket in the same unit.
func (s *transactionService) UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if fields.PocketID != nil && *fields.PocketID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "pocket ID cannot be empty")
	}

	var result *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		transaction, err := findTransaction(tx, userID, transactionID)
		if err != nil {
			return err
		}

		if err := revertTransaction(tx, transaction); err != nil {
			return err
		}

		if fields.PocketID != nil {
			transaction.PocketID = *fields.PocketID
		}
		if fields.Type != nil {
			transaction.Type = *fields.Type
		}
		if fields.Category != nil {
			transaction.Category = *fields.Category
		}
		if fields.Amount != nil {
			transaction.Amount = *fields.Amount
		}
		if fields.Description != nil {
			transaction.Description = *fields.Description
		}
		if fields.Date != nil && !fields.Date.IsZero() {
			transaction.Date = fields.Date.UTC()
		}
		if err := validateEntry(transaction.Type, transaction.Category, transaction.Amount); err != nil {
			return err
		}

		if err := applyPocketDelta(tx, userID, transaction.PocketID, transaction.SignedAmount()); err != nil {
			return err
		}
		if err := tx.Save(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		result = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(s.invalidator, userID)
	return result, nil
}

// DeleteTransaction reverts the transaction's effect and removes it.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	if err := requireUserID(userID); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		transaction, err := findTransaction(tx, userID, transactionID)
		if err != nil {
			return err
		}

		if err := revertTransaction(tx, transaction); err != nil {
			return err
		}

		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidate(s.invalidator, userID)
	return nil
}
