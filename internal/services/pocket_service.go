package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "dompet/internal/errors"
	"dompet/internal/models"
)

var errBalanceOutOfRange = apperrors.WithMessage(apperrors.ErrInvalidInput, "balance is out of range")

// pocketService handles pocket-related business logic.
type pocketService struct {
	db          *gorm.DB
	invalidator Invalidator
}

// NewPocketService creates a new PocketServicer. invalidator may be nil.
func NewPocketService(db *gorm.DB, invalidator Invalidator) PocketServicer {
	return &pocketService{db: db, invalidator: invalidator}
}

// CreatePocket creates a new pocket. balance is the opening balance and is
// not backed by a transaction.
func (s *pocketService) CreatePocket(userID, name string, balance int64, pocketType models.PocketType, color string) (*models.Pocket, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "pocket name is required")
	}
	if !validPocketType(pocketType) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "pocket type must be bank, wallet or ewallet")
	}
	if !validBalance(balance) {
		return nil, errBalanceOutOfRange
	}

	pocket := &models.Pocket{
		UserID:  userID,
		Name:    name,
		Balance: balance,
		Type:    pocketType,
		Color:   color,
	}
	if err := s.db.Create(pocket).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	invalidate(s.invalidator, userID)
	return pocket, nil
}

// GetUserPockets lists a user's pockets in creation order.
func (s *pocketService) GetUserPockets(userID string) ([]models.Pocket, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	pockets := []models.Pocket{}
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&pockets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pockets, nil
}

// GetPocketByID retrieves a pocket by ID for a specific user
func (s *pocketService) GetPocketByID(userID, pocketID string) (*models.Pocket, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	return findPocket(s.db, userID, pocketID)
}

func findPocket(db *gorm.DB, userID, pocketID string) (*models.Pocket, error) {
	var pocket models.Pocket
	if err := db.Where("id = ? AND user_id = ?", pocketID, userID).First(&pocket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPocketNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &pocket, nil
}

// UpdatePocket applies a partial update. A Balance field overwrites the
// cached balance directly, which is how users correct drift.
func (s *pocketService) UpdatePocket(userID, pocketID string, fields PocketUpdateFields) (*models.Pocket, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "pocket name cannot be empty")
		}
		updates["name"] = name
	}
	if fields.Balance != nil {
		if !validBalance(*fields.Balance) {
			return nil, errBalanceOutOfRange
		}
		updates["balance"] = *fields.Balance
	}
	if fields.Type != nil {
		if !validPocketType(*fields.Type) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "pocket type must be bank, wallet or ewallet")
		}
		updates["type"] = *fields.Type
	}
	if fields.Color != nil {
		updates["color"] = *fields.Color
	}

	var result *models.Pocket
	err := s.db.Transaction(func(tx *gorm.DB) error {
		pocket, err := findPocket(tx, userID, pocketID)
		if err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(pocket).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		result, err = findPocket(tx, userID, pocketID)
		return err
	})
	if err != nil {
		return nil, err
	}

	invalidate(s.invalidator, userID)
	return result, nil
}

// DeletePocket removes a pocket that no transaction references. Plans that
// target it fall back to the default pocket selection.
func (s *pocketService) DeletePocket(userID, pocketID string) error {
	if err := requireUserID(userID); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		pocket, err := findPocket(tx, userID, pocketID)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Transaction{}).Where("pocket_id = ?", pocket.ID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.ErrPocketInUse
		}

		if err := tx.Model(&models.Plan{}).
			Where("pocket_id = ? AND user_id = ?", pocket.ID, userID).
			Update("pocket_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Delete(pocket).Error; err != nil {
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

func validPocketType(t models.PocketType) bool {
	switch t {
	case models.PocketTypeBank, models.PocketTypeWallet, models.PocketTypeEwallet:
		return true
	}
	return false
}

func validBalance(balance int64) bool {
	return balance >= -models.MaxBalance && balance <= models.MaxBalance
}
