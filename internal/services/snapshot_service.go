package services

import (
	"gorm.io/gorm"

	apperrors "dompet/internal/errors"
	"dompet/internal/models"
)

// snapshotService reads a user's whole dataset.
type snapshotService struct {
	db *gorm.DB
}

// NewSnapshotService creates a new SnapshotServicer.
func NewSnapshotService(db *gorm.DB) SnapshotServicer {
	return &snapshotService{db: db}
}

// GetSnapshot returns every pocket, transaction and plan of a user, read
// in one database transaction so the three lists are consistent.
func (s *snapshotService) GetSnapshot(userID string) (*Snapshot, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		Pockets:      []models.Pocket{},
		Transactions: []models.Transaction{},
		Plans:        []models.Plan{},
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&snapshot.Pockets).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("user_id = ?", userID).Order("date DESC, created_at DESC, id DESC").Find(&snapshot.Transactions).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("user_id = ?", userID).Order("due_date ASC, created_at ASC").Find(&snapshot.Plans).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
