package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "dompet/internal/errors"
	"dompet/internal/logger"
	"dompet/internal/models"
)

// planService handles plan-related business logic.
type planService struct {
	db          *gorm.DB
	invalidator Invalidator
	now         func() time.Time
}

// NewPlanService creates a new PlanServicer. invalidator may be nil.
func NewPlanService(db *gorm.DB, invalidator Invalidator) PlanServicer {
	return &planService{db: db, invalidator: invalidator, now: time.Now}
}

// CreatePlan schedules a new unpaid plan.
func (s *planService) CreatePlan(
	userID, title string,
	amount int64,
	dueDate time.Time,
	category models.Category,
	planType models.TransactionType,
	pocketID *string,
) (*models.Plan, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "plan title is required")
	}
	if planType == "" {
		planType = models.TransactionTypeExpense
	}
	if err := validateEntry(planType, category, amount); err != nil {
		return nil, err
	}
	if dueDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "due date is required")
	}
	if pocketID != nil {
		if _, err := findPocket(s.db, userID, *pocketID); err != nil {
			return nil, err
		}
	}

	plan := &models.Plan{
		UserID:   userID,
		PocketID: pocketID,
		Title:    title,
		Amount:   amount,
		DueDate:  dueDate.UTC(),
		Category: category,
		Type:     planType,
	}
	if err := s.db.Create(plan).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return plan, nil
}

// GetUserPlans lists a user's plans by due date, optionally filtered by paid state.
func (s *planService) GetUserPlans(userID string, isPaid *bool) ([]models.Plan, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	q := s.db.Where("user_id = ?", userID)
	if isPaid != nil {
		q = q.Where("is_paid = ?", *isPaid)
	}

	plans := []models.Plan{}
	if err := q.Order("due_date ASC, created_at ASC").Find(&plans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return plans, nil
}

// GetPlanByID retrieves a plan by ID for a specific user
func (s *planService) GetPlanByID(userID, planID string) (*models.Plan, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	return findPlan(s.db, userID, planID)
}

func findPlan(db *gorm.DB, userID, planID string) (*models.Plan, error) {
	var plan models.Plan
	if err := db.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &plan, nil
}

// UpdatePlan applies a partial update. Setting IsPaid is a plain field
// write: marking a paid plan unpaid leaves its booked transaction in place.
func (s *planService) UpdatePlan(userID, planID string, fields PlanUpdateFields) (*models.Plan, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if fields.Title != nil {
		title := strings.TrimSpace(*fields.Title)
		if title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "plan title cannot be empty")
		}
		updates["title"] = title
	}
	if fields.Amount != nil {
		if *fields.Amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		if *fields.Amount > models.MaxAmount {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount is too large")
		}
		updates["amount"] = *fields.Amount
	}
	if fields.DueDate != nil && !fields.DueDate.IsZero() {
		updates["due_date"] = fields.DueDate.UTC()
	}
	if fields.Category != nil {
		if !fields.Category.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category")
		}
		updates["category"] = *fields.Category
	}
	if fields.Type != nil {
		if !fields.Type.Valid() {
			return nil, apperrors.ErrInvalidTransactionType
		}
		updates["type"] = *fields.Type
	}
	if fields.IsPaid != nil {
		updates["is_paid"] = *fields.IsPaid
	}

	var result *models.Plan
	err := s.db.Transaction(func(tx *gorm.DB) error {
		plan, err := findPlan(tx, userID, planID)
		if err != nil {
			return err
		}

		switch {
		case fields.ClearPocket:
			updates["pocket_id"] = nil
		case fields.PocketID != nil:
			if _, err := findPocket(tx, userID, *fields.PocketID); err != nil {
				return err
			}
			updates["pocket_id"] = *fields.PocketID
		}

		if len(updates) > 0 {
			if err := tx.Model(plan).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		result, err = findPlan(tx, userID, planID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeletePlan removes a plan. A transaction it already booked is kept.
func (s *planService) DeletePlan(userID, planID string) error {
	if err := requireUserID(userID); err != nil {
		return err
	}

	plan, err := findPlan(s.db, userID, planID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(plan).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// PayPlan realizes a plan as a transaction and marks it paid, both in one
// unit. The unique plan_id on transactions guarantees at most one booked
// transaction per plan, so repeated calls are no-ops.
func (s *planService) PayPlan(userID, planID string) (*PlanPayment, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	var payment *PlanPayment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		plan, err := findPlan(tx, userID, planID)
		if err != nil {
			return err
		}
		if plan.IsPaid {
			payment = &PlanPayment{Plan: plan}
			return nil
		}

		var booked int64
		if err := tx.Model(&models.Transaction{}).Where("plan_id = ?", plan.ID).Count(&booked).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if booked > 0 {
			// Paid, then toggled back to unpaid: the transaction still stands.
			if err := markPlanPaid(tx, plan); err != nil {
				return err
			}
			payment = &PlanPayment{Plan: plan}
			return nil
		}

		pocket, err := s.paymentPocket(tx, userID, plan)
		if err != nil {
			return err
		}

		transaction := &models.Transaction{
			UserID:      userID,
			PocketID:    pocket.ID,
			PlanID:      &plan.ID,
			Type:        plan.Type,
			Category:    plan.Category,
			Amount:      plan.Amount,
			Description: "Plan Payment: " + plan.Title,
			Date:        s.now().UTC(),
		}
		if err := bookTransaction(tx, transaction); err != nil {
			return err
		}
		if err := markPlanPaid(tx, plan); err != nil {
			return err
		}

		payment = &PlanPayment{Plan: plan, Transaction: transaction}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent payment of the same plan won the race.
			plan, getErr := findPlan(s.db, userID, planID)
			if getErr != nil {
				return nil, getErr
			}
			return &PlanPayment{Plan: plan}, nil
		}
		if errors.Is(err, apperrors.ErrNoPocketAvailable) {
			logger.Get().Warnw("plan left unpaid: no pocket available", "user_id", userID, "plan_id", planID)
		}
		return nil, err
	}

	if payment.Transaction != nil {
		invalidate(s.invalidator, userID)
	}
	return payment, nil
}

// paymentPocket picks the plan's own pocket, or the user's oldest pocket
// when the plan has none.
func (s *planService) paymentPocket(tx *gorm.DB, userID string, plan *models.Plan) (*models.Pocket, error) {
	if plan.PocketID != nil {
		return findPocket(tx, userID, *plan.PocketID)
	}

	var pocket models.Pocket
	if err := tx.Where("user_id = ?", userID).Order("created_at ASC, id ASC").First(&pocket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoPocketAvailable
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &pocket, nil
}

func markPlanPaid(tx *gorm.DB, plan *models.Plan) error {
	if err := tx.Model(plan).Update("is_paid", true).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	plan.IsPaid = true
	return nil
}
