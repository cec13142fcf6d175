package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dompet/internal/cache"
	apperrors "dompet/internal/errors"
	"dompet/internal/models"
)

const (
	// DefaultSummaryMonths is the chart window used when none is requested.
	DefaultSummaryMonths = 6
	// MaxSummaryMonths bounds the chart window.
	MaxSummaryMonths = 24
)

// summaryService aggregates pockets and transactions for the dashboard.
type summaryService struct {
	db    *gorm.DB
	cache *cache.Cache[*Summary]
	now   func() time.Time
}

// NewSummaryService creates a new SummaryServicer. summaryCache may be nil,
// in which case every call hits the database.
func NewSummaryService(db *gorm.DB, summaryCache *cache.Cache[*Summary]) SummaryServicer {
	return &summaryService{db: db, cache: summaryCache, now: time.Now}
}

// GetSummary returns balance and income/expense totals, the last months
// calendar months of activity (oldest first) and expense per category.
func (s *summaryService) GetSummary(userID string, months int) (*Summary, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if months < 1 || months > MaxSummaryMonths {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("months must be between 1 and %d", MaxSummaryMonths))
	}

	key := fmt.Sprintf("summary:%d", months)
	var gen uint64
	if s.cache != nil {
		cached, g, ok := s.cache.Get(userID, key)
		if ok {
			return cached, nil
		}
		gen = g
	}

	summary, err := s.compute(userID, months)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(userID, gen, key, summary)
	}
	return summary, nil
}

func (s *summaryService) compute(userID string, months int) (*Summary, error) {
	summary := &Summary{
		Monthly:    make([]MonthlyTotal, 0, months),
		ByCategory: []CategoryTotal{},
	}

	if err := s.db.Model(&models.Pocket{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&summary.TotalBalance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var totals []struct {
		Type  models.TransactionType
		Total int64
	}
	if err := s.db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&totals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, t := range totals {
		switch t.Type {
		case models.TransactionTypeIncome:
			summary.TotalIncome = t.Total
		case models.TransactionTypeExpense:
			summary.TotalExpense = t.Total
		}
	}
	summary.Net = summary.TotalIncome - summary.TotalExpense
	summary.SavingsRate = savingsRate(summary.TotalIncome, summary.Net)

	monthly, err := s.monthlyTotals(userID, months)
	if err != nil {
		return nil, err
	}
	summary.Monthly = monthly

	if err := s.db.Model(&models.Transaction{}).
		Select("category, SUM(amount) AS amount").
		Where("user_id = ? AND type = ?", userID, models.TransactionTypeExpense).
		Group("category").
		Order("amount DESC, category ASC").
		Scan(&summary.ByCategory).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return summary, nil
}

// monthlyTotals buckets transactions by UTC calendar month. Bucketing
// happens here rather than in SQL so sqlite and postgres agree.
func (s *summaryService) monthlyTotals(userID string, months int) ([]MonthlyTotal, error) {
	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	result := make([]MonthlyTotal, months)
	index := make(map[string]int, months)
	for i := range result {
		month := start.AddDate(0, i, 0).Format("2006-01")
		result[i] = MonthlyTotal{Month: month}
		index[month] = i
	}

	var rows []struct {
		Type   models.TransactionType
		Amount int64
		Date   time.Time
	}
	if err := s.db.Model(&models.Transaction{}).
		Select("type, amount, date").
		Where("user_id = ? AND date >= ?", userID, start).
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, row := range rows {
		i, ok := index[row.Date.UTC().Format("2006-01")]
		if !ok {
			continue
		}
		switch row.Type {
		case models.TransactionTypeIncome:
			result[i].Income += row.Amount
		case models.TransactionTypeExpense:
			result[i].Expense += row.Amount
		}
	}
	return result, nil
}

// savingsRate is net over income with four decimal places, "0.0000" when
// there is no income.
func savingsRate(income, net int64) string {
	if income <= 0 {
		return decimal.Zero.StringFixed(4)
	}
	return decimal.NewFromInt(net).Div(decimal.NewFromInt(income)).StringFixed(4)
}
