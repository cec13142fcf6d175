package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// MaxAmount is the largest amount a single transaction or plan may carry.
const MaxAmount int64 = 1_000_000_000_000_000

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single income or expense booked against a pocket.
// Amount is always a positive magnitude; Type carries the sign.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	PocketID    string          `gorm:"type:uuid;not null;index" json:"pocket_id"`
	PlanID      *string         `gorm:"type:uuid;uniqueIndex" json:"plan_id,omitempty"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Category    Category        `gorm:"not null" json:"category"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
}

// SignedAmount returns the effect of the transaction on its pocket balance.
func (t *Transaction) SignedAmount() int64 {
	if t.Type == TransactionTypeIncome {
		return t.Amount
	}
	return -t.Amount
}
