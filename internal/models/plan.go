package models

import (
	"time"

	"gorm.io/gorm"
)

// Plan is a scheduled income or expense that has not been realized yet.
// Paying a plan books a Transaction carrying the plan's ID.
type Plan struct {
	Base
	UserID    string          `gorm:"type:uuid;not null;index" json:"user_id"`
	PocketID  *string         `gorm:"type:uuid" json:"pocket_id,omitempty"`
	Title     string          `gorm:"not null" json:"title"`
	Amount    int64           `gorm:"type:bigint;not null" json:"amount"`
	DueDate   time.Time       `gorm:"not null" json:"due_date"`
	Category  Category        `gorm:"not null" json:"category"`
	Type      TransactionType `gorm:"not null;default:'expense'" json:"type"`
	IsPaid    bool            `gorm:"not null;default:false" json:"is_paid"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}
