package models

import "gorm.io/gorm"

// PocketType tags what kind of money container a pocket is.
type PocketType string

const (
	PocketTypeBank    PocketType = "bank"
	PocketTypeWallet  PocketType = "wallet"
	PocketTypeEwallet PocketType = "ewallet"
)

// MaxBalance bounds a pocket balance in both directions. MaxBalance plus
// MaxAmount stays well inside int64, so a balance update never overflows.
const MaxBalance int64 = 1_000_000_000_000_000

// Pocket is a named money container owned by a user.
//
// Balance is a cached value in the smallest currency unit. It is never
// recomputed from history; the reconciliation in the transaction service
// keeps it equal to the opening balance plus every applied transaction.
type Pocket struct {
	Base
	UserID    string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"not null" json:"name"`
	Balance   int64          `gorm:"type:bigint;not null;default:0" json:"balance"`
	Type      PocketType     `gorm:"not null" json:"type"`
	Color     string         `json:"color"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
