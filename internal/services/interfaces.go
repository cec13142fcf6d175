package services

import (
	"time"

	"dompet/internal/models"
	"dompet/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password, name, avatar string, role models.UserRole) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(username, password string) (*models.User, error)
	StoreRefreshTokenHash(userID string, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	DeleteUser(id string) error
}

// PocketUpdateFields holds the optional fields of a partial pocket update.
// A nil field is left unchanged.
type PocketUpdateFields struct {
	Name    *string
	Balance *int64
	Type    *models.PocketType
	Color   *string
}

// PocketServicer defines the contract for pocket-related business logic.
type PocketServicer interface {
	CreatePocket(userID, name string, balance int64, pocketType models.PocketType, color string) (*models.Pocket, error)
	GetUserPockets(userID string) ([]models.Pocket, error)
	GetPocketByID(userID, pocketID string) (*models.Pocket, error)
	UpdatePocket(userID, pocketID string, fields PocketUpdateFields) (*models.Pocket, error)
	DeletePocket(userID, pocketID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type     *models.TransactionType
	PocketID *string
	FromDate *time.Time
	ToDate   *time.Time
	// Limit caps the number of rows returned; zero means no cap.
	Limit int
}

// TransactionUpdateFields holds the optional fields of a partial transaction update.
type TransactionUpdateFields struct {
	PocketID    *string
	Type        *models.TransactionType
	Category    *models.Category
	Amount      *int64
	Description *string
	Date        *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
// Every mutation keeps the affected pocket balances reconciled.
type TransactionServicer interface {
	CreateTransaction(userID, pocketID string, transactionType models.TransactionType, category models.Category, amount int64, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, filter TransactionFilter) ([]models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// PlanUpdateFields holds the optional fields of a partial plan update.
// ClearPocket detaches the plan from its pocket and wins over PocketID.
type PlanUpdateFields struct {
	Title       *string
	Amount      *int64
	DueDate     *time.Time
	Category    *models.Category
	Type        *models.TransactionType
	IsPaid      *bool
	PocketID    *string
	ClearPocket bool
}

// PlanPayment is the outcome of paying a plan. Transaction is nil when the
// plan had already been realized and nothing new was booked.
type PlanPayment struct {
	Plan        *models.Plan        `json:"plan"`
	Transaction *models.Transaction `json:"transaction,omitempty"`
}

// PlanServicer defines the contract for plan-related business logic.
type PlanServicer interface {
	CreatePlan(userID, title string, amount int64, dueDate time.Time, category models.Category, planType models.TransactionType, pocketID *string) (*models.Plan, error)
	GetUserPlans(userID string, isPaid *bool) ([]models.Plan, error)
	GetPlanByID(userID, planID string) (*models.Plan, error)
	UpdatePlan(userID, planID string, fields PlanUpdateFields) (*models.Plan, error)
	DeletePlan(userID, planID string) error
	PayPlan(userID, planID string) (*PlanPayment, error)
}

// MonthlyTotal is the income and expense booked in one calendar month.
type MonthlyTotal struct {
	Month   string `json:"month"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

// CategoryTotal is the expense booked under one category.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Amount   int64           `json:"amount"`
}

// Summary aggregates a user's ledger for the dashboard.
type Summary struct {
	TotalBalance int64           `json:"total_balance"`
	TotalIncome  int64           `json:"total_income"`
	TotalExpense int64           `json:"total_expense"`
	Net          int64           `json:"net"`
	SavingsRate  string          `json:"savings_rate"`
	Monthly      []MonthlyTotal  `json:"monthly"`
	ByCategory   []CategoryTotal `json:"by_category"`
}

// SummaryServicer defines the contract for ledger aggregation.
type SummaryServicer interface {
	GetSummary(userID string, months int) (*Summary, error)
}

// Snapshot is the full dataset of one user.
type Snapshot struct {
	Pockets      []models.Pocket      `json:"pockets"`
	Transactions []models.Transaction `json:"transactions"`
	Plans        []models.Plan        `json:"plans"`
}

// SnapshotServicer returns a user's full dataset in one call.
type SnapshotServicer interface {
	GetSnapshot(userID string) (*Snapshot, error)
}

// AuditEntry describes one mutation for the audit trail.
type AuditEntry struct {
	// ActorID is the user who performed the mutation, which for admin
	// operations differs from the owner of the resource.
	ActorID    string
	Action     string
	Resource   string
	ResourceID string
	ClientIP   string
	// Changes holds the written fields keyed by their JSON names.
	Changes map[string]interface{}
}

// AuditServicer records mutations to the audit trail.
type AuditServicer interface {
	Record(entry AuditEntry)
}

// Invalidator drops derived per-user views after the user's ledger changes.
type Invalidator interface {
	InvalidateUser(userID string)
}
