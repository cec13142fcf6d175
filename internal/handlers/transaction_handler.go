package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "dompet/internal/errors"
	"dompet/internal/models"
	"dompet/internal/services"
	"dompet/internal/uuid"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		auditService:       auditService,
	}
}

// CreateTransactionRequest represents the request body for creating a transaction
type CreateTransactionRequest struct {
	PocketID    string                 `json:"pocket_id" binding:"required,uuid"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Category    models.Category        `json:"category" binding:"required,category"`
	Amount      int64                  `json:"amount" binding:"required,gt=0,lte=1000000000000000"`
	Description string                 `json:"description" binding:"max=500"`
	Date        string                 `json:"date"`
}

// UpdateTransactionRequest represents the request body for a partial transaction update
type UpdateTransactionRequest struct {
	PocketID    *string                 `json:"pocket_id" binding:"omitempty,uuid"`
	Type        *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	Category    *models.Category        `json:"category" binding:"omitempty,category"`
	Amount      *int64                  `json:"amount" binding:"omitempty,gt=0,lte=1000000000000000"`
	Description *string                 `json:"description" binding:"omitempty,max=500"`
	Date        *string                 `json:"date"`
}

// CreateTransaction handles transaction creation
// @Summary     Create transaction
// @Description Book an income or expense against a pocket. The pocket balance moves by the signed amount in the same unit.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction data"
// @Success     201 {object} map[string]models.Transaction "Created transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Pocket not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	var date time.Time
	if req.Date != "" {
		date, err = parseFlexibleTime(req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	transaction, err := h.transactionService.CreateTransaction(
		userID, req.PocketID, req.Type, req.Category, req.Amount, req.Description, date,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		ActorID:    userID,
		Action:     services.AuditActionCreate,
		Resource:   services.AuditResourceTransaction,
		ResourceID: transaction.ID,
		ClientIP:   c.ClientIP(),
		Changes:    map[string]interface{}{
			"pocket_id": transaction.PocketID,
			"type":      transaction.Type,
			"category":  transaction.Category,
			"amount":    transaction.Amount,
		},
	})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetUserTransactions lists the caller's transactions
// @Summary     List transactions
// @Description Get the authenticated user's transactions, newest first
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       type      query string false "Filter by type (income, expense, all)"
// @Param       limit     query int    false "Maximum number of rows (1-1000)"
// @Param       pocket_id query string false "Filter by pocket ID"
// @Param       from_date query string false "Filter by start date (RFC3339 e.g. 2024-01-01T00:00:00Z, or YYYY-MM-DD)"
// @Param       to_date   query string false "Filter by end date, inclusive (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} map[string][]models.Transaction "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetUserTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.GetUserTransactions(userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	switch v := c.Query("type"); v {
	case "", "all":
	default:
		t := models.TransactionType(v)
		if !t.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income, expense or all")
		}
		filter.Type = &t
	}

	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > services.MaxTransactionLimit {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be between 1 and 1000")
		}
		filter.Limit = limit
	}

	if v := c.Query("pocket_id"); v != "" {
		if !uuid.IsValid(v) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid pocket_id")
		}
		filter.PocketID = &v
	}

	if v := c.Query("from_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.FromDate = &t
	}

	if v := c.Query("to_date"); v != "" {
		t, err := parseUpperBound(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.ToDate = &t
	}

	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "from_date must not be after to_date")
	}

	return filter, nil
}

// GetTransactionByID returns a single transaction
// @Summary     Get transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]models.Transaction "Transaction"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction applies a partial update to a transaction
// @Summary     Update transaction
// @Description Update a transaction. The old effect is reverted and the new one applied in one unit, across pockets if the pocket changes.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} map[string]models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction or pocket not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	fields := services.TransactionUpdateFields{
		PocketID:    req.PocketID,
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Date != nil {
		date, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		fields.Date = &date
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		ActorID:    userID,
		Action:     services.AuditActionUpdate,
		Resource:   services.AuditResourceTransaction,
		ResourceID: transaction.ID,
		ClientIP:   c.ClientIP(),
		Changes:    map[string]interface{}{
			"pocket_id": transaction.PocketID,
			"type":      transaction.Type,
			"category":  transaction.Category,
			"amount":    transaction.Amount,
		},
	})

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction removes a transaction
// @Summary     Delete transaction
// @Description Delete a transaction and revert its effect on the pocket balance
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]string "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		ActorID:    userID,
		Action:     services.AuditActionDelete,
		Resource:   services.AuditResourceTransaction,
		ResourceID: transactionID,
		ClientIP:   c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
