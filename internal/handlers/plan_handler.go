package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "dompet/internal/errors"
	"dompet/internal/models"
	"dompet/internal/services"
	"dompet/internal/uuid"
)

// PlanHandler handles plan-related requests
type PlanHandler struct {
	planService  services.PlanServicer
	auditService services.AuditServicer
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planService services.PlanServicer, auditService services.AuditServicer) *PlanHandler {
	return &PlanHandler{planService: planService, auditService: auditService}
}

// CreatePlanRequest represents the request body for creating a plan
type CreatePlanRequest struct {
	Title    string                 `json:"title" binding:"required,min=1,max=200"`
	Amount   int64                  `json:"amount" binding:"required,gt=0,lte=1000000000000000"`
	DueDate  string                 `json:"due_date" binding:"required"`
	Category models.Category        `json:"category" binding:"required,category"`
	Type     models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	PocketID *string                `json:"pocket_id" binding:"omitempty,uuid"`
}

// UpdatePlanRequest represents the request body for a partial plan update.
// An empty pocket_id detaches the plan from its pocket.
type UpdatePlanRequest struct {
	Title    *string                 `json:"title" binding:"omitempty,min=1,max=200"`
	Amount   *int64                  `json:"amount" binding:"omitempty,gt=0,lte=1000000000000000"`
	DueDate  *string                 `json:"due_date"`
	Category *models.Category        `json:"category" binding:"omitempty,category"`
	Type     *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	IsPaid   *bool                   `json:"is_paid"`
	PocketID *string                 `json:"pocket_id"`
}

// CreatePlan handles plan creation
// @Summary     Create plan
// @Description Schedule a future income or expense. Type defaults to expense.
// @Tags        plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePlanRequest true "Plan data"
// @Success     201 {object} map[string]models.Plan "Created plan"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Pocket not found"
// @Router      /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	dueDate, err := parseFlexibleTime(req.DueDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plan, err := h.planService.CreatePlan(userID, req.Title, req.Amount, dueDate, req.Category, req.Type, req.PocketID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		ActorID:    userID,
		Action:     services.AuditActionCreate,
		Resource:   services.AuditResourcePlan,
		ResourceID: plan.ID,
		ClientIP:   c.ClientIP(),
		Changes:    map[string]interface{}{"title": plan.Title, "amount": plan.Amount, "type": plan.Type},
	})

	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

// GetUserPlans lists the caller's plans
// @Summary     List plans
// @Description Get the authenticated user's plans ordered by due date
// @Tags        plans
// @Produce     json
// @Security    BearerAuth
// @Param       is_paid query bool false "Filter by paid status"
// @Success     200 {object} map[string][]models.Plan "Plans"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /plans [get]
func (h *PlanHandler) GetUserPlans(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var isPaid *bool
	if v := c.Query("is_paid"); v != "" {
		b, parseErr := strconv.ParseBool(v)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "is_paid must be true or false"))
			return
		}
		isPaid = &b
	}

	plans, err := h.planService.GetUserPlans(userID, isPaid)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// GetPlanByID returns a single plan
// @Summary     Get plan
// @Tags        plans
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Plan ID"
// @Success     200 {object} map[string]models.Plan "Plan"
// @Failure     404 {object} ErrorResponse "Plan not found"
// @Router      /plans/{id} [get]
func (h *PlanHandler) GetPlanByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	planID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	plan, err := h.planService.GetPlanByID(userID, planID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// UpdatePlan applies a partial update to a plan
// @Summary     Update plan
// @Description Update plan fields. Marking a paid plan unpaid keeps its realized transaction.
// @Tags        plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Plan ID"
// @Param       request body UpdatePlanRequest true "Fields to update"
// @Success     200 {object} map[string]models.Plan "Updated plan"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Plan or pocket not found"
// @Router      /plans/{id} [put]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	planID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	fields := services.PlanUpdateFields{
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
		Type:     req.Type,
		IsPaid:   req.IsPaid,
	}
	if req.DueDate != nil {
		dueDate, parseErr := parseFlexibleTime(*req.DueDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		fields.DueDate = &dueDate
	}
	if req.PocketID != nil {
		switch {
		case *req.PocketID == "":
			fields.ClearPocket = true
		case uuid.IsValid(*req.PocketID):
			fields.PocketID = req.PocketID
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid pocket_id"))
			return
		}
	}

	plan, err := h.planService.UpdatePlan(userID, planID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	changes := map[string]interface{}{}
	if req.IsPaid != nil {
		changes["is_paid"] = *req.IsPaid
	}
	if req.Amount != nil {
		changes["amount"] = *req.Amount
	}
	if req.PocketID != nil {
		changes["pocket_id"] = *req.PocketID
	}
	h.auditService.Record(services.AuditEntry{
		ActorID:    userID,
		Action:     services.AuditActionUpdate,
		Resource:   services.AuditResourcePlan,
		ResourceID: plan.ID,
		ClientIP:   c.ClientIP(),
		Changes:    changes,
	})

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// DeletePlan removes a plan
// @Summary     Delete plan
// @Tags        plans
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Plan ID"
// @Success     200 {object} map[string]string "Plan deleted"
// @Failure     404 {object} ErrorResponse "Plan not found"
// @Router      /plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	planID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.planService.DeletePlan(userID, planID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		ActorID:    userID,
		Action:     services.AuditActionDelete,
		Resource:   services.AuditResourcePlan,
		ResourceID: planID,
		ClientIP:   c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted successfully"})
}

// PayPlan realizes a plan as a transaction
// @Summary     Pay plan
// @Description Book the plan as a transaction against its pocket (or the first pocket) and mark it paid. Paying an already paid plan is a no-op.
// @Tags        plans
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Plan ID"
// @Success     200 {object} services.PlanPayment "Paid plan and the booked transaction, if any"
// @Failure     404 {object} ErrorResponse "Plan or pocket not found"
// @Failure     409 {object} ErrorResponse "No pocket available"
// @Router      /plans/{id}/pay [post]
func (h *PlanHandler) PayPlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	planID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.planService.PayPlan(userID, planID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if payment.Transaction != nil {
		h.auditService.Record(services.AuditEntry{
			ActorID:    userID,
			Action:     services.AuditActionPay,
			Resource:   services.AuditResourcePlan,
			ResourceID: planID,
			ClientIP:   c.ClientIP(),
			Changes:    map[string]interface{}{
				"transaction_id": payment.Transaction.ID,
				"pocket_id":      payment.Transaction.PocketID,
				"amount":         payment.Transaction.Amount,
			},
		})
	}

	c.JSON(http.StatusOK, payment)
}
