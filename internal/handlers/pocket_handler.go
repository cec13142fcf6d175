package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dompet/internal/models"
	"dompet/internal/services"
)

const defaultPocketColor = "#3B82F6"

// PocketHandler handles pocket-related requests
type PocketHandler struct {
	pocketService services.PocketServicer
	auditService  services.AuditServicer
}

// NewPocketHandler creates a new PocketHandler
func NewPocketHandler(pocketService services.PocketServicer, auditService services.AuditServicer) *PocketHandler {
	return &PocketHandler{pocketService: pocketService, auditService: auditService}
}

// CreatePocketRequest represents the request body for creating a pocket
type CreatePocketRequest struct {
	Name    string            `json:"name" binding:"required,min=1,max=100"`
	Balance int64             `json:"balance" binding:"gte=-1000000000000000,lte=1000000000000000"`
	Type    models.PocketType `json:"type" binding:"required,pocket_type"`
	Color   string            `json:"color" binding:"omitempty,hex_color"`
}

// UpdatePocketRequest represents the request body for a partial pocket update
type UpdatePocketRequest struct {
	Name    *string            `json:"name" binding:"omitempty,min=1,max=100"`
	Balance *int64             `json:"balance" binding:"omitempty,gte=-1000000000000000,lte=1000000000000000"`
	Type    *models.PocketType `json:"type" binding:"omitempty,pocket_type"`
	Color   *string            `json:"color" binding:"omitempty,hex_color"`
}

// CreatePocket handles pocket creation
// @Summary     Create pocket
// @Description Create a new pocket. The balance is the opening balance and is not backed by a transaction.
// @Tags        pockets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePocketRequest true "Pocket data"
// @Success     201 {object} map[string]models.Pocket "Created pocket"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pockets [post]
func (h *PocketHandler) CreatePocket(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePocketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	if req.Color == "" {
		req.Color = defaultPocketColor
	}

	pocket, err := h.pocketService.CreatePocket(userID, req.Name, req.Balance, req.Type, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		ActorID:    userID,
		Action:     services.AuditActionCreate,
		Resource:   services.AuditResourcePocket,
		ResourceID: pocket.ID,
		ClientIP:   c.ClientIP(),
		Changes:    map[string]interface{}{"name": pocket.Name, "balance": pocket.Balance, "type": pocket.Type},
	})

	c.JSON(http.StatusCreated, gin.H{"pocket": pocket})
}

// GetUserPockets lists the caller's pockets
// @Summary     List pockets
// @Description Get all pockets of the authenticated user, oldest first
// @Tags        pockets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]models.Pocket "Pockets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pockets [get]
func (h *PocketHandler) GetUserPockets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	pockets, err := h.pocketService.GetUserPockets(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pockets": pockets})
}

// GetPocketByID returns a single pocket
// @Summary     Get pocket
// @Tags        pockets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pocket ID"
// @Success     200 {object} map[string]models.Pocket "Pocket"
// @Failure     400 {object} ErrorResponse "Invalid pocket ID"
// @Failure     404 {object} ErrorResponse "Pocket not found"
// @Router      /pockets/{id} [get]
func (h *PocketHandler) GetPocketByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	pocketID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	pocket, err := h.pocketService.GetPocketByID(userID, pocketID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pocket": pocket})
}

// UpdatePocket applies a partial update to a pocket
// @Summary     Update pocket
// @Description Update name, type, color or directly correct the balance of a pocket
// @Tags        pockets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Pocket ID"
// @Param       request body UpdatePocketRequest true "Fields to update"
// @Success     200 {object} map[string]models.Pocket "Updated pocket"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Pocket not found"
// @Router      /pockets/{id} [put]
func (h *PocketHandler) UpdatePocket(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	pocketID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePocketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	pocket, err := h.pocketService.UpdatePocket(userID, pocketID, services.PocketUpdateFields{
		Name:    req.Name,
		Balance: req.Balance,
		Type:    req.Type,
		Color:   req.Color,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	changes := map[string]interface{}{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Balance != nil {
		changes["balance"] = *req.Balance
	}
	if req.Type != nil {
		changes["type"] = *req.Type
	}
	if req.Color != nil {
		changes["color"] = *req.Color
	}
	h.auditService.Record(services.AuditEntry{
		ActorID:    userID,
		Action:     services.AuditActionUpdate,
		Resource:   services.AuditResourcePocket,
		ResourceID: pocket.ID,
		ClientIP:   c.ClientIP(),
		Changes:    changes,
	})

	c.JSON(http.StatusOK, gin.H{"pocket": pocket})
}

// DeletePocket removes a pocket
// @Summary     Delete pocket
// @Description Delete a pocket. Refused while transactions still reference it; plans pointing at it are detached.
// @Tags        pockets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pocket ID"
// @Success     200 {object} map[string]string "Pocket deleted"
// @Failure     404 {object} ErrorResponse "Pocket not found"
// @Failure     409 {object} ErrorResponse "Pocket in use"
// @Router      /pockets/{id} [delete]
func (h *PocketHandler) DeletePocket(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	pocketID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.pocketService.DeletePocket(userID, pocketID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		ActorID:    userID,
		Action:     services.AuditActionDelete,
		Resource:   services.AuditResourcePocket,
		ResourceID: pocketID,
		ClientIP:   c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Pocket deleted successfully"})
}
