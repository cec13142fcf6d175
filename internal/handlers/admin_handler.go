package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dompet/internal/models"
	"dompet/internal/pagination"
	"dompet/internal/services"
)

// AdminHandler handles user management for administrators.
type AdminHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userService services.UserServicer, auditService services.AuditServicer) *AdminHandler {
	return &AdminHandler{userService: userService, auditService: auditService}
}

// CreateUserRequest represents an administrator creating a user
type CreateUserRequest struct {
	Username string          `json:"username" binding:"required,min=3,max=64"`
	Password string          `json:"password" binding:"required,min=6,max=128"`
	Name     string          `json:"name" binding:"max=100"`
	Avatar   string          `json:"avatar" binding:"omitempty,url,max=500"`
	Role     models.UserRole `json:"role" binding:"omitempty,user_role"`
}

// ListUsers returns all users
// @Summary     List users
// @Description Paginated list of every user, oldest first. Credentials are never included.
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.User] "Paginated users"
// @Failure     403 {object} ErrorResponse "Admin role required"
// @Router      /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.userService.ListUsers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateUser creates a user with an explicit role
// @Summary     Create user
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateUserRequest true "User data"
// @Success     201 {object} map[string]models.User "Created user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin role required"
// @Failure     409 {object} ErrorResponse "Username already exists"
// @Router      /admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.CreateUser(req.Username, req.Password, req.Name, req.Avatar, req.Role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		ActorID:    adminID,
		Action:     services.AuditActionCreate,
		Resource:   services.AuditResourceUser,
		ResourceID: user.ID,
		ClientIP:   c.ClientIP(),
		Changes:    map[string]interface{}{"username": user.Username, "role": user.Role},
	})

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// DeleteUser removes a user together with their pockets, transactions and plans
// @Summary     Delete user
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User ID"
// @Success     200 {object} map[string]string "User deleted"
// @Failure     403 {object} ErrorResponse "Admin users cannot be deleted"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	userID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		ActorID:    adminID,
		Action:     services.AuditActionDelete,
		Resource:   services.AuditResourceUser,
		ResourceID: userID,
		ClientIP:   c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
