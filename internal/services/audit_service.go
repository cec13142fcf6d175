package services

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"dompet/internal/logger"
	"dompet/internal/models"
)

// Audit actions.
const (
	AuditActionCreate   = "CREATE"
	AuditActionUpdate   = "UPDATE"
	AuditActionDelete   = "DELETE"
	AuditActionPay      = "PAY"
	AuditActionRegister = "REGISTER"
)

// Audited resource types.
const (
	AuditResourcePocket      = "pocket"
	AuditResourceTransaction = "transaction"
	AuditResourcePlan        = "plan"
	AuditResourceUser        = "user"
)

type auditService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewAuditService creates an AuditServicer writing to the audit_logs table.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db, log: logger.With("component", "audit")}
}

// Record appends entry to the audit trail. The mutation it describes has
// already committed, so a failed write is logged and dropped.
func (s *auditService) Record(entry AuditEntry) {
	row := &models.AuditLog{
		UserID:       entry.ActorID,
		Action:       entry.Action,
		ResourceType: entry.Resource,
		ResourceID:   entry.ResourceID,
		IPAddress:    entry.ClientIP,
		Changes:      s.encodeChanges(entry),
	}
	if err := s.db.Create(row).Error; err != nil {
		s.log.Errorw("audit write failed",
			"error", err,
			"actor_id", entry.ActorID,
			"action", entry.Action,
			"resource", entry.Resource,
			"resource_id", entry.ResourceID,
		)
	}
}

// encodeChanges renders the changed fields as a JSON object, or "" when
// the entry carries none.
func (s *auditService) encodeChanges(entry AuditEntry) string {
	if len(entry.Changes) == 0 {
		return ""
	}
	data, err := json.Marshal(entry.Changes)
	if err != nil {
		s.log.Warnw("audit changes not encodable", "error", err, "resource", entry.Resource, "resource_id", entry.ResourceID)
		return "{}"
	}
	return string(data)
}
