package domain

import (
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	ActionRead    AuditAction = "read"
	ActionAnalyze AuditAction = "analyze"
)

// AuditLog records every access to user health data.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	// Who
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	IPAddress string    `gorm:"column:ip_address;type:varchar(45)"` // Supports IPv6

	// What
	Action       AuditAction `gorm:"column:action;type:varchar(20);not null;index"`
	ResourceType string      `gorm:"column:resource_type;type:varchar(50);not null;index"`
	ResourceID   string      `gorm:"column:resource_id;type:varchar(50);index"`

	RequestID string `gorm:"column:request_id;type:varchar(50);index"`
	Details   string `gorm:"column:details;type:jsonb"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Claims is the authenticated caller. Every row the service reads is scoped by UserID.
type Claims struct {
	UserID uuid.UUID `json:"sub"`
	Email  string    `json:"email"`
}
