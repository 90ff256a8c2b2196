package dto

import "time"

// AuditLogResponse represents an audit trail entry in responses
type AuditLogResponse struct {
	ID        string         `json:"id"`
	ActorID   string         `json:"actor_id,omitempty"`
	ActorRole string         `json:"actor_role,omitempty"`
	Action    string         `json:"action"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// AuditLogListResponse represents a list of audit logs
type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
