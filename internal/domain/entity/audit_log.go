package entity

import "time"

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        string         `json:"id"`
	ActorID   string         `json:"actorId,omitempty"`
	ActorRole Role           `json:"actorRole,omitempty"`
	Action    string         `json:"action"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Common audit actions
const (
	AuditActionTherapistLogin      = "therapist.login"
	AuditActionGuardianLogin       = "guardian.login"
	AuditActionLogout              = "session.logout"
	AuditActionPatientEnroll       = "patient.enroll"
	AuditActionPatientUpdate       = "patient.update"
	AuditActionOnboardingComplete  = "onboarding.complete"
	AuditActionSessionReportCreate = "session_report.create"
)
