package service

import (
	"context"
	"time"

	"vr-therapy-platform/internal/domain/entity"
	"vr-therapy-platform/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditService appends entries to the audit trail and mirrors them to the log
type AuditService interface {
	Record(ctx context.Context, actorID string, role entity.Role, action string, metadata map[string]any) error
	List(ctx context.Context, actorID string) ([]entity.AuditLog, error)
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
	now       func() time.Time
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
		now:       time.Now,
	}
}

func (s *auditService) Record(ctx context.Context, actorID string, role entity.Role, action string, metadata map[string]any) error {
	auditLog := &entity.AuditLog{
		ID:        uuid.NewString(),
		ActorID:   actorID,
		ActorRole: role,
		Action:    action,
		Metadata:  metadata,
		CreatedAt: s.now().UTC(),
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	s.log.WithFields(logrus.Fields{
		"actor_id":   actorID,
		"actor_role": role,
		"action":     action,
	}).Info("audit")
	return nil
}

// List returns the audit trail, optionally narrowed to one actor
func (s *auditService) List(ctx context.Context, actorID string) ([]entity.AuditLog, error) {
	if actorID == "" {
		return s.auditRepo.FindAll(ctx)
	}
	return s.auditRepo.FindByActorID(ctx, actorID)
}
