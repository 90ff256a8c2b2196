package repository

import (
	"context"

	"vr-therapy-platform/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context) ([]entity.AuditLog, error)
	FindByActorID(ctx context.Context, actorID string) ([]entity.AuditLog, error)
}
