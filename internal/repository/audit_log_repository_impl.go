package repository

import (
	"context"

	"vr-therapy-platform/internal/domain/entity"
	domainRepo "vr-therapy-platform/internal/domain/repository"
)

type auditLogRepository struct {
	store *StoreAdapter
}

func NewAuditLogRepository(store *StoreAdapter) domainRepo.AuditLogRepository {
	return &auditLogRepository{store: store}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	defer r.store.lock(AuditLogKey)()

	logs, err := r.FindAll(ctx)
	if err != nil {
		return err
	}
	logs = append(logs, *log)
	return r.store.Write(ctx, AuditLogKey, logs)
}

func (r *auditLogRepository) FindAll(ctx context.Context) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	if _, err := r.store.Read(ctx, AuditLogKey, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditLogRepository) FindByActorID(ctx context.Context, actorID string) ([]entity.AuditLog, error) {
	logs, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]entity.AuditLog, 0)
	for _, log := range logs {
		if log.ActorID == actorID {
			matched = append(matched, log)
		}
	}
	return matched, nil
}
