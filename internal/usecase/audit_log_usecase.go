package usecase

import (
	"context"

	"vr-therapy-platform/internal/converter"
	"vr-therapy-platform/internal/delivery/dto"
	"vr-therapy-platform/internal/service"

	"github.com/sirupsen/logrus"
)

type AuditLogUsecase interface {
	GetAuditLogs(ctx context.Context, actorID string) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	log   *logrus.Logger
	audit service.AuditService
}

func NewAuditLogUsecase(log *logrus.Logger, audit service.AuditService) AuditLogUsecase {
	return &auditLogUsecase{
		log:   log,
		audit: audit,
	}
}

func (u *auditLogUsecase) GetAuditLogs(ctx context.Context, actorID string) (*dto.AuditLogListResponse, error) {
	logs, err := u.audit.List(ctx, actorID)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
