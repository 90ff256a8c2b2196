package repository

import (
	"context"

	"vr-therapy-platform/internal/domain/entity"
)

// SessionReportRepository is append-only: reports are never updated or deleted
type SessionReportRepository interface {
	Create(ctx context.Context, report *entity.SessionReport) error
	FindAll(ctx context.Context) ([]entity.SessionReport, error)
	FindByPatientID(ctx context.Context, patientID string) ([]entity.SessionReport, error)
	FindByTherapistID(ctx context.Context, therapistID string) ([]entity.SessionReport, error)
	FindLatestByPatientID(ctx context.Context, patientID string) (*entity.SessionReport, error)
}
