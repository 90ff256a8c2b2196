package repository

import (
	"context"

	"vr-therapy-platform/internal/domain/entity"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindAll(ctx context.Context) ([]entity.Patient, error)
	FindByID(ctx context.Context, id string) (*entity.Patient, error)
	FindByTherapistID(ctx context.Context, therapistID string) ([]entity.Patient, error)
	FindByGuardianPhone(ctx context.Context, phone string) ([]entity.Patient, error)
	Update(ctx context.Context, id string, patch entity.PatientPatch) (*entity.Patient, error)
}
